package memstore

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/clutch-swap/clutch-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityStore_CreateIsConditional(t *testing.T) {
	s := NewIdentityStore()
	ctx := context.Background()

	err := s.Create(ctx, &domain.Identity{IdentityID: "i1", Email: "a@essex.ac.uk"})
	require.NoError(t, err)

	err = s.Create(ctx, &domain.Identity{IdentityID: "i2", Email: "a@essex.ac.uk"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	got, err := s.GetByEmail(ctx, "a@essex.ac.uk")
	require.NoError(t, err)
	assert.Equal(t, "i1", got.IdentityID)
}

func TestIdentityStore_ConcurrentCreate_OneWinner(t *testing.T) {
	s := NewIdentityStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := s.Create(ctx, &domain.Identity{IdentityID: "i", Email: "race@essex.ac.uk"})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, created)
}

func TestVerificationStore_PutOverwrites(t *testing.T) {
	s := NewVerificationStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &domain.PendingVerification{Email: "a@essex.ac.uk", Code: "111111"}))
	require.NoError(t, s.Put(ctx, &domain.PendingVerification{Email: "a@essex.ac.uk", Code: "222222"}))

	v, err := s.Get(ctx, "a@essex.ac.uk")
	require.NoError(t, err)
	assert.Equal(t, "222222", v.Code)

	require.NoError(t, s.Delete(ctx, "a@essex.ac.uk"))
	_, err = s.Get(ctx, "a@essex.ac.uk")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSessionStore_RevokeByIdentity(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &domain.Session{SessionID: "s1", IdentityID: "i1"}))
	require.NoError(t, s.Put(ctx, &domain.Session{SessionID: "s2", IdentityID: "i1"}))
	require.NoError(t, s.Put(ctx, &domain.Session{SessionID: "s3", IdentityID: "i2"}))

	require.NoError(t, s.RevokeByIdentity(ctx, "i1"))

	for id, want := range map[string]bool{"s1": true, "s2": true, "s3": false} {
		sess, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, sess.Revoked, id)
	}
}

func TestSessionStore_RevokeAbsentIsNoError(t *testing.T) {
	s := NewSessionStore()
	assert.NoError(t, s.Revoke(context.Background(), "missing"))
}

func TestSavedStore_AddRemoveHas(t *testing.T) {
	s := NewSavedStore()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "i1", "l1"))
	require.NoError(t, s.Add(ctx, "i1", "l2"))

	has, err := s.Has(ctx, "i1", "l1")
	require.NoError(t, err)
	assert.True(t, has)

	ids, err := s.ListIDs(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, []string{"l1", "l2"}, ids)

	require.NoError(t, s.Remove(ctx, "i1", "l1"))
	has, err = s.Has(ctx, "i1", "l1")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestExchangeStore_Boxes(t *testing.T) {
	s := NewExchangeStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &domain.Exchange{ExchangeID: "e1", FromID: "i1", ToID: "i2", Status: domain.ExchangePending}))
	require.NoError(t, s.Put(ctx, &domain.Exchange{ExchangeID: "e2", FromID: "i2", ToID: "i1", Status: domain.ExchangePending}))

	sent, err := s.ListByFrom(ctx, "i1")
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "e1", sent[0].ExchangeID)

	received, err := s.ListByTo(ctx, "i1")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "e2", received[0].ExchangeID)

	require.NoError(t, s.SetStatus(ctx, "e1", domain.ExchangeApproved))
	e, err := s.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, domain.ExchangeApproved, e.Status)
	assert.False(t, e.UpdatedAt.IsZero())
}

func TestObjectStore_RoundTrip(t *testing.T) {
	s := NewObjectStore()
	ctx := context.Background()

	url, err := s.Upload(ctx, "photos/p1.jpg", bytes.NewReader([]byte("jpeg-bytes")), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "mem://photos/p1.jpg", url)

	rc, err := s.Download(ctx, "photos/p1.jpg")
	require.NoError(t, err)
	defer rc.Close()
	data := make([]byte, 10)
	n, _ := rc.Read(data)
	assert.Equal(t, "jpeg-bytes", string(data[:n]))

	require.NoError(t, s.Delete(ctx, "photos/p1.jpg"))
	_, err = s.Download(ctx, "photos/p1.jpg")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
