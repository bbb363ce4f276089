package identity

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clutch-swap/clutch-api/internal/domain"
	"github.com/clutch-swap/clutch-api/internal/infrastructure/memstore"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Student AB", DisplayName("ab12345@essex.ac.uk"))
	assert.Equal(t, "Student JO", DisplayName("john.smith@essex.ac.uk"))
	assert.Equal(t, "Student X", DisplayName("x@essex.ac.uk"))
	assert.Equal(t, "Student AB", DisplayName("ab"))
}

func TestResolveCreatesOnFirstUse(t *testing.T) {
	svc := NewService(memstore.NewIdentityStore())

	ident, err := svc.Resolve(context.Background(), "ab12345@essex.ac.uk")
	require.NoError(t, err)
	assert.NotEmpty(t, ident.IdentityID)
	assert.Equal(t, "ab12345@essex.ac.uk", ident.Email)
	assert.Equal(t, "Student AB", ident.DisplayName)
	assert.True(t, ident.Verified)
}

func TestResolveIsStable(t *testing.T) {
	svc := NewService(memstore.NewIdentityStore())
	ctx := context.Background()

	first, err := svc.Resolve(ctx, "cd99@essex.ac.uk")
	require.NoError(t, err)
	second, err := svc.Resolve(ctx, "cd99@essex.ac.uk")
	require.NoError(t, err)

	assert.Equal(t, first.IdentityID, second.IdentityID)
}

func TestResolveConcurrentFirstUse(t *testing.T) {
	svc := NewService(memstore.NewIdentityStore())
	ctx := context.Background()

	const n = 16
	ids := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ident, err := svc.Resolve(ctx, "race@essex.ac.uk")
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = ident.IdentityID
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
	}
	for i := 1; i < n; i++ {
		assert.Equal(t, ids[0], ids[i], "all resolvers must converge on one identity")
	}
}

func TestUpdateContact(t *testing.T) {
	svc := NewService(memstore.NewIdentityStore())
	ctx := context.Background()

	ident, err := svc.Resolve(ctx, "ef11@essex.ac.uk")
	require.NoError(t, err)

	name := "Emma Fox"
	insta := "@emma.fox"
	updated, err := svc.UpdateContact(ctx, ident, domain.UpdateContactRequest{FullName: &name, Instagram: &insta})
	require.NoError(t, err)

	require.NotNil(t, updated.Contact)
	assert.Equal(t, "Emma Fox", updated.Contact.FullName)
	assert.Equal(t, "emma.fox", updated.Contact.Instagram)
	assert.Equal(t, "ef11@essex.ac.uk", updated.Contact.Email)

	// A later partial update must not clobber earlier fields.
	phone := "+44 7700 900123"
	updated, err = svc.UpdateContact(ctx, updated, domain.UpdateContactRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Emma Fox", updated.Contact.FullName)
	assert.Equal(t, "+44 7700 900123", updated.Contact.Phone)
}
