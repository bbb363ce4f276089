package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clutch-swap/clutch-api/internal/application/identity"
	"github.com/clutch-swap/clutch-api/internal/domain"
	"github.com/clutch-swap/clutch-api/internal/infrastructure/memstore"
)

func TestRunSeedsListings(t *testing.T) {
	listings := memstore.NewListingStore()
	seeder := NewSeeder(identity.NewService(memstore.NewIdentityStore()), listings)

	n, err := seeder.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(samples), n)

	all, err := listings.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, len(samples))
	for _, l := range all {
		assert.NotEmpty(t, l.OwnerID)
		assert.NotEmpty(t, l.OwnerName)
	}
}

func TestRunRefusesNonEmptyStore(t *testing.T) {
	listings := memstore.NewListingStore()
	require.NoError(t, listings.Put(context.Background(), &domain.Listing{ListingID: "l-1"}))
	seeder := NewSeeder(identity.NewService(memstore.NewIdentityStore()), listings)

	_, err := seeder.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrConflict)
}
