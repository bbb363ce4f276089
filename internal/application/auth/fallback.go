package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/clutch-swap/clutch-api/internal/domain"
)

// FallbackStore wraps a primary verification store with an in-process backup.
// When the primary errors (table missing, network down), the flow degrades to
// the backup for that call instead of failing the login entirely. Entries in
// the backup are lost on restart, which only costs the requester a resend.
type FallbackStore struct {
	primary verificationStore
	backup  verificationStore
}

func NewFallbackStore(primary, backup verificationStore) *FallbackStore {
	return &FallbackStore{primary: primary, backup: backup}
}

func (f *FallbackStore) Put(ctx context.Context, v *domain.PendingVerification) error {
	if err := f.primary.Put(ctx, v); err != nil {
		slog.Warn("verification store unavailable, using in-memory backup", "error", err)
		return f.backup.Put(ctx, v)
	}
	return nil
}

func (f *FallbackStore) Get(ctx context.Context, email string) (*domain.PendingVerification, error) {
	v, err := f.primary.Get(ctx, email)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		slog.Warn("verification store unavailable, reading in-memory backup", "error", err)
		return f.backup.Get(ctx, email)
	}
	// The entry may have been written while the primary was down.
	if bv, berr := f.backup.Get(ctx, email); berr == nil {
		return bv, nil
	}
	return nil, err
}

func (f *FallbackStore) Delete(ctx context.Context, email string) error {
	// Scrub both sides so a consumed code cannot resurface.
	perr := f.primary.Delete(ctx, email)
	berr := f.backup.Delete(ctx, email)
	if perr != nil {
		slog.Warn("verification delete failed on primary store", "error", perr)
		return berr
	}
	return berr
}
