package photo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/clutch-swap/clutch-api/internal/domain"
	"github.com/clutch-swap/clutch-api/internal/pkg/id"
)

const maxPhotoSize = 5 << 20 // 5 MiB

type Service interface {
	// Upload stores a photo for a listing. Only the listing owner may attach
	// photos.
	Upload(ctx context.Context, actor *domain.Identity, listingID, filename string, r io.Reader, size int64, contentType string) (*domain.Photo, error)
	// Open returns the photo record and its byte stream. The caller closes
	// the stream.
	Open(ctx context.Context, photoID string) (*domain.Photo, io.ReadCloser, error)
	ListByListing(ctx context.Context, listingID string) ([]domain.Photo, error)
	Delete(ctx context.Context, actor *domain.Identity, photoID string) error
}

type photoStore interface {
	Put(ctx context.Context, p *domain.Photo) error
	Get(ctx context.Context, photoID string) (*domain.Photo, error)
	ListByListing(ctx context.Context, listingID string) ([]domain.Photo, error)
	Delete(ctx context.Context, photoID string) error
}

type listingStore interface {
	Get(ctx context.Context, listingID string) (*domain.Listing, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	photos   photoStore
	listings listingStore
	objects  objectStore
}

func NewService(photos photoStore, listings listingStore, objects objectStore) Service {
	return &service{photos: photos, listings: listings, objects: objects}
}

func (s *service) Upload(ctx context.Context, actor *domain.Identity, listingID, filename string, r io.Reader, size int64, contentType string) (*domain.Photo, error) {
	if size <= 0 || size > maxPhotoSize {
		return nil, fmt.Errorf("photo size out of range: %w", domain.ErrBadRequest)
	}

	l, err := s.listings.Get(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l.OwnerID != actor.IdentityID {
		return nil, fmt.Errorf("not the listing owner: %w", domain.ErrForbidden)
	}

	photoID := id.New()
	key := fmt.Sprintf("listings/%s/%s-%s", listingID, photoID, filename)
	if _, err := s.objects.Upload(ctx, key, io.LimitReader(r, maxPhotoSize), contentType); err != nil {
		return nil, fmt.Errorf("store photo bytes: %w", err)
	}

	p := &domain.Photo{
		PhotoID:     photoID,
		ListingID:   listingID,
		Object:      key,
		ContentType: contentType,
		Size:        size,
		UploadedBy:  actor.IdentityID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.photos.Put(ctx, p); err != nil {
		// Keep storage and records consistent when the record write fails.
		_ = s.objects.Delete(ctx, key)
		return nil, fmt.Errorf("store photo record: %w", err)
	}
	return p, nil
}

func (s *service) Open(ctx context.Context, photoID string) (*domain.Photo, io.ReadCloser, error) {
	p, err := s.photos.Get(ctx, photoID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.objects.Download(ctx, p.Object)
	if err != nil {
		return nil, nil, fmt.Errorf("read photo bytes: %w", err)
	}
	return p, rc, nil
}

func (s *service) ListByListing(ctx context.Context, listingID string) ([]domain.Photo, error) {
	return s.photos.ListByListing(ctx, listingID)
}

func (s *service) Delete(ctx context.Context, actor *domain.Identity, photoID string) error {
	p, err := s.photos.Get(ctx, photoID)
	if err != nil {
		return err
	}
	if p.UploadedBy != actor.IdentityID {
		return fmt.Errorf("not the uploader: %w", domain.ErrForbidden)
	}
	if err := s.photos.Delete(ctx, photoID); err != nil {
		return err
	}
	return s.objects.Delete(ctx, p.Object)
}
