package listing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/clutch-swap/clutch-api/internal/domain"
	"github.com/clutch-swap/clutch-api/internal/pkg/id"
	"github.com/clutch-swap/clutch-api/internal/pkg/validate"
)

type Service interface {
	Create(ctx context.Context, owner *domain.Identity, req domain.CreateListingRequest) (*domain.Listing, error)
	Get(ctx context.Context, listingID string) (*domain.Listing, error)
	// Browse returns listings matching filter, newest first.
	Browse(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)
	// Delete removes a listing. Only the owner may delete it; admin removal
	// goes through AdminDelete.
	Delete(ctx context.Context, actor *domain.Identity, listingID string) error
	AdminDelete(ctx context.Context, listingID string) error
}

type listingStore interface {
	Put(ctx context.Context, l *domain.Listing) error
	Get(ctx context.Context, listingID string) (*domain.Listing, error)
	List(ctx context.Context) ([]domain.Listing, error)
	Delete(ctx context.Context, listingID string) error
}

type service struct {
	repo listingStore
}

func NewService(repo listingStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, owner *domain.Identity, req domain.CreateListingRequest) (*domain.Listing, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrBadRequest, err)
	}

	category := req.Category
	if req.Type == domain.TypeRequest {
		// Requests describe something wanted, regardless of submitted category.
		category = domain.CategoryNeed
	}

	l := &domain.Listing{
		ListingID:   id.New(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Type:        req.Type,
		Tags:        normalizeTags(req.Tags),
		OwnerID:     owner.IdentityID,
		OwnerName:   owner.DisplayName,
		OwnerEmail:  owner.Email,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, l); err != nil {
		return nil, fmt.Errorf("store listing: %w", err)
	}
	return l, nil
}

func (s *service) Get(ctx context.Context, listingID string) (*domain.Listing, error) {
	return s.repo.Get(ctx, listingID)
}

func (s *service) Browse(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Listing, 0, len(all))
	for _, l := range all {
		if filter.Type != "" && l.Type != filter.Type {
			continue
		}
		if filter.Category != "" && l.Category != filter.Category {
			continue
		}
		if filter.OwnerID != "" && l.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Tag != "" && !hasTag(l.Tags, filter.Tag) {
			continue
		}
		out = append(out, l)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *service) Delete(ctx context.Context, actor *domain.Identity, listingID string) error {
	l, err := s.repo.Get(ctx, listingID)
	if err != nil {
		return err
	}
	if l.OwnerID != actor.IdentityID {
		return fmt.Errorf("not the listing owner: %w", domain.ErrForbidden)
	}
	return s.repo.Delete(ctx, listingID)
}

func (s *service) AdminDelete(ctx context.Context, listingID string) error {
	if _, err := s.repo.Get(ctx, listingID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, listingID)
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func hasTag(tags []string, want string) bool {
	want = strings.ToLower(want)
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
