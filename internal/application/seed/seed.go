package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/clutch-swap/clutch-api/internal/domain"
	"github.com/clutch-swap/clutch-api/internal/pkg/id"
)

type identityResolver interface {
	Resolve(ctx context.Context, email string) (*domain.Identity, error)
}

type listingStore interface {
	Put(ctx context.Context, l *domain.Listing) error
	List(ctx context.Context) ([]domain.Listing, error)
}

// Seeder loads demo accounts and listings so a fresh environment has
// something to browse. Seeding an already-populated store is refused.
type Seeder struct {
	identities identityResolver
	listings   listingStore
}

func NewSeeder(identities identityResolver, listings listingStore) *Seeder {
	return &Seeder{identities: identities, listings: listings}
}

type sample struct {
	email       string
	title       string
	description string
	category    string
	typ         string
	tags        []string
}

var samples = []sample{
	{"gm20451@essex.ac.uk", "Guitar lessons for beginners", "Acoustic or electric, I have spares you can borrow.", domain.CategorySkill, domain.TypeOffer, []string{"music", "lessons"}},
	{"gm20451@essex.ac.uk", "Spanish conversation practice", "Native speaker, happy to trade for maths help.", domain.CategorySkill, domain.TypeOffer, []string{"languages"}},
	{"kp19887@essex.ac.uk", "Mini fridge", "Works fine, moving out of halls at the end of term.", domain.CategoryItem, domain.TypeOffer, []string{"dorm", "appliances"}},
	{"kp19887@essex.ac.uk", "Statistics tutoring", "Second year stats modules, exam prep included.", domain.CategorySkill, domain.TypeOffer, []string{"maths", "tutoring"}},
	{"rt21009@essex.ac.uk", "Road bike, medium frame", "Needs new brake pads, otherwise solid commuter.", domain.CategoryItem, domain.TypeOffer, []string{"bike", "transport"}},
	{"rt21009@essex.ac.uk", "Need: haircut before graduation", "Will swap for a portrait photoshoot.", domain.CategoryNeed, domain.TypeRequest, []string{"hair"}},
	{"am20773@essex.ac.uk", "Need: lift to Stansted on the 14th", "Can chip in for petrol or bake you a cake.", domain.CategoryNeed, domain.TypeRequest, []string{"travel"}},
}

// Run creates the demo identities and listings. It returns how many listings
// were created.
func (s *Seeder) Run(ctx context.Context) (int, error) {
	existing, err := s.listings.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, fmt.Errorf("%w: store already has listings", domain.ErrConflict)
	}

	created := 0
	base := time.Now().UTC().Add(-time.Duration(len(samples)) * time.Hour)
	for i, smp := range samples {
		owner, err := s.identities.Resolve(ctx, smp.email)
		if err != nil {
			return created, fmt.Errorf("seed identity %s: %w", smp.email, err)
		}
		l := &domain.Listing{
			ListingID:   id.New(),
			Title:       smp.title,
			Description: smp.description,
			Category:    smp.category,
			Type:        smp.typ,
			Tags:        smp.tags,
			OwnerID:     owner.IdentityID,
			OwnerName:   owner.DisplayName,
			OwnerEmail:  owner.Email,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}
		if err := s.listings.Put(ctx, l); err != nil {
			return created, fmt.Errorf("seed listing %q: %w", smp.title, err)
		}
		created++
	}
	return created, nil
}
