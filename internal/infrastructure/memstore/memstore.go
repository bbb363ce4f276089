// Package memstore implements every repository on plain in-process maps.
// It is the always-available fallback for the verification flow, the
// STORAGE_DRIVER=memory backing for local development, and the test double.
package memstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/clutch-swap/clutch-api/internal/domain"
)

// IdentityStore keeps identities keyed by normalized email.
type IdentityStore struct {
	mu      sync.RWMutex
	byEmail map[string]domain.Identity
}

func NewIdentityStore() *IdentityStore {
	return &IdentityStore{byEmail: make(map[string]domain.Identity)}
}

// Create inserts the identity only if no entry exists for its email,
// mirroring the DynamoDB conditional put.
func (s *IdentityStore) Create(_ context.Context, ident *domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[ident.Email]; ok {
		return fmt.Errorf("identity exists: %w", domain.ErrConflict)
	}
	s.byEmail[ident.Email] = *ident
	return nil
}

func (s *IdentityStore) GetByEmail(_ context.Context, email string) (*domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ident, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("identity not found: %w", domain.ErrNotFound)
	}
	return &ident, nil
}

func (s *IdentityStore) GetByID(_ context.Context, identityID string) (*domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ident := range s.byEmail {
		if ident.IdentityID == identityID {
			i := ident
			return &i, nil
		}
	}
	return nil, fmt.Errorf("identity not found: %w", domain.ErrNotFound)
}

func (s *IdentityStore) Update(_ context.Context, email string, updates map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ident, ok := s.byEmail[email]
	if !ok {
		return fmt.Errorf("identity not found: %w", domain.ErrNotFound)
	}
	for k, v := range updates {
		switch k {
		case "verified":
			if b, ok := v.(bool); ok {
				ident.Verified = b
			}
		case "display_name":
			if n, ok := v.(string); ok {
				ident.DisplayName = n
			}
		case "contact":
			if c, ok := v.(*domain.ContactInfo); ok {
				ident.Contact = c
			}
		}
	}
	ident.UpdatedAt = time.Now().UTC()
	s.byEmail[email] = ident
	return nil
}

// VerificationStore keeps at most one pending code per email.
type VerificationStore struct {
	mu      sync.Mutex
	pending map[string]domain.PendingVerification
}

func NewVerificationStore() *VerificationStore {
	return &VerificationStore{pending: make(map[string]domain.PendingVerification)}
}

func (s *VerificationStore) Put(_ context.Context, v *domain.PendingVerification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[v.Email] = *v
	return nil
}

func (s *VerificationStore) Get(_ context.Context, email string) (*domain.PendingVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.pending[email]
	if !ok {
		return nil, fmt.Errorf("verification not found: %w", domain.ErrNotFound)
	}
	return &v, nil
}

func (s *VerificationStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, email)
	return nil
}

// SessionStore keeps sessions keyed by session id.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.Session)}
}

func (s *SessionStore) Put(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	cp.Identity = nil
	s.sessions[sess.SessionID] = cp
	return nil
}

func (s *SessionStore) Get(_ context.Context, sessionID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session not found: %w", domain.ErrNotFound)
	}
	return &sess, nil
}

func (s *SessionStore) Revoke(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.Revoked = true
		s.sessions[sessionID] = sess
	}
	return nil
}

func (s *SessionStore) RevokeByIdentity(_ context.Context, identityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.IdentityID == identityID {
			sess.Revoked = true
			s.sessions[id] = sess
		}
	}
	return nil
}

// ListingStore keeps listings keyed by listing id.
type ListingStore struct {
	mu       sync.RWMutex
	listings map[string]domain.Listing
}

func NewListingStore() *ListingStore {
	return &ListingStore{listings: make(map[string]domain.Listing)}
}

func (s *ListingStore) Put(_ context.Context, l *domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings[l.ListingID] = *l
	return nil
}

func (s *ListingStore) Get(_ context.Context, listingID string) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.listings[listingID]
	if !ok {
		return nil, fmt.Errorf("listing not found: %w", domain.ErrNotFound)
	}
	return &l, nil
}

func (s *ListingStore) List(_ context.Context) ([]domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Listing, 0, len(s.listings))
	for _, l := range s.listings {
		out = append(out, l)
	}
	// Map iteration order is random; keep output stable for callers.
	sort.Slice(out, func(i, j int) bool { return out[i].ListingID < out[j].ListingID })
	return out, nil
}

func (s *ListingStore) Delete(_ context.Context, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listings, listingID)
	return nil
}

// SavedStore keeps the saved-listing set per identity.
type SavedStore struct {
	mu    sync.RWMutex
	saved map[string]map[string]bool // identity_id -> listing_id set
}

func NewSavedStore() *SavedStore {
	return &SavedStore{saved: make(map[string]map[string]bool)}
}

func (s *SavedStore) Add(_ context.Context, identityID, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.saved[identityID]
	if !ok {
		set = make(map[string]bool)
		s.saved[identityID] = set
	}
	set[listingID] = true
	return nil
}

func (s *SavedStore) Remove(_ context.Context, identityID, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if set, ok := s.saved[identityID]; ok {
		delete(set, listingID)
	}
	return nil
}

func (s *SavedStore) Has(_ context.Context, identityID, listingID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saved[identityID][listingID], nil
}

func (s *SavedStore) ListIDs(_ context.Context, identityID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.saved[identityID]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// ExchangeStore keeps exchanges keyed by exchange id.
type ExchangeStore struct {
	mu        sync.RWMutex
	exchanges map[string]domain.Exchange
}

func NewExchangeStore() *ExchangeStore {
	return &ExchangeStore{exchanges: make(map[string]domain.Exchange)}
}

func (s *ExchangeStore) Put(_ context.Context, e *domain.Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *e
	cp.FromContact, cp.ToContact = nil, nil
	s.exchanges[e.ExchangeID] = cp
	return nil
}

func (s *ExchangeStore) Get(_ context.Context, exchangeID string) (*domain.Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.exchanges[exchangeID]
	if !ok {
		return nil, fmt.Errorf("exchange not found: %w", domain.ErrNotFound)
	}
	return &e, nil
}

func (s *ExchangeStore) SetStatus(_ context.Context, exchangeID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.exchanges[exchangeID]
	if !ok {
		return fmt.Errorf("exchange not found: %w", domain.ErrNotFound)
	}
	e.Status = status
	e.UpdatedAt = time.Now().UTC()
	s.exchanges[exchangeID] = e
	return nil
}

func (s *ExchangeStore) ListByFrom(_ context.Context, identityID string) ([]domain.Exchange, error) {
	return s.list(func(e domain.Exchange) bool { return e.FromID == identityID })
}

func (s *ExchangeStore) ListByTo(_ context.Context, identityID string) ([]domain.Exchange, error) {
	return s.list(func(e domain.Exchange) bool { return e.ToID == identityID })
}

func (s *ExchangeStore) list(match func(domain.Exchange) bool) ([]domain.Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Exchange
	for _, e := range s.exchanges {
		if match(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExchangeID < out[j].ExchangeID })
	return out, nil
}

// PhotoStore keeps photo metadata keyed by photo id.
type PhotoStore struct {
	mu     sync.RWMutex
	photos map[string]domain.Photo
}

func NewPhotoStore() *PhotoStore {
	return &PhotoStore{photos: make(map[string]domain.Photo)}
}

func (s *PhotoStore) Put(_ context.Context, p *domain.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos[p.PhotoID] = *p
	return nil
}

func (s *PhotoStore) Get(_ context.Context, photoID string) (*domain.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.photos[photoID]
	if !ok {
		return nil, fmt.Errorf("photo not found: %w", domain.ErrNotFound)
	}
	return &p, nil
}

func (s *PhotoStore) ListByListing(_ context.Context, listingID string) ([]domain.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Photo
	for _, p := range s.photos {
		if p.ListingID == listingID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PhotoID < out[j].PhotoID })
	return out, nil
}

func (s *PhotoStore) Delete(_ context.Context, photoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.photos, photoID)
	return nil
}

// ObjectStore keeps raw photo bytes in memory, standing in for S3 when the
// memory driver is selected.
type ObjectStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewObjectStore() *ObjectStore {
	return &ObjectStore{objects: make(map[string][]byte)}
}

func (s *ObjectStore) Upload(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return "mem://" + key, nil
}

func (s *ObjectStore) Download(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("object not found: %w", domain.ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *ObjectStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}
