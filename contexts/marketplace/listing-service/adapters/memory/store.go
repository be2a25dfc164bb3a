package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vestiaire/contexts/marketplace/listing-service/domain/entities"
	domainerrors "vestiaire/contexts/marketplace/listing-service/domain/errors"
	"vestiaire/internal/shared/outbox"
)

// Store is the in-memory adapter used by tests and local runs. A single
// mutex gives it the same observable atomicity the postgres adapter gets
// from transactions and unique indexes.
type Store struct {
	mu sync.Mutex

	listings     map[string]entities.Listing
	reservations map[string]entities.Reservation // keyed by listing id
	favorites    map[string]entities.Favorite    // keyed by user id + listing id
	outbox       []outbox.Message
	published    map[string]bool
}

func NewStore(seed []entities.Listing) *Store {
	listings := make(map[string]entities.Listing, len(seed))
	for _, listing := range seed {
		listings[listing.ListingID] = listing
	}
	return &Store{
		listings:     listings,
		reservations: make(map[string]entities.Reservation),
		favorites:    make(map[string]entities.Favorite),
		published:    make(map[string]bool),
	}
}

func (s *Store) CreateListing(_ context.Context, listing entities.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings[listing.ListingID] = listing
	return nil
}

func (s *Store) GetListing(_ context.Context, listingID string) (entities.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing, ok := s.listings[strings.TrimSpace(listingID)]
	if !ok {
		return entities.Listing{}, domainerrors.ErrListingNotFound
	}
	return listing, nil
}

func (s *Store) UpdateListing(_ context.Context, listing entities.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.listings[listing.ListingID]; !ok {
		return domainerrors.ErrListingNotFound
	}
	s.listings[listing.ListingID] = listing
	return nil
}

func (s *Store) DeleteListing(_ context.Context, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.listings[listingID]; !ok {
		return domainerrors.ErrListingNotFound
	}
	delete(s.listings, listingID)
	delete(s.reservations, listingID)
	return nil
}

func (s *Store) ListListings(_ context.Context, statuses []entities.ListingStatus, filter entities.ListingFilter) ([]entities.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allowed := make(map[entities.ListingStatus]bool, len(statuses))
	for _, status := range statuses {
		allowed[status] = true
	}

	var items []entities.Listing
	for _, listing := range s.listings {
		if !allowed[listing.Status] {
			continue
		}
		if matchesFilter(listing, filter) {
			items = append(items, listing)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ListingID < items[j].ListingID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return window(items, filter.Offset, filter.Limit), nil
}

func (s *Store) ListBySeller(_ context.Context, sellerID string) ([]entities.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []entities.Listing
	for _, listing := range s.listings {
		if listing.SellerID == strings.TrimSpace(sellerID) {
			items = append(items, listing)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListPending(_ context.Context) ([]entities.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []entities.Listing
	for _, listing := range s.listings {
		if listing.Status == entities.StatusPending {
			items = append(items, listing)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ListingID < items[j].ListingID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

// AcquireReservation performs the status CAS and the claim insert under one
// lock so racing buyers observe the same all-or-nothing outcome the
// transactional adapter provides.
func (s *Store) AcquireReservation(_ context.Context, reservation entities.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, ok := s.listings[reservation.ListingID]
	if !ok {
		return domainerrors.ErrListingNotFound
	}
	if listing.Status == entities.StatusReserved {
		return domainerrors.ErrAlreadyReserved
	}
	if listing.Status != entities.StatusApproved {
		return domainerrors.ErrInvalidTransition
	}
	if _, taken := s.reservations[reservation.ListingID]; taken {
		return domainerrors.ErrAlreadyReserved
	}

	s.reservations[reservation.ListingID] = reservation
	listing.Status = entities.StatusReserved
	listing.UpdatedAt = reservation.CreatedAt
	s.listings[listing.ListingID] = listing
	return nil
}

func (s *Store) ReleaseReservation(_ context.Context, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reservations[listingID]; !ok {
		return domainerrors.ErrReservationNotFound
	}
	delete(s.reservations, listingID)

	listing, ok := s.listings[listingID]
	if ok && listing.Status == entities.StatusReserved {
		listing.Status = entities.StatusApproved
		s.listings[listingID] = listing
	}
	return nil
}

func (s *Store) GetReservationByListing(_ context.Context, listingID string) (entities.Reservation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reservation, ok := s.reservations[strings.TrimSpace(listingID)]
	return reservation, ok, nil
}

func (s *Store) GetReservationByBuyer(_ context.Context, buyerID string) (entities.Reservation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for listingID, reservation := range s.reservations {
		if reservation.BuyerID != strings.TrimSpace(buyerID) {
			continue
		}
		if listing, ok := s.listings[listingID]; ok && listing.Status == entities.StatusReserved {
			return reservation, true, nil
		}
	}
	return entities.Reservation{}, false, nil
}

func (s *Store) AddFavorite(_ context.Context, favorite entities.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := favorite.UserID + "|" + favorite.ListingID
	if _, ok := s.favorites[key]; ok {
		return nil
	}
	s.favorites[key] = favorite
	return nil
}

func (s *Store) RemoveFavorite(_ context.Context, userID, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.favorites, userID+"|"+listingID)
	return nil
}

func (s *Store) ListFavoriteListings(_ context.Context, userID string) ([]entities.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []entities.Listing
	for _, favorite := range s.favorites {
		if favorite.UserID != userID {
			continue
		}
		if listing, ok := s.listings[favorite.ListingID]; ok {
			items = append(items, listing)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) AppendOutbox(_ context.Context, message outbox.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbox = append(s.outbox, message)
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]outbox.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []outbox.Message
	for _, message := range s.outbox {
		if s.published[message.ID] {
			continue
		}
		items = append(items, message)
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published[outboxID] = true
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(context.Context) (string, error) {
	return uuid.NewString(), nil
}

func matchesFilter(listing entities.Listing, filter entities.ListingFilter) bool {
	if filter.DonationsOnly && listing.Kind != entities.KindDonation {
		return false
	}
	if filter.Category != "" && !strings.EqualFold(listing.Category, filter.Category) {
		return false
	}
	if filter.Size != "" && !strings.EqualFold(listing.Size, filter.Size) {
		return false
	}
	if filter.Condition != "" && !strings.EqualFold(listing.Condition, filter.Condition) {
		return false
	}
	if filter.MinPrice != nil && (listing.Price == nil || *listing.Price < *filter.MinPrice) {
		return false
	}
	if filter.MaxPrice != nil && listing.Price != nil && *listing.Price > *filter.MaxPrice {
		return false
	}
	if query := strings.TrimSpace(strings.ToLower(filter.Query)); query != "" {
		haystack := strings.ToLower(listing.Title + " " + listing.Brand + " " + listing.Category)
		if !strings.Contains(haystack, query) {
			return false
		}
	}
	return true
}

func window(items []entities.Listing, offset, limit int) []entities.Listing {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
