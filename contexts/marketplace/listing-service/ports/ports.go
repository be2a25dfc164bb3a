package ports

import (
	"context"
	"time"

	"vestiaire/contexts/marketplace/listing-service/domain/entities"
	"vestiaire/internal/shared/events"
	"vestiaire/internal/shared/outbox"
)

type ListingRepository interface {
	CreateListing(ctx context.Context, listing entities.Listing) error
	GetListing(ctx context.Context, listingID string) (entities.Listing, error)
	UpdateListing(ctx context.Context, listing entities.Listing) error
	DeleteListing(ctx context.Context, listingID string) error
	ListListings(ctx context.Context, statuses []entities.ListingStatus, filter entities.ListingFilter) ([]entities.Listing, error)
	ListBySeller(ctx context.Context, sellerID string) ([]entities.Listing, error)
	ListPending(ctx context.Context) ([]entities.Listing, error)
}

// ReservationRepository owns the single-slot claim. Acquire and Release are
// atomic at the store: the status CAS and the claim row change commit in one
// transaction, and a uniqueness constraint on listing_id arbitrates races.
type ReservationRepository interface {
	AcquireReservation(ctx context.Context, reservation entities.Reservation) error
	ReleaseReservation(ctx context.Context, listingID string) error
	GetReservationByListing(ctx context.Context, listingID string) (entities.Reservation, bool, error)
	GetReservationByBuyer(ctx context.Context, buyerID string) (entities.Reservation, bool, error)
}

type FavoriteRepository interface {
	AddFavorite(ctx context.Context, favorite entities.Favorite) error
	RemoveFavorite(ctx context.Context, userID, listingID string) error
	ListFavoriteListings(ctx context.Context, userID string) ([]entities.Listing, error)
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, message outbox.Message) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
