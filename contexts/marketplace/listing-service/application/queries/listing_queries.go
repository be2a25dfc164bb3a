package queries

import (
	"context"
	"strings"

	"vestiaire/contexts/marketplace/listing-service/domain/entities"
	domainerrors "vestiaire/contexts/marketplace/listing-service/domain/errors"
	"vestiaire/contexts/marketplace/listing-service/ports"
	"vestiaire/internal/shared/principal"
)

// ListingQueries is the read side of the marketplace. Everything here is a
// projection over repository state; no query mutates anything.
type ListingQueries struct {
	Listings     ports.ListingRepository
	Reservations ports.ReservationRepository
	Favorites    ports.FavoriteRepository
}

// Browse returns the public feed: approved listings, plus reserved ones
// unless the caller asks for available-only.
func (q ListingQueries) Browse(ctx context.Context, filter entities.ListingFilter) ([]entities.Listing, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	statuses := []entities.ListingStatus{entities.StatusApproved, entities.StatusReserved}
	if filter.AvailableOnly {
		statuses = []entities.ListingStatus{entities.StatusApproved}
	}
	return q.Listings.ListListings(ctx, statuses, filter)
}

// GetListing hides the existence of listings the viewer may not see: a
// pending or rejected listing looks like a 404 to everyone but its seller
// and elevated roles.
func (q ListingQueries) GetListing(ctx context.Context, listingID string, viewer principal.Principal) (entities.Listing, error) {
	listing, err := q.Listings.GetListing(ctx, strings.TrimSpace(listingID))
	if err != nil {
		return entities.Listing{}, err
	}
	if !listing.VisibleTo(viewer.UserID, viewer.Moderator()) {
		return entities.Listing{}, domainerrors.ErrListingNotFound
	}
	return listing, nil
}

func (q ListingQueries) MyListings(ctx context.Context, owner principal.Principal) ([]entities.Listing, error) {
	if owner.Anonymous() {
		return nil, domainerrors.ErrForbidden
	}
	return q.Listings.ListBySeller(ctx, owner.UserID)
}

// MyReservation resolves the caller's active reservation, if any, together
// with the reserved listing.
func (q ListingQueries) MyReservation(ctx context.Context, buyer principal.Principal) (entities.Reservation, entities.Listing, bool, error) {
	if buyer.Anonymous() {
		return entities.Reservation{}, entities.Listing{}, false, domainerrors.ErrForbidden
	}
	reservation, found, err := q.Reservations.GetReservationByBuyer(ctx, buyer.UserID)
	if err != nil || !found {
		return entities.Reservation{}, entities.Listing{}, false, err
	}
	listing, err := q.Listings.GetListing(ctx, reservation.ListingID)
	if err != nil {
		return entities.Reservation{}, entities.Listing{}, false, err
	}
	return reservation, listing, true, nil
}

func (q ListingQueries) ListFavorites(ctx context.Context, user principal.Principal) ([]entities.Listing, error) {
	if user.Anonymous() {
		return nil, domainerrors.ErrForbidden
	}
	return q.Favorites.ListFavoriteListings(ctx, user.UserID)
}

// ListPending feeds the moderation queue projection, oldest first.
func (q ListingQueries) ListPending(ctx context.Context) ([]entities.Listing, error) {
	return q.Listings.ListPending(ctx)
}
