package commands

import (
	"context"
	"log/slog"
	"strings"

	application "vestiaire/contexts/marketplace/listing-service/application"
	"vestiaire/contexts/marketplace/listing-service/domain/entities"
	domainerrors "vestiaire/contexts/marketplace/listing-service/domain/errors"
	"vestiaire/contexts/marketplace/listing-service/ports"
	"vestiaire/internal/shared/principal"
)

type ReserveListingCommand struct {
	ListingID string
	Buyer     principal.Principal
}

type ReleaseListingCommand struct {
	ListingID string
	Actor     principal.Principal
}

// ReserveListingUseCase acquires and releases the single reservation slot of
// a listing. The store performs the approved -> reserved flip and the claim
// insert as one transaction; when two buyers race, exactly one commits and
// the other surfaces ErrAlreadyReserved.
type ReserveListingUseCase struct {
	Listings     ports.ListingRepository
	Reservations ports.ReservationRepository
	Outbox       ports.OutboxWriter
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

func (uc ReserveListingUseCase) Reserve(ctx context.Context, cmd ReserveListingCommand) (entities.Reservation, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Buyer.Anonymous() {
		return entities.Reservation{}, domainerrors.ErrForbidden
	}
	listingID := strings.TrimSpace(cmd.ListingID)

	listing, err := uc.Listings.GetListing(ctx, listingID)
	if err != nil {
		return entities.Reservation{}, err
	}
	if listing.SellerID == cmd.Buyer.UserID {
		return entities.Reservation{}, domainerrors.ErrSelfReservation
	}

	reservationID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Reservation{}, err
	}
	now := uc.Clock.Now().UTC()
	reservation := entities.Reservation{
		ReservationID: reservationID,
		ListingID:     listingID,
		BuyerID:       cmd.Buyer.UserID,
		CreatedAt:     now,
	}

	// The precondition re-check happens inside the store transaction; the
	// read above only serves the self-reservation rule and fast failures.
	if err := uc.Reservations.AcquireReservation(ctx, reservation); err != nil {
		logger.Info("reservation acquire refused",
			"event", "listing_reserve_refused",
			"module", "marketplace/listing-service",
			"layer", "application",
			"listing_id", listingID,
			"buyer_id", cmd.Buyer.UserID,
			"error", err.Error(),
		)
		return entities.Reservation{}, err
	}

	if err := appendListingEvent(ctx, uc.Outbox, uc.IDGen, now, eventListingReserved, listingID, map[string]any{
		"buyer_id": cmd.Buyer.UserID,
	}); err != nil {
		logger.Error("listing reserved event staging failed",
			"event", "listing_reserved_outbox_failed",
			"module", "marketplace/listing-service",
			"layer", "application",
			"listing_id", listingID,
			"error", err.Error(),
		)
	}

	logger.Info("listing reserved",
		"event", "listing_reserved",
		"module", "marketplace/listing-service",
		"layer", "application",
		"listing_id", listingID,
		"buyer_id", cmd.Buyer.UserID,
	)
	return reservation, nil
}

// Release returns a reserved listing to the approved state and frees the
// slot for any claimant, including the buyer who just released it.
func (uc ReserveListingUseCase) Release(ctx context.Context, cmd ReleaseListingCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	listingID := strings.TrimSpace(cmd.ListingID)

	reservation, found, err := uc.Reservations.GetReservationByListing(ctx, listingID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrReservationNotFound
	}
	if reservation.BuyerID != cmd.Actor.UserID && !cmd.Actor.Moderator() {
		return domainerrors.ErrForbidden
	}

	// A closed listing keeps its reservation row as the sale record, so the
	// slot can only be released while the listing is still reserved.
	listing, err := uc.Listings.GetListing(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.Status != entities.StatusReserved {
		return domainerrors.ErrInvalidTransition
	}

	if err := uc.Reservations.ReleaseReservation(ctx, listingID); err != nil {
		return err
	}

	now := uc.Clock.Now().UTC()
	if err := appendListingEvent(ctx, uc.Outbox, uc.IDGen, now, eventListingReleased, listingID, map[string]any{
		"buyer_id": reservation.BuyerID,
		"actor_id": cmd.Actor.UserID,
	}); err != nil {
		logger.Error("listing released event staging failed",
			"event", "listing_released_outbox_failed",
			"module", "marketplace/listing-service",
			"layer", "application",
			"listing_id", listingID,
			"error", err.Error(),
		)
	}

	logger.Info("listing released",
		"event", "listing_released",
		"module", "marketplace/listing-service",
		"layer", "application",
		"listing_id", listingID,
		"actor_id", cmd.Actor.UserID,
	)
	return nil
}
