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

type DeleteListingCommand struct {
	ListingID string
	Actor     principal.Principal
}

// DeleteListingUseCase purges a listing. Sellers may only delete while
// pending; a reserved listing is protected for the buyer and refuses
// deletion even from its seller. Elevated roles may delete at any state.
type DeleteListingUseCase struct {
	Listings ports.ListingRepository
	Outbox   ports.OutboxWriter
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc DeleteListingUseCase) Execute(ctx context.Context, cmd DeleteListingCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	listing, err := uc.Listings.GetListing(ctx, strings.TrimSpace(cmd.ListingID))
	if err != nil {
		return err
	}

	if !cmd.Actor.Moderator() {
		if listing.SellerID != cmd.Actor.UserID {
			return domainerrors.ErrForbidden
		}
		if listing.Status == entities.StatusReserved {
			return domainerrors.ErrListingReserved
		}
		if listing.Status != entities.StatusPending {
			return domainerrors.ErrInvalidTransition
		}
	}

	if err := uc.Listings.DeleteListing(ctx, listing.ListingID); err != nil {
		return err
	}

	now := uc.Clock.Now().UTC()
	if err := appendListingEvent(ctx, uc.Outbox, uc.IDGen, now, eventListingDeleted, listing.ListingID, map[string]any{
		"actor_id": cmd.Actor.UserID,
	}); err != nil {
		logger.Error("listing deleted event staging failed",
			"event", "listing_deleted_outbox_failed",
			"module", "marketplace/listing-service",
			"layer", "application",
			"listing_id", listing.ListingID,
			"error", err.Error(),
		)
	}

	logger.Info("listing deleted",
		"event", "listing_deleted",
		"module", "marketplace/listing-service",
		"layer", "application",
		"listing_id", listing.ListingID,
		"actor_id", cmd.Actor.UserID,
	)
	return nil
}
