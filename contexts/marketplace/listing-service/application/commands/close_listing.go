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

type CloseListingCommand struct {
	ListingID string
	Actor     principal.Principal
}

// CloseListingUseCase marks a completed transaction. The seller or an
// elevated role may close from approved or reserved; closing an already
// closed listing is a no-op.
type CloseListingUseCase struct {
	Listings ports.ListingRepository
	Outbox   ports.OutboxWriter
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc CloseListingUseCase) Execute(ctx context.Context, cmd CloseListingCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	listing, err := uc.Listings.GetListing(ctx, strings.TrimSpace(cmd.ListingID))
	if err != nil {
		return err
	}
	if listing.SellerID != cmd.Actor.UserID && !cmd.Actor.Moderator() {
		return domainerrors.ErrForbidden
	}
	if listing.Status == entities.StatusClosed {
		return nil
	}
	if !entities.CanTransition(listing.Status, entities.StatusClosed) {
		return domainerrors.ErrInvalidTransition
	}

	listing.Status = entities.StatusClosed
	listing.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Listings.UpdateListing(ctx, listing); err != nil {
		return err
	}

	if err := appendListingEvent(ctx, uc.Outbox, uc.IDGen, listing.UpdatedAt, eventListingClosed, listing.ListingID, map[string]any{
		"actor_id": cmd.Actor.UserID,
	}); err != nil {
		logger.Error("listing closed event staging failed",
			"event", "listing_closed_outbox_failed",
			"module", "marketplace/listing-service",
			"layer", "application",
			"listing_id", listing.ListingID,
			"error", err.Error(),
		)
	}

	logger.Info("listing closed",
		"event", "listing_closed",
		"module", "marketplace/listing-service",
		"layer", "application",
		"listing_id", listing.ListingID,
		"actor_id", cmd.Actor.UserID,
	)
	return nil
}
