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

type ModerateListingCommand struct {
	ListingID string
	Approve   bool
	Reason    string
	Actor     principal.Principal
}

// ModerateListingUseCase applies the pending -> approved/rejected decision.
// Rejection stores its reason atomically with the transition so a rejected
// listing can never exist without an explanation.
type ModerateListingUseCase struct {
	Listings ports.ListingRepository
	Outbox   ports.OutboxWriter
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc ModerateListingUseCase) Execute(ctx context.Context, cmd ModerateListingCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if !cmd.Actor.Moderator() {
		return domainerrors.ErrForbidden
	}
	reason := strings.TrimSpace(cmd.Reason)
	if !cmd.Approve && reason == "" {
		return domainerrors.ErrReasonRequired
	}

	listing, err := uc.Listings.GetListing(ctx, strings.TrimSpace(cmd.ListingID))
	if err != nil {
		return err
	}

	target := entities.StatusApproved
	eventType := eventListingApproved
	if !cmd.Approve {
		target = entities.StatusRejected
		eventType = eventListingRejected
	}
	if !entities.CanTransition(listing.Status, target) {
		return domainerrors.ErrInvalidTransition
	}

	listing.Status = target
	listing.UpdatedAt = uc.Clock.Now().UTC()
	if cmd.Approve {
		listing.RejectionReason = ""
	} else {
		listing.RejectionReason = reason
	}

	if err := uc.Listings.UpdateListing(ctx, listing); err != nil {
		return err
	}

	if err := appendListingEvent(ctx, uc.Outbox, uc.IDGen, listing.UpdatedAt, eventType, listing.ListingID, map[string]any{
		"moderator_id": cmd.Actor.UserID,
		"reason":       listing.RejectionReason,
	}); err != nil {
		logger.Error("listing moderation event staging failed",
			"event", "listing_moderation_outbox_failed",
			"module", "marketplace/listing-service",
			"layer", "application",
			"listing_id", listing.ListingID,
			"error", err.Error(),
		)
	}

	logger.Info("listing moderated",
		"event", "listing_moderated",
		"module", "marketplace/listing-service",
		"layer", "application",
		"listing_id", listing.ListingID,
		"moderator_id", cmd.Actor.UserID,
		"decision", string(target),
	)
	return nil
}
