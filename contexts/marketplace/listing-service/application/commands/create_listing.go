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

type CreateListingCommand struct {
	Seller      principal.Principal
	Kind        entities.ListingKind
	Price       *float64
	Title       string
	Description string
	Category    string
	Size        string
	Condition   string
	Brand       string
	ContentRef  string
}

// CreateListingUseCase validates a submission and stores it in pending state,
// where it waits for a moderation decision.
type CreateListingUseCase struct {
	Listings ports.ListingRepository
	Outbox   ports.OutboxWriter
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc CreateListingUseCase) Execute(ctx context.Context, cmd CreateListingCommand) (entities.Listing, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Seller.Anonymous() {
		return entities.Listing{}, domainerrors.ErrForbidden
	}
	if err := validateCreate(cmd); err != nil {
		logger.Warn("listing create validation failed",
			"event", "listing_create_validation_failed",
			"module", "marketplace/listing-service",
			"layer", "application",
			"seller_id", cmd.Seller.UserID,
			"error", err.Error(),
		)
		return entities.Listing{}, err
	}

	listingID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Listing{}, err
	}
	now := uc.Clock.Now().UTC()

	listing := entities.Listing{
		ListingID:   listingID,
		SellerID:    cmd.Seller.UserID,
		Kind:        cmd.Kind,
		Price:       cmd.Price,
		Title:       strings.TrimSpace(cmd.Title),
		Description: strings.TrimSpace(cmd.Description),
		Category:    strings.TrimSpace(cmd.Category),
		Size:        strings.TrimSpace(cmd.Size),
		Condition:   strings.TrimSpace(cmd.Condition),
		Brand:       strings.TrimSpace(cmd.Brand),
		Status:      entities.StatusPending,
		ContentRef:  strings.TrimSpace(cmd.ContentRef),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if listing.Kind == entities.KindDonation {
		listing.Price = nil
	}

	if err := uc.Listings.CreateListing(ctx, listing); err != nil {
		return entities.Listing{}, err
	}

	if err := appendListingEvent(ctx, uc.Outbox, uc.IDGen, now, eventListingSubmitted, listingID, map[string]any{
		"seller_id": listing.SellerID,
		"kind":      string(listing.Kind),
	}); err != nil {
		logger.Error("listing submitted event staging failed",
			"event", "listing_submitted_outbox_failed",
			"module", "marketplace/listing-service",
			"layer", "application",
			"listing_id", listingID,
			"error", err.Error(),
		)
	}

	logger.Info("listing submitted",
		"event", "listing_submitted",
		"module", "marketplace/listing-service",
		"layer", "application",
		"listing_id", listingID,
		"seller_id", listing.SellerID,
		"kind", string(listing.Kind),
	)
	return listing, nil
}

func validateCreate(cmd CreateListingCommand) error {
	if strings.TrimSpace(cmd.Title) == "" {
		return domainerrors.ErrInvalidListingInput
	}
	switch cmd.Kind {
	case entities.KindForSale:
		if cmd.Price == nil || *cmd.Price <= 0 {
			return domainerrors.ErrPriceRequired
		}
	case entities.KindDonation:
		if cmd.Price != nil {
			return domainerrors.ErrPriceNotAllowed
		}
	default:
		return domainerrors.ErrInvalidListingInput
	}
	return nil
}
