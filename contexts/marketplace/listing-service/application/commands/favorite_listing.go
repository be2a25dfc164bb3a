package commands

import (
	"context"
	"log/slog"
	"strings"

	"vestiaire/contexts/marketplace/listing-service/domain/entities"
	domainerrors "vestiaire/contexts/marketplace/listing-service/domain/errors"
	"vestiaire/contexts/marketplace/listing-service/ports"
	"vestiaire/internal/shared/principal"
)

type FavoriteListingCommand struct {
	ListingID string
	User      principal.Principal
}

// FavoriteListingUseCase bookmarks listings. Both directions are idempotent;
// favoriting never affects listing lifecycle or reservations.
type FavoriteListingUseCase struct {
	Listings  ports.ListingRepository
	Favorites ports.FavoriteRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc FavoriteListingUseCase) Add(ctx context.Context, cmd FavoriteListingCommand) error {
	if cmd.User.Anonymous() {
		return domainerrors.ErrForbidden
	}
	listingID := strings.TrimSpace(cmd.ListingID)
	listing, err := uc.Listings.GetListing(ctx, listingID)
	if err != nil {
		return err
	}
	if !listing.VisibleTo(cmd.User.UserID, cmd.User.Moderator()) {
		return domainerrors.ErrListingNotFound
	}

	favoriteID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	return uc.Favorites.AddFavorite(ctx, entities.Favorite{
		FavoriteID: favoriteID,
		UserID:     cmd.User.UserID,
		ListingID:  listingID,
		CreatedAt:  uc.Clock.Now().UTC(),
	})
}

func (uc FavoriteListingUseCase) Remove(ctx context.Context, cmd FavoriteListingCommand) error {
	if cmd.User.Anonymous() {
		return domainerrors.ErrForbidden
	}
	return uc.Favorites.RemoveFavorite(ctx, cmd.User.UserID, strings.TrimSpace(cmd.ListingID))
}
