package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"vestiaire/contexts/marketplace/listing-service/application/commands"
	"vestiaire/contexts/marketplace/listing-service/application/queries"
	"vestiaire/contexts/marketplace/listing-service/domain/entities"
	httptransport "vestiaire/contexts/marketplace/listing-service/transport/http"
	"vestiaire/internal/shared/principal"
)

type Handler struct {
	CreateListing   commands.CreateListingUseCase
	ModerateListing commands.ModerateListingUseCase
	ReserveListing  commands.ReserveListingUseCase
	CloseListing    commands.CloseListingUseCase
	DeleteListing   commands.DeleteListingUseCase
	FavoriteListing commands.FavoriteListingUseCase
	Queries         queries.ListingQueries
	Logger          *slog.Logger
}

func (h Handler) CreateListingHandler(
	ctx context.Context,
	seller principal.Principal,
	req httptransport.CreateListingRequest,
) (httptransport.CreateListingResponse, error) {
	item, err := h.CreateListing.Execute(ctx, commands.CreateListingCommand{
		Seller:      seller,
		Kind:        entities.ListingKind(req.Kind),
		Price:       req.Price,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Size:        req.Size,
		Condition:   req.Condition,
		Brand:       req.Brand,
		ContentRef:  req.ContentRef,
	})
	if err != nil {
		return httptransport.CreateListingResponse{}, err
	}
	return httptransport.CreateListingResponse{Listing: mapListing(item)}, nil
}

func (h Handler) BrowseListingsHandler(ctx context.Context, filter entities.ListingFilter) (httptransport.ListListingsResponse, error) {
	items, err := h.Queries.Browse(ctx, filter)
	if err != nil {
		return httptransport.ListListingsResponse{}, err
	}
	return httptransport.ListListingsResponse{Items: mapListings(items)}, nil
}

func (h Handler) GetListingHandler(ctx context.Context, listingID string, viewer principal.Principal) (httptransport.GetListingResponse, error) {
	item, err := h.Queries.GetListing(ctx, listingID, viewer)
	if err != nil {
		return httptransport.GetListingResponse{}, err
	}
	return httptransport.GetListingResponse{Listing: mapListing(item)}, nil
}

func (h Handler) MyListingsHandler(ctx context.Context, owner principal.Principal) (httptransport.ListListingsResponse, error) {
	items, err := h.Queries.MyListings(ctx, owner)
	if err != nil {
		return httptransport.ListListingsResponse{}, err
	}
	return httptransport.ListListingsResponse{Items: mapListings(items)}, nil
}

func (h Handler) ModerateListingHandler(
	ctx context.Context,
	actor principal.Principal,
	listingID string,
	req httptransport.ModerateListingRequest,
) error {
	return h.ModerateListing.Execute(ctx, commands.ModerateListingCommand{
		ListingID: listingID,
		Approve:   req.Decision == "approve",
		Reason:    req.Reason,
		Actor:     actor,
	})
}

func (h Handler) ReserveListingHandler(ctx context.Context, buyer principal.Principal, listingID string) (httptransport.ReserveListingResponse, error) {
	reservation, err := h.ReserveListing.Reserve(ctx, commands.ReserveListingCommand{
		ListingID: listingID,
		Buyer:     buyer,
	})
	if err != nil {
		return httptransport.ReserveListingResponse{}, err
	}
	return httptransport.ReserveListingResponse{Reservation: mapReservation(reservation)}, nil
}

func (h Handler) ReleaseListingHandler(ctx context.Context, actor principal.Principal, listingID string) error {
	return h.ReserveListing.Release(ctx, commands.ReleaseListingCommand{
		ListingID: listingID,
		Actor:     actor,
	})
}

func (h Handler) MyReservationHandler(ctx context.Context, buyer principal.Principal) (httptransport.MyReservationResponse, error) {
	reservation, listing, found, err := h.Queries.MyReservation(ctx, buyer)
	if err != nil {
		return httptransport.MyReservationResponse{}, err
	}
	if !found {
		return httptransport.MyReservationResponse{}, nil
	}
	reservationDTO := mapReservation(reservation)
	listingDTO := mapListing(listing)
	return httptransport.MyReservationResponse{
		Reservation: &reservationDTO,
		Listing:     &listingDTO,
	}, nil
}

func (h Handler) CloseListingHandler(ctx context.Context, actor principal.Principal, listingID string) error {
	return h.CloseListing.Execute(ctx, commands.CloseListingCommand{
		ListingID: listingID,
		Actor:     actor,
	})
}

func (h Handler) DeleteListingHandler(ctx context.Context, actor principal.Principal, listingID string) error {
	return h.DeleteListing.Execute(ctx, commands.DeleteListingCommand{
		ListingID: listingID,
		Actor:     actor,
	})
}

func (h Handler) AddFavoriteHandler(ctx context.Context, user principal.Principal, listingID string) error {
	return h.FavoriteListing.Add(ctx, commands.FavoriteListingCommand{
		ListingID: listingID,
		User:      user,
	})
}

func (h Handler) RemoveFavoriteHandler(ctx context.Context, user principal.Principal, listingID string) error {
	return h.FavoriteListing.Remove(ctx, commands.FavoriteListingCommand{
		ListingID: listingID,
		User:      user,
	})
}

func (h Handler) ListFavoritesHandler(ctx context.Context, user principal.Principal) (httptransport.ListListingsResponse, error) {
	items, err := h.Queries.ListFavorites(ctx, user)
	if err != nil {
		return httptransport.ListListingsResponse{}, err
	}
	return httptransport.ListListingsResponse{Items: mapListings(items)}, nil
}

func (h Handler) ListPendingHandler(ctx context.Context) (httptransport.ListListingsResponse, error) {
	items, err := h.Queries.ListPending(ctx)
	if err != nil {
		return httptransport.ListListingsResponse{}, err
	}
	return httptransport.ListListingsResponse{Items: mapListings(items)}, nil
}

func mapListing(item entities.Listing) httptransport.ListingDTO {
	return httptransport.ListingDTO{
		ListingID:       item.ListingID,
		SellerID:        item.SellerID,
		Kind:            string(item.Kind),
		Price:           item.Price,
		Title:           item.Title,
		Description:     item.Description,
		Category:        item.Category,
		Size:            item.Size,
		Condition:       item.Condition,
		Brand:           item.Brand,
		Status:          string(item.Status),
		RejectionReason: item.RejectionReason,
		ContentRef:      item.ContentRef,
		CreatedAt:       item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       item.UpdatedAt.Format(time.RFC3339),
	}
}

func mapListings(items []entities.Listing) []httptransport.ListingDTO {
	result := make([]httptransport.ListingDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapListing(item))
	}
	return result
}

func mapReservation(item entities.Reservation) httptransport.ReservationDTO {
	return httptransport.ReservationDTO{
		ReservationID: item.ReservationID,
		ListingID:     item.ListingID,
		BuyerID:       item.BuyerID,
		CreatedAt:     item.CreatedAt.Format(time.RFC3339),
	}
}
