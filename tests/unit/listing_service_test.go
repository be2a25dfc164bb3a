package unit

import (
	"context"
	"errors"
	"sync"
	"testing"

	listingservice "vestiaire/contexts/marketplace/listing-service"
	"vestiaire/contexts/marketplace/listing-service/domain/entities"
	listingerrors "vestiaire/contexts/marketplace/listing-service/domain/errors"
	httptransport "vestiaire/contexts/marketplace/listing-service/transport/http"
	"vestiaire/internal/shared/principal"
)

func seller(id string) principal.Principal {
	return principal.Principal{UserID: id, Role: principal.RoleStudent}
}

func moderator(id string) principal.Principal {
	return principal.Principal{UserID: id, Role: principal.RoleModerator}
}

func priceOf(v float64) *float64 { return &v }

func TestListingLifecycleThroughReservationAndClose(t *testing.T) {
	module := listingservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateListingHandler(ctx, seller("seller-1"), httptransport.CreateListingRequest{
		Kind:  "for_sale",
		Price: priceOf(12.50),
		Title: "Blue hoodie",
		Size:  "M",
	})
	if err != nil {
		t.Fatalf("create listing failed: %v", err)
	}
	if created.Listing.Status != "pending" {
		t.Fatalf("expected pending status, got %q", created.Listing.Status)
	}

	// Pending listings never appear in the public feed.
	feed, err := module.Handler.BrowseListingsHandler(ctx, entities.ListingFilter{})
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if len(feed.Items) != 0 {
		t.Fatalf("expected empty feed before approval, got %d items", len(feed.Items))
	}

	if err := module.Handler.ModerateListingHandler(ctx, moderator("mod-1"), created.Listing.ListingID, httptransport.ModerateListingRequest{
		Decision: "approve",
	}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	reserved, err := module.Handler.ReserveListingHandler(ctx, seller("buyer-1"), created.Listing.ListingID)
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if reserved.Reservation.BuyerID != "buyer-1" {
		t.Fatalf("expected buyer-1 reservation, got %q", reserved.Reservation.BuyerID)
	}

	mine, err := module.Handler.MyReservationHandler(ctx, seller("buyer-1"))
	if err != nil {
		t.Fatalf("my reservation failed: %v", err)
	}
	if mine.Reservation == nil || mine.Listing == nil {
		t.Fatal("expected reservation with joined listing")
	}
	if mine.Listing.Status != "reserved" {
		t.Fatalf("expected reserved listing status, got %q", mine.Listing.Status)
	}

	if err := module.Handler.ReleaseListingHandler(ctx, seller("buyer-1"), created.Listing.ListingID); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	after, err := module.Handler.GetListingHandler(ctx, created.Listing.ListingID, seller("buyer-1"))
	if err != nil {
		t.Fatalf("get after release failed: %v", err)
	}
	if after.Listing.Status != "approved" {
		t.Fatalf("expected listing back to approved, got %q", after.Listing.Status)
	}

	if err := module.Handler.CloseListingHandler(ctx, seller("seller-1"), created.Listing.ListingID); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestBrowseClampsNegativeOffset(t *testing.T) {
	module := listingservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateListingHandler(ctx, seller("seller-1"), httptransport.CreateListingRequest{
		Kind:  "donation",
		Title: "Raincoat",
	})
	if err != nil {
		t.Fatalf("create listing failed: %v", err)
	}
	if err := module.Handler.ModerateListingHandler(ctx, moderator("mod-1"), created.Listing.ListingID, httptransport.ModerateListingRequest{
		Decision: "approve",
	}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	// A negative offset behaves like the first page instead of crashing.
	feed, err := module.Handler.BrowseListingsHandler(ctx, entities.ListingFilter{Offset: -1})
	if err != nil {
		t.Fatalf("browse with negative offset failed: %v", err)
	}
	if len(feed.Items) != 1 {
		t.Fatalf("expected the approved listing in the feed, got %d items", len(feed.Items))
	}
}

func TestListingPriceRulesFollowKind(t *testing.T) {
	module := listingservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	_, err := module.Handler.CreateListingHandler(ctx, seller("seller-1"), httptransport.CreateListingRequest{
		Kind:  "for_sale",
		Title: "No price jacket",
	})
	if !errors.Is(err, listingerrors.ErrPriceRequired) {
		t.Fatalf("expected ErrPriceRequired, got %v", err)
	}

	_, err = module.Handler.CreateListingHandler(ctx, seller("seller-1"), httptransport.CreateListingRequest{
		Kind:  "donation",
		Price: priceOf(5),
		Title: "Free scarf",
	})
	if !errors.Is(err, listingerrors.ErrPriceNotAllowed) {
		t.Fatalf("expected ErrPriceNotAllowed, got %v", err)
	}

	if _, err := module.Handler.CreateListingHandler(ctx, seller("seller-1"), httptransport.CreateListingRequest{
		Kind:  "donation",
		Title: "Free scarf",
	}); err != nil {
		t.Fatalf("donation without price should succeed, got %v", err)
	}
}

func TestListingRejectionRequiresReason(t *testing.T) {
	module := listingservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateListingHandler(ctx, seller("seller-1"), httptransport.CreateListingRequest{
		Kind:  "donation",
		Title: "Worn sneakers",
	})
	if err != nil {
		t.Fatalf("create listing failed: %v", err)
	}

	err = module.Handler.ModerateListingHandler(ctx, moderator("mod-1"), created.Listing.ListingID, httptransport.ModerateListingRequest{
		Decision: "reject",
	})
	if !errors.Is(err, listingerrors.ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}

	if err := module.Handler.ModerateListingHandler(ctx, moderator("mod-1"), created.Listing.ListingID, httptransport.ModerateListingRequest{
		Decision: "reject",
		Reason:   "photo does not show the item",
	}); err != nil {
		t.Fatalf("reject with reason failed: %v", err)
	}

	// The seller sees the rejection and its reason; other students see nothing.
	got, err := module.Handler.GetListingHandler(ctx, created.Listing.ListingID, seller("seller-1"))
	if err != nil {
		t.Fatalf("seller get failed: %v", err)
	}
	if got.Listing.Status != "rejected" || got.Listing.RejectionReason == "" {
		t.Fatalf("expected rejected listing with reason, got %+v", got.Listing)
	}
	_, err = module.Handler.GetListingHandler(ctx, created.Listing.ListingID, seller("stranger-1"))
	if !errors.Is(err, listingerrors.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound for stranger, got %v", err)
	}
}

func TestListingModerationRequiresModeratorRole(t *testing.T) {
	module := listingservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateListingHandler(ctx, seller("seller-1"), httptransport.CreateListingRequest{
		Kind:  "donation",
		Title: "Cap",
	})
	if err != nil {
		t.Fatalf("create listing failed: %v", err)
	}

	err = module.Handler.ModerateListingHandler(ctx, seller("seller-2"), created.Listing.ListingID, httptransport.ModerateListingRequest{
		Decision: "approve",
	})
	if !errors.Is(err, listingerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestConcurrentReservationHasSingleWinner(t *testing.T) {
	module := listingservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateListingHandler(ctx, seller("seller-1"), httptransport.CreateListingRequest{
		Kind:  "for_sale",
		Price: priceOf(20),
		Title: "Winter coat",
	})
	if err != nil {
		t.Fatalf("create listing failed: %v", err)
	}
	if err := module.Handler.ModerateListingHandler(ctx, moderator("mod-1"), created.Listing.ListingID, httptransport.ModerateListingRequest{
		Decision: "approve",
	}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	const buyers = 16
	var wg sync.WaitGroup
	results := make(chan error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			buyer := principal.Principal{UserID: "buyer-" + string(rune('a'+n)), Role: principal.RoleStudent}
			_, err := module.Handler.ReserveListingHandler(ctx, buyer, created.Listing.ListingID)
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	won, lost := 0, 0
	for err := range results {
		switch {
		case err == nil:
			won++
		case errors.Is(err, listingerrors.ErrAlreadyReserved):
			lost++
		default:
			t.Fatalf("unexpected reservation error: %v", err)
		}
	}
	if won != 1 || lost != buyers-1 {
		t.Fatalf("expected exactly one winner, got %d winners and %d conflicts", won, lost)
	}
}

func TestSellerCannotReserveOwnListing(t *testing.T) {
	module := listingservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateListingHandler(ctx, seller("seller-1"), httptransport.CreateListingRequest{
		Kind:  "donation",
		Title: "Gloves",
	})
	if err != nil {
		t.Fatalf("create listing failed: %v", err)
	}
	if err := module.Handler.ModerateListingHandler(ctx, moderator("mod-1"), created.Listing.ListingID, httptransport.ModerateListingRequest{
		Decision: "approve",
	}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	_, err = module.Handler.ReserveListingHandler(ctx, seller("seller-1"), created.Listing.ListingID)
	if !errors.Is(err, listingerrors.ErrSelfReservation) {
		t.Fatalf("expected ErrSelfReservation, got %v", err)
	}
}

func TestReservedListingCannotBeDeleted(t *testing.T) {
	module := listingservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateListingHandler(ctx, seller("seller-1"), httptransport.CreateListingRequest{
		Kind:  "donation",
		Title: "Backpack",
	})
	if err != nil {
		t.Fatalf("create listing failed: %v", err)
	}
	if err := module.Handler.ModerateListingHandler(ctx, moderator("mod-1"), created.Listing.ListingID, httptransport.ModerateListingRequest{
		Decision: "approve",
	}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := module.Handler.ReserveListingHandler(ctx, seller("buyer-1"), created.Listing.ListingID); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}

	err = module.Handler.DeleteListingHandler(ctx, seller("seller-1"), created.Listing.ListingID)
	if !errors.Is(err, listingerrors.ErrListingReserved) {
		t.Fatalf("expected ErrListingReserved, got %v", err)
	}
}

func TestClosedListingKeepsReservationAsSaleRecord(t *testing.T) {
	module := listingservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateListingHandler(ctx, seller("seller-1"), httptransport.CreateListingRequest{
		Kind:  "for_sale",
		Price: priceOf(15),
		Title: "Denim jacket",
	})
	if err != nil {
		t.Fatalf("create listing failed: %v", err)
	}
	if err := module.Handler.ModerateListingHandler(ctx, moderator("mod-1"), created.Listing.ListingID, httptransport.ModerateListingRequest{
		Decision: "approve",
	}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := module.Handler.ReserveListingHandler(ctx, seller("buyer-1"), created.Listing.ListingID); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if err := module.Handler.CloseListingHandler(ctx, seller("seller-1"), created.Listing.ListingID); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	// The sale is done; releasing the slot now would erase the record.
	err = module.Handler.ReleaseListingHandler(ctx, seller("buyer-1"), created.Listing.ListingID)
	if !errors.Is(err, listingerrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on release after close, got %v", err)
	}

	mine, err := module.Handler.MyReservationHandler(ctx, seller("buyer-1"))
	if err != nil {
		t.Fatalf("my reservation failed: %v", err)
	}
	if mine.Reservation == nil || mine.Listing == nil {
		t.Fatal("expected the reservation row to survive the close")
	}
	if mine.Listing.Status != "closed" {
		t.Fatalf("expected closed listing, got %q", mine.Listing.Status)
	}
}

func TestFavoritesAreIdempotent(t *testing.T) {
	module := listingservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateListingHandler(ctx, seller("seller-1"), httptransport.CreateListingRequest{
		Kind:  "donation",
		Title: "Scarf",
	})
	if err != nil {
		t.Fatalf("create listing failed: %v", err)
	}
	if err := module.Handler.ModerateListingHandler(ctx, moderator("mod-1"), created.Listing.ListingID, httptransport.ModerateListingRequest{
		Decision: "approve",
	}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := module.Handler.AddFavoriteHandler(ctx, seller("buyer-1"), created.Listing.ListingID); err != nil {
			t.Fatalf("favorite attempt %d failed: %v", i+1, err)
		}
	}
	favorites, err := module.Handler.ListFavoritesHandler(ctx, seller("buyer-1"))
	if err != nil {
		t.Fatalf("list favorites failed: %v", err)
	}
	if len(favorites.Items) != 1 {
		t.Fatalf("expected one favorite after duplicate add, got %d", len(favorites.Items))
	}
}
