package unit

import (
	"context"
	"errors"
	"testing"

	photoservice "vestiaire/contexts/contest/photo-service"
	phototransport "vestiaire/contexts/contest/photo-service/transport/http"
	votingengine "vestiaire/contexts/contest/voting-engine"
	listingservice "vestiaire/contexts/marketplace/listing-service"
	listingpostgres "vestiaire/contexts/marketplace/listing-service/adapters/postgres"
	listingtransport "vestiaire/contexts/marketplace/listing-service/transport/http"
	moderationservice "vestiaire/contexts/moderation-safety/moderation-service"
	moderationlocal "vestiaire/contexts/moderation-safety/moderation-service/adapters/local"
	moderationerrors "vestiaire/contexts/moderation-safety/moderation-service/domain/errors"
	moderationtransport "vestiaire/contexts/moderation-safety/moderation-service/transport/http"
)

func newModerationFixture() (listingservice.Module, photoservice.Module, votingengine.Module, moderationservice.Module) {
	listings := listingservice.NewInMemoryModule(nil, nil, nil)
	photos, voting := newContestFixture()
	moderation := moderationservice.NewModule(moderationservice.Dependencies{
		Listings:      moderationlocal.ListingBridge{Moderate: listings.Handler.ModerateListing, Queries: listings.Handler.Queries},
		Photos:        moderationlocal.PhotoBridge{Moderate: photos.Handler.ModeratePhoto, Queries: photos.Handler.Queries},
		ListingClient: moderationlocal.ListingBridge{Moderate: listings.Handler.ModerateListing, Queries: listings.Handler.Queries},
		PhotoClient:   moderationlocal.PhotoBridge{Moderate: photos.Handler.ModeratePhoto, Queries: photos.Handler.Queries},
		Clock:         listingpostgres.SystemClock{},
	})
	return listings, photos, voting, moderation
}

func TestModerationQueueMergesBothKindsOldestFirst(t *testing.T) {
	listings, photos, _, moderation := newModerationFixture()
	ctx := context.Background()

	// Interleave submissions across contexts; the queue must follow
	// submission time, not resource kind.
	l1, err := listings.Handler.CreateListingHandler(ctx, seller("seller-1"), listingtransport.CreateListingRequest{
		Kind:  "donation",
		Title: "Old jacket",
	})
	if err != nil {
		t.Fatalf("listing submit failed: %v", err)
	}
	p1, err := photos.Handler.SubmitPhotoHandler(ctx, seller("student-1"), phototransport.SubmitPhotoRequest{Title: "Snapshot"})
	if err != nil {
		t.Fatalf("photo submit failed: %v", err)
	}
	l2, err := listings.Handler.CreateListingHandler(ctx, seller("seller-2"), listingtransport.CreateListingRequest{
		Kind:  "donation",
		Title: "New boots",
	})
	if err != nil {
		t.Fatalf("second listing submit failed: %v", err)
	}

	queue, err := moderation.Handler.QueueHandler(ctx, moderator("mod-1"))
	if err != nil {
		t.Fatalf("queue failed: %v", err)
	}
	if len(queue.Items) != 3 {
		t.Fatalf("expected three queued items, got %d", len(queue.Items))
	}
	wantOrder := []string{l1.Listing.ListingID, p1.Photo.PhotoID, l2.Listing.ListingID}
	for i, want := range wantOrder {
		if queue.Items[i].ResourceID != want {
			t.Fatalf("queue position %d: expected %s, got %s", i, want, queue.Items[i].ResourceID)
		}
	}
	if queue.Items[0].ResourceType != "listing" || queue.Items[1].ResourceType != "photo" {
		t.Fatalf("unexpected resource types: %+v", queue.Items)
	}
}

func TestModerationQueueRequiresModerator(t *testing.T) {
	_, _, _, moderation := newModerationFixture()

	_, err := moderation.Handler.QueueHandler(context.Background(), seller("student-1"))
	if !errors.Is(err, moderationerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestModerationDecisionsDispatchToOwningContext(t *testing.T) {
	listings, photos, _, moderation := newModerationFixture()
	ctx := context.Background()

	created, err := listings.Handler.CreateListingHandler(ctx, seller("seller-1"), listingtransport.CreateListingRequest{
		Kind:  "donation",
		Title: "Sweater",
	})
	if err != nil {
		t.Fatalf("listing submit failed: %v", err)
	}
	submitted, err := photos.Handler.SubmitPhotoHandler(ctx, seller("student-1"), phototransport.SubmitPhotoRequest{Title: "Portrait"})
	if err != nil {
		t.Fatalf("photo submit failed: %v", err)
	}

	if err := moderation.Handler.DecideHandler(ctx, moderator("mod-1"), moderationtransport.DecideRequest{
		ResourceType: "listing",
		ResourceID:   created.Listing.ListingID,
		Decision:     "approve",
	}); err != nil {
		t.Fatalf("listing approval failed: %v", err)
	}
	if err := moderation.Handler.DecideHandler(ctx, moderator("mod-1"), moderationtransport.DecideRequest{
		ResourceType: "photo",
		ResourceID:   submitted.Photo.PhotoID,
		Decision:     "reject",
		Reason:       "off topic",
	}); err != nil {
		t.Fatalf("photo rejection failed: %v", err)
	}

	// Both decisions landed in the owning contexts.
	listing, err := listings.Handler.GetListingHandler(ctx, created.Listing.ListingID, seller("seller-1"))
	if err != nil {
		t.Fatalf("get listing failed: %v", err)
	}
	if listing.Listing.Status != "approved" {
		t.Fatalf("expected approved listing, got %q", listing.Listing.Status)
	}
	photo, err := photos.Handler.MyPhotoHandler(ctx, seller("student-1"))
	if err != nil || photo.Photo == nil {
		t.Fatalf("my photo failed: %v", err)
	}
	if photo.Photo.Status != "rejected" || photo.Photo.RejectionReason != "off topic" {
		t.Fatalf("expected rejected photo with reason, got %+v", photo.Photo)
	}

	// Decided items leave the queue.
	queue, err := moderation.Handler.QueueHandler(ctx, moderator("mod-1"))
	if err != nil {
		t.Fatalf("queue failed: %v", err)
	}
	if len(queue.Items) != 0 {
		t.Fatalf("expected empty queue after decisions, got %d items", len(queue.Items))
	}
}

func TestModerationRejectsUnknownResourceType(t *testing.T) {
	_, _, _, moderation := newModerationFixture()

	err := moderation.Handler.DecideHandler(context.Background(), moderator("mod-1"), moderationtransport.DecideRequest{
		ResourceType: "comment",
		ResourceID:   "some-id",
		Decision:     "approve",
	})
	if !errors.Is(err, moderationerrors.ErrUnknownResource) {
		t.Fatalf("expected ErrUnknownResource, got %v", err)
	}
}
