package memory

import (
	"context"
	"testing"
	"time"

	"vestiaire/contexts/marketplace/listing-service/domain/entities"
)

func seedListings(now time.Time) []entities.Listing {
	return []entities.Listing{
		{ListingID: "listing-a", SellerID: "seller-1", Kind: entities.KindDonation, Title: "Jacket", Status: entities.StatusApproved, CreatedAt: now, UpdatedAt: now},
		{ListingID: "listing-b", SellerID: "seller-2", Kind: entities.KindDonation, Title: "Boots", Status: entities.StatusApproved, CreatedAt: now.Add(time.Minute), UpdatedAt: now.Add(time.Minute)},
		{ListingID: "listing-c", SellerID: "seller-3", Kind: entities.KindDonation, Title: "Scarf", Status: entities.StatusApproved, CreatedAt: now.Add(2 * time.Minute), UpdatedAt: now.Add(2 * time.Minute)},
	}
}

func TestListListingsToleratesNegativeOffset(t *testing.T) {
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	store := NewStore(seedListings(now))

	items, err := store.ListListings(context.Background(),
		[]entities.ListingStatus{entities.StatusApproved},
		entities.ListingFilter{Offset: -1},
	)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected all listings for a negative offset, got %d", len(items))
	}
}

func TestListListingsWindowsResults(t *testing.T) {
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	store := NewStore(seedListings(now))

	items, err := store.ListListings(context.Background(),
		[]entities.ListingStatus{entities.StatusApproved},
		entities.ListingFilter{Offset: 1, Limit: 1},
	)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected a single-item page, got %d", len(items))
	}

	items, err = store.ListListings(context.Background(),
		[]entities.ListingStatus{entities.StatusApproved},
		entities.ListingFilter{Offset: 10},
	)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty page past the end, got %d", len(items))
	}
}
