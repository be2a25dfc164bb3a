package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"vestiaire/contexts/contest/photo-service/domain/entities"
	domainerrors "vestiaire/contexts/contest/photo-service/domain/errors"
)

func TestCreatePhotoEnforcesOneActiveEntryPerOwner(t *testing.T) {
	store := NewStore(nil)
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	first := entities.ContestPhoto{
		PhotoID:   "photo-1",
		OwnerID:   "student-1",
		Title:     "First",
		Status:    entities.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.CreatePhoto(context.Background(), first); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second := first
	second.PhotoID = "photo-2"
	second.Title = "Second"
	err := store.CreatePhoto(context.Background(), second)
	if !errors.Is(err, domainerrors.ErrPhotoAlreadySubmitted) {
		t.Fatalf("expected ErrPhotoAlreadySubmitted, got %v", err)
	}

	// A withdrawn entry no longer occupies the owner's slot.
	first.Status = entities.StatusWithdrawn
	if err := store.UpdatePhoto(context.Background(), first); err != nil {
		t.Fatalf("withdraw update failed: %v", err)
	}
	if err := store.CreatePhoto(context.Background(), second); err != nil {
		t.Fatalf("create after withdraw failed: %v", err)
	}
}

func TestListByStatusOrdersBySubmissionTime(t *testing.T) {
	store := NewStore(nil)
	base := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	for i, spec := range []struct {
		id string
		at time.Time
	}{
		{"photo-b", base.Add(2 * time.Minute)},
		{"photo-a", base},
		{"photo-c", base.Add(time.Minute)},
	} {
		photo := entities.ContestPhoto{
			PhotoID:   spec.id,
			OwnerID:   "owner-" + spec.id,
			Title:     "Photo",
			Status:    entities.StatusPending,
			CreatedAt: spec.at,
			UpdatedAt: spec.at,
		}
		if err := store.CreatePhoto(context.Background(), photo); err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	items, err := store.ListPending(context.Background())
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	want := []string{"photo-a", "photo-c", "photo-b"}
	for i, id := range want {
		if items[i].PhotoID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, items[i].PhotoID)
		}
	}
}
