package unit

import (
	"context"
	"errors"
	"testing"

	photoservice "vestiaire/contexts/contest/photo-service"
	photomemory "vestiaire/contexts/contest/photo-service/adapters/memory"
	photoerrors "vestiaire/contexts/contest/photo-service/domain/errors"
	phototransport "vestiaire/contexts/contest/photo-service/transport/http"
	votingengine "vestiaire/contexts/contest/voting-engine"
	votelocal "vestiaire/contexts/contest/voting-engine/adapters/local"
)

// newContestFixture wires the photo service and the voting engine onto one
// in-memory photo store, the same topology the composition root builds.
func newContestFixture() (photoservice.Module, votingengine.Module) {
	photoStore := photomemory.NewStore(nil)
	voting := votingengine.NewInMemoryModule(
		votelocal.PhotoDirectory{Photos: photoStore},
		votelocal.ContestGate{Settings: photoStore},
		nil,
		nil,
	)
	photos := photoservice.NewModule(photoservice.Dependencies{
		Photos:   photoStore,
		Settings: photoStore,
		Votes:    voting.Purger,
		Outbox:   photoStore,
		Clock:    photoStore,
		IDGen:    photoStore,
	})
	photos.Store = photoStore
	return photos, voting
}

func submitApprovedPhoto(t *testing.T, photos photoservice.Module, ownerID, title string) string {
	t.Helper()
	ctx := context.Background()
	created, err := photos.Handler.SubmitPhotoHandler(ctx, seller(ownerID), phototransport.SubmitPhotoRequest{Title: title})
	if err != nil {
		t.Fatalf("submit photo for %s failed: %v", ownerID, err)
	}
	if err := photos.Handler.ModeratePhotoHandler(ctx, moderator("mod-1"), created.Photo.PhotoID, phototransport.ModeratePhotoRequest{
		Decision: "approve",
	}); err != nil {
		t.Fatalf("approve photo for %s failed: %v", ownerID, err)
	}
	return created.Photo.PhotoID
}

func TestPhotoSubmissionOnePerParticipant(t *testing.T) {
	photos, _ := newContestFixture()
	ctx := context.Background()

	first, err := photos.Handler.SubmitPhotoHandler(ctx, seller("student-1"), phototransport.SubmitPhotoRequest{Title: "Autumn"})
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if first.Photo.Status != "pending" {
		t.Fatalf("expected pending photo, got %q", first.Photo.Status)
	}

	_, err = photos.Handler.SubmitPhotoHandler(ctx, seller("student-1"), phototransport.SubmitPhotoRequest{Title: "Winter"})
	if !errors.Is(err, photoerrors.ErrPhotoAlreadySubmitted) {
		t.Fatalf("expected ErrPhotoAlreadySubmitted, got %v", err)
	}

	// Withdrawing the active entry frees the slot.
	if err := photos.Handler.WithdrawPhotoHandler(ctx, seller("student-1"), first.Photo.PhotoID); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if _, err := photos.Handler.SubmitPhotoHandler(ctx, seller("student-1"), phototransport.SubmitPhotoRequest{Title: "Winter"}); err != nil {
		t.Fatalf("resubmit after withdraw failed: %v", err)
	}
}

func TestPhotoRejectionRequiresReason(t *testing.T) {
	photos, _ := newContestFixture()
	ctx := context.Background()

	created, err := photos.Handler.SubmitPhotoHandler(ctx, seller("student-1"), phototransport.SubmitPhotoRequest{Title: "Blurry"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	err = photos.Handler.ModeratePhotoHandler(ctx, moderator("mod-1"), created.Photo.PhotoID, phototransport.ModeratePhotoRequest{
		Decision: "reject",
	})
	if !errors.Is(err, photoerrors.ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}

	if err := photos.Handler.ModeratePhotoHandler(ctx, moderator("mod-1"), created.Photo.PhotoID, phototransport.ModeratePhotoRequest{
		Decision: "reject",
		Reason:   "not related to the theme",
	}); err != nil {
		t.Fatalf("reject with reason failed: %v", err)
	}

	mine, err := photos.Handler.MyPhotoHandler(ctx, seller("student-1"))
	if err != nil {
		t.Fatalf("my photo failed: %v", err)
	}
	if mine.Photo == nil || mine.Photo.Status != "rejected" || mine.Photo.RejectionReason == "" {
		t.Fatalf("expected rejected photo with reason, got %+v", mine.Photo)
	}
}

func TestPhotoModerationRequiresModeratorRole(t *testing.T) {
	photos, _ := newContestFixture()
	ctx := context.Background()

	created, err := photos.Handler.SubmitPhotoHandler(ctx, seller("student-1"), phototransport.SubmitPhotoRequest{Title: "Sunset"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	err = photos.Handler.ModeratePhotoHandler(ctx, seller("student-2"), created.Photo.PhotoID, phototransport.ModeratePhotoRequest{
		Decision: "approve",
	})
	if !errors.Is(err, photoerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGalleryShowsOnlyApprovedPhotos(t *testing.T) {
	photos, _ := newContestFixture()
	ctx := context.Background()

	submitApprovedPhoto(t, photos, "student-1", "Approved shot")
	if _, err := photos.Handler.SubmitPhotoHandler(ctx, seller("student-2"), phototransport.SubmitPhotoRequest{Title: "Still pending"}); err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	gallery, err := photos.Handler.GalleryHandler(ctx)
	if err != nil {
		t.Fatalf("gallery failed: %v", err)
	}
	if len(gallery.Items) != 1 || gallery.Items[0].Title != "Approved shot" {
		t.Fatalf("expected only the approved photo in the gallery, got %+v", gallery.Items)
	}

	// The pending photo stays invisible to other students.
	pendingID := ""
	mine, err := photos.Handler.MyPhotoHandler(ctx, seller("student-2"))
	if err != nil || mine.Photo == nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	pendingID = mine.Photo.PhotoID
	_, err = photos.Handler.GetPhotoHandler(ctx, pendingID, seller("student-3"))
	if !errors.Is(err, photoerrors.ErrPhotoNotFound) {
		t.Fatalf("expected ErrPhotoNotFound for stranger, got %v", err)
	}
}

func TestContestSettingsPatchAndPermissions(t *testing.T) {
	photos, _ := newContestFixture()
	ctx := context.Background()

	votingOpen := false
	_, err := photos.Handler.UpdateSettingsHandler(ctx, seller("student-1"), phototransport.UpdateSettingsRequest{
		VotingOpen: &votingOpen,
	})
	if !errors.Is(err, photoerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for student, got %v", err)
	}

	theme := "second-hand style"
	updated, err := photos.Handler.UpdateSettingsHandler(ctx, moderator("mod-1"), phototransport.UpdateSettingsRequest{
		VotingOpen: &votingOpen,
		Theme:      &theme,
	})
	if err != nil {
		t.Fatalf("settings patch failed: %v", err)
	}
	if updated.Settings.VotingOpen || updated.Settings.Theme != theme {
		t.Fatalf("patch not applied: %+v", updated.Settings)
	}
	// Untouched fields keep their values.
	if !updated.Settings.RankingPublic {
		t.Fatal("expected ranking_public to stay true")
	}
}
