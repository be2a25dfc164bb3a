package unit

import (
	"context"
	"errors"
	"testing"

	photoerrors "vestiaire/contexts/contest/photo-service/domain/errors"
	phototransport "vestiaire/contexts/contest/photo-service/transport/http"
	voteerrors "vestiaire/contexts/contest/voting-engine/domain/errors"
	votetransport "vestiaire/contexts/contest/voting-engine/transport/http"
	"vestiaire/internal/shared/principal"
)

func TestVoteMoveSemantics(t *testing.T) {
	photos, voting := newContestFixture()
	ctx := context.Background()

	photoA := submitApprovedPhoto(t, photos, "owner-a", "Photo A")
	photoB := submitApprovedPhoto(t, photos, "owner-b", "Photo B")

	first, err := voting.Handler.CastVoteHandler(ctx, seller("voter-1"), votetransport.CastVoteRequest{PhotoID: photoA})
	if err != nil {
		t.Fatalf("first cast failed: %v", err)
	}
	if first.Moved {
		t.Fatal("first cast must not report a move")
	}

	moved, err := voting.Handler.CastVoteHandler(ctx, seller("voter-1"), votetransport.CastVoteRequest{PhotoID: photoB})
	if err != nil {
		t.Fatalf("move cast failed: %v", err)
	}
	if !moved.Moved || moved.PreviousPhoto != photoA {
		t.Fatalf("expected move from %s, got moved=%v previous=%q", photoA, moved.Moved, moved.PreviousPhoto)
	}
	if moved.Vote.VoteID != first.Vote.VoteID {
		t.Fatalf("a move must keep the vote identity, got %s then %s", first.Vote.VoteID, moved.Vote.VoteID)
	}

	// Re-casting for the held photo is an idempotent no-op.
	again, err := voting.Handler.CastVoteHandler(ctx, seller("voter-1"), votetransport.CastVoteRequest{PhotoID: photoB})
	if err != nil {
		t.Fatalf("idempotent recast failed: %v", err)
	}
	if again.Moved || again.Vote.PhotoID != photoB {
		t.Fatalf("expected idempotent recast, got %+v", again)
	}

	// Throughout, the voter holds exactly one vote and the tallies sum to one.
	ranking, err := voting.Handler.RankingHandler(ctx, moderator("mod-1"))
	if err != nil {
		t.Fatalf("ranking failed: %v", err)
	}
	total := 0
	for _, entry := range ranking.Items {
		total += entry.Tally
		if entry.PhotoID == photoA && entry.Tally != 0 {
			t.Fatalf("expected photo A to lose its vote, tally=%d", entry.Tally)
		}
		if entry.PhotoID == photoB && entry.Tally != 1 {
			t.Fatalf("expected photo B to hold the vote, tally=%d", entry.Tally)
		}
	}
	if total != 1 {
		t.Fatalf("expected one vote in total, got %d", total)
	}
}

func TestSelfVoteRejected(t *testing.T) {
	photos, voting := newContestFixture()
	ctx := context.Background()

	photoID := submitApprovedPhoto(t, photos, "owner-a", "Own photo")
	_, err := voting.Handler.CastVoteHandler(ctx, seller("owner-a"), votetransport.CastVoteRequest{PhotoID: photoID})
	if !errors.Is(err, voteerrors.ErrSelfVote) {
		t.Fatalf("expected ErrSelfVote, got %v", err)
	}
}

func TestVoteRequiresApprovedPhoto(t *testing.T) {
	photos, voting := newContestFixture()
	ctx := context.Background()

	created, err := photos.Handler.SubmitPhotoHandler(ctx, seller("owner-a"), phototransport.SubmitPhotoRequest{Title: "Pending"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, err = voting.Handler.CastVoteHandler(ctx, seller("voter-1"), votetransport.CastVoteRequest{PhotoID: created.Photo.PhotoID})
	if !errors.Is(err, voteerrors.ErrPhotoNotEligible) {
		t.Fatalf("expected ErrPhotoNotEligible for pending photo, got %v", err)
	}
	_, err = voting.Handler.CastVoteHandler(ctx, seller("voter-1"), votetransport.CastVoteRequest{PhotoID: "missing"})
	if !errors.Is(err, voteerrors.ErrPhotoNotEligible) {
		t.Fatalf("expected ErrPhotoNotEligible for unknown photo, got %v", err)
	}
}

func TestVotingClosedGateBlocksCastAndRetract(t *testing.T) {
	photos, voting := newContestFixture()
	ctx := context.Background()

	photoID := submitApprovedPhoto(t, photos, "owner-a", "Photo")
	if _, err := voting.Handler.CastVoteHandler(ctx, seller("voter-1"), votetransport.CastVoteRequest{PhotoID: photoID}); err != nil {
		t.Fatalf("cast while open failed: %v", err)
	}

	closed := false
	if _, err := photos.Handler.UpdateSettingsHandler(ctx, moderator("mod-1"), phototransport.UpdateSettingsRequest{
		VotingOpen: &closed,
	}); err != nil {
		t.Fatalf("close voting failed: %v", err)
	}

	_, err := voting.Handler.CastVoteHandler(ctx, seller("voter-2"), votetransport.CastVoteRequest{PhotoID: photoID})
	if !errors.Is(err, voteerrors.ErrVotingClosed) {
		t.Fatalf("expected ErrVotingClosed on cast, got %v", err)
	}
	err = voting.Handler.RetractVoteHandler(ctx, seller("voter-1"))
	if !errors.Is(err, voteerrors.ErrVotingClosed) {
		t.Fatalf("expected ErrVotingClosed on retract, got %v", err)
	}
}

func TestRankingOrderAndTieBreak(t *testing.T) {
	photos, voting := newContestFixture()
	ctx := context.Background()

	// Submission order fixes the tie-break: earlier entries win ties.
	photoA := submitApprovedPhoto(t, photos, "owner-a", "First")
	photoB := submitApprovedPhoto(t, photos, "owner-b", "Second")
	photoC := submitApprovedPhoto(t, photos, "owner-c", "Third")

	cast := func(voter, photoID string) {
		t.Helper()
		if _, err := voting.Handler.CastVoteHandler(ctx, seller(voter), votetransport.CastVoteRequest{PhotoID: photoID}); err != nil {
			t.Fatalf("cast by %s failed: %v", voter, err)
		}
	}
	cast("voter-1", photoB)
	cast("voter-2", photoB)
	cast("voter-3", photoA)
	cast("voter-4", photoC)

	ranking, err := voting.Handler.RankingHandler(ctx, moderator("mod-1"))
	if err != nil {
		t.Fatalf("ranking failed: %v", err)
	}
	if len(ranking.Items) != 3 {
		t.Fatalf("expected three ranked photos, got %d", len(ranking.Items))
	}
	if ranking.Items[0].PhotoID != photoB || ranking.Items[0].Tally != 2 {
		t.Fatalf("expected photo B on top with tally 2, got %+v", ranking.Items[0])
	}
	// A and C are tied on one vote; A was submitted earlier so it ranks above.
	if ranking.Items[1].PhotoID != photoA || ranking.Items[2].PhotoID != photoC {
		t.Fatalf("tie-break violated: %+v", ranking.Items)
	}
	for i, entry := range ranking.Items {
		if entry.Rank != i+1 {
			t.Fatalf("expected dense rank %d, got %d", i+1, entry.Rank)
		}
	}
}

func TestRankingMatchesFullRecomputeAfterEveryMutation(t *testing.T) {
	photos, voting := newContestFixture()
	ctx := context.Background()

	photoA := submitApprovedPhoto(t, photos, "owner-a", "Photo A")
	photoB := submitApprovedPhoto(t, photos, "owner-b", "Photo B")

	// After every mutation the served ranking must equal a rebuild from the
	// vote rows alone, so the projection never drifts from its ledger.
	assertConsistent := func(step string, want map[string]int) {
		t.Helper()
		served, err := voting.Handler.RankingHandler(ctx, moderator("mod-1"))
		if err != nil {
			t.Fatalf("%s: ranking failed: %v", step, err)
		}
		rebuilt, err := voting.Handler.Queries.Recompute(ctx)
		if err != nil {
			t.Fatalf("%s: recompute failed: %v", step, err)
		}
		if len(served.Items) != len(rebuilt) {
			t.Fatalf("%s: served %d entries, rebuild has %d", step, len(served.Items), len(rebuilt))
		}
		for i, entry := range served.Items {
			if entry.PhotoID != rebuilt[i].PhotoID || entry.Tally != rebuilt[i].Tally {
				t.Fatalf("%s: position %d diverged: served %s/%d, rebuilt %s/%d",
					step, i, entry.PhotoID, entry.Tally, rebuilt[i].PhotoID, rebuilt[i].Tally)
			}
			if entry.Tally != want[entry.PhotoID] {
				t.Fatalf("%s: expected tally %d for %s, got %d", step, want[entry.PhotoID], entry.PhotoID, entry.Tally)
			}
		}
	}

	steps := []struct {
		name string
		run  func() error
		want map[string]int
	}{
		{
			name: "first cast",
			run: func() error {
				_, err := voting.Handler.CastVoteHandler(ctx, seller("voter-1"), votetransport.CastVoteRequest{PhotoID: photoA})
				return err
			},
			want: map[string]int{photoA: 1, photoB: 0},
		},
		{
			name: "second voter joins",
			run: func() error {
				_, err := voting.Handler.CastVoteHandler(ctx, seller("voter-2"), votetransport.CastVoteRequest{PhotoID: photoA})
				return err
			},
			want: map[string]int{photoA: 2, photoB: 0},
		},
		{
			name: "vote moves",
			run: func() error {
				_, err := voting.Handler.CastVoteHandler(ctx, seller("voter-1"), votetransport.CastVoteRequest{PhotoID: photoB})
				return err
			},
			want: map[string]int{photoA: 1, photoB: 1},
		},
		{
			name: "vote retracted",
			run: func() error {
				return voting.Handler.RetractVoteHandler(ctx, seller("voter-2"))
			},
			want: map[string]int{photoA: 0, photoB: 1},
		},
	}
	assertConsistent("before any vote", map[string]int{photoA: 0, photoB: 0})
	for _, step := range steps {
		if err := step.run(); err != nil {
			t.Fatalf("%s failed: %v", step.name, err)
		}
		assertConsistent(step.name, step.want)
	}
}

func TestRankingVisibilityGate(t *testing.T) {
	photos, voting := newContestFixture()
	ctx := context.Background()

	submitApprovedPhoto(t, photos, "owner-a", "Photo")
	hidden := false
	if _, err := photos.Handler.UpdateSettingsHandler(ctx, moderator("mod-1"), phototransport.UpdateSettingsRequest{
		RankingPublic: &hidden,
	}); err != nil {
		t.Fatalf("hide ranking failed: %v", err)
	}

	_, err := voting.Handler.RankingHandler(ctx, seller("student-1"))
	if !errors.Is(err, voteerrors.ErrRankingHidden) {
		t.Fatalf("expected ErrRankingHidden for student, got %v", err)
	}
	if _, err := voting.Handler.RankingHandler(ctx, moderator("mod-1")); err != nil {
		t.Fatalf("moderator must still see the ranking, got %v", err)
	}
}

func TestRetractVote(t *testing.T) {
	photos, voting := newContestFixture()
	ctx := context.Background()

	photoID := submitApprovedPhoto(t, photos, "owner-a", "Photo")
	if _, err := voting.Handler.CastVoteHandler(ctx, seller("voter-1"), votetransport.CastVoteRequest{PhotoID: photoID}); err != nil {
		t.Fatalf("cast failed: %v", err)
	}
	if err := voting.Handler.RetractVoteHandler(ctx, seller("voter-1")); err != nil {
		t.Fatalf("retract failed: %v", err)
	}
	mine, err := voting.Handler.MyVoteHandler(ctx, seller("voter-1"))
	if err != nil {
		t.Fatalf("my vote failed: %v", err)
	}
	if mine.Vote != nil {
		t.Fatalf("expected no vote after retraction, got %+v", mine.Vote)
	}
	err = voting.Handler.RetractVoteHandler(ctx, seller("voter-1"))
	if !errors.Is(err, voteerrors.ErrVoteNotFound) {
		t.Fatalf("expected ErrVoteNotFound on second retract, got %v", err)
	}
}

func TestRejectionPurgesVotesForPhoto(t *testing.T) {
	photos, voting := newContestFixture()
	ctx := context.Background()

	photoA := submitApprovedPhoto(t, photos, "owner-a", "Photo A")
	photoB := submitApprovedPhoto(t, photos, "owner-b", "Photo B")
	if _, err := voting.Handler.CastVoteHandler(ctx, seller("voter-1"), votetransport.CastVoteRequest{PhotoID: photoA}); err != nil {
		t.Fatalf("cast on A failed: %v", err)
	}
	if _, err := voting.Handler.CastVoteHandler(ctx, seller("voter-2"), votetransport.CastVoteRequest{PhotoID: photoB}); err != nil {
		t.Fatalf("cast on B failed: %v", err)
	}

	if err := photos.Handler.ModeratePhotoHandler(ctx, moderator("mod-1"), photoA, phototransport.ModeratePhotoRequest{
		Decision: "reject",
		Reason:   "inappropriate content",
	}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	// The vote on the rejected photo is gone; the other vote is untouched.
	mine, err := voting.Handler.MyVoteHandler(ctx, seller("voter-1"))
	if err != nil {
		t.Fatalf("my vote failed: %v", err)
	}
	if mine.Vote != nil {
		t.Fatalf("expected purged vote for voter-1, got %+v", mine.Vote)
	}
	other, err := voting.Handler.MyVoteHandler(ctx, seller("voter-2"))
	if err != nil || other.Vote == nil {
		t.Fatalf("expected surviving vote for voter-2, got %+v err=%v", other.Vote, err)
	}

	ranking, err := voting.Handler.RankingHandler(ctx, moderator("mod-1"))
	if err != nil {
		t.Fatalf("ranking failed: %v", err)
	}
	for _, entry := range ranking.Items {
		if entry.PhotoID == photoA {
			t.Fatal("rejected photo must leave the ranking")
		}
	}
}

func TestContestResetCascades(t *testing.T) {
	photos, voting := newContestFixture()
	ctx := context.Background()

	photoID := submitApprovedPhoto(t, photos, "owner-a", "Photo")
	if _, err := voting.Handler.CastVoteHandler(ctx, seller("voter-1"), votetransport.CastVoteRequest{PhotoID: photoID}); err != nil {
		t.Fatalf("cast failed: %v", err)
	}

	// Reset is admin-only; a moderator is not enough.
	if err := photos.Handler.ResetContestHandler(ctx, moderator("mod-1")); !errors.Is(err, photoerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for moderator reset, got %v", err)
	}

	admin := principal.Principal{UserID: "admin-1", Role: principal.RoleAdmin}
	if err := photos.Handler.ResetContestHandler(ctx, admin); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	gallery, err := photos.Handler.GalleryHandler(ctx)
	if err != nil {
		t.Fatalf("gallery failed: %v", err)
	}
	if len(gallery.Items) != 0 {
		t.Fatalf("expected empty gallery after reset, got %d items", len(gallery.Items))
	}
	mine, err := voting.Handler.MyVoteHandler(ctx, seller("voter-1"))
	if err != nil {
		t.Fatalf("my vote failed: %v", err)
	}
	if mine.Vote != nil {
		t.Fatalf("expected votes purged by reset, got %+v", mine.Vote)
	}

	// A fresh contest epoch: the same participant may submit again.
	if _, err := photos.Handler.SubmitPhotoHandler(ctx, seller("owner-a"), phototransport.SubmitPhotoRequest{Title: "New epoch"}); err != nil {
		t.Fatalf("resubmit after reset failed: %v", err)
	}
}
