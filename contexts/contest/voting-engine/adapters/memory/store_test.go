package memory

import (
	"context"
	"testing"
	"time"

	"vestiaire/contexts/contest/voting-engine/domain/entities"
)

func TestUpsertVoteReplacesByVoter(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	vote := entities.Vote{VoteID: "vote-1", VoterID: "voter-1", PhotoID: "photo-a", CreatedAt: now, UpdatedAt: now}
	if err := store.UpsertVote(context.Background(), vote); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	vote.PhotoID = "photo-b"
	vote.UpdatedAt = now.Add(time.Minute)
	if err := store.UpsertVote(context.Background(), vote); err != nil {
		t.Fatalf("move upsert failed: %v", err)
	}

	counts, err := store.CountVotesByPhoto(context.Background())
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if counts["photo-a"] != 0 || counts["photo-b"] != 1 {
		t.Fatalf("expected the vote to move entirely, got %v", counts)
	}
}

func TestDeleteVotesForPhotoLeavesOthersIntact(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	for _, v := range []entities.Vote{
		{VoteID: "vote-1", VoterID: "voter-1", PhotoID: "photo-a", CreatedAt: now, UpdatedAt: now},
		{VoteID: "vote-2", VoterID: "voter-2", PhotoID: "photo-a", CreatedAt: now, UpdatedAt: now},
		{VoteID: "vote-3", VoterID: "voter-3", PhotoID: "photo-b", CreatedAt: now, UpdatedAt: now},
	} {
		if err := store.UpsertVote(context.Background(), v); err != nil {
			t.Fatalf("upsert %s failed: %v", v.VoteID, err)
		}
	}

	if err := store.DeleteVotesForPhoto(context.Background(), "photo-a"); err != nil {
		t.Fatalf("delete for photo failed: %v", err)
	}
	counts, err := store.CountVotesByPhoto(context.Background())
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if counts["photo-a"] != 0 || counts["photo-b"] != 1 {
		t.Fatalf("expected only photo-b votes to survive, got %v", counts)
	}

	_, found, err := store.GetVoteByVoter(context.Background(), "voter-3")
	if err != nil || !found {
		t.Fatalf("expected voter-3 vote to survive, found=%v err=%v", found, err)
	}
}

func TestRankingCacheInvalidation(t *testing.T) {
	store := NewStore()

	if _, ok, _ := store.GetRanking(context.Background()); ok {
		t.Fatal("expected cache miss on fresh store")
	}
	scores := []entities.PhotoScore{{PhotoID: "photo-a", Tally: 2}}
	if err := store.SetRanking(context.Background(), scores); err != nil {
		t.Fatalf("set ranking failed: %v", err)
	}
	cached, ok, err := store.GetRanking(context.Background())
	if err != nil || !ok || len(cached) != 1 {
		t.Fatalf("expected cached ranking, got ok=%v err=%v", ok, err)
	}
	if err := store.InvalidateRanking(context.Background()); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if _, ok, _ := store.GetRanking(context.Background()); ok {
		t.Fatal("expected cache miss after invalidation")
	}
}
