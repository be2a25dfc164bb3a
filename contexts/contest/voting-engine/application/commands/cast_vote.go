package commands

import (
	"context"
	"log/slog"
	"strings"

	application "vestiaire/contexts/contest/voting-engine/application"
	"vestiaire/contexts/contest/voting-engine/domain/entities"
	domainerrors "vestiaire/contexts/contest/voting-engine/domain/errors"
	"vestiaire/contexts/contest/voting-engine/ports"
	"vestiaire/internal/shared/principal"
)

type CastVoteCommand struct {
	PhotoID string
	Voter   principal.Principal
}

// CastVoteResult reports whether the cast moved an existing vote and which
// photo previously held it.
type CastVoteResult struct {
	Vote          entities.Vote
	Moved         bool
	PreviousPhoto string
}

// CastVoteUseCase grants or moves a voter's single claim. The upsert keyed
// by voter id is the atomic move: the old association disappears and the new
// one appears in one store operation, so concurrent tally reads never see a
// voter with zero or two votes.
type CastVoteUseCase struct {
	Votes     ports.VoteRepository
	Directory ports.PhotoDirectory
	Gate      ports.ContestGate
	Cache     ports.RankingCache
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc CastVoteUseCase) Execute(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Voter.Anonymous() {
		return CastVoteResult{}, domainerrors.ErrForbidden
	}
	photoID := strings.TrimSpace(cmd.PhotoID)

	open, err := uc.Gate.VotingOpen(ctx)
	if err != nil {
		return CastVoteResult{}, err
	}
	if !open {
		return CastVoteResult{}, domainerrors.ErrVotingClosed
	}

	photo, eligible, err := uc.Directory.GetEligiblePhoto(ctx, photoID)
	if err != nil {
		return CastVoteResult{}, err
	}
	if !eligible {
		return CastVoteResult{}, domainerrors.ErrPhotoNotEligible
	}
	if photo.OwnerID == cmd.Voter.UserID {
		return CastVoteResult{}, domainerrors.ErrSelfVote
	}

	existing, found, err := uc.Votes.GetVoteByVoter(ctx, cmd.Voter.UserID)
	if err != nil {
		return CastVoteResult{}, err
	}
	if found && existing.PhotoID == photoID {
		// Re-casting for the held target is an idempotent success.
		return CastVoteResult{Vote: existing}, nil
	}

	now := uc.Clock.Now().UTC()
	vote := entities.Vote{
		VoterID:   cmd.Voter.UserID,
		PhotoID:   photoID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if found {
		vote.VoteID = existing.VoteID
		vote.CreatedAt = existing.CreatedAt
	} else {
		voteID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return CastVoteResult{}, err
		}
		vote.VoteID = voteID
	}

	if err := uc.Votes.UpsertVote(ctx, vote); err != nil {
		return CastVoteResult{}, err
	}
	if uc.Cache != nil {
		_ = uc.Cache.InvalidateRanking(ctx)
	}

	eventType := eventVoteCast
	if found {
		eventType = eventVoteMoved
	}
	if err := appendVoteEvent(ctx, uc.Outbox, uc.IDGen, now, eventType, vote.VoterID, map[string]any{
		"voter_id":       vote.VoterID,
		"photo_id":       vote.PhotoID,
		"previous_photo": existing.PhotoID,
	}); err != nil {
		logger.Warn("vote event staging failed",
			"event", "vote_event_staging_failed",
			"module", "contest/voting-engine",
			"layer", "application",
			"voter_id", vote.VoterID,
			"error", err.Error(),
		)
	}

	logger.Info("vote recorded",
		"event", "vote_recorded",
		"module", "contest/voting-engine",
		"layer", "application",
		"voter_id", vote.VoterID,
		"photo_id", vote.PhotoID,
		"moved", found,
	)
	return CastVoteResult{
		Vote:          vote,
		Moved:         found,
		PreviousPhoto: existing.PhotoID,
	}, nil
}
