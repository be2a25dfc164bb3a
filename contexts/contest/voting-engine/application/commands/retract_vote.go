package commands

import (
	"context"
	"log/slog"

	application "vestiaire/contexts/contest/voting-engine/application"
	domainerrors "vestiaire/contexts/contest/voting-engine/domain/errors"
	"vestiaire/contexts/contest/voting-engine/ports"
	"vestiaire/internal/shared/principal"
)

type RetractVoteCommand struct {
	Voter principal.Principal
}

// RetractVoteUseCase removes the caller's active vote, if any.
type RetractVoteUseCase struct {
	Votes  ports.VoteRepository
	Gate   ports.ContestGate
	Cache  ports.RankingCache
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc RetractVoteUseCase) Execute(ctx context.Context, cmd RetractVoteCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Voter.Anonymous() {
		return domainerrors.ErrForbidden
	}

	open, err := uc.Gate.VotingOpen(ctx)
	if err != nil {
		return err
	}
	if !open {
		return domainerrors.ErrVotingClosed
	}

	vote, found, err := uc.Votes.GetVoteByVoter(ctx, cmd.Voter.UserID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrVoteNotFound
	}
	if err := uc.Votes.DeleteVoteByVoter(ctx, cmd.Voter.UserID); err != nil {
		return err
	}
	if uc.Cache != nil {
		_ = uc.Cache.InvalidateRanking(ctx)
	}

	now := uc.Clock.Now().UTC()
	if err := appendVoteEvent(ctx, uc.Outbox, uc.IDGen, now, eventVoteRetracted, vote.VoterID, map[string]any{
		"voter_id": vote.VoterID,
		"photo_id": vote.PhotoID,
	}); err != nil {
		logger.Warn("vote retract event staging failed",
			"event", "vote_retract_event_staging_failed",
			"module", "contest/voting-engine",
			"layer", "application",
			"voter_id", vote.VoterID,
			"error", err.Error(),
		)
	}

	logger.Info("vote retracted",
		"event", "vote_retracted",
		"module", "contest/voting-engine",
		"layer", "application",
		"voter_id", vote.VoterID,
		"photo_id", vote.PhotoID,
	)
	return nil
}
