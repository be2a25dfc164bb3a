package commands

import (
	"context"
	"log/slog"

	application "vestiaire/contexts/contest/photo-service/application"
	domainerrors "vestiaire/contexts/contest/photo-service/domain/errors"
	"vestiaire/contexts/contest/photo-service/ports"
	"vestiaire/internal/shared/principal"
)

type ResetContestCommand struct {
	Actor principal.Principal
}

// ResetContestUseCase starts a new contest epoch: every photo and every vote
// is removed, and previously-submitted owners may enter again. Votes purge
// first so a crash between the two deletes can only leave orphan-free state
// behind (photos without votes, never votes without photos).
type ResetContestUseCase struct {
	Photos ports.PhotoRepository
	Votes  ports.VotePurger
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc ResetContestUseCase) Execute(ctx context.Context, cmd ResetContestCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if !cmd.Actor.Admin() {
		return domainerrors.ErrForbidden
	}

	if uc.Votes != nil {
		if err := uc.Votes.PurgeAllVotes(ctx); err != nil {
			logger.Error("contest reset vote purge failed",
				"event", "contest_reset_vote_purge_failed",
				"module", "contest/photo-service",
				"layer", "application",
				"error", err.Error(),
			)
			return err
		}
	}
	if err := uc.Photos.DeleteAllPhotos(ctx); err != nil {
		logger.Error("contest reset photo purge failed",
			"event", "contest_reset_photo_purge_failed",
			"module", "contest/photo-service",
			"layer", "application",
			"error", err.Error(),
		)
		return err
	}

	now := uc.Clock.Now().UTC()
	if err := appendContestEvent(ctx, uc.Outbox, uc.IDGen, now, eventContestReset, contestEntityContest, "contest", map[string]any{
		"actor_id": cmd.Actor.UserID,
	}); err != nil {
		logger.Warn("contest reset event staging failed",
			"event", "contest_reset_event_staging_failed",
			"module", "contest/photo-service",
			"layer", "application",
			"error", err.Error(),
		)
	}

	logger.Info("contest reset",
		"event", "contest_reset",
		"module", "contest/photo-service",
		"layer", "application",
		"actor_id", cmd.Actor.UserID,
	)
	return nil
}
