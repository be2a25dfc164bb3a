package commands

import (
	"context"
	"log/slog"
	"strings"

	application "vestiaire/contexts/contest/photo-service/application"
	"vestiaire/contexts/contest/photo-service/domain/entities"
	domainerrors "vestiaire/contexts/contest/photo-service/domain/errors"
	"vestiaire/contexts/contest/photo-service/ports"
	"vestiaire/internal/shared/principal"
)

type WithdrawPhotoCommand struct {
	PhotoID string
	Actor   principal.Principal
}

// WithdrawPhotoUseCase retires an entry and frees its owner's submission
// slot. The owner may withdraw from any state; votes held against the photo
// are purged so the tally never counts retired entries.
type WithdrawPhotoUseCase struct {
	Photos ports.PhotoRepository
	Votes  ports.VotePurger
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc WithdrawPhotoUseCase) Execute(ctx context.Context, cmd WithdrawPhotoCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	photo, err := uc.Photos.GetPhoto(ctx, strings.TrimSpace(cmd.PhotoID))
	if err != nil {
		return err
	}
	if photo.OwnerID != cmd.Actor.UserID && !cmd.Actor.Moderator() {
		return domainerrors.ErrForbidden
	}
	if photo.Status == entities.StatusWithdrawn {
		return nil
	}
	if !entities.CanTransition(photo.Status, entities.StatusWithdrawn) {
		return domainerrors.ErrInvalidTransition
	}

	now := uc.Clock.Now().UTC()
	photo.Status = entities.StatusWithdrawn
	photo.UpdatedAt = now
	if err := uc.Photos.UpdatePhoto(ctx, photo); err != nil {
		return err
	}

	if uc.Votes != nil {
		if err := uc.Votes.PurgeVotesForPhoto(ctx, photo.PhotoID); err != nil {
			logger.Error("vote purge after withdrawal failed",
				"event", "photo_withdraw_vote_purge_failed",
				"module", "contest/photo-service",
				"layer", "application",
				"photo_id", photo.PhotoID,
				"error", err.Error(),
			)
			return err
		}
	}

	if err := appendContestEvent(ctx, uc.Outbox, uc.IDGen, now, eventPhotoWithdrawn, contestEntityPhoto, photo.PhotoID, map[string]any{
		"photo_id": photo.PhotoID,
		"owner_id": photo.OwnerID,
	}); err != nil {
		logger.Warn("photo withdrawn event staging failed",
			"event", "photo_withdraw_event_staging_failed",
			"module", "contest/photo-service",
			"layer", "application",
			"photo_id", photo.PhotoID,
			"error", err.Error(),
		)
	}

	logger.Info("contest photo withdrawn",
		"event", "photo_withdrawn",
		"module", "contest/photo-service",
		"layer", "application",
		"photo_id", photo.PhotoID,
		"actor_id", cmd.Actor.UserID,
	)
	return nil
}
