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

type ModeratePhotoCommand struct {
	PhotoID string
	Approve bool
	Reason  string
	Actor   principal.Principal
}

// ModeratePhotoUseCase applies the pending -> approved/rejected decision.
// Rejecting an approved photo pulls it from the gallery and purges any votes
// it accumulated, since a rejected entry must not hold claims.
type ModeratePhotoUseCase struct {
	Photos ports.PhotoRepository
	Votes  ports.VotePurger
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc ModeratePhotoUseCase) Execute(ctx context.Context, cmd ModeratePhotoCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if !cmd.Actor.Moderator() {
		return domainerrors.ErrForbidden
	}
	reason := strings.TrimSpace(cmd.Reason)
	if !cmd.Approve && reason == "" {
		return domainerrors.ErrReasonRequired
	}

	photo, err := uc.Photos.GetPhoto(ctx, strings.TrimSpace(cmd.PhotoID))
	if err != nil {
		return err
	}

	target := entities.StatusRejected
	eventType := eventPhotoRejected
	if cmd.Approve {
		target = entities.StatusApproved
		eventType = eventPhotoApproved
	}
	if !entities.CanTransition(photo.Status, target) {
		return domainerrors.ErrInvalidTransition
	}

	wasApproved := photo.Status == entities.StatusApproved
	now := uc.Clock.Now().UTC()
	photo.Status = target
	photo.UpdatedAt = now
	if cmd.Approve {
		photo.RejectionReason = ""
	} else {
		photo.RejectionReason = reason
	}

	if err := uc.Photos.UpdatePhoto(ctx, photo); err != nil {
		return err
	}

	if !cmd.Approve && wasApproved && uc.Votes != nil {
		if err := uc.Votes.PurgeVotesForPhoto(ctx, photo.PhotoID); err != nil {
			logger.Error("vote purge after rejection failed",
				"event", "photo_reject_vote_purge_failed",
				"module", "contest/photo-service",
				"layer", "application",
				"photo_id", photo.PhotoID,
				"error", err.Error(),
			)
			return err
		}
	}

	if err := appendContestEvent(ctx, uc.Outbox, uc.IDGen, now, eventType, contestEntityPhoto, photo.PhotoID, map[string]any{
		"photo_id": photo.PhotoID,
		"owner_id": photo.OwnerID,
		"reason":   photo.RejectionReason,
	}); err != nil {
		logger.Warn("photo decision event staging failed",
			"event", "photo_decision_event_staging_failed",
			"module", "contest/photo-service",
			"layer", "application",
			"photo_id", photo.PhotoID,
			"error", err.Error(),
		)
	}

	logger.Info("contest photo moderated",
		"event", "photo_moderated",
		"module", "contest/photo-service",
		"layer", "application",
		"photo_id", photo.PhotoID,
		"decision", string(target),
		"actor_id", cmd.Actor.UserID,
	)
	return nil
}
