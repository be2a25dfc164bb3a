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

type SubmitPhotoCommand struct {
	Owner      principal.Principal
	Title      string
	Caption    string
	ContentRef string
}

// SubmitPhotoUseCase enters one photo per participant into the contest. The
// store enforces the one-active-entry rule, so two concurrent submissions by
// the same owner resolve to exactly one row.
type SubmitPhotoUseCase struct {
	Photos ports.PhotoRepository
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc SubmitPhotoUseCase) Execute(ctx context.Context, cmd SubmitPhotoCommand) (entities.ContestPhoto, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Owner.Anonymous() {
		return entities.ContestPhoto{}, domainerrors.ErrForbidden
	}
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return entities.ContestPhoto{}, domainerrors.ErrInvalidPhotoInput
	}

	photoID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.ContestPhoto{}, err
	}
	now := uc.Clock.Now().UTC()
	photo := entities.ContestPhoto{
		PhotoID:    photoID,
		OwnerID:    cmd.Owner.UserID,
		Title:      title,
		Caption:    strings.TrimSpace(cmd.Caption),
		ContentRef: strings.TrimSpace(cmd.ContentRef),
		Status:     entities.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.Photos.CreatePhoto(ctx, photo); err != nil {
		return entities.ContestPhoto{}, err
	}

	if err := appendContestEvent(ctx, uc.Outbox, uc.IDGen, now, eventPhotoSubmitted, contestEntityPhoto, photo.PhotoID, map[string]any{
		"photo_id": photo.PhotoID,
		"owner_id": photo.OwnerID,
	}); err != nil {
		logger.Warn("photo submitted event staging failed",
			"event", "photo_submit_event_staging_failed",
			"module", "contest/photo-service",
			"layer", "application",
			"photo_id", photo.PhotoID,
			"error", err.Error(),
		)
	}

	logger.Info("contest photo submitted",
		"event", "photo_submitted",
		"module", "contest/photo-service",
		"layer", "application",
		"photo_id", photo.PhotoID,
		"owner_id", photo.OwnerID,
	)
	return photo, nil
}
