package queries

import (
	"context"
	"strings"

	"vestiaire/contexts/contest/photo-service/domain/entities"
	domainerrors "vestiaire/contexts/contest/photo-service/domain/errors"
	"vestiaire/contexts/contest/photo-service/ports"
	"vestiaire/internal/shared/principal"
)

// PhotoQueries is the read side of the contest: the public gallery, the
// caller's own entry, the moderation queue feed, and the settings view.
type PhotoQueries struct {
	Photos   ports.PhotoRepository
	Settings ports.SettingsRepository
}

// Gallery returns the approved entries every participant may browse.
func (q PhotoQueries) Gallery(ctx context.Context) ([]entities.ContestPhoto, error) {
	return q.Photos.ListByStatus(ctx, []entities.PhotoStatus{entities.StatusApproved})
}

func (q PhotoQueries) GetPhoto(ctx context.Context, photoID string, viewer principal.Principal) (entities.ContestPhoto, error) {
	photo, err := q.Photos.GetPhoto(ctx, strings.TrimSpace(photoID))
	if err != nil {
		return entities.ContestPhoto{}, err
	}
	if !photo.VisibleTo(viewer.UserID, viewer.Moderator()) {
		return entities.ContestPhoto{}, domainerrors.ErrPhotoNotFound
	}
	return photo, nil
}

// MyPhoto resolves the caller's active entry, if any.
func (q PhotoQueries) MyPhoto(ctx context.Context, owner principal.Principal) (entities.ContestPhoto, bool, error) {
	if owner.Anonymous() {
		return entities.ContestPhoto{}, false, domainerrors.ErrForbidden
	}
	return q.Photos.GetActiveByOwner(ctx, owner.UserID)
}

// ListPending feeds the moderation queue projection, oldest first.
func (q PhotoQueries) ListPending(ctx context.Context) ([]entities.ContestPhoto, error) {
	return q.Photos.ListPending(ctx)
}

func (q PhotoQueries) GetSettings(ctx context.Context) (entities.ContestSettings, error) {
	return q.Settings.GetSettings(ctx)
}
