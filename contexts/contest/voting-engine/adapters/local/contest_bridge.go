// Package local bridges the voting engine to the photo context when both
// run in one process. The bridge implements the engine's client ports
// directly over the photo repositories, keeping the application layer free
// of cross-context imports.
package local

import (
	"context"
	"errors"

	photoentities "vestiaire/contexts/contest/photo-service/domain/entities"
	photoerrors "vestiaire/contexts/contest/photo-service/domain/errors"
	photoports "vestiaire/contexts/contest/photo-service/ports"
	"vestiaire/contexts/contest/voting-engine/domain/entities"
)

// PhotoDirectory answers eligibility questions from the photo store.
type PhotoDirectory struct {
	Photos photoports.PhotoRepository
}

func (d PhotoDirectory) GetEligiblePhoto(ctx context.Context, photoID string) (entities.CandidatePhoto, bool, error) {
	photo, err := d.Photos.GetPhoto(ctx, photoID)
	if err != nil {
		if errors.Is(err, photoerrors.ErrPhotoNotFound) {
			return entities.CandidatePhoto{}, false, nil
		}
		return entities.CandidatePhoto{}, false, err
	}
	if photo.Status != photoentities.StatusApproved {
		return entities.CandidatePhoto{}, false, nil
	}
	return candidateFrom(photo), true, nil
}

func (d PhotoDirectory) ListEligiblePhotos(ctx context.Context) ([]entities.CandidatePhoto, error) {
	photos, err := d.Photos.ListByStatus(ctx, []photoentities.PhotoStatus{photoentities.StatusApproved})
	if err != nil {
		return nil, err
	}
	candidates := make([]entities.CandidatePhoto, 0, len(photos))
	for _, photo := range photos {
		candidates = append(candidates, candidateFrom(photo))
	}
	return candidates, nil
}

func candidateFrom(photo photoentities.ContestPhoto) entities.CandidatePhoto {
	return entities.CandidatePhoto{
		PhotoID:     photo.PhotoID,
		OwnerID:     photo.OwnerID,
		SubmittedAt: photo.CreatedAt,
	}
}

// ContestGate reads the voting/ranking flags from the contest settings.
type ContestGate struct {
	Settings photoports.SettingsRepository
}

func (g ContestGate) VotingOpen(ctx context.Context) (bool, error) {
	settings, err := g.Settings.GetSettings(ctx)
	if err != nil {
		return false, err
	}
	return settings.VotingOpen, nil
}

func (g ContestGate) RankingPublic(ctx context.Context) (bool, error) {
	settings, err := g.Settings.GetSettings(ctx)
	if err != nil {
		return false, err
	}
	return settings.RankingPublic, nil
}
