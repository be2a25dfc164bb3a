package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"vestiaire/contexts/contest/photo-service/application/commands"
	"vestiaire/contexts/contest/photo-service/application/queries"
	"vestiaire/contexts/contest/photo-service/domain/entities"
	domainerrors "vestiaire/contexts/contest/photo-service/domain/errors"
	httptransport "vestiaire/contexts/contest/photo-service/transport/http"
	"vestiaire/internal/shared/principal"
)

type Handler struct {
	SubmitPhoto    commands.SubmitPhotoUseCase
	ModeratePhoto  commands.ModeratePhotoUseCase
	WithdrawPhoto  commands.WithdrawPhotoUseCase
	UpdateSettings commands.UpdateSettingsUseCase
	ResetContest   commands.ResetContestUseCase
	Queries        queries.PhotoQueries
	Logger         *slog.Logger
}

func (h Handler) SubmitPhotoHandler(
	ctx context.Context,
	owner principal.Principal,
	req httptransport.SubmitPhotoRequest,
) (httptransport.SubmitPhotoResponse, error) {
	item, err := h.SubmitPhoto.Execute(ctx, commands.SubmitPhotoCommand{
		Owner:      owner,
		Title:      req.Title,
		Caption:    req.Caption,
		ContentRef: req.ContentRef,
	})
	if err != nil {
		return httptransport.SubmitPhotoResponse{}, err
	}
	return httptransport.SubmitPhotoResponse{Photo: mapPhoto(item)}, nil
}

func (h Handler) GalleryHandler(ctx context.Context) (httptransport.ListPhotosResponse, error) {
	items, err := h.Queries.Gallery(ctx)
	if err != nil {
		return httptransport.ListPhotosResponse{}, err
	}
	return httptransport.ListPhotosResponse{Items: mapPhotos(items)}, nil
}

func (h Handler) GetPhotoHandler(ctx context.Context, photoID string, viewer principal.Principal) (httptransport.GetPhotoResponse, error) {
	item, err := h.Queries.GetPhoto(ctx, photoID, viewer)
	if err != nil {
		return httptransport.GetPhotoResponse{}, err
	}
	return httptransport.GetPhotoResponse{Photo: mapPhoto(item)}, nil
}

func (h Handler) MyPhotoHandler(ctx context.Context, owner principal.Principal) (httptransport.MyPhotoResponse, error) {
	item, found, err := h.Queries.MyPhoto(ctx, owner)
	if err != nil {
		return httptransport.MyPhotoResponse{}, err
	}
	if !found {
		return httptransport.MyPhotoResponse{}, nil
	}
	dto := mapPhoto(item)
	return httptransport.MyPhotoResponse{Photo: &dto}, nil
}

func (h Handler) ModeratePhotoHandler(
	ctx context.Context,
	actor principal.Principal,
	photoID string,
	req httptransport.ModeratePhotoRequest,
) error {
	return h.ModeratePhoto.Execute(ctx, commands.ModeratePhotoCommand{
		PhotoID: photoID,
		Approve: req.Decision == "approve",
		Reason:  req.Reason,
		Actor:   actor,
	})
}

func (h Handler) WithdrawPhotoHandler(ctx context.Context, actor principal.Principal, photoID string) error {
	return h.WithdrawPhoto.Execute(ctx, commands.WithdrawPhotoCommand{
		PhotoID: photoID,
		Actor:   actor,
	})
}

func (h Handler) ListPendingHandler(ctx context.Context) (httptransport.ListPhotosResponse, error) {
	items, err := h.Queries.ListPending(ctx)
	if err != nil {
		return httptransport.ListPhotosResponse{}, err
	}
	return httptransport.ListPhotosResponse{Items: mapPhotos(items)}, nil
}

func (h Handler) GetSettingsHandler(ctx context.Context) (httptransport.SettingsResponse, error) {
	settings, err := h.Queries.GetSettings(ctx)
	if err != nil {
		return httptransport.SettingsResponse{}, err
	}
	return httptransport.SettingsResponse{Settings: mapSettings(settings)}, nil
}

func (h Handler) UpdateSettingsHandler(
	ctx context.Context,
	actor principal.Principal,
	req httptransport.UpdateSettingsRequest,
) (httptransport.SettingsResponse, error) {
	cmd := commands.UpdateSettingsCommand{
		Actor:         actor,
		VotingOpen:    req.VotingOpen,
		RankingPublic: req.RankingPublic,
		Theme:         req.Theme,
		Rewards:       req.Rewards,
	}
	if req.Deadline != nil {
		deadline, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			return httptransport.SettingsResponse{}, domainerrors.ErrInvalidPhotoInput
		}
		cmd.Deadline = &deadline
	}
	settings, err := h.UpdateSettings.Execute(ctx, cmd)
	if err != nil {
		return httptransport.SettingsResponse{}, err
	}
	return httptransport.SettingsResponse{Settings: mapSettings(settings)}, nil
}

func (h Handler) ResetContestHandler(ctx context.Context, actor principal.Principal) error {
	return h.ResetContest.Execute(ctx, commands.ResetContestCommand{Actor: actor})
}

func mapPhoto(item entities.ContestPhoto) httptransport.PhotoDTO {
	return httptransport.PhotoDTO{
		PhotoID:         item.PhotoID,
		OwnerID:         item.OwnerID,
		Title:           item.Title,
		Caption:         item.Caption,
		ContentRef:      item.ContentRef,
		Status:          string(item.Status),
		RejectionReason: item.RejectionReason,
		CreatedAt:       item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       item.UpdatedAt.Format(time.RFC3339),
	}
}

func mapPhotos(items []entities.ContestPhoto) []httptransport.PhotoDTO {
	result := make([]httptransport.PhotoDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapPhoto(item))
	}
	return result
}

func mapSettings(settings entities.ContestSettings) httptransport.SettingsDTO {
	dto := httptransport.SettingsDTO{
		VotingOpen:    settings.VotingOpen,
		RankingPublic: settings.RankingPublic,
		Theme:         settings.Theme,
		Rewards:       settings.Rewards,
	}
	if settings.Deadline != nil {
		dto.Deadline = settings.Deadline.Format(time.RFC3339)
	}
	if !settings.UpdatedAt.IsZero() {
		dto.UpdatedAt = settings.UpdatedAt.Format(time.RFC3339)
	}
	return dto
}
