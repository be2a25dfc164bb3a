package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"vestiaire/contexts/moderation-safety/moderation-service/application"
	httptransport "vestiaire/contexts/moderation-safety/moderation-service/transport/http"
	"vestiaire/internal/shared/principal"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) QueueHandler(ctx context.Context, actor principal.Principal) (httptransport.QueueResponse, error) {
	items, err := h.Service.ListQueue(ctx, actor)
	if err != nil {
		return httptransport.QueueResponse{}, err
	}
	result := make([]httptransport.QueueItemDTO, 0, len(items))
	for _, item := range items {
		result = append(result, httptransport.QueueItemDTO{
			ResourceID:   item.ResourceID,
			ResourceType: item.ResourceType,
			OwnerID:      item.OwnerID,
			Title:        item.Title,
			SubmittedAt:  item.SubmittedAt.Format(time.RFC3339),
		})
	}
	return httptransport.QueueResponse{Items: result}, nil
}

func (h Handler) DecideHandler(ctx context.Context, actor principal.Principal, req httptransport.DecideRequest) error {
	return h.Service.Decide(ctx, actor, application.DecideInput{
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		Approve:      req.Decision == "approve",
		Reason:       req.Reason,
	})
}
