package application

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	domainerrors "vestiaire/contexts/moderation-safety/moderation-service/domain/errors"
	"vestiaire/contexts/moderation-safety/moderation-service/ports"
	"vestiaire/internal/shared/principal"
)

type Service struct {
	Listings      ports.ListingQueueSource
	Photos        ports.PhotoQueueSource
	ListingClient ports.ListingDecisionClient
	PhotoClient   ports.PhotoDecisionClient
	Clock         ports.Clock
	Logger        *slog.Logger
}

type DecideInput struct {
	ResourceType string
	ResourceID   string
	Approve      bool
	Reason       string
}

// ListQueue merges both contexts' pending resources into one queue, oldest
// submission first, so the longest-waiting item surfaces at the top
// regardless of kind.
func (s Service) ListQueue(ctx context.Context, actor principal.Principal) ([]ports.QueueItem, error) {
	if !actor.Moderator() {
		return nil, domainerrors.ErrForbidden
	}

	var items []ports.QueueItem
	if s.Listings != nil {
		listings, err := s.Listings.ListPendingListings(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, listings...)
	}
	if s.Photos != nil {
		photos, err := s.Photos.ListPendingPhotos(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, photos...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SubmittedAt.Equal(items[j].SubmittedAt) {
			return items[i].ResourceID < items[j].ResourceID
		}
		return items[i].SubmittedAt.Before(items[j].SubmittedAt)
	})
	return items, nil
}

// Decide routes the decision to the owning context. That context validates
// the transition and the rejection reason; this service only resolves the
// dispatch target.
func (s Service) Decide(ctx context.Context, actor principal.Principal, input DecideInput) error {
	logger := s.logger()
	if !actor.Moderator() {
		return domainerrors.ErrForbidden
	}
	resourceID := strings.TrimSpace(input.ResourceID)
	if resourceID == "" {
		return domainerrors.ErrInvalidRequest
	}

	var err error
	switch strings.TrimSpace(strings.ToLower(input.ResourceType)) {
	case ports.ResourceListing:
		if s.ListingClient == nil {
			return domainerrors.ErrDependencyUnavailable
		}
		if input.Approve {
			err = s.ListingClient.ApproveListing(ctx, resourceID, actor.UserID)
		} else {
			err = s.ListingClient.RejectListing(ctx, resourceID, actor.UserID, input.Reason)
		}
	case ports.ResourcePhoto:
		if s.PhotoClient == nil {
			return domainerrors.ErrDependencyUnavailable
		}
		if input.Approve {
			err = s.PhotoClient.ApprovePhoto(ctx, resourceID, actor.UserID)
		} else {
			err = s.PhotoClient.RejectPhoto(ctx, resourceID, actor.UserID, input.Reason)
		}
	default:
		return domainerrors.ErrUnknownResource
	}
	if err != nil {
		return err
	}

	logger.Info("moderation decision dispatched",
		"event", "moderation_decision_dispatched",
		"module", "moderation-safety/moderation-service",
		"layer", "application",
		"resource_type", input.ResourceType,
		"resource_id", resourceID,
		"approve", input.Approve,
		"moderator_id", actor.UserID,
	)
	return nil
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
