package ports

import (
	"context"
	"time"
)

const (
	ResourceListing = "listing"
	ResourcePhoto   = "photo"
)

// QueueItem is the moderation queue's flattened view of a pending resource
// from either context.
type QueueItem struct {
	ResourceID   string
	ResourceType string
	OwnerID      string
	Title        string
	SubmittedAt  time.Time
}

// ListingQueueSource projects pending marketplace listings into queue rows.
type ListingQueueSource interface {
	ListPendingListings(ctx context.Context) ([]QueueItem, error)
}

// PhotoQueueSource projects pending contest photos into queue rows.
type PhotoQueueSource interface {
	ListPendingPhotos(ctx context.Context) ([]QueueItem, error)
}

// ListingDecisionClient dispatches a moderation decision to the marketplace
// context, which owns the transition and its validation.
type ListingDecisionClient interface {
	ApproveListing(ctx context.Context, listingID string, moderatorID string) error
	RejectListing(ctx context.Context, listingID string, moderatorID string, reason string) error
}

// PhotoDecisionClient dispatches a moderation decision to the contest
// context.
type PhotoDecisionClient interface {
	ApprovePhoto(ctx context.Context, photoID string, moderatorID string) error
	RejectPhoto(ctx context.Context, photoID string, moderatorID string, reason string) error
}

type Clock interface {
	Now() time.Time
}
