// Package local wires the moderation service to the resource-owning
// contexts running in the same process.
package local

import (
	"context"

	photocommands "vestiaire/contexts/contest/photo-service/application/commands"
	photoqueries "vestiaire/contexts/contest/photo-service/application/queries"
	listingcommands "vestiaire/contexts/marketplace/listing-service/application/commands"
	listingqueries "vestiaire/contexts/marketplace/listing-service/application/queries"
	"vestiaire/contexts/moderation-safety/moderation-service/ports"
	"vestiaire/internal/shared/principal"
)

// ListingBridge adapts the marketplace context to the queue-source and
// decision-client ports.
type ListingBridge struct {
	Moderate listingcommands.ModerateListingUseCase
	Queries  listingqueries.ListingQueries
}

func (b ListingBridge) ListPendingListings(ctx context.Context) ([]ports.QueueItem, error) {
	listings, err := b.Queries.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]ports.QueueItem, 0, len(listings))
	for _, listing := range listings {
		items = append(items, ports.QueueItem{
			ResourceID:   listing.ListingID,
			ResourceType: ports.ResourceListing,
			OwnerID:      listing.SellerID,
			Title:        listing.Title,
			SubmittedAt:  listing.CreatedAt,
		})
	}
	return items, nil
}

func (b ListingBridge) ApproveListing(ctx context.Context, listingID string, moderatorID string) error {
	return b.Moderate.Execute(ctx, listingcommands.ModerateListingCommand{
		ListingID: listingID,
		Approve:   true,
		Actor:     moderatorPrincipal(moderatorID),
	})
}

func (b ListingBridge) RejectListing(ctx context.Context, listingID string, moderatorID string, reason string) error {
	return b.Moderate.Execute(ctx, listingcommands.ModerateListingCommand{
		ListingID: listingID,
		Approve:   false,
		Reason:    reason,
		Actor:     moderatorPrincipal(moderatorID),
	})
}

// PhotoBridge adapts the contest context to the queue-source and
// decision-client ports.
type PhotoBridge struct {
	Moderate photocommands.ModeratePhotoUseCase
	Queries  photoqueries.PhotoQueries
}

func (b PhotoBridge) ListPendingPhotos(ctx context.Context) ([]ports.QueueItem, error) {
	photos, err := b.Queries.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]ports.QueueItem, 0, len(photos))
	for _, photo := range photos {
		items = append(items, ports.QueueItem{
			ResourceID:   photo.PhotoID,
			ResourceType: ports.ResourcePhoto,
			OwnerID:      photo.OwnerID,
			Title:        photo.Title,
			SubmittedAt:  photo.CreatedAt,
		})
	}
	return items, nil
}

func (b PhotoBridge) ApprovePhoto(ctx context.Context, photoID string, moderatorID string) error {
	return b.Moderate.Execute(ctx, photocommands.ModeratePhotoCommand{
		PhotoID: photoID,
		Approve: true,
		Actor:   moderatorPrincipal(moderatorID),
	})
}

func (b PhotoBridge) RejectPhoto(ctx context.Context, photoID string, moderatorID string, reason string) error {
	return b.Moderate.Execute(ctx, photocommands.ModeratePhotoCommand{
		PhotoID: photoID,
		Approve: false,
		Reason:  reason,
		Actor:   moderatorPrincipal(moderatorID),
	})
}

// The dispatching moderator already passed the role check in the moderation
// service, so the bridge reconstructs an equivalent principal for the
// owning context's own check.
func moderatorPrincipal(moderatorID string) principal.Principal {
	return principal.Principal{UserID: moderatorID, Role: principal.RoleModerator}
}
