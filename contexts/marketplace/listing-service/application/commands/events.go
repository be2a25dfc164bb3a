package commands

import (
	"context"
	"encoding/json"
	"time"

	"vestiaire/contexts/marketplace/listing-service/ports"
	"vestiaire/internal/shared/events"
	"vestiaire/internal/shared/outbox"
)

const sourceService = "marketplace/listing-service"

const (
	eventListingSubmitted = "listing.submitted"
	eventListingApproved  = "listing.approved"
	eventListingRejected  = "listing.rejected"
	eventListingReserved  = "listing.reserved"
	eventListingReleased  = "listing.released"
	eventListingClosed    = "listing.closed"
	eventListingDeleted   = "listing.deleted"
)

// appendListingEvent stages a lifecycle event in the outbox. Event emission
// failures never roll back the state change they describe; the relay retries
// from the pending row instead.
func appendListingEvent(
	ctx context.Context,
	writer ports.OutboxWriter,
	idGen ports.IDGenerator,
	now time.Time,
	eventType string,
	listingID string,
	payload any,
) error {
	if writer == nil {
		return nil
	}
	eventID, err := idGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope := events.Envelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  sourceService,
		OccurredAtUTC:  now.UTC(),
		EntityType:     "listing",
		EntityID:       listingID,
		PayloadVersion: 1,
		Payload:        payload,
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return writer.AppendOutbox(ctx, outbox.Message{
		ID:        eventID,
		EventType: eventType,
		Payload:   raw,
		Status:    "pending",
	})
}
