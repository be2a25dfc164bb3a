package commands

import (
	"context"
	"encoding/json"
	"time"

	"vestiaire/contexts/contest/photo-service/ports"
	"vestiaire/internal/shared/events"
	"vestiaire/internal/shared/outbox"
)

const sourceService = "contest/photo-service"

const (
	eventPhotoSubmitted  = "photo.submitted"
	eventPhotoApproved   = "photo.approved"
	eventPhotoRejected   = "photo.rejected"
	eventPhotoWithdrawn  = "photo.withdrawn"
	eventContestReset    = "contest.reset"
	eventSettingsUpdated = "contest.settings_updated"

	contestEntityContest = "contest"
	contestEntityPhoto   = "photo"
)

// appendContestEvent stages a lifecycle event in the outbox. Emission
// failures never roll back the state change they describe; the relay retries
// from the pending row instead.
func appendContestEvent(
	ctx context.Context,
	writer ports.OutboxWriter,
	idGen ports.IDGenerator,
	now time.Time,
	eventType string,
	entityType string,
	entityID string,
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
		EntityType:     entityType,
		EntityID:       entityID,
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
