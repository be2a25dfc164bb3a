package commands

import (
	"context"
	"encoding/json"
	"time"

	"vestiaire/contexts/contest/voting-engine/ports"
	"vestiaire/internal/shared/events"
	"vestiaire/internal/shared/outbox"
)

const sourceService = "contest/voting-engine"

const (
	eventVoteCast      = "vote.cast"
	eventVoteMoved     = "vote.moved"
	eventVoteRetracted = "vote.retracted"
	eventVotesPurged   = "vote.purged"
)

// appendVoteEvent stages a claim-ledger event in the outbox. Emission
// failures never roll back the vote mutation they describe.
func appendVoteEvent(
	ctx context.Context,
	writer ports.OutboxWriter,
	idGen ports.IDGenerator,
	now time.Time,
	eventType string,
	voterID string,
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
		EntityType:     "vote",
		EntityID:       voterID,
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
