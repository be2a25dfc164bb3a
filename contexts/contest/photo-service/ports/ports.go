package ports

import (
	"context"
	"time"

	"vestiaire/contexts/contest/photo-service/domain/entities"
	"vestiaire/internal/shared/events"
	"vestiaire/internal/shared/outbox"
)

// PhotoRepository persists contest entries. CreatePhoto must fail with
// ErrPhotoAlreadySubmitted when the owner already holds a non-withdrawn
// photo; the store, not the use case, arbitrates concurrent submissions.
type PhotoRepository interface {
	CreatePhoto(ctx context.Context, photo entities.ContestPhoto) error
	GetPhoto(ctx context.Context, photoID string) (entities.ContestPhoto, error)
	UpdatePhoto(ctx context.Context, photo entities.ContestPhoto) error
	GetActiveByOwner(ctx context.Context, ownerID string) (entities.ContestPhoto, bool, error)
	ListByStatus(ctx context.Context, statuses []entities.PhotoStatus) ([]entities.ContestPhoto, error)
	ListPending(ctx context.Context) ([]entities.ContestPhoto, error)
	DeleteAllPhotos(ctx context.Context) error
}

type SettingsRepository interface {
	GetSettings(ctx context.Context) (entities.ContestSettings, error)
	SaveSettings(ctx context.Context, settings entities.ContestSettings) error
}

// VotePurger is the client port into the voting engine. The photo context
// calls it when entries leave the contest so votes never point at photos
// that no longer compete.
type VotePurger interface {
	PurgeVotesForPhoto(ctx context.Context, photoID string) error
	PurgeAllVotes(ctx context.Context) error
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, message outbox.Message) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
