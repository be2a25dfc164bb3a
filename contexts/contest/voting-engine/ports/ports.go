package ports

import (
	"context"
	"time"

	"vestiaire/contexts/contest/voting-engine/domain/entities"
	"vestiaire/internal/shared/events"
	"vestiaire/internal/shared/outbox"
)

// VoteRepository persists the claim ledger. UpsertVote is keyed by voter id:
// a voter's second cast atomically replaces the first, so the store can
// never hold two active votes for one voter, even under concurrent casts.
type VoteRepository interface {
	UpsertVote(ctx context.Context, vote entities.Vote) error
	GetVoteByVoter(ctx context.Context, voterID string) (entities.Vote, bool, error)
	DeleteVoteByVoter(ctx context.Context, voterID string) error
	DeleteVotesForPhoto(ctx context.Context, photoID string) error
	DeleteAllVotes(ctx context.Context) error
	CountVotesByPhoto(ctx context.Context) (map[string]int, error)
}

// PhotoDirectory is the client port into the photo context: it answers which
// photos are eligible vote targets and who owns them.
type PhotoDirectory interface {
	GetEligiblePhoto(ctx context.Context, photoID string) (entities.CandidatePhoto, bool, error)
	ListEligiblePhotos(ctx context.Context) ([]entities.CandidatePhoto, error)
}

// ContestGate exposes the settings flags this engine must honor.
type ContestGate interface {
	VotingOpen(ctx context.Context) (bool, error)
	RankingPublic(ctx context.Context) (bool, error)
}

// RankingCache holds the derived ordering. A miss or failure always falls
// back to recomputation from vote rows.
type RankingCache interface {
	GetRanking(ctx context.Context) ([]entities.PhotoScore, bool, error)
	SetRanking(ctx context.Context, scores []entities.PhotoScore) error
	InvalidateRanking(ctx context.Context) error
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, events.Envelope) error) error
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
