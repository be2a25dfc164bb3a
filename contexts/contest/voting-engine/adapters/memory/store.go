package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vestiaire/contexts/contest/voting-engine/domain/entities"
	"vestiaire/internal/shared/outbox"
)

// Store is the in-memory vote ledger. Votes key by voter id, which is the
// same shape as the database's unique index: writing a voter's vote replaces
// any previous one atomically under the mutex.
type Store struct {
	mu sync.Mutex

	votes     map[string]entities.Vote // keyed by voter id
	ranking   []entities.PhotoScore
	hasCached bool
	outbox    []outbox.Message
	published map[string]bool
}

func NewStore() *Store {
	return &Store{
		votes:     make(map[string]entities.Vote),
		published: make(map[string]bool),
	}
}

func (s *Store) UpsertVote(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes[vote.VoterID] = vote
	return nil
}

func (s *Store) GetVoteByVoter(_ context.Context, voterID string) (entities.Vote, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vote, ok := s.votes[strings.TrimSpace(voterID)]
	return vote, ok, nil
}

func (s *Store) DeleteVoteByVoter(_ context.Context, voterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.votes, strings.TrimSpace(voterID))
	return nil
}

func (s *Store) DeleteVotesForPhoto(_ context.Context, photoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for voterID, vote := range s.votes {
		if vote.PhotoID == photoID {
			delete(s.votes, voterID)
		}
	}
	return nil
}

func (s *Store) DeleteAllVotes(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes = make(map[string]entities.Vote)
	return nil
}

func (s *Store) CountVotesByPhoto(_ context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int)
	for _, vote := range s.votes {
		counts[vote.PhotoID]++
	}
	return counts, nil
}

// The store doubles as a ranking cache for single-process runs.

func (s *Store) GetRanking(_ context.Context) ([]entities.PhotoScore, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasCached {
		return nil, false, nil
	}
	return append([]entities.PhotoScore(nil), s.ranking...), true, nil
}

func (s *Store) SetRanking(_ context.Context, scores []entities.PhotoScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranking = append([]entities.PhotoScore(nil), scores...)
	s.hasCached = true
	return nil
}

func (s *Store) InvalidateRanking(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranking = nil
	s.hasCached = false
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, message outbox.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbox = append(s.outbox, message)
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]outbox.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []outbox.Message
	for _, message := range s.outbox {
		if s.published[message.ID] {
			continue
		}
		items = append(items, message)
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published[outboxID] = true
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(context.Context) (string, error) {
	return uuid.NewString(), nil
}
