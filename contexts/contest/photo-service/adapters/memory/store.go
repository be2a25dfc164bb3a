package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vestiaire/contexts/contest/photo-service/domain/entities"
	domainerrors "vestiaire/contexts/contest/photo-service/domain/errors"
	"vestiaire/internal/shared/outbox"
)

// Store is the in-memory adapter used by tests and local runs. A single
// mutex gives it the same observable atomicity the postgres adapter gets
// from transactions and the partial unique index on owners.
type Store struct {
	mu sync.Mutex

	photos    map[string]entities.ContestPhoto
	settings  entities.ContestSettings
	outbox    []outbox.Message
	published map[string]bool
}

func NewStore(seed []entities.ContestPhoto) *Store {
	photos := make(map[string]entities.ContestPhoto, len(seed))
	for _, photo := range seed {
		photos[photo.PhotoID] = photo
	}
	return &Store{
		photos:    photos,
		settings:  entities.ContestSettings{VotingOpen: true, RankingPublic: true},
		published: make(map[string]bool),
	}
}

// CreatePhoto rejects a second active entry for the same owner, mirroring
// the database's partial unique index.
func (s *Store) CreatePhoto(_ context.Context, photo entities.ContestPhoto) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.photos {
		if existing.OwnerID == photo.OwnerID && existing.Active() {
			return domainerrors.ErrPhotoAlreadySubmitted
		}
	}
	s.photos[photo.PhotoID] = photo
	return nil
}

func (s *Store) GetPhoto(_ context.Context, photoID string) (entities.ContestPhoto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	photo, ok := s.photos[strings.TrimSpace(photoID)]
	if !ok {
		return entities.ContestPhoto{}, domainerrors.ErrPhotoNotFound
	}
	return photo, nil
}

func (s *Store) UpdatePhoto(_ context.Context, photo entities.ContestPhoto) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.photos[photo.PhotoID]; !ok {
		return domainerrors.ErrPhotoNotFound
	}
	s.photos[photo.PhotoID] = photo
	return nil
}

func (s *Store) GetActiveByOwner(_ context.Context, ownerID string) (entities.ContestPhoto, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, photo := range s.photos {
		if photo.OwnerID == strings.TrimSpace(ownerID) && photo.Active() {
			return photo, true, nil
		}
	}
	return entities.ContestPhoto{}, false, nil
}

func (s *Store) ListByStatus(_ context.Context, statuses []entities.PhotoStatus) ([]entities.ContestPhoto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allowed := make(map[entities.PhotoStatus]bool, len(statuses))
	for _, status := range statuses {
		allowed[status] = true
	}

	var items []entities.ContestPhoto
	for _, photo := range s.photos {
		if allowed[photo.Status] {
			items = append(items, photo)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].PhotoID < items[j].PhotoID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListPending(_ context.Context) ([]entities.ContestPhoto, error) {
	return s.ListByStatus(context.Background(), []entities.PhotoStatus{entities.StatusPending})
}

func (s *Store) DeleteAllPhotos(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos = make(map[string]entities.ContestPhoto)
	return nil
}

func (s *Store) GetSettings(_ context.Context) (entities.ContestSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings, nil
}

func (s *Store) SaveSettings(_ context.Context, settings entities.ContestSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
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
