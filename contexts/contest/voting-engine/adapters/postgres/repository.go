package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vestiaire/contexts/contest/voting-engine/domain/entities"
	"vestiaire/internal/shared/outbox"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&voteModel{}, &outboxModel{})
}

// UpsertVote is the atomic vote move. The unique index on voter_id plus the
// on-conflict update means a voter's cast lands as exactly one row whether
// or not a previous vote existed, with no read-modify-write window.
func (r *Repository) UpsertVote(ctx context.Context, vote entities.Vote) error {
	row := voteModel{
		ID:        vote.VoteID,
		VoterID:   vote.VoterID,
		PhotoID:   vote.PhotoID,
		CreatedAt: vote.CreatedAt,
		UpdatedAt: vote.UpdatedAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "voter_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"photo_id", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("vote_repo_upsert_failed", err, "voter_id", vote.VoterID)
	}
	return nil
}

func (r *Repository) GetVoteByVoter(ctx context.Context, voterID string) (entities.Vote, bool, error) {
	var row voteModel
	err := r.db.WithContext(ctx).
		Where("voter_id = ?", strings.TrimSpace(voterID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Vote{}, false, nil
		}
		return entities.Vote{}, false, r.logError("vote_repo_get_failed", err, "voter_id", strings.TrimSpace(voterID))
	}
	return row.toEntity(), true, nil
}

func (r *Repository) DeleteVoteByVoter(ctx context.Context, voterID string) error {
	err := r.db.WithContext(ctx).
		Where("voter_id = ?", strings.TrimSpace(voterID)).
		Delete(&voteModel{}).
		Error
	if err != nil {
		return r.logError("vote_repo_delete_failed", err, "voter_id", strings.TrimSpace(voterID))
	}
	return nil
}

func (r *Repository) DeleteVotesForPhoto(ctx context.Context, photoID string) error {
	err := r.db.WithContext(ctx).
		Where("photo_id = ?", strings.TrimSpace(photoID)).
		Delete(&voteModel{}).
		Error
	if err != nil {
		return r.logError("vote_repo_delete_for_photo_failed", err, "photo_id", strings.TrimSpace(photoID))
	}
	return nil
}

func (r *Repository) DeleteAllVotes(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&voteModel{}).Error; err != nil {
		return r.logError("vote_repo_delete_all_failed", err)
	}
	return nil
}

func (r *Repository) CountVotesByPhoto(ctx context.Context) (map[string]int, error) {
	type tallyRow struct {
		PhotoID string `gorm:"column:photo_id"`
		Tally   int    `gorm:"column:tally"`
	}
	var rows []tallyRow
	err := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Select("photo_id, COUNT(*) AS tally").
		Group("photo_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("vote_repo_count_failed", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.PhotoID] = row.Tally
	}
	return counts, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, message outbox.Message) error {
	row := outboxModel{
		ID:        message.ID,
		EventType: message.EventType,
		Payload:   message.Payload,
		Status:    outboxStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("vote_repo_outbox_append_failed", err, "event_type", message.EventType)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("vote_repo_outbox_list_failed", err)
	}
	items := make([]outbox.Message, 0, len(rows))
	for _, row := range rows {
		items = append(items, outbox.Message{
			ID:        row.ID,
			EventType: row.EventType,
			Payload:   row.Payload,
			Status:    row.Status,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	err := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("id = ?", outboxID).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt,
		}).Error
	if err != nil {
		return r.logError("vote_repo_outbox_mark_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func (r *Repository) logError(event string, err error, keyvals ...any) error {
	args := append([]any{
		"event", event,
		"module", "contest/voting-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, keyvals...)
	r.logger.Error("vote repository operation failed", args...)
	return err
}

type voteModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	VoterID   string    `gorm:"column:voter_id;uniqueIndex"`
	PhotoID   string    `gorm:"column:photo_id;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (voteModel) TableName() string { return "votes" }

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		VoteID:    m.ID,
		VoterID:   m.VoterID,
		PhotoID:   m.PhotoID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type outboxModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status;index"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "vote_outbox" }
