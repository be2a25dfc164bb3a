package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vestiaire/contexts/contest/photo-service/domain/entities"
	domainerrors "vestiaire/contexts/contest/photo-service/domain/errors"
	"vestiaire/internal/shared/outbox"
)

const (
	settingsRowID = "contest"

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

// Migrate creates the contest tables. The partial unique index on owner_id
// enforces one active entry per participant; withdrawn rows fall outside it
// so the slot frees on withdrawal.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&photoModel{}, &settingsModel{}, &outboxModel{}); err != nil {
		return err
	}
	return r.db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_contest_photos_active_owner " +
			"ON contest_photos (owner_id) WHERE status <> 'withdrawn'",
	).Error
}

func (r *Repository) CreatePhoto(ctx context.Context, photo entities.ContestPhoto) error {
	row := photoModelFromEntity(photo)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrPhotoAlreadySubmitted
		}
		return r.logError("photo_repo_create_failed", err, "photo_id", photo.PhotoID)
	}
	return nil
}

func (r *Repository) GetPhoto(ctx context.Context, photoID string) (entities.ContestPhoto, error) {
	var row photoModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(photoID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ContestPhoto{}, domainerrors.ErrPhotoNotFound
		}
		return entities.ContestPhoto{}, r.logError("photo_repo_get_failed", err, "photo_id", strings.TrimSpace(photoID))
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdatePhoto(ctx context.Context, photo entities.ContestPhoto) error {
	row := photoModelFromEntity(photo)
	res := r.db.WithContext(ctx).Model(&photoModel{}).Where("id = ?", photo.PhotoID).Updates(map[string]any{
		"title":            row.Title,
		"caption":          row.Caption,
		"content_ref":      row.ContentRef,
		"status":           row.Status,
		"rejection_reason": row.RejectionReason,
		"updated_at":       row.UpdatedAt,
	})
	if res.Error != nil {
		return r.logError("photo_repo_update_failed", res.Error, "photo_id", photo.PhotoID)
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrPhotoNotFound
	}
	return nil
}

func (r *Repository) GetActiveByOwner(ctx context.Context, ownerID string) (entities.ContestPhoto, bool, error) {
	var row photoModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND status <> ?", strings.TrimSpace(ownerID), string(entities.StatusWithdrawn)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ContestPhoto{}, false, nil
		}
		return entities.ContestPhoto{}, false, r.logError("photo_repo_get_by_owner_failed", err, "owner_id", strings.TrimSpace(ownerID))
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListByStatus(ctx context.Context, statuses []entities.PhotoStatus) ([]entities.ContestPhoto, error) {
	values := make([]string, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, string(status))
	}
	var rows []photoModel
	err := r.db.WithContext(ctx).
		Where("status IN ?", values).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("photo_repo_list_failed", err)
	}
	return toPhotoEntities(rows), nil
}

func (r *Repository) ListPending(ctx context.Context) ([]entities.ContestPhoto, error) {
	return r.ListByStatus(ctx, []entities.PhotoStatus{entities.StatusPending})
}

func (r *Repository) DeleteAllPhotos(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&photoModel{}).Error; err != nil {
		return r.logError("photo_repo_delete_all_failed", err)
	}
	return nil
}

func (r *Repository) GetSettings(ctx context.Context) (entities.ContestSettings, error) {
	var row settingsModel
	err := r.db.WithContext(ctx).
		Where("id = ?", settingsRowID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// First read bootstraps the default configuration.
			return entities.ContestSettings{VotingOpen: true, RankingPublic: true}, nil
		}
		return entities.ContestSettings{}, r.logError("photo_repo_get_settings_failed", err)
	}
	return row.toEntity(), nil
}

func (r *Repository) SaveSettings(ctx context.Context, settings entities.ContestSettings) error {
	row := settingsModel{
		ID:            settingsRowID,
		VotingOpen:    settings.VotingOpen,
		RankingPublic: settings.RankingPublic,
		Theme:         settings.Theme,
		Deadline:      settings.Deadline,
		Rewards:       settings.Rewards,
		UpdatedAt:     settings.UpdatedAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return r.logError("photo_repo_save_settings_failed", err)
	}
	return nil
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
		return r.logError("photo_repo_outbox_append_failed", err, "event_type", message.EventType)
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
		return nil, r.logError("photo_repo_outbox_list_failed", err)
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
		return r.logError("photo_repo_outbox_mark_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func (r *Repository) logError(event string, err error, keyvals ...any) error {
	args := append([]any{
		"event", event,
		"module", "contest/photo-service",
		"layer", "adapter",
		"error", err.Error(),
	}, keyvals...)
	r.logger.Error("photo repository operation failed", args...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type photoModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	OwnerID         string    `gorm:"column:owner_id;index"`
	Title           string    `gorm:"column:title"`
	Caption         string    `gorm:"column:caption"`
	ContentRef      string    `gorm:"column:content_ref"`
	Status          string    `gorm:"column:status;index"`
	RejectionReason string    `gorm:"column:rejection_reason"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (photoModel) TableName() string { return "contest_photos" }

func (m photoModel) toEntity() entities.ContestPhoto {
	return entities.ContestPhoto{
		PhotoID:         m.ID,
		OwnerID:         m.OwnerID,
		Title:           m.Title,
		Caption:         m.Caption,
		ContentRef:      m.ContentRef,
		Status:          entities.PhotoStatus(m.Status),
		RejectionReason: m.RejectionReason,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func photoModelFromEntity(photo entities.ContestPhoto) photoModel {
	return photoModel{
		ID:              photo.PhotoID,
		OwnerID:         photo.OwnerID,
		Title:           photo.Title,
		Caption:         photo.Caption,
		ContentRef:      photo.ContentRef,
		Status:          string(photo.Status),
		RejectionReason: photo.RejectionReason,
		CreatedAt:       photo.CreatedAt,
		UpdatedAt:       photo.UpdatedAt,
	}
}

func toPhotoEntities(rows []photoModel) []entities.ContestPhoto {
	items := make([]entities.ContestPhoto, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

type settingsModel struct {
	ID            string     `gorm:"column:id;primaryKey"`
	VotingOpen    bool       `gorm:"column:voting_open"`
	RankingPublic bool       `gorm:"column:ranking_public"`
	Theme         string     `gorm:"column:theme"`
	Deadline      *time.Time `gorm:"column:deadline"`
	Rewards       string     `gorm:"column:rewards"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (settingsModel) TableName() string { return "contest_settings" }

func (m settingsModel) toEntity() entities.ContestSettings {
	return entities.ContestSettings{
		VotingOpen:    m.VotingOpen,
		RankingPublic: m.RankingPublic,
		Theme:         m.Theme,
		Deadline:      m.Deadline,
		Rewards:       m.Rewards,
		UpdatedAt:     m.UpdatedAt,
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

func (outboxModel) TableName() string { return "photo_outbox" }
