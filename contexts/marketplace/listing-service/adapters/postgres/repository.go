package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"vestiaire/contexts/marketplace/listing-service/domain/entities"
	domainerrors "vestiaire/contexts/marketplace/listing-service/domain/errors"
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

// Migrate creates the marketplace tables and the uniqueness constraints that
// arbitrate reservation races.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&listingModel{}, &reservationModel{}, &favoriteModel{}, &outboxModel{})
}

func (r *Repository) CreateListing(ctx context.Context, listing entities.Listing) error {
	row := listingModelFromEntity(listing)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("listing_repo_create_failed", err, "listing_id", listing.ListingID)
	}
	return nil
}

func (r *Repository) GetListing(ctx context.Context, listingID string) (entities.Listing, error) {
	var row listingModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(listingID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Listing{}, domainerrors.ErrListingNotFound
		}
		return entities.Listing{}, r.logError("listing_repo_get_failed", err, "listing_id", strings.TrimSpace(listingID))
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateListing(ctx context.Context, listing entities.Listing) error {
	row := listingModelFromEntity(listing)
	res := r.db.WithContext(ctx).Model(&listingModel{}).Where("id = ?", listing.ListingID).Updates(map[string]any{
		"kind":             row.Kind,
		"price":            row.Price,
		"title":            row.Title,
		"description":      row.Description,
		"category":         row.Category,
		"size":             row.Size,
		"condition":        row.Condition,
		"brand":            row.Brand,
		"status":           row.Status,
		"rejection_reason": row.RejectionReason,
		"content_ref":      row.ContentRef,
		"updated_at":       row.UpdatedAt,
	})
	if res.Error != nil {
		return r.logError("listing_repo_update_failed", res.Error, "listing_id", listing.ListingID)
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrListingNotFound
	}
	return nil
}

func (r *Repository) DeleteListing(ctx context.Context, listingID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", listingID).Delete(&reservationModel{}).Error; err != nil {
			return r.logError("listing_repo_delete_reservation_failed", err, "listing_id", listingID)
		}
		if err := tx.Where("listing_id = ?", listingID).Delete(&favoriteModel{}).Error; err != nil {
			return r.logError("listing_repo_delete_favorites_failed", err, "listing_id", listingID)
		}
		res := tx.Where("id = ?", listingID).Delete(&listingModel{})
		if res.Error != nil {
			return r.logError("listing_repo_delete_failed", res.Error, "listing_id", listingID)
		}
		if res.RowsAffected == 0 {
			return domainerrors.ErrListingNotFound
		}
		return nil
	})
}

func (r *Repository) ListListings(ctx context.Context, statuses []entities.ListingStatus, filter entities.ListingFilter) ([]entities.Listing, error) {
	tx := r.db.WithContext(ctx).Model(&listingModel{}).Where("status IN ?", statusStrings(statuses))

	if filter.DonationsOnly {
		tx = tx.Where("kind = ?", string(entities.KindDonation))
	}
	if filter.Category != "" {
		tx = tx.Where("category ILIKE ?", filter.Category)
	}
	if filter.Size != "" {
		tx = tx.Where("size ILIKE ?", filter.Size)
	}
	if filter.Condition != "" {
		tx = tx.Where("condition ILIKE ?", filter.Condition)
	}
	if filter.MinPrice != nil {
		tx = tx.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		tx = tx.Where("price IS NULL OR price <= ?", *filter.MaxPrice)
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		pattern := "%" + query + "%"
		tx = tx.Where("title ILIKE ? OR brand ILIKE ? OR category ILIKE ?", pattern, pattern, pattern)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	var rows []listingModel
	err := tx.Order("created_at DESC, id ASC").Limit(limit).Offset(filter.Offset).Find(&rows).Error
	if err != nil {
		return nil, r.logError("listing_repo_list_failed", err)
	}
	return toListingEntities(rows), nil
}

func (r *Repository) ListBySeller(ctx context.Context, sellerID string) ([]entities.Listing, error) {
	var rows []listingModel
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", strings.TrimSpace(sellerID)).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("listing_repo_list_by_seller_failed", err, "seller_id", strings.TrimSpace(sellerID))
	}
	return toListingEntities(rows), nil
}

func (r *Repository) ListPending(ctx context.Context) ([]entities.Listing, error) {
	var rows []listingModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.StatusPending)).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("listing_repo_list_pending_failed", err)
	}
	return toListingEntities(rows), nil
}

// AcquireReservation is the linearization point for the marketplace. The
// conditional status update and the claim insert commit together; the unique
// index on reservations.listing_id makes the database the arbiter when two
// buyers race past the CAS.
func (r *Repository) AcquireReservation(ctx context.Context, reservation entities.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&listingModel{}).
			Where("id = ? AND status = ?", reservation.ListingID, string(entities.StatusApproved)).
			Updates(map[string]any{
				"status":     string(entities.StatusReserved),
				"updated_at": reservation.CreatedAt,
			})
		if res.Error != nil {
			return r.logError("listing_repo_reserve_cas_failed", res.Error, "listing_id", reservation.ListingID)
		}
		if res.RowsAffected == 0 {
			var row listingModel
			if err := tx.Where("id = ?", reservation.ListingID).First(&row).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domainerrors.ErrListingNotFound
				}
				return r.logError("listing_repo_reserve_lookup_failed", err, "listing_id", reservation.ListingID)
			}
			if row.Status == string(entities.StatusReserved) {
				return domainerrors.ErrAlreadyReserved
			}
			return domainerrors.ErrInvalidTransition
		}

		row := reservationModel{
			ID:        reservation.ReservationID,
			ListingID: reservation.ListingID,
			BuyerID:   reservation.BuyerID,
			CreatedAt: reservation.CreatedAt,
		}
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrAlreadyReserved
			}
			return r.logError("listing_repo_reserve_insert_failed", err, "listing_id", reservation.ListingID)
		}
		return nil
	})
}

func (r *Repository) ReleaseReservation(ctx context.Context, listingID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("listing_id = ?", listingID).Delete(&reservationModel{})
		if res.Error != nil {
			return r.logError("listing_repo_release_failed", res.Error, "listing_id", listingID)
		}
		if res.RowsAffected == 0 {
			return domainerrors.ErrReservationNotFound
		}
		err := tx.Model(&listingModel{}).
			Where("id = ? AND status = ?", listingID, string(entities.StatusReserved)).
			Updates(map[string]any{
				"status":     string(entities.StatusApproved),
				"updated_at": time.Now().UTC(),
			}).Error
		if err != nil {
			return r.logError("listing_repo_release_status_failed", err, "listing_id", listingID)
		}
		return nil
	})
}

func (r *Repository) GetReservationByListing(ctx context.Context, listingID string) (entities.Reservation, bool, error) {
	var row reservationModel
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", strings.TrimSpace(listingID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Reservation{}, false, nil
		}
		return entities.Reservation{}, false, r.logError("listing_repo_get_reservation_failed", err, "listing_id", strings.TrimSpace(listingID))
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetReservationByBuyer(ctx context.Context, buyerID string) (entities.Reservation, bool, error) {
	var row reservationModel
	err := r.db.WithContext(ctx).
		Table("reservations AS r").
		Select("r.*").
		Joins("JOIN listings AS l ON l.id = r.listing_id").
		Where("r.buyer_id = ?", strings.TrimSpace(buyerID)).
		Where("l.status = ?", string(entities.StatusReserved)).
		Order("r.created_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Reservation{}, false, nil
		}
		return entities.Reservation{}, false, r.logError("listing_repo_get_reservation_by_buyer_failed", err, "buyer_id", strings.TrimSpace(buyerID))
	}
	return row.toEntity(), true, nil
}

func (r *Repository) AddFavorite(ctx context.Context, favorite entities.Favorite) error {
	row := favoriteModel{
		ID:        favorite.FavoriteID,
		UserID:    favorite.UserID,
		ListingID: favorite.ListingID,
		CreatedAt: favorite.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil // already favorited, idempotent
		}
		return r.logError("listing_repo_add_favorite_failed", err, "listing_id", favorite.ListingID)
	}
	return nil
}

func (r *Repository) RemoveFavorite(ctx context.Context, userID, listingID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&favoriteModel{}).
		Error
	if err != nil {
		return r.logError("listing_repo_remove_favorite_failed", err, "listing_id", listingID)
	}
	return nil
}

func (r *Repository) ListFavoriteListings(ctx context.Context, userID string) ([]entities.Listing, error) {
	var rows []listingModel
	err := r.db.WithContext(ctx).
		Table("listings AS l").
		Select("l.*").
		Joins("JOIN favorites AS f ON f.listing_id = l.id").
		Where("f.user_id = ?", strings.TrimSpace(userID)).
		Order("f.created_at DESC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("listing_repo_list_favorites_failed", err, "user_id", strings.TrimSpace(userID))
	}
	return toListingEntities(rows), nil
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
		return r.logError("listing_repo_outbox_append_failed", err, "event_type", message.EventType)
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
		return nil, r.logError("listing_repo_outbox_list_failed", err)
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
		return r.logError("listing_repo_outbox_mark_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func (r *Repository) logError(event string, err error, keyvals ...any) error {
	args := append([]any{
		"event", event,
		"module", "marketplace/listing-service",
		"layer", "adapter",
		"error", err.Error(),
	}, keyvals...)
	r.logger.Error("listing repository operation failed", args...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func statusStrings(statuses []entities.ListingStatus) []string {
	values := make([]string, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, string(status))
	}
	return values
}

type listingModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	SellerID        string    `gorm:"column:seller_id;index"`
	Kind            string    `gorm:"column:kind"`
	Price           *float64  `gorm:"column:price"`
	Title           string    `gorm:"column:title"`
	Description     string    `gorm:"column:description"`
	Category        string    `gorm:"column:category"`
	Size            string    `gorm:"column:size"`
	Condition       string    `gorm:"column:condition"`
	Brand           string    `gorm:"column:brand"`
	Status          string    `gorm:"column:status;index"`
	RejectionReason string    `gorm:"column:rejection_reason"`
	ContentRef      string    `gorm:"column:content_ref"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (listingModel) TableName() string { return "listings" }

func (m listingModel) toEntity() entities.Listing {
	return entities.Listing{
		ListingID:       m.ID,
		SellerID:        m.SellerID,
		Kind:            entities.ListingKind(m.Kind),
		Price:           m.Price,
		Title:           m.Title,
		Description:     m.Description,
		Category:        m.Category,
		Size:            m.Size,
		Condition:       m.Condition,
		Brand:           m.Brand,
		Status:          entities.ListingStatus(m.Status),
		RejectionReason: m.RejectionReason,
		ContentRef:      m.ContentRef,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func listingModelFromEntity(listing entities.Listing) listingModel {
	return listingModel{
		ID:              listing.ListingID,
		SellerID:        listing.SellerID,
		Kind:            string(listing.Kind),
		Price:           listing.Price,
		Title:           listing.Title,
		Description:     listing.Description,
		Category:        listing.Category,
		Size:            listing.Size,
		Condition:       listing.Condition,
		Brand:           listing.Brand,
		Status:          string(listing.Status),
		RejectionReason: listing.RejectionReason,
		ContentRef:      listing.ContentRef,
		CreatedAt:       listing.CreatedAt,
		UpdatedAt:       listing.UpdatedAt,
	}
}

func toListingEntities(rows []listingModel) []entities.Listing {
	items := make([]entities.Listing, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

type reservationModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	ListingID string    `gorm:"column:listing_id;uniqueIndex"`
	BuyerID   string    `gorm:"column:buyer_id;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func (m reservationModel) toEntity() entities.Reservation {
	return entities.Reservation{
		ReservationID: m.ID,
		ListingID:     m.ListingID,
		BuyerID:       m.BuyerID,
		CreatedAt:     m.CreatedAt,
	}
}

type favoriteModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    string    `gorm:"column:user_id;uniqueIndex:uq_favorites_user_listing"`
	ListingID string    `gorm:"column:listing_id;uniqueIndex:uq_favorites_user_listing"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (favoriteModel) TableName() string { return "favorites" }

type outboxModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status;index"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "listing_outbox" }
