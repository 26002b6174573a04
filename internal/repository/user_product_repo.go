package repository

import (
	"context"
	"time"

	"go-expiry-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserProductFilter narrows inventory listings. Nil fields do not filter.
type UserProductFilter struct {
	UserID   *uuid.UUID
	TakenOut *bool
}

type UserProductRepository interface {
	Create(ctx context.Context, item *model.UserProduct) error
	// CreateWithCatalog inserts entry into the catalog when its code is new,
	// then inserts item, in one transaction. It reports whether the catalog
	// entry was inserted.
	CreateWithCatalog(ctx context.Context, item *model.UserProduct, entry *model.Product) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserProduct, error)
	List(ctx context.Context, filter UserProductFilter) ([]model.UserProduct, error)
	// ExpiringBetween returns rows still on hand whose expiry falls in [from, to)
	ExpiringBetween(ctx context.Context, userID *uuid.UUID, from, to time.Time) ([]model.UserProduct, error)
	SetTakenOut(ctx context.Context, id uuid.UUID, takenOut bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, userID *uuid.UUID, now time.Time, warnDays int) (*InventoryStats, error)
}

// InventoryStats is the dashboard summary over users_products
type InventoryStats struct {
	TotalRows      int64 `json:"total_rows"`
	AvailableUnits int64 `json:"available_units"`
	TakenOutRows   int64 `json:"taken_out_rows"`
	ExpiredRows    int64 `json:"expired_rows"`
	ExpiringSoon   int64 `json:"expiring_soon"`
}

type userProductRepo struct {
	db *gorm.DB
}

func NewUserProductRepo(db *gorm.DB) UserProductRepository {
	return &userProductRepo{db}
}

func (r *userProductRepo) scoped(ctx context.Context, userID *uuid.UUID) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.UserProduct{})
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	return q
}

func (r *userProductRepo) Create(ctx context.Context, item *model.UserProduct) error {
	return translate(r.db.WithContext(ctx).Create(item).Error)
}

func (r *userProductRepo) CreateWithCatalog(ctx context.Context, item *model.UserProduct, entry *model.Product) (bool, error) {
	inserted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// a concurrent insert of the same code leaves the existing entry in place
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(entry)
		if res.Error != nil {
			return translate(res.Error)
		}
		inserted = res.RowsAffected > 0
		return translate(tx.Create(item).Error)
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

func (r *userProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.UserProduct, error) {
	var item model.UserProduct
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// List orders by expiry date ascending with undated rows last
func (r *userProductRepo) List(ctx context.Context, filter UserProductFilter) ([]model.UserProduct, error) {
	q := r.scoped(ctx, filter.UserID)
	if filter.TakenOut != nil {
		q = q.Where("taken_out = ?", *filter.TakenOut)
	}

	var items []model.UserProduct
	err := q.Order("CASE WHEN expiry_date IS NULL THEN 1 ELSE 0 END").
		Order("expiry_date ASC").
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *userProductRepo) ExpiringBetween(ctx context.Context, userID *uuid.UUID, from, to time.Time) ([]model.UserProduct, error) {
	var items []model.UserProduct
	err := r.scoped(ctx, userID).
		Where("taken_out = ?", false).
		Where("expiry_date >= ? AND expiry_date < ?", from, to).
		Order("expiry_date ASC").
		Find(&items).Error
	return items, err
}

func (r *userProductRepo) SetTakenOut(ctx context.Context, id uuid.UUID, takenOut bool) error {
	res := r.db.WithContext(ctx).Model(&model.UserProduct{}).Where("id = ?", id).Update("taken_out", takenOut)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return hardDelete(r.db.WithContext(ctx), &model.UserProduct{}, id)
}

// Stats counts rows relative to now. Expiry comparisons use the start of
// the current UTC day so a row expiring today is not yet expired.
func (r *userProductRepo) Stats(ctx context.Context, userID *uuid.UUID, now time.Time, warnDays int) (*InventoryStats, error) {
	var stats InventoryStats
	n := now.UTC()
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	horizon := today.AddDate(0, 0, warnDays+1)

	if err := r.scoped(ctx, userID).Count(&stats.TotalRows).Error; err != nil {
		return nil, err
	}

	if err := r.scoped(ctx, userID).
		Where("taken_out = ?", false).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&stats.AvailableUnits).Error; err != nil {
		return nil, err
	}

	if err := r.scoped(ctx, userID).
		Where("taken_out = ?", true).
		Count(&stats.TakenOutRows).Error; err != nil {
		return nil, err
	}

	if err := r.scoped(ctx, userID).
		Where("taken_out = ?", false).
		Where("expiry_date < ?", today).
		Count(&stats.ExpiredRows).Error; err != nil {
		return nil, err
	}

	if err := r.scoped(ctx, userID).
		Where("taken_out = ?", false).
		Where("expiry_date >= ? AND expiry_date < ?", today, horizon).
		Count(&stats.ExpiringSoon).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
