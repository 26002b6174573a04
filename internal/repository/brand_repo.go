package repository

import (
	"context"

	"go-expiry-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BrandRepository interface {
	Create(ctx context.Context, brand *model.Brand) error
	Update(ctx context.Context, brand *model.Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Brand, error)
	FindByName(ctx context.Context, name string) (*model.Brand, error)
	FindAll(ctx context.Context) ([]model.Brand, error)
}

type brandRepo struct {
	db *gorm.DB
}

func NewBrandRepo(db *gorm.DB) BrandRepository {
	return &brandRepo{db}
}

func (r *brandRepo) Create(ctx context.Context, brand *model.Brand) error {
	return translate(r.db.WithContext(ctx).Create(brand).Error)
}

func (r *brandRepo) Update(ctx context.Context, brand *model.Brand) error {
	return translate(r.db.WithContext(ctx).Save(brand).Error)
}

func (r *brandRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return hardDelete(r.db.WithContext(ctx), &model.Brand{}, id)
}

func (r *brandRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &brand, nil
}

func (r *brandRepo) FindByName(ctx context.Context, name string) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&brand).Error; err != nil {
		return nil, translate(err)
	}
	return &brand, nil
}

// FindAll returns brands ordered by name
func (r *brandRepo) FindAll(ctx context.Context) ([]model.Brand, error) {
	var brands []model.Brand
	err := r.db.WithContext(ctx).Order("name ASC").Find(&brands).Error
	return brands, err
}
