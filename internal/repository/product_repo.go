package repository

import (
	"context"

	"go-expiry-tracker/internal/model"

	"gorm.io/gorm"
)

// ProductRepository stores the barcode catalog
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	DeleteByCode(ctx context.Context, code string) error
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByCode(ctx context.Context, code string) (*model.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return translate(r.db.WithContext(ctx).Create(product).Error)
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return translate(r.db.WithContext(ctx).Save(product).Error)
}

// DeleteByCode removes the entry outright so the code can be registered again
func (r *productRepo) DeleteByCode(ctx context.Context, code string) error {
	res := r.db.WithContext(ctx).Unscoped().Delete(&model.Product{}, "code = ?", code)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByCode(ctx context.Context, code string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "code = ?", code).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}
