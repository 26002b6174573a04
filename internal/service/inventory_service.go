package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-expiry-tracker/internal/barcode"
	"go-expiry-tracker/internal/cache"
	"go-expiry-tracker/internal/model"
	"go-expiry-tracker/internal/repository"
	"go-expiry-tracker/pkg/logger"
	"go-expiry-tracker/pkg/validator"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Viewer is the requester as seen by inventory operations. ViewAll viewers
// see and modify every row; others only their own.
type Viewer struct {
	UserID  uuid.UUID
	ViewAll bool
}

func (v Viewer) canTouch(item *model.UserProduct) bool {
	return v.ViewAll || item.UserID == v.UserID
}

type InventoryService interface {
	ListProducts(ctx context.Context, viewer Viewer, takenOut *bool) ([]model.UserProduct, error)
	AddProduct(ctx context.Context, viewer Viewer, req *AddProductRequest) (*model.UserProduct, error)
	ToggleTakenOut(ctx context.Context, viewer Viewer, id uuid.UUID) (*model.UserProduct, error)
	DeleteProduct(ctx context.Context, viewer Viewer, id uuid.UUID) error
	Catalog(ctx context.Context) ([]model.Product, error)
	CatalogProduct(ctx context.Context, code string) (*model.Product, error)
	Lookup(ctx context.Context, rawCode string) (*LookupResult, error)
	CreateCatalogProduct(ctx context.Context, req *CatalogRequest, actorID string) (*model.Product, error)
	UpdateCatalogProduct(ctx context.Context, code string, req *CatalogRequest, actorID string) (*model.Product, error)
	DeleteCatalogProduct(ctx context.Context, code string) error
}

type AddProductRequest struct {
	Code       string `json:"code" validate:"required,barcode,max=32"`
	Name       string `json:"name" validate:"required,max=255"`
	Brand      string `json:"brand" validate:"max=255"`
	Category   string `json:"category" validate:"max=255"`
	ExpiryDate string `json:"expiry_date"` // YYYY-MM-DD or RFC 3339, empty for none
	Quantity   int    `json:"quantity" validate:"min=0"`
}

// CatalogRequest edits a catalog entry. On update the code comes from the
// path and the body's code is ignored.
type CatalogRequest struct {
	Code     string `json:"code" validate:"required,barcode,max=32"`
	Name     string `json:"name" validate:"required,max=255"`
	Brand    string `json:"brand" validate:"max=255"`
	Category string `json:"category" validate:"max=255"`
}

// ProductDraft prefills the "add product" form after a scan
type ProductDraft struct {
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	Brand      string     `json:"brand"`
	Category   string     `json:"category"`
	ExpiryDate *time.Time `json:"expiry_date"`
	Quantity   int        `json:"quantity"`
	TakenOut   bool       `json:"taken_out"`
}

type LookupResult struct {
	Found bool         `json:"found"`
	Draft ProductDraft `json:"draft"`
}

// MarshalJSON sends only the code as the draft of an unknown product
func (r LookupResult) MarshalJSON() ([]byte, error) {
	if r.Found {
		type plain LookupResult
		return json.Marshal(plain(r))
	}
	return json.Marshal(map[string]interface{}{
		"found": false,
		"draft": map[string]string{"code": r.Draft.Code},
	})
}

type inventoryService struct {
	items    repository.UserProductRepository
	catalog  repository.ProductRepository
	cache    cache.CatalogCache
	notifier Notifier
	log      *logger.Logger
}

func NewInventoryService(items repository.UserProductRepository, catalog repository.ProductRepository, c cache.CatalogCache, notifier Notifier, log *logger.Logger) InventoryService {
	return &inventoryService{
		items:    items,
		catalog:  catalog,
		cache:    c,
		notifier: notifier,
		log:      log,
	}
}

func (s *inventoryService) ListProducts(ctx context.Context, viewer Viewer, takenOut *bool) ([]model.UserProduct, error) {
	filter := repository.UserProductFilter{TakenOut: takenOut}
	if !viewer.ViewAll {
		filter.UserID = &viewer.UserID
	}
	return s.items.List(ctx, filter)
}

// parseExpiry accepts a calendar date or a timestamp and keeps only the
// date, as UTC midnight
func parseExpiry(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, raw); err != nil {
			return nil, fmt.Errorf("%w: expiry_date must be YYYY-MM-DD", validator.ErrValidation)
		}
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d, nil
}

func (s *inventoryService) AddProduct(ctx context.Context, viewer Viewer, req *AddProductRequest) (*model.UserProduct, error) {
	code, err := barcode.Normalize(req.Code)
	if err != nil || !barcode.ValidChecksum(code) {
		return nil, ErrInvalidCode
	}
	req.Code = code
	req.Name = strings.TrimSpace(req.Name)
	req.Brand = strings.TrimSpace(req.Brand)
	req.Category = strings.TrimSpace(req.Category)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	expiry, err := parseExpiry(req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	actor := viewer.UserID.String()
	item := &model.UserProduct{
		Code:       req.Code,
		Name:       req.Name,
		Brand:      req.Brand,
		Category:   req.Category,
		ExpiryDate: expiry,
		Quantity:   req.Quantity,
		TakenOut:   false,
		UserID:     viewer.UserID,
	}
	item.CreatedBy = actor
	entry := &model.Product{
		Code:     req.Code,
		Name:     req.Name,
		Brand:    req.Brand,
		Category: req.Category,
	}
	entry.CreatedBy = actor

	inserted, err := s.store(ctx, item, entry)
	if err != nil {
		return nil, err
	}
	if inserted {
		if err := s.cache.Set(ctx, entry); err != nil {
			s.log.Warn().Err(err).Str("code", entry.Code).Msg("catalog cache fill failed")
		}
	}

	s.notifier.Publish(item.UserID.String(), inventoryEvent(ActionProductAdded, item))
	return item, nil
}

// store inserts item. Codes missing from the catalog are registered in the
// same transaction; it reports whether that happened.
func (s *inventoryService) store(ctx context.Context, item *model.UserProduct, entry *model.Product) (bool, error) {
	_, err := s.CatalogProduct(ctx, entry.Code)
	if err == nil {
		return false, s.items.Create(ctx, item)
	}
	if !errors.Is(err, ErrProductNotFound) {
		return false, err
	}
	return s.items.CreateWithCatalog(ctx, item, entry)
}

func (s *inventoryService) ownedItem(ctx context.Context, viewer Viewer, id uuid.UUID) (*model.UserProduct, error) {
	item, err := s.items.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if !viewer.canTouch(item) {
		return nil, ErrNotOwner
	}
	return item, nil
}

func (s *inventoryService) ToggleTakenOut(ctx context.Context, viewer Viewer, id uuid.UUID) (*model.UserProduct, error) {
	item, err := s.ownedItem(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	next := !item.TakenOut
	if err := s.items.SetTakenOut(ctx, id, next); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	item.TakenOut = next

	s.notifier.Publish(item.UserID.String(), inventoryEvent(ActionTakenOutToggled, item))
	return item, nil
}

func (s *inventoryService) DeleteProduct(ctx context.Context, viewer Viewer, id uuid.UUID) error {
	item, err := s.ownedItem(ctx, viewer, id)
	if err != nil {
		return err
	}

	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	s.notifier.Publish(item.UserID.String(), inventoryEvent(ActionProductDeleted, map[string]interface{}{
		"id":   item.ID,
		"code": item.Code,
	}))
	return nil
}

func (s *inventoryService) Catalog(ctx context.Context) ([]model.Product, error) {
	return s.catalog.FindAll(ctx)
}

// CatalogProduct reads through the cache. Cache failures fall back to the
// database.
func (s *inventoryService) CatalogProduct(ctx context.Context, code string) (*model.Product, error) {
	product, err := s.cache.Get(ctx, code)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn().Err(err).Str("code", code).Msg("catalog cache read failed")
	}

	product, err = s.catalog.FindByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, product); err != nil {
		s.log.Warn().Err(err).Str("code", code).Msg("catalog cache fill failed")
	}
	return product, nil
}

// Lookup resolves a scanned code. A miss is not an error: the draft then
// carries only the code so the panel can open the "new product" form.
func (s *inventoryService) Lookup(ctx context.Context, rawCode string) (*LookupResult, error) {
	code, err := barcode.Normalize(rawCode)
	if err != nil {
		return nil, ErrInvalidCode
	}

	product, err := s.CatalogProduct(ctx, code)
	if errors.Is(err, ErrProductNotFound) {
		return &LookupResult{Found: false, Draft: ProductDraft{Code: code}}, nil
	}
	if err != nil {
		return nil, err
	}

	return &LookupResult{
		Found: true,
		Draft: ProductDraft{
			Code:     product.Code,
			Name:     product.Name,
			Brand:    product.Brand,
			Category: product.Category,
		},
	}, nil
}

func (req *CatalogRequest) normalize() error {
	code, err := barcode.Normalize(req.Code)
	if err != nil || !barcode.ValidChecksum(code) {
		return ErrInvalidCode
	}
	req.Code = code
	req.Name = strings.TrimSpace(req.Name)
	req.Brand = strings.TrimSpace(req.Brand)
	req.Category = strings.TrimSpace(req.Category)
	return validator.Validate(req)
}

func (s *inventoryService) CreateCatalogProduct(ctx context.Context, req *CatalogRequest, actorID string) (*model.Product, error) {
	if err := req.normalize(); err != nil {
		return nil, err
	}

	product := &model.Product{
		Code:     req.Code,
		Name:     req.Name,
		Brand:    req.Brand,
		Category: req.Category,
	}
	product.CreatedBy = actorID

	if err := s.catalog.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	if err := s.cache.Set(ctx, product); err != nil {
		s.log.Warn().Err(err).Str("code", product.Code).Msg("catalog cache fill failed")
	}
	return product, nil
}

// UpdateCatalogProduct changes what a code autofills to. Inventory rows keep
// the values they were added with.
func (s *inventoryService) UpdateCatalogProduct(ctx context.Context, code string, req *CatalogRequest, actorID string) (*model.Product, error) {
	req.Code = code
	if err := req.normalize(); err != nil {
		return nil, err
	}

	product, err := s.catalog.FindByCode(ctx, req.Code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Brand = req.Brand
	product.Category = req.Category
	product.UpdatedBy = actorID
	if err := s.catalog.Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidate(ctx, product.Code)
	return product, nil
}

func (s *inventoryService) DeleteCatalogProduct(ctx context.Context, code string) error {
	normalized, err := barcode.Normalize(code)
	if err != nil {
		return ErrInvalidCode
	}

	err = s.catalog.DeleteByCode(ctx, normalized)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	s.invalidate(ctx, normalized)
	return nil
}

func (s *inventoryService) invalidate(ctx context.Context, code string) {
	if err := s.cache.Invalidate(ctx, code); err != nil {
		s.log.Warn().Err(err).Str("code", code).Msg("catalog cache invalidate failed")
	}
}
