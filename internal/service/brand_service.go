package service

import (
	"context"
	"errors"
	"strings"

	"go-expiry-tracker/internal/model"
	"go-expiry-tracker/internal/repository"
	"go-expiry-tracker/pkg/validator"

	"github.com/google/uuid"
)

type BrandService interface {
	List(ctx context.Context, search string) ([]model.Brand, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Brand, error)
	Create(ctx context.Context, req *BrandRequest, actorID string) (*model.Brand, error)
	Update(ctx context.Context, id uuid.UUID, req *BrandRequest, actorID string) (*model.Brand, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Options(ctx context.Context, search string) ([]Option, error)
}

type BrandRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	InOfferProgram *bool  `json:"in_offer_program"`
}

type brandService struct {
	repo repository.BrandRepository
}

func NewBrandService(repo repository.BrandRepository) BrandService {
	return &brandService{repo: repo}
}

// List returns brands sorted by name, filtered by a case-insensitive
// substring of the name
func (s *brandService) List(ctx context.Context, search string) ([]model.Brand, error) {
	brands, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Brand, 0, len(brands))
	for _, b := range brands {
		if matches(b.Name, search) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *brandService) Get(ctx context.Context, id uuid.UUID) (*model.Brand, error) {
	brand, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBrandNotFound
	}
	return brand, err
}

func (s *brandService) Create(ctx context.Context, req *BrandRequest, actorID string) (*model.Brand, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	brand := &model.Brand{Name: req.Name}
	if req.InOfferProgram != nil {
		brand.InOfferProgram = *req.InOfferProgram
	}
	brand.CreatedBy = actorID

	if err := s.repo.Create(ctx, brand); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrBrandExists
		}
		return nil, err
	}
	return brand, nil
}

func (s *brandService) Update(ctx context.Context, id uuid.UUID, req *BrandRequest, actorID string) (*model.Brand, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	brand, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, req.Name, id); err != nil {
		return nil, err
	}

	brand.Name = req.Name
	if req.InOfferProgram != nil {
		brand.InOfferProgram = *req.InOfferProgram
	}
	brand.UpdatedBy = actorID

	if err := s.repo.Update(ctx, brand); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrBrandExists
		}
		return nil, err
	}
	return brand, nil
}

// ensureNameFree rejects a name already held by another brand
func (s *brandService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return ErrBrandExists
	}
	return nil
}

func (s *brandService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBrandNotFound
	}
	return err
}

func (s *brandService) Options(ctx context.Context, search string) ([]Option, error) {
	brands, err := s.List(ctx, search)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(brands))
	for _, b := range brands {
		opts = append(opts, Option{ID: b.ID.String(), Label: b.Name})
	}
	return opts, nil
}
