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

type CategoryService interface {
	List(ctx context.Context, search string) ([]model.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Create(ctx context.Context, req *CategoryRequest, actorID string) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, req *CategoryRequest, actorID string) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddDiscountDay(ctx context.Context, id uuid.UUID, day int, actorID string) (*model.Category, error)
	RemoveDiscountDay(ctx context.Context, id uuid.UUID, day int, actorID string) (*model.Category, error)
	Options(ctx context.Context, search string) ([]Option, error)
}

// CategoryRequest carries discount days as sent by the panel. A nil slice
// means "not provided".
type CategoryRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	DiscountDays []int  `json:"discount_days"`
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context, search string) ([]model.Category, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Category, 0, len(categories))
	for _, c := range categories {
		if matches(c.Name, search) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	return category, err
}

func (s *categoryService) Create(ctx context.Context, req *CategoryRequest, actorID string) (*model.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	days := model.DefaultDiscountDays
	if req.DiscountDays != nil {
		days = req.DiscountDays
	}
	category := &model.Category{
		Name:         req.Name,
		DiscountDays: model.NormalizeDiscountDays(days),
	}
	category.CreatedBy = actorID

	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *CategoryRequest, actorID string) (*model.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, req.Name, id); err != nil {
		return nil, err
	}

	category.Name = req.Name
	if req.DiscountDays != nil {
		category.DiscountDays = model.NormalizeDiscountDays(req.DiscountDays)
	}
	return s.save(ctx, category, actorID)
}

// ensureNameFree rejects a name already held by another category
func (s *categoryService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return ErrCategoryExists
	}
	return nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCategoryNotFound
	}
	return err
}

// AddDiscountDay inserts day into the thresholds. Adding a day that is
// already present leaves the category unchanged.
func (s *categoryService) AddDiscountDay(ctx context.Context, id uuid.UUID, day int, actorID string) (*model.Category, error) {
	if day < model.MinDiscountDay || day > model.MaxDiscountDay {
		return nil, ErrInvalidDay
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if category.HasDiscountDay(day) {
		return category, nil
	}

	category.DiscountDays = model.NormalizeDiscountDays(append(category.DiscountDays, day))
	return s.save(ctx, category, actorID)
}

func (s *categoryService) RemoveDiscountDay(ctx context.Context, id uuid.UUID, day int, actorID string) (*model.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !category.HasDiscountDay(day) {
		return category, nil
	}

	kept := make([]int, 0, len(category.DiscountDays))
	for _, d := range category.DiscountDays {
		if d != day {
			kept = append(kept, d)
		}
	}
	category.DiscountDays = model.NormalizeDiscountDays(kept)
	return s.save(ctx, category, actorID)
}

func (s *categoryService) Options(ctx context.Context, search string) ([]Option, error) {
	categories, err := s.List(ctx, search)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(categories))
	for _, c := range categories {
		opts = append(opts, Option{ID: c.ID.String(), Label: c.Name})
	}
	return opts, nil
}

func (s *categoryService) save(ctx context.Context, category *model.Category, actorID string) (*model.Category, error) {
	category.UpdatedBy = actorID
	if err := s.repo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return category, nil
}
