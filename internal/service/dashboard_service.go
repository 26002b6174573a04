package service

import (
	"context"
	"time"

	"go-expiry-tracker/internal/model"
	"go-expiry-tracker/internal/repository"

	"github.com/google/uuid"
)

const (
	DefaultTimelineDays = 7
	MaxTimelineDays     = 90
)

type DashboardService interface {
	GetDashboardStats(ctx context.Context, viewer Viewer) (*repository.InventoryStats, error)
	GetExpiryTimeline(ctx context.Context, viewer Viewer, days int) ([]TimelinePoint, error)
	GetDiscounts(ctx context.Context, viewer Viewer) ([]DiscountCandidate, error)
}

// TimelinePoint counts what expires on one calendar day
type TimelinePoint struct {
	Date  string `json:"date"`
	Rows  int    `json:"rows"`
	Units int    `json:"units"`
}

// DiscountCandidate is a row on hand that crossed a discount threshold
type DiscountCandidate struct {
	Product   model.UserProduct `json:"product"`
	DaysLeft  int               `json:"days_left"`
	Threshold int               `json:"threshold"`
}

type dashboardService struct {
	items      repository.UserProductRepository
	brands     repository.BrandRepository
	categories repository.CategoryRepository
	warnDays   int
	now        func() time.Time
}

func NewDashboardService(items repository.UserProductRepository, brands repository.BrandRepository, categories repository.CategoryRepository, warnDays int) DashboardService {
	return &dashboardService{
		items:      items,
		brands:     brands,
		categories: categories,
		warnDays:   warnDays,
		now:        time.Now,
	}
}

func scope(viewer Viewer) *uuid.UUID {
	if viewer.ViewAll {
		return nil
	}
	id := viewer.UserID
	return &id
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *dashboardService) GetDashboardStats(ctx context.Context, viewer Viewer) (*repository.InventoryStats, error) {
	return s.items.Stats(ctx, scope(viewer), s.now(), s.warnDays)
}

// GetExpiryTimeline returns one point per day starting today, including
// days where nothing expires
func (s *dashboardService) GetExpiryTimeline(ctx context.Context, viewer Viewer, days int) ([]TimelinePoint, error) {
	if days <= 0 {
		days = DefaultTimelineDays
	}
	if days > MaxTimelineDays {
		days = MaxTimelineDays
	}

	from := startOfDay(s.now())
	to := from.AddDate(0, 0, days)
	items, err := s.items.ExpiringBetween(ctx, scope(viewer), from, to)
	if err != nil {
		return nil, err
	}

	points := make([]TimelinePoint, days)
	for i := range points {
		points[i].Date = from.AddDate(0, 0, i).Format(dateLayout)
	}
	for _, it := range items {
		idx := int(startOfDay(*it.ExpiryDate).Sub(from).Hours() / 24)
		if idx < 0 || idx >= days {
			continue
		}
		points[idx].Rows++
		points[idx].Units += it.Quantity
	}
	return points, nil
}

// DiscountTier picks the tightest threshold a row has crossed: the smallest
// threshold that is still >= daysLeft. ok is false when no threshold has
// been reached or the row already expired.
func DiscountTier(thresholds []int, daysLeft int) (tier int, ok bool) {
	if daysLeft < 0 {
		return 0, false
	}
	for _, t := range thresholds {
		if t >= daysLeft && (!ok || t < tier) {
			tier, ok = t, true
		}
	}
	return tier, ok
}

func (s *dashboardService) GetDiscounts(ctx context.Context, viewer Viewer) ([]DiscountCandidate, error) {
	onHand := false
	filter := repository.UserProductFilter{UserID: scope(viewer), TakenOut: &onHand}
	items, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	brands, err := s.brands.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	inProgram := make(map[string]bool, len(brands))
	for _, b := range brands {
		if b.InOfferProgram {
			inProgram[folder.String(b.Name)] = true
		}
	}

	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	thresholds := make(map[string][]int, len(categories))
	for _, c := range categories {
		thresholds[folder.String(c.Name)] = c.DiscountDays
	}

	now := s.now()
	out := make([]DiscountCandidate, 0)
	for _, it := range items {
		if !inProgram[folder.String(it.Brand)] {
			continue
		}
		daysLeft, dated := it.DaysUntilExpiry(now)
		if !dated {
			continue
		}
		tier, ok := DiscountTier(thresholds[folder.String(it.Category)], daysLeft)
		if !ok {
			continue
		}
		out = append(out, DiscountCandidate{Product: it, DaysLeft: daysLeft, Threshold: tier})
	}
	return out, nil
}
