package service

import (
	"context"
	"testing"
	"time"

	"go-expiry-tracker/internal/model"
	"go-expiry-tracker/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountTier(t *testing.T) {
	thresholds := []int{30, 15, 5}

	tests := []struct {
		name     string
		daysLeft int
		want     int
		ok       bool
	}{
		{"far away", 31, 0, false},
		{"on the first threshold", 30, 30, true},
		{"between thresholds", 20, 30, true},
		{"second tier", 15, 15, true},
		{"tightest tier", 3, 5, true},
		{"expires today", 0, 5, true},
		{"already expired", -1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DiscountTier(thresholds, tt.daysLeft)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := DiscountTier(nil, 1)
	assert.False(t, ok)
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

type dashboardFixture struct {
	svc   DashboardService
	items repository.UserProductRepository
	owner uuid.UUID
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	ctx := context.Background()
	db := newTestDB(t)
	brands := repository.NewBrandRepo(db)
	categories := repository.NewCategoryRepo(db)
	items := repository.NewUserProductRepo(db)

	require.NoError(t, brands.Create(ctx, &model.Brand{Name: "Alpro", InOfferProgram: true}))
	require.NoError(t, brands.Create(ctx, &model.Brand{Name: "Danone"}))
	require.NoError(t, categories.Create(ctx, &model.Category{Name: "Dairy", DiscountDays: []int{30, 15, 5}}))

	svc := NewDashboardService(items, brands, categories, 7)
	svc.(*dashboardService).now = func() time.Time {
		return time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)
	}
	return &dashboardFixture{svc: svc, items: items, owner: uuid.New()}
}

func (f *dashboardFixture) add(t *testing.T, p model.UserProduct) {
	t.Helper()
	if p.UserID == uuid.Nil {
		p.UserID = f.owner
	}
	require.NoError(t, f.items.Create(context.Background(), &p))
}

func TestGetDiscounts(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture(t)

	f.add(t, model.UserProduct{Code: "1", Name: "soon", Brand: "alpro", Category: "Dairy", ExpiryDate: date(2026, 5, 13)})
	f.add(t, model.UserProduct{Code: "2", Name: "later", Brand: "Alpro", Category: "Dairy", ExpiryDate: date(2026, 5, 30)})
	f.add(t, model.UserProduct{Code: "3", Name: "too far", Brand: "Alpro", Category: "Dairy", ExpiryDate: date(2026, 7, 1)})
	f.add(t, model.UserProduct{Code: "4", Name: "not in program", Brand: "Danone", Category: "Dairy", ExpiryDate: date(2026, 5, 12)})
	f.add(t, model.UserProduct{Code: "5", Name: "expired", Brand: "Alpro", Category: "Dairy", ExpiryDate: date(2026, 5, 1)})
	f.add(t, model.UserProduct{Code: "6", Name: "taken out", Brand: "Alpro", Category: "Dairy", ExpiryDate: date(2026, 5, 11), TakenOut: true})
	f.add(t, model.UserProduct{Code: "7", Name: "no category", Brand: "Alpro", ExpiryDate: date(2026, 5, 11)})
	f.add(t, model.UserProduct{Code: "8", Name: "someone else", Brand: "Alpro", Category: "Dairy", ExpiryDate: date(2026, 5, 11), UserID: uuid.New()})

	got, err := f.svc.GetDiscounts(ctx, Viewer{UserID: f.owner})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "soon", got[0].Product.Name)
	assert.Equal(t, 3, got[0].DaysLeft)
	assert.Equal(t, 5, got[0].Threshold)

	assert.Equal(t, "later", got[1].Product.Name)
	assert.Equal(t, 20, got[1].DaysLeft)
	assert.Equal(t, 30, got[1].Threshold)

	all, err := f.svc.GetDiscounts(ctx, Viewer{ViewAll: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetExpiryTimeline(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture(t)

	f.add(t, model.UserProduct{Code: "1", Name: "today", Quantity: 2, ExpiryDate: date(2026, 5, 10)})
	f.add(t, model.UserProduct{Code: "2", Name: "today too", Quantity: 1, ExpiryDate: date(2026, 5, 10)})
	f.add(t, model.UserProduct{Code: "3", Name: "day 3", Quantity: 4, ExpiryDate: date(2026, 5, 13)})
	f.add(t, model.UserProduct{Code: "4", Name: "outside", Quantity: 9, ExpiryDate: date(2026, 5, 17)})
	f.add(t, model.UserProduct{Code: "5", Name: "yesterday", Quantity: 9, ExpiryDate: date(2026, 5, 9)})

	points, err := f.svc.GetExpiryTimeline(ctx, Viewer{UserID: f.owner}, 7)
	require.NoError(t, err)
	require.Len(t, points, 7)

	assert.Equal(t, TimelinePoint{Date: "2026-05-10", Rows: 2, Units: 3}, points[0])
	assert.Equal(t, TimelinePoint{Date: "2026-05-13", Rows: 1, Units: 4}, points[3])
	assert.Equal(t, TimelinePoint{Date: "2026-05-16", Rows: 0, Units: 0}, points[6])

	points, err = f.svc.GetExpiryTimeline(ctx, Viewer{UserID: f.owner}, 0)
	require.NoError(t, err)
	assert.Len(t, points, DefaultTimelineDays)
}

func TestGetDashboardStats(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture(t)

	f.add(t, model.UserProduct{Code: "1", Name: "a", Quantity: 2, ExpiryDate: date(2026, 5, 12)})
	f.add(t, model.UserProduct{Code: "2", Name: "b", Quantity: 5, TakenOut: true})

	stats, err := f.svc.GetDashboardStats(ctx, Viewer{UserID: f.owner})
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalRows)
	assert.EqualValues(t, 2, stats.AvailableUnits)
	assert.EqualValues(t, 1, stats.TakenOutRows)
	assert.EqualValues(t, 1, stats.ExpiringSoon)
}
