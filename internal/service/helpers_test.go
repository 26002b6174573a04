package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-expiry-tracker/internal/cache"
	"go-expiry-tracker/internal/model"
	"go-expiry-tracker/pkg/jwt"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Brand{},
		&model.Category{},
		&model.Product{},
		&model.UserProduct{},
	))
	return db
}

func newTestTokens(t *testing.T) *jwt.Manager {
	t.Helper()
	m, err := jwt.NewManager("test-secret", "test", time.Hour)
	require.NoError(t, err)
	return m
}

// Mock Notifier
type mockNotifier struct {
	mu        sync.Mutex
	broadcast [][]byte
	published map[string][][]byte
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{published: make(map[string][][]byte)}
}

func (m *mockNotifier) Broadcast(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcast = append(m.broadcast, data)
}

func (m *mockNotifier) Publish(ownerID string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published[ownerID] = append(m.published[ownerID], data)
}

// Mock CatalogCache
type mockCatalogCache struct {
	mu      sync.Mutex
	entries map[string]model.Product
	sets    int
}

func newMockCatalogCache() *mockCatalogCache {
	return &mockCatalogCache{entries: make(map[string]model.Product)}
}

func (m *mockCatalogCache) Get(ctx context.Context, code string) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.entries[code]
	if !ok {
		return nil, cache.ErrMiss
	}
	return &p, nil
}

func (m *mockCatalogCache) Set(ctx context.Context, product *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[product.Code] = *product
	m.sets++
	return nil
}

func (m *mockCatalogCache) Invalidate(ctx context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, code)
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
