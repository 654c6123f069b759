package agro

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/agro/backend/internal/domain/agro"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockProducerRepository is a mock implementation of agro.ProducerRepository
type MockProducerRepository struct {
	mock.Mock
}

func (m *MockProducerRepository) FindByID(ctx context.Context, id uuid.UUID) (*agro.Producer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agro.Producer), args.Error(1)
}

func (m *MockProducerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]agro.Producer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]agro.Producer), args.Error(1)
}

func (m *MockProducerRepository) Save(ctx context.Context, producer *agro.Producer) error {
	args := m.Called(ctx, producer)
	return args.Error(0)
}

func (m *MockProducerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProducerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProducerRepository) FindByTaxID(ctx context.Context, taxID string) (*agro.Producer, error) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agro.Producer), args.Error(1)
}

func (m *MockProducerRepository) ExistsByTaxID(ctx context.Context, taxID string) (bool, error) {
	args := m.Called(ctx, taxID)
	return args.Bool(0), args.Error(1)
}

// MockPropertyRepository is a mock implementation of agro.PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*agro.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agro.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]agro.Property, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]agro.Property), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, property *agro.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) FindByProducer(ctx context.Context, producerID uuid.UUID) ([]agro.Property, error) {
	args := m.Called(ctx, producerID)
	return args.Get(0).([]agro.Property), args.Error(1)
}

func (m *MockPropertyRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPropertyRepository) SumTotalArea(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockCropRepository is a mock implementation of agro.CropRepository
type MockCropRepository struct {
	mock.Mock
}

func (m *MockCropRepository) FindByID(ctx context.Context, id uuid.UUID) (*agro.Crop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agro.Crop), args.Error(1)
}

func (m *MockCropRepository) FindAll(ctx context.Context, filter shared.Filter) ([]agro.Crop, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]agro.Crop), args.Error(1)
}

func (m *MockCropRepository) Save(ctx context.Context, crop *agro.Crop) error {
	args := m.Called(ctx, crop)
	return args.Error(0)
}

func (m *MockCropRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCropRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCropRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]agro.Crop, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]agro.Crop), args.Error(1)
}

// =============================================================================
// Test doubles
// =============================================================================

// recordingPublisher captures published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

// failingPublisher rejects every publish
type failingPublisher struct {
	err error
}

func (p failingPublisher) Publish(context.Context, ...shared.DomainEvent) error {
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

// mapReportCache is an in-process ReportCache
type mapReportCache struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
	incrs  int
}

func newMapReportCache() *mapReportCache {
	return &mapReportCache{values: make(map[string]string)}
}

func (c *mapReportCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *mapReportCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *mapReportCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.incrs++
	n, _ := strconv.ParseInt(c.values[key], 10, 64)
	n++
	c.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

// =============================================================================
// Fixtures
// =============================================================================

const (
	testCPF     = "12345678909"
	testOtherID = "07686526003"
)

func newTestProducer() *agro.Producer {
	p, err := agro.NewProducer(testCPF, "João Silva")
	if err != nil {
		panic(err)
	}
	p.ClearDomainEvents()
	return p
}

func newTestProperty(producer *agro.Producer) *agro.Property {
	p, err := agro.NewProperty(producer, "Fazenda Boa Vista", "Sorriso", "MT", agro.PropertyAreas{
		Total:        decimal.NewFromInt(100),
		Agricultural: decimal.NewFromInt(50),
		Vegetation:   decimal.NewFromInt(40),
	})
	if err != nil {
		panic(err)
	}
	p.ClearDomainEvents()
	return p
}

func strPtr(s string) *string { return &s }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func domainCode(err error) string {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		return ""
	}
	return domainErr.Code
}
