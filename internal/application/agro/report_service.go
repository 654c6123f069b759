package agro

import (
	"context"
	"strconv"
	"time"

	"github.com/agro/backend/internal/domain/agro"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Report cache keys. Report values are stored under "<key>:<generation>".
const (
	ReportKeyTotalFarms    = "total_farms"
	ReportKeyTotalHectares = "total_hectares"
	ReportKeyGeneration    = "generation"
)

// ReportCache stores computed report values.
// Get returns ok=false on a miss. Incr atomically increments an integer key
// that never expires, creating it at 0 first.
type ReportCache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
}

// ReportCacheMetrics records report cache lookups
type ReportCacheMetrics interface {
	RecordReportCacheLookup(ctx context.Context, key string, hit bool)
}

// ReportService computes the aggregate registry reports
type ReportService struct {
	propertyRepo agro.PropertyRepository
	cache        ReportCache
	ttl          time.Duration
	logger       *zap.Logger
	metrics      ReportCacheMetrics
}

// NewReportService creates a new ReportService. cache may be nil; a
// non-positive ttl disables caching.
func NewReportService(propertyRepo agro.PropertyRepository, cache ReportCache, ttl time.Duration, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		cache = nil
	}
	return &ReportService{
		propertyRepo: propertyRepo,
		cache:        cache,
		ttl:          ttl,
		logger:       logger,
	}
}

// SetMetrics sets the recorder for cache hits and misses
func (s *ReportService) SetMetrics(metrics ReportCacheMetrics) {
	s.metrics = metrics
}

// TotalFarms returns the number of registered properties
func (s *ReportService) TotalFarms(ctx context.Context) (int64, error) {
	key := s.versionedKey(ctx, ReportKeyTotalFarms)
	if cached, ok := s.cached(ctx, key); ok {
		if n, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return n, nil
		}
	}

	total, err := s.propertyRepo.Count(ctx, shared.Filter{})
	if err != nil {
		return 0, err
	}
	s.store(ctx, key, strconv.FormatInt(total, 10))

	return total, nil
}

// TotalHectares returns the sum of the total area of every property
func (s *ReportService) TotalHectares(ctx context.Context) (decimal.Decimal, error) {
	key := s.versionedKey(ctx, ReportKeyTotalHectares)
	if cached, ok := s.cached(ctx, key); ok {
		if d, err := decimal.NewFromString(cached); err == nil {
			return d, nil
		}
	}

	total, err := s.propertyRepo.SumTotalArea(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	s.store(ctx, key, total.String())

	return total, nil
}

// versionedKey appends the current generation to key. The generation is read
// before the query runs, so a value computed before an invalidation lands
// under a generation nobody reads any more. Returns "" when the cache is off
// or unreadable.
func (s *ReportService) versionedKey(ctx context.Context, key string) string {
	if s.cache == nil {
		return ""
	}
	generation, ok, err := s.cache.Get(ctx, ReportKeyGeneration)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.String("key", ReportKeyGeneration), zap.Error(err))
		return ""
	}
	if !ok {
		generation = "0"
	}
	return key + ":" + generation
}

// cache failures degrade to a direct query
func (s *ReportService) cached(ctx context.Context, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	value, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	if s.metrics != nil {
		s.metrics.RecordReportCacheLookup(ctx, key, ok)
	}
	return value, ok
}

func (s *ReportService) store(ctx context.Context, key, value string) {
	if key == "" {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
