package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	agroapp "github.com/agro/backend/internal/application/agro"
	"github.com/agro/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// MockProducerService implements ProducerService
type MockProducerService struct {
	mock.Mock
}

func (m *MockProducerService) Register(ctx context.Context, req agroapp.RegisterProducerRequest) (*agroapp.ProducerResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agroapp.ProducerResponse), args.Error(1)
}

func (m *MockProducerService) Update(ctx context.Context, id uuid.UUID, req agroapp.UpdateProducerRequest) (*agroapp.ProducerResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agroapp.ProducerResponse), args.Error(1)
}

func (m *MockProducerService) List(ctx context.Context, filter agroapp.ListFilter) ([]agroapp.ProducerResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]agroapp.ProducerResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockProducerService) GetByID(ctx context.Context, id uuid.UUID) (*agroapp.ProducerResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agroapp.ProducerResponse), args.Error(1)
}

func (m *MockProducerService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockPropertyService implements PropertyService
type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) Register(ctx context.Context, req agroapp.RegisterPropertyRequest) (*agroapp.PropertyResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agroapp.PropertyResponse), args.Error(1)
}

func (m *MockPropertyService) Update(ctx context.Context, id uuid.UUID, req agroapp.UpdatePropertyRequest) (*agroapp.PropertyResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agroapp.PropertyResponse), args.Error(1)
}

func (m *MockPropertyService) List(ctx context.Context, filter agroapp.ListFilter) ([]agroapp.PropertyResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]agroapp.PropertyResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockPropertyService) GetByID(ctx context.Context, id uuid.UUID) (*agroapp.PropertyResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agroapp.PropertyResponse), args.Error(1)
}

func (m *MockPropertyService) ListByProducer(ctx context.Context, producerID uuid.UUID) ([]agroapp.PropertyResponse, error) {
	args := m.Called(ctx, producerID)
	return args.Get(0).([]agroapp.PropertyResponse), args.Error(1)
}

func (m *MockPropertyService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockCropService implements CropService
type MockCropService struct {
	mock.Mock
}

func (m *MockCropService) Create(ctx context.Context, req agroapp.CreateCropRequest) (*agroapp.CropResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agroapp.CropResponse), args.Error(1)
}

func (m *MockCropService) Update(ctx context.Context, id uuid.UUID, req agroapp.UpdateCropRequest) (*agroapp.CropResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agroapp.CropResponse), args.Error(1)
}

func (m *MockCropService) List(ctx context.Context, filter agroapp.ListFilter) ([]agroapp.CropResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]agroapp.CropResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockCropService) GetByID(ctx context.Context, id uuid.UUID) (*agroapp.CropResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agroapp.CropResponse), args.Error(1)
}

func (m *MockCropService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockReportService implements ReportService
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) TotalFarms(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportService) TotalHectares(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// =============================================================================
// Request helpers
// =============================================================================

// envelope mirrors dto.Response with raw data for assertions
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
		Details   []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
	Meta *struct {
		Total    int64 `json:"total"`
		Page     int   `json:"page"`
		PageSize int   `json:"page_size"`
	} `json:"meta"`
}

func newRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func perform(t *testing.T, router *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}
