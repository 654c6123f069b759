package handler

import (
	"net/http"
	"testing"
	"time"

	agroapp "github.com/agro/backend/internal/application/agro"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/agro/backend/internal/interfaces/http/dto"
	"github.com/agro/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPropertyRouter(svc *MockPropertyService) *gin.Engine {
	h := NewPropertyHandler(svc)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/properties", h.List)
	r.GET("/properties/producer/:producerId", h.ListByProducer)
	r.GET("/properties/:id", h.GetByID)
	r.POST("/properties", h.Create)
	r.PUT("/properties/:id", h.Update)
	r.DELETE("/properties/:id", h.Delete)
	return r
}

func sampleProperty(producerID uuid.UUID) *agroapp.PropertyResponse {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &agroapp.PropertyResponse{
		ID:               uuid.New(),
		ProducerID:       producerID,
		Name:             "Fazenda Boa Vista",
		City:             "Sorriso",
		State:            "MT",
		TotalArea:        decimal.RequireFromString("100.50"),
		AgriculturalArea: decimal.RequireFromString("60"),
		VegetationArea:   decimal.RequireFromString("40.50"),
		Producer:         &agroapp.ProducerSummary{ID: producerID, TaxID: "12345678909", Name: "João Silva"},
		Crops:            []agroapp.CropSummary{{ID: uuid.New(), Name: "Soja", Season: "Safra 2021"}},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func propertyBody(producerID string) map[string]any {
	return map[string]any{
		"name":             "Fazenda Boa Vista",
		"city":             "Sorriso",
		"state":            "MT",
		"totalArea":        100.5,
		"agriculturalArea": 60,
		"vegetationArea":   40.5,
		"producer":         map[string]string{"id": producerID},
	}
}

func TestPropertyHandler_Create(t *testing.T) {
	producerID := uuid.New()

	t.Run("registers with nested crops", func(t *testing.T) {
		svc := new(MockPropertyService)
		property := sampleProperty(producerID)
		svc.On("Register", mock.Anything, mock.MatchedBy(func(req agroapp.RegisterPropertyRequest) bool {
			return req.ProducerID != nil && *req.ProducerID == producerID &&
				req.TotalArea.Equal(decimal.RequireFromString("100.5")) &&
				req.AgriculturalArea.Equal(decimal.NewFromInt(60)) &&
				len(req.Crops) == 1 && req.Crops[0] == agroapp.CropInput{Name: "Soja", Season: "Safra 2021"}
		})).Return(property, nil)

		body := propertyBody(producerID.String())
		body["crops"] = []map[string]string{{"name": "Soja", "season": "Safra 2021"}}
		w, env := perform(t, newPropertyRouter(svc), newRequest(t, http.MethodPost, "/properties", body))

		require.Equal(t, http.StatusCreated, w.Code)
		var got PropertyResponse
		decodeData(t, env, &got)
		assert.Equal(t, 100.5, got.TotalArea)
		assert.Equal(t, 40.5, got.VegetationArea)
		require.NotNil(t, got.Producer)
		assert.Equal(t, producerID.String(), got.Producer.ID)
		assert.Equal(t, "João Silva", got.Producer.Name)
		require.Len(t, got.Crops, 1)
		assert.Equal(t, "Soja", got.Crops[0].Name)
		svc.AssertExpectations(t)
	})

	t.Run("missing producer reaches the service", func(t *testing.T) {
		svc := new(MockPropertyService)
		svc.On("Register", mock.Anything, mock.MatchedBy(func(req agroapp.RegisterPropertyRequest) bool {
			return req.ProducerID == nil
		})).Return(nil, shared.NewDomainError(shared.CodeProducerRequired, "Producer is required"))

		body := propertyBody("")
		delete(body, "producer")
		w, env := perform(t, newPropertyRouter(svc), newRequest(t, http.MethodPost, "/properties", body))

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeProducerRequired, env.Error.Code)
	})

	t.Run("area sum above total is unprocessable", func(t *testing.T) {
		svc := new(MockPropertyService)
		svc.On("Register", mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError(shared.CodeAreaSumExceedsTotal, "Agricultural and vegetation areas exceed the total area"))

		body := propertyBody(producerID.String())
		body["totalArea"], body["agriculturalArea"], body["vegetationArea"] = 100, 60, 50
		w, env := perform(t, newPropertyRouter(svc), newRequest(t, http.MethodPost, "/properties", body))

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeAreaSumExceedsTotal, env.Error.Code)
	})

	t.Run("negative area fails binding", func(t *testing.T) {
		svc := new(MockPropertyService)

		body := propertyBody(producerID.String())
		body["vegetationArea"] = -1
		w, env := perform(t, newPropertyRouter(svc), newRequest(t, http.MethodPost, "/properties", body))

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "vegetationArea", env.Error.Details[0].Field)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("area above column capacity fails binding", func(t *testing.T) {
		svc := new(MockPropertyService)

		body := propertyBody(producerID.String())
		body["totalArea"] = 1e9
		w, env := perform(t, newPropertyRouter(svc), newRequest(t, http.MethodPost, "/properties", body))

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
		assert.Equal(t, "totalArea", env.Error.Details[0].Field)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("zero areas are accepted", func(t *testing.T) {
		svc := new(MockPropertyService)
		svc.On("Register", mock.Anything, mock.Anything).Return(sampleProperty(producerID), nil)

		body := propertyBody(producerID.String())
		body["totalArea"], body["agriculturalArea"], body["vegetationArea"] = 0, 0, 0
		w, _ := perform(t, newPropertyRouter(svc), newRequest(t, http.MethodPost, "/properties", body))

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("crop without season fails binding", func(t *testing.T) {
		svc := new(MockPropertyService)

		body := propertyBody(producerID.String())
		body["crops"] = []map[string]string{{"name": "Milho"}}
		w, env := perform(t, newPropertyRouter(svc), newRequest(t, http.MethodPost, "/properties", body))

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "crops[0].season", env.Error.Details[0].Field)
	})

	t.Run("unknown producer", func(t *testing.T) {
		svc := new(MockPropertyService)
		svc.On("Register", mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError(shared.CodeNotFound, "Producer not found"))

		w, _ := perform(t, newPropertyRouter(svc), newRequest(t, http.MethodPost, "/properties", propertyBody(uuid.NewString())))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPropertyHandler_Update(t *testing.T) {
	t.Run("merges areas and reassigns producer", func(t *testing.T) {
		svc := new(MockPropertyService)
		newOwner := uuid.New()
		property := sampleProperty(newOwner)
		svc.On("Update", mock.Anything, property.ID, mock.MatchedBy(func(req agroapp.UpdatePropertyRequest) bool {
			return req.ProducerID != nil && *req.ProducerID == newOwner &&
				req.TotalArea != nil && req.TotalArea.Equal(decimal.NewFromInt(120)) &&
				req.AgriculturalArea == nil && req.Name == nil
		})).Return(property, nil)

		w, _ := perform(t, newPropertyRouter(svc), newRequest(t, http.MethodPut, "/properties/"+property.ID.String(),
			map[string]any{"totalArea": 120, "producer": map[string]string{"id": newOwner.String()}}))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("producer reference must be a uuid", func(t *testing.T) {
		svc := new(MockPropertyService)

		w, env := perform(t, newPropertyRouter(svc), newRequest(t, http.MethodPut, "/properties/"+uuid.NewString(),
			map[string]any{"producer": map[string]string{"id": "nope"}}))

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "producer.id", env.Error.Details[0].Field)
	})
}

func TestPropertyHandler_Reads(t *testing.T) {
	producerID := uuid.New()

	t.Run("list", func(t *testing.T) {
		svc := new(MockPropertyService)
		svc.On("List", mock.Anything, mock.Anything).
			Return([]agroapp.PropertyResponse{*sampleProperty(producerID)}, int64(1), nil)

		w, env := perform(t, newPropertyRouter(svc), newRequest(t, http.MethodGet, "/properties", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var got []PropertyResponse
		decodeData(t, env, &got)
		require.Len(t, got, 1)
		assert.Equal(t, "MT", got[0].State)
	})

	t.Run("by producer returns an empty array", func(t *testing.T) {
		svc := new(MockPropertyService)
		svc.On("ListByProducer", mock.Anything, producerID).Return([]agroapp.PropertyResponse{}, nil)

		w, env := perform(t, newPropertyRouter(svc), newRequest(t, http.MethodGet, "/properties/producer/"+producerID.String(), nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, string(env.Data))
	})

	t.Run("get missing", func(t *testing.T) {
		svc := new(MockPropertyService)
		svc.On("GetByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		w, _ := perform(t, newPropertyRouter(svc), newRequest(t, http.MethodGet, "/properties/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("property without crops serializes an empty array", func(t *testing.T) {
		svc := new(MockPropertyService)
		property := sampleProperty(producerID)
		property.Crops = nil
		svc.On("GetByID", mock.Anything, property.ID).Return(property, nil)

		_, env := perform(t, newPropertyRouter(svc), newRequest(t, http.MethodGet, "/properties/"+property.ID.String(), nil))

		assert.Contains(t, string(env.Data), `"crops":[]`)
	})
}

func TestPropertyHandler_Delete(t *testing.T) {
	svc := new(MockPropertyService)
	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(nil)

	w, _ := perform(t, newPropertyRouter(svc), newRequest(t, http.MethodDelete, "/properties/"+id.String(), nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}
