package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/agro/backend/internal/interfaces/http/dto"
	"github.com/agro/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name:       "from context",
			setup:      func(c *gin.Context) { c.Set(middleware.RequestIDContextKey, "ctx-id") },
			expectedID: "ctx-id",
		},
		{
			name:       "from header when context empty",
			setup:      func(c *gin.Context) { c.Request.Header.Set(middleware.RequestIDHeader, "header-id") },
			expectedID: "header-id",
		},
		{
			name: "context takes precedence over header",
			setup: func(c *gin.Context) {
				c.Set(middleware.RequestIDContextKey, "ctx-id")
				c.Request.Header.Set(middleware.RequestIDHeader, "header-id")
			},
			expectedID: "ctx-id",
		},
		{
			name:       "empty when not set",
			setup:      func(*gin.Context) {},
			expectedID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(c)
			assert.Equal(t, tt.expectedID, getRequestID(c))
		})
	}
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", shared.ErrValidationFailed, http.StatusBadRequest, dto.ErrCodeValidation},
		{"invalid document", shared.ErrInvalidDocument, http.StatusBadRequest, dto.ErrCodeInvalidDocument},
		{"duplicate", shared.ErrDuplicateDocument, http.StatusConflict, dto.ErrCodeDuplicateDocument},
		{"area sum", shared.NewDomainError(shared.CodeAreaSumExceedsTotal, "too big"), http.StatusUnprocessableEntity, dto.ErrCodeAreaSumExceedsTotal},
		{"producer required", shared.NewDomainError(shared.CodeProducerRequired, "required"), http.StatusBadRequest, dto.ErrCodeProducerRequired},
		{"property required", shared.NewDomainError(shared.CodePropertyRequired, "required"), http.StatusBadRequest, dto.ErrCodePropertyRequired},
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"wrapped domain error", fmt.Errorf("saving: %w", shared.ErrDuplicateDocument), http.StatusConflict, dto.ErrCodeDuplicateDocument},
		{"plain error", fmt.Errorf("pq: relation does not exist"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			r := gin.New()
			r.Use(middleware.RequestID())
			r.GET("/", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w, env := perform(t, r, newRequest(t, http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), env.Error.RequestID)
		})
	}
}

func TestBaseHandler_BindJSON_PayloadTooLarge(t *testing.T) {
	h := &BaseHandler{}
	r := gin.New()
	r.Use(middleware.BodyLimit(32))
	r.POST("/", func(c *gin.Context) {
		var req CreateProducerRequest
		if h.BindJSON(c, &req) {
			c.Status(http.StatusOK)
		}
	})

	req := newRequest(t, http.MethodPost, "/", `{"name":"`+strings.Repeat("a", 64)+`"}`)
	req.ContentLength = -1
	w, env := perform(t, r, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, dto.ErrCodePayloadTooLarge, env.Error.Code)
}
