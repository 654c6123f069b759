package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method string
	route  string
	status int
}

type recordingObserver struct {
	mu  sync.Mutex
	obs []observation
}

func (r *recordingObserver) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, observation{method, route, status})
}

func TestHTTPMetrics(t *testing.T) {
	observer := &recordingObserver{}
	router := gin.New()
	router.Use(HTTPMetrics(observer, "/metrics"))
	router.GET("/producers/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/producers", func(c *gin.Context) { c.Status(http.StatusConflict) })
	router.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(router, httptest.NewRequest(http.MethodGet, "/producers/abc", nil))
	serve(router, httptest.NewRequest(http.MethodPost, "/producers", nil))
	serve(router, httptest.NewRequest(http.MethodGet, "/nope/123", nil))
	serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Len(t, observer.obs, 3)
	assert.Equal(t, observation{http.MethodGet, "/producers/:id", http.StatusOK}, observer.obs[0])
	assert.Equal(t, observation{http.MethodPost, "/producers", http.StatusConflict}, observer.obs[1])
	assert.Equal(t, observation{http.MethodGet, unmatchedRoute, http.StatusNotFound}, observer.obs[2])
}
