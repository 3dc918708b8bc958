package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddlewareCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/assets/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/assets/:id", "204"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/abc", nil))

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/assets/:id", "204"))
	assert.Equal(t, before+1, after)
}

func TestRecordScrapDecision(t *testing.T) {
	before := testutil.ToFloat64(scrapDecisions.WithLabelValues("approved"))
	RecordScrapDecision("approved")
	assert.Equal(t, before+1, testutil.ToFloat64(scrapDecisions.WithLabelValues("approved")))
}

func TestHandlerExposesDomainMetrics(t *testing.T) {
	RecordDepreciationBatch(3, 1, 2*time.Second)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "go_asset_depreciation_assets_total"))
}
