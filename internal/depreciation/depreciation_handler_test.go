package depreciation_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-asset/internal/depreciation"
	depreciationerrors "go-asset/internal/depreciation/errors"
	"go-asset/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeDepreciationService struct {
	CalculateFn func(ctx context.Context, assetID string) (depreciation.CalculationResult, error)
	BatchFn     func(ctx context.Context) (depreciation.BatchResult, error)
	HistoryFn   func(ctx context.Context, assetID string) ([]depreciation.DepreciationResponse, error)
}

func (f *fakeDepreciationService) CalculateForAsset(ctx context.Context, id string) (depreciation.CalculationResult, error) {
	return f.CalculateFn(ctx, id)
}
func (f *fakeDepreciationService) CalculateForAssetTx(ctx context.Context, _ *sql.Tx, id string) (depreciation.CalculationResult, error) {
	return f.CalculateFn(ctx, id)
}
func (f *fakeDepreciationService) BatchUpdate(ctx context.Context) (depreciation.BatchResult, error) {
	return f.BatchFn(ctx)
}
func (f *fakeDepreciationService) History(ctx context.Context, id string) ([]depreciation.DepreciationResponse, error) {
	return f.HistoryFn(ctx, id)
}

func TestHandler_Calculate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		svc := &fakeDepreciationService{
			CalculateFn: func(ctx context.Context, assetID string) (depreciation.CalculationResult, error) {
				assert.Equal(t, id, assetID)
				return depreciation.CalculationResult{AssetID: id, RecordsWritten: 2, WDV: decimal.RequireFromString("1466.74")}, nil
			},
		}
		h := depreciation.NewHandler(svc, zap.NewNop())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/assets/"+id+"/depreciation", nil)
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Calculate(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"recordsWritten":2`)
		assert.Contains(t, w.Body.String(), `"wdv":"1466.74"`)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeDepreciationService{
			CalculateFn: func(ctx context.Context, assetID string) (depreciation.CalculationResult, error) {
				return depreciation.CalculationResult{}, depreciationerrors.ErrAssetNotFound
			},
		}
		h := depreciation.NewHandler(svc, zap.NewNop())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

		h.Calculate(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "asset not found")
	})

	t.Run("internal error is not leaked", func(t *testing.T) {
		svc := &fakeDepreciationService{
			CalculateFn: func(ctx context.Context, assetID string) (depreciation.CalculationResult, error) {
				return depreciation.CalculationResult{}, errors.New("pq: connection reset")
			},
		}
		h := depreciation.NewHandler(svc, zap.NewNop())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

		h.Calculate(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}

func TestHandler_RunBatch(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("partial failure still answers 200", func(t *testing.T) {
		svc := &fakeDepreciationService{
			BatchFn: func(ctx context.Context) (depreciation.BatchResult, error) {
				return depreciation.BatchResult{
					Success:       false,
					AssetsUpdated: 4,
					AssetsFailed:  1,
					Failures:      []depreciation.BatchFailure{{AssetID: "a", Error: "boom"}},
				}, nil
			},
		}
		h := depreciation.NewHandler(svc, zap.NewNop())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/assets/update-depreciation", nil)

		h.RunBatch(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"assetsUpdated":4`)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("batch already running", func(t *testing.T) {
		svc := &fakeDepreciationService{
			BatchFn: func(ctx context.Context) (depreciation.BatchResult, error) {
				return depreciation.BatchResult{}, depreciationerrors.ErrBatchInProgress
			},
		}
		h := depreciation.NewHandler(svc, zap.NewNop())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/assets/update-depreciation", nil)

		h.RunBatch(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})
}

func TestCronRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	calls := 0
	svc := &fakeDepreciationService{
		BatchFn: func(ctx context.Context) (depreciation.BatchResult, error) {
			calls++
			return depreciation.BatchResult{Success: true}, nil
		},
	}
	r := gin.New()
	depreciation.RegisterCronRoutes(r.Group(""), depreciation.NewHandler(svc, zap.NewNop()), "s3cret")

	t.Run("wrong secret", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cron/depreciation", nil)
		req.Header.Set(middleware.CronSecretHeader, "nope")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, 0, calls)
	})

	t.Run("valid secret", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cron/depreciation", nil)
		req.Header.Set(middleware.CronSecretHeader, "s3cret")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, calls)
	})
}

func TestHandler_History(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeDepreciationService{
		HistoryFn: func(ctx context.Context, assetID string) ([]depreciation.DepreciationResponse, error) {
			return []depreciation.DepreciationResponse{{Year: 2023, PeriodEnd: "2024-01-01"}}, nil
		},
	}
	h := depreciation.NewHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

	h.History(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"year":2023`)
}
