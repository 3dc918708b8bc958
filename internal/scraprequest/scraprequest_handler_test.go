package scraprequest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-asset/internal/scraprequest"
	scraprequesterrors "go-asset/internal/scraprequest/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeScrapRequestService struct {
	SubmitFn  func(ctx context.Context, req scraprequest.SubmitScrapRequest) (scraprequest.ScrapRequestResponse, error)
	DecideFn  func(ctx context.Context, id string, req scraprequest.DecisionRequest) (scraprequest.ScrapRequestResponse, error)
	GetAllFn  func(ctx context.Context, filter scraprequest.ScrapRequestFilter) ([]scraprequest.ScrapRequestResponse, int64, error)
	GetByIDFn func(ctx context.Context, id string) (scraprequest.ScrapRequestDetailResponse, error)
}

func (f *fakeScrapRequestService) Submit(ctx context.Context, req scraprequest.SubmitScrapRequest) (scraprequest.ScrapRequestResponse, error) {
	return f.SubmitFn(ctx, req)
}
func (f *fakeScrapRequestService) Decide(ctx context.Context, id string, req scraprequest.DecisionRequest) (scraprequest.ScrapRequestResponse, error) {
	return f.DecideFn(ctx, id, req)
}
func (f *fakeScrapRequestService) GetAll(ctx context.Context, filter scraprequest.ScrapRequestFilter) ([]scraprequest.ScrapRequestResponse, int64, error) {
	return f.GetAllFn(ctx, filter)
}
func (f *fakeScrapRequestService) GetByID(ctx context.Context, id string) (scraprequest.ScrapRequestDetailResponse, error) {
	return f.GetByIDFn(ctx, id)
}

func TestScrapRequestHandler_Decide(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("action outside the allowed set", func(t *testing.T) {
		h := scraprequest.NewHandler(&fakeScrapRequestService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: "sr-1"}}
		c.Request = httptest.NewRequest(http.MethodPut, "/scrap-requests/sr-1", strings.NewReader(`{"action":"MAYBE"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("wrong role maps to 403", func(t *testing.T) {
		svc := &fakeScrapRequestService{
			DecideFn: func(ctx context.Context, id string, req scraprequest.DecisionRequest) (scraprequest.ScrapRequestResponse, error) {
				assert.Equal(t, "sr-1", id)
				assert.Equal(t, "APPROVED", req.Action)
				assert.Equal(t, "looks fine", *req.Comments)
				return scraprequest.ScrapRequestResponse{}, scraprequesterrors.ErrNotApprover
			},
		}
		h := scraprequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: "sr-1"}}
		c.Request = httptest.NewRequest(http.MethodPut, "/scrap-requests/sr-1",
			strings.NewReader(`{"action":"APPROVED","comments":"looks fine"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Decide(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing request", func(t *testing.T) {
		svc := &fakeScrapRequestService{
			DecideFn: func(ctx context.Context, id string, req scraprequest.DecisionRequest) (scraprequest.ScrapRequestResponse, error) {
				return scraprequest.ScrapRequestResponse{}, scraprequesterrors.ErrScrapRequestNotFound
			},
		}
		h := scraprequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: "sr-1"}}
		c.Request = httptest.NewRequest(http.MethodPut, "/scrap-requests/sr-1", strings.NewReader(`{"action":"REJECTED"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Decide(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestScrapRequestHandler_Submit_Outstanding(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeScrapRequestService{
		SubmitFn: func(ctx context.Context, req scraprequest.SubmitScrapRequest) (scraprequest.ScrapRequestResponse, error) {
			return scraprequest.ScrapRequestResponse{}, scraprequesterrors.ErrRequestOutstanding
		},
	}
	h := scraprequest.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/scrap-requests",
		strings.NewReader(`{"assetId":"6f1c1c7e-9a51-4c59-9d0e-7d4f7f0b7b10","reason":"broken"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "request already outstanding")
}

func TestScrapRequestHandler_GetAll_AwaitingMyRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got scraprequest.ScrapRequestFilter
	svc := &fakeScrapRequestService{
		GetAllFn: func(ctx context.Context, filter scraprequest.ScrapRequestFilter) ([]scraprequest.ScrapRequestResponse, int64, error) {
			got = filter
			return []scraprequest.ScrapRequestResponse{{ID: "sr-1"}}, 1, nil
		},
	}
	h := scraprequest.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("role_id", "role-manager")
	c.Request = httptest.NewRequest(http.MethodGet, "/scrap-requests?awaiting=true&status=PENDING&page=2&limit=5", nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "role-manager", got.AwaitingRoleID)
	assert.Equal(t, "PENDING", got.Status)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 5, got.Limit)
}
