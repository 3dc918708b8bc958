package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-asset/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	got, meta := Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, got)
	assert.Equal(t, int64(5), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	got, _ = Paginate(items, 4, 2)
	assert.Empty(t, got)
}

func TestBindError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	var req struct {
		AssetID string `json:"assetId" binding:"required"`
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/scrap-requests", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	err := c.ShouldBindJSON(&req)
	require.Error(t, err)
	BindError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apperror.CodeValidation, body.Error.Code)
	assert.Equal(t, "Asset Id is required", body.Error.Message)
}
