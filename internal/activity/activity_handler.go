package activity

import (
	"net/http"

	"go-asset/internal/shared/apperror"
	"go-asset/internal/shared/contextutil"
	"go-asset/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("activity.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activity.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetAll(c *gin.Context) {
	page, limit := response.PageParams(c, 20)

	res, total, err := h.service.GetAll(c.Request.Context(), ActivityFilter{
		AssetID: c.Query("assetId"),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		e := apperror.ToHTTP(err)
		if e.Status >= http.StatusInternalServerError {
			contextutil.GetLogger(c.Request.Context(), h.logger).Error("list activities failed", zap.Error(err))
		}
		response.Error(c, e.Status, e.Code, e.Message, e.Details)
		return
	}

	meta := response.NewPaginationMeta(total, page, limit)
	response.Success(c, http.StatusOK, res, &meta)
}
