package department

import (
	"net/http"

	"hris-admin/internal/shared/action"
	"hris-admin/internal/shared/apperror"
	"hris-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("department.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("department request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("department request validation failed", zap.Error(err))
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", httpErr.Message, err.Error())
}

func (h *Handler) writeList(c *gin.Context, status int) {
	snap := h.service.Snapshot()
	meta := response.ListMeta{
		Total:   snap.Total,
		Shown:   len(snap.Items),
		Filters: snap.Filters,
	}
	if snap.Sort != nil {
		meta.SortBy = snap.Sort.Field
		meta.SortDesc = snap.Sort.Desc
	}
	response.Success(c, status, mapToListResponse(snap.Items), &meta)
}

func (h *Handler) GetAll(c *gin.Context) {
	h.writeList(c, http.StatusOK)
}

func (h *Handler) Refresh(c *gin.Context) {
	h.logger.Debug("http refresh departments")
	if err := h.service.Refresh(c.Request.Context()); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeList(c, http.StatusOK)
}

func (h *Handler) SetFilters(c *gin.Context) {
	var req FilterDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}
	if err := h.service.SetFilters(req.toMap()); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeList(c, http.StatusOK)
}

func (h *Handler) ResetFilters(c *gin.Context) {
	h.service.ResetFilters()
	h.writeList(c, http.StatusOK)
}

func (h *Handler) Sort(c *gin.Context) {
	var req SortDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}
	if err := h.service.Sort(req.Field, req.Desc); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeList(c, http.StatusOK)
}

func (h *Handler) GetStaged(c *gin.Context) {
	response.Success(c, http.StatusOK, mapToResponse(h.service.Staged()), nil)
}

func (h *Handler) Stage(c *gin.Context) {
	var req StageDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}
	h.service.Stage(req.toEntity())
	response.Success(c, http.StatusOK, mapToResponse(h.service.Staged()), nil)
}

func (h *Handler) Unstage(c *gin.Context) {
	h.service.Unstage()
	response.Success(c, http.StatusOK, mapToResponse(h.service.Staged()), nil)
}

func (h *Handler) Dispatch(c *gin.Context) {
	ctx := c.Request.Context()
	var req DispatchDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}
	a, err := action.Parse(req.Action)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.logger.Debug("http dispatch department", zap.String("action", a.String()))

	if req.Record != nil {
		err = h.service.Dispatch(ctx, a, req.Record.toEntity())
	} else {
		err = h.service.DispatchStaged(ctx, a)
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if a == action.Create {
		status = http.StatusCreated
	}
	h.writeList(c, status)
}
