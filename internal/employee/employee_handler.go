package employee

import (
	"net/http"

	employeeerrors "hris-admin/internal/employee/errors"
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
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("employee request validation failed", zap.Error(err))
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
	response.Success(c, status, mapToListResponse(snap.Items, h.service), &meta)
}

func (h *Handler) writeStaged(c *gin.Context) {
	response.Success(c, http.StatusOK, mapToResponse(h.service.Staged(), h.service), nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	h.writeList(c, http.StatusOK)
}

func (h *Handler) Refresh(c *gin.Context) {
	h.logger.Debug("http refresh employees")
	if err := h.service.Refresh(c.Request.Context()); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeList(c, http.StatusOK)
}

func (h *Handler) GetDepartments(c *gin.Context) {
	response.Success(c, http.StatusOK, mapToDepartmentOptions(h.service.Departments()), nil)
}

func (h *Handler) SetFilters(c *gin.Context) {
	var req FilterEmployeeRequest
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
	var req SortEmployeeRequest
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
	h.writeStaged(c)
}

func (h *Handler) Stage(c *gin.Context) {
	var req StageEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}
	emp, err := req.toEntity()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.service.Stage(emp)
	h.writeStaged(c)
}

func (h *Handler) Unstage(c *gin.Context) {
	h.service.Unstage()
	h.writeStaged(c)
}

func (h *Handler) UploadPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile(photoField)
	if err != nil {
		h.writeServiceError(c, employeeerrors.ErrPhotoRequired.WithCause(err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.writeServiceError(c, apperror.ErrInternal.WithCause(err))
		return
	}
	defer file.Close()

	h.logger.Debug("http upload employee photo",
		zap.String("filename", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size),
	)
	name, err := h.service.UploadPhoto(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, PhotoResponse{
		ImageName: name,
		PhotoURL:  h.service.PhotoURL(name),
		Staged:    mapToResponse(h.service.Staged(), h.service),
	}, nil)
}

func (h *Handler) Dispatch(c *gin.Context) {
	ctx := c.Request.Context()
	var req DispatchEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}
	a, err := action.Parse(req.Action)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.logger.Debug("http dispatch employee", zap.String("action", a.String()))

	if req.Record != nil {
		emp, convErr := req.Record.toEntity()
		if convErr != nil {
			h.writeServiceError(c, convErr)
			return
		}
		err = h.service.Dispatch(ctx, a, emp)
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
