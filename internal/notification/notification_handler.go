package notification

import (
	"net/http"

	"hris-admin/internal/shared/apperror"
	"hris-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	center *Center
}

func NewHandler(center *Center) *Handler {
	return &Handler{center: center}
}

func (h *Handler) List(c *gin.Context) {
	items := h.center.Recent()
	if items == nil {
		items = []Notification{}
	}
	response.Success(c, http.StatusOK, items, nil)
}

func (h *Handler) Dismiss(c *gin.Context) {
	if !h.center.Dismiss(c.Param("id")) {
		err := apperror.ErrNotFound
		response.Error(c, err.HTTPStatus, err.Code, "Notification not found", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"dismissed": true}, nil)
}

func (h *Handler) Clear(c *gin.Context) {
	h.center.Clear()
	response.Success(c, http.StatusOK, gin.H{"cleared": true}, nil)
}

func RegisterRoutes(r *gin.RouterGroup, h *Handler, mw ...gin.HandlerFunc) {
	notifications := r.Group("/notifications")
	notifications.Use(mw...)
	{
		notifications.GET("", h.List)
		notifications.DELETE("", h.Clear)
		notifications.DELETE("/:id", h.Dismiss)
	}
}
