package response

import (
	"github.com/gin-gonic/gin"
)

// ListMeta describes how the displayed list was derived from the full list.
type ListMeta struct {
	Total    int               `json:"total"`
	Shown    int               `json:"shown"`
	Filters  map[string]string `json:"filters,omitempty"`
	SortBy   string            `json:"sortBy,omitempty"`
	SortDesc bool              `json:"sortDesc,omitempty"`
}

type ApiEnvelope struct {
	Ok    bool      `json:"ok"`
	Data  any       `json:"data,omitempty"`
	Meta  *ListMeta `json:"meta,omitempty"`
	Error any       `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}, meta *ListMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:    true,
		Data:  data,
		Meta:  meta,
		Error: nil,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok:   false,
		Data: nil,
		Meta: nil,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}

// AbortError writes the error envelope and stops the handler chain.
func AbortError(c *gin.Context, status int, errorCode string, message string) {
	Error(c, status, errorCode, message, nil)
	c.Abort()
}
