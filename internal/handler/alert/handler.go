package alert

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meditrack/meditrack/internal/handler"
	"github.com/meditrack/meditrack/internal/notifier"
)

type Handler struct {
	presenter notifier.Presenter
}

func NewHandler(presenter notifier.Presenter) *Handler {
	return &Handler{presenter: presenter}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/alerts", h.ListAlerts)

	notifications := r.Group("/notifications")
	{
		notifications.GET("/permission", h.GetPermission)
		notifications.PUT("/permission", h.SetPermission)
	}
}

// ListAlerts returns the currently visible toasts and popups, oldest first.
func (h *Handler) ListAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.presenter.Active()))
}

func (h *Handler) GetPermission(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"permission": h.presenter.PermissionState(),
	}))
}

type permissionRequest struct {
	Permission string `json:"permission" binding:"required,oneof=granted denied default"`
}

func (h *Handler) SetPermission(c *gin.Context) {
	var req permissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	permission := notifier.Permission(req.Permission)
	h.presenter.SetPermission(permission)

	switch permission {
	case notifier.PermissionGranted:
		h.presenter.Toast("Notifications Enabled", "You will now receive medication reminders!")
	case notifier.PermissionDenied:
		h.presenter.Toast("Permission Denied", "You can still use the app, but won't receive notifications.")
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"permission": permission,
	}))
}
