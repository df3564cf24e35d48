package reminder

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/meditrack/meditrack/internal/handler"
	"github.com/meditrack/meditrack/internal/model"
	"github.com/meditrack/meditrack/internal/service/reminder"
	"github.com/meditrack/meditrack/pkg/clock"
	apperrors "github.com/meditrack/meditrack/pkg/errors"
)

// SchedulerActions are the popup responses routed to the scheduler.
type SchedulerActions interface {
	MarkTaken(ctx context.Context, id uuid.UUID)
	Snooze(ctx context.Context, id uuid.UUID)
}

type Handler struct {
	service *reminder.Service
	actions SchedulerActions
	clk     clock.Clock
}

func NewHandler(service *reminder.Service, actions SchedulerActions, clk clock.Clock) *Handler {
	return &Handler{service: service, actions: actions, clk: clk}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reminders := r.Group("/reminders")
	{
		reminders.POST("", h.CreateReminder)
		reminders.GET("", h.ListReminders)
		reminders.GET("/defaults", h.Defaults)
		reminders.PUT("/:id", h.UpdateReminder)
		reminders.DELETE("/:id", h.DeleteReminder)
		reminders.POST("/:id/taken", h.MarkTaken)
		reminders.POST("/:id/snooze", h.Snooze)
	}
}

type reminderRequest struct {
	MedicationName string `json:"medication_name" binding:"required"`
	Dosage         string `json:"dosage" binding:"required"`
	ReminderTime   string `json:"reminder_time" binding:"required,timeofday"`
	Frequency      string `json:"frequency" binding:"required,oneof=daily twice-daily three-times weekly custom"`
	Notes          string `json:"notes"`
}

func (r *reminderRequest) toModel() *model.Reminder {
	// The binding already checked the format.
	tod, _ := model.ParseTimeOfDay(r.ReminderTime)
	return &model.Reminder{
		MedicationName: r.MedicationName,
		Dosage:         r.Dosage,
		ReminderTime:   tod,
		Frequency:      model.Frequency(r.Frequency),
		Notes:          r.Notes,
	}
}

func (h *Handler) CreateReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rec := req.toModel()
	if _, err := h.service.Create(c.Request.Context(), rec); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(rec))
}

func (h *Handler) ListReminders(c *gin.Context) {
	views, err := h.service.Views(c.Request.Context(), h.clk.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(views))
}

// Defaults suggests form defaults: a reminder time one hour from now.
func (h *Handler) Defaults(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"reminder_time": h.service.DefaultTime(h.clk.Now()).String(),
	}))
}

// UpdateReminder edits by replacement: the old record is deleted and a new
// one created, so the id changes.
func (h *Handler) UpdateReminder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid reminder ID"))
		return
	}

	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rec := req.toModel()
	if _, err := h.service.Replace(c.Request.Context(), id, rec); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rec))
}

func (h *Handler) DeleteReminder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid reminder ID"))
		return
	}

	// Deleting an unknown id is a no-op, not an error.
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) MarkTaken(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid reminder ID"))
		return
	}

	h.actions.MarkTaken(c.Request.Context(), id)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) Snooze(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid reminder ID"))
		return
	}

	h.actions.Snooze(c.Request.Context(), id)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func respondError(c *gin.Context, err error) {
	if apperrors.IsBadRequest(err) {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
}
