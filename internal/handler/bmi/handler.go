package bmi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meditrack/meditrack/internal/handler"
	"github.com/meditrack/meditrack/internal/service/bmi"
	apperrors "github.com/meditrack/meditrack/pkg/errors"
)

type Handler struct {
	service *bmi.Service
}

func NewHandler(service *bmi.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/bmi")
	{
		group.POST("", h.Compute)
		group.GET("/history", h.History)
	}
}

type computeRequest struct {
	Weight float64 `json:"weight" binding:"required,gt=0"`
	Height float64 `json:"height" binding:"required,gt=0"`
	Age    int     `json:"age" binding:"required,gt=0"`
}

func (h *Handler) Compute(c *gin.Context) {
	var req computeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rec, err := h.service.Compute(c.Request.Context(), req.Weight, req.Height, req.Age)
	if err != nil {
		if apperrors.IsBadRequest(err) {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rec))
}

func (h *Handler) History(c *gin.Context) {
	records, err := h.service.History(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}
