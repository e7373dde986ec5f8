package handlers

import (
	"net/http"

	"pushresume/internal/services"
	"pushresume/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	*BaseHandler
	statusService services.StatusService
}

func NewStatusHandler(base *BaseHandler, statusService services.StatusService) *StatusHandler {
	return &StatusHandler{
		BaseHandler:   base,
		statusService: statusService,
	}
}

func (h *StatusHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/status", h.Status)
}

// Status возвращает статистику использования сервиса.
func (h *StatusHandler) Status(c *gin.Context) {
	stats, err := h.statusService.Stats()
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
