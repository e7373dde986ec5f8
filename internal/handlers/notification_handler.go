package handlers

import (
	"net/http"
	"strings"

	"pushresume/internal/middleware"
	"pushresume/internal/services"
	"pushresume/internal/services/dto"
	"pushresume/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	notify := r.Group("/notifications", middleware.AuthMiddleware())
	{
		notify.GET("/channels", h.Channels)
		notify.GET("/subscriptions", h.Subscriptions)
		notify.POST("/subscriptions", h.Toggle)
		notify.GET("/confirm/:channel", h.Confirmation)
	}
}

// Channels возвращает доступные каналы уведомлений.
func (h *NotificationHandler) Channels(c *gin.Context) {
	c.JSON(http.StatusOK, h.notificationService.Channels())
}

// Subscriptions возвращает подписки пользователя по всем каналам.
func (h *NotificationHandler) Subscriptions(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	subs, err := h.notificationService.Subscriptions(userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, subs)
}

// Toggle переключает подписку на канал.
func (h *NotificationHandler) Toggle(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.ToggleSubscriptionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	enabled, err := h.notificationService.ToggleSubscription(userID, strings.ToLower(req.Channel))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToggleSubscriptionResponse{Enabled: enabled})
}

// Confirmation выдает код подтверждения канала. Код пользователь
// отправляет боту со стороны канала.
func (h *NotificationHandler) Confirmation(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	channel := strings.ToLower(c.Param("channel"))

	resp, err := h.notificationService.CreateConfirmation(userID, channel)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
