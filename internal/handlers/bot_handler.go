package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"pushresume/internal/config"
	"pushresume/internal/logger"
	"pushresume/internal/models"
	"pushresume/internal/notify"
	"pushresume/internal/services"

	"github.com/gin-gonic/gin"
)

// codePattern - код подтверждения: только цифры, длина задается
// конфигурацией, так что принимаем любую разумную.
var codePattern = regexp.MustCompile(`^\d{4,12}$`)

// telegramUpdate - минимальная проекция апдейта Bot API: боту нужны
// только текст и chat id.
type telegramUpdate struct {
	Message struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

type BotHandler struct {
	*BaseHandler
	cfg                 *config.Config
	notificationService services.NotificationService
	transport           notify.Transport
}

func NewBotHandler(
	base *BaseHandler,
	cfg *config.Config,
	notificationService services.NotificationService,
	transport notify.Transport,
) *BotHandler {
	return &BotHandler{
		BaseHandler:         base,
		cfg:                 cfg,
		notificationService: notificationService,
		transport:           transport,
	}
}

func (h *BotHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/bot/:secret", h.Webhook)
}

// Webhook принимает апдейты Telegram. Секрет в пути заменяет
// авторизацию: URL вебхука знает только сам Telegram. Ответ всегда
// 200, иначе Telegram будет повторять доставку.
func (h *BotHandler) Webhook(c *gin.Context) {
	if c.Param("secret") != h.cfg.Telegram.WebhookSecret {
		c.Status(http.StatusNotFound)
		return
	}

	var update telegramUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		logger.Warn("bot webhook: bad update", "error", err.Error())
		c.Status(http.StatusOK)
		return
	}

	text := strings.TrimSpace(update.Message.Text)
	chatID := update.Message.Chat.ID
	if text == "" || chatID == 0 {
		c.Status(http.StatusOK)
		return
	}

	h.reply(c, chatID, h.handleMessage(text, chatID))
	c.Status(http.StatusOK)
}

// handleMessage возвращает текст ответа бота.
func (h *BotHandler) handleMessage(text string, chatID int64) string {
	switch {
	case strings.HasPrefix(text, "/start"):
		return "Привет! Пришли мне код подтверждения из личного кабинета."
	case codePattern.MatchString(text):
		return h.confirm(text, chatID)
	default:
		return "Не понимаю. Пришли код подтверждения из личного кабинета."
	}
}

func (h *BotHandler) confirm(code string, chatID int64) string {
	address := strconv.FormatInt(chatID, 10)

	_, err := h.notificationService.ConfirmSubscription(
		code, models.ChannelTelegram, address)
	switch {
	case err == nil:
		return "Канал подтвержден. Уведомления включаются в личном кабинете."
	case errors.Is(err, services.ErrCodeNotFound):
		return "Код не найден. Запроси новый в личном кабинете."
	case errors.Is(err, services.ErrCodeExpired):
		return "Код истек. Запроси новый в личном кабинете."
	case errors.Is(err, services.ErrSubscriptionDuplicate):
		return "Канал уже подтвержден."
	default:
		logger.Error("bot confirm failed", "error", err.Error())
		return "Что-то пошло не так, попробуй позже."
	}
}

func (h *BotHandler) reply(c *gin.Context, chatID int64, message string) {
	address := strconv.FormatInt(chatID, 10)
	if err := h.transport.Send(c.Request.Context(), address, message); err != nil {
		logger.Error("bot reply failed", "error", err.Error())
	}
}
