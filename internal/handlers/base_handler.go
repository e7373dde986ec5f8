package handlers

import (
	"pushresume/internal/logger"
	"pushresume/internal/validator"
	"pushresume/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// GetUserID извлекает идентификатор пользователя, положенный
// AuthMiddleware. false - запрос не авторизован.
func (h *BaseHandler) GetUserID(c *gin.Context) (string, bool) {
	val, ok := c.Get("userID")
	if !ok {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Unauthorized"))
		return "", false
	}

	userID, ok := val.(string)
	if !ok || userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Unauthorized"))
		return "", false
	}
	return userID, true
}

// OptionalUserID - как GetUserID, но отсутствие токена не ошибка.
func (h *BaseHandler) OptionalUserID(c *gin.Context) string {
	val, ok := c.Get("userID")
	if !ok {
		return ""
	}
	userID, _ := val.(string)
	return userID
}

func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		logger.Warn("failed to bind JSON body", "path", c.Request.URL.Path, "error", err.Error())
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}
