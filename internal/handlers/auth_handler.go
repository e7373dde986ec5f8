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

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.GET("/providers", h.Providers)
		auth.GET("/refresh", middleware.AuthMiddleware(), h.Refresh)
		auth.GET("/:provider", h.Redirect)
		auth.POST("/:provider", middleware.OptionalAuthMiddleware(), h.Login)
	}
}

// Providers возвращает список доступных провайдеров.
func (h *AuthHandler) Providers(c *gin.Context) {
	c.JSON(http.StatusOK, h.authService.Providers())
}

// Redirect возвращает URL страницы авторизации провайдера.
func (h *AuthHandler) Redirect(c *gin.Context) {
	providerName := strings.ToLower(c.Param("provider"))

	redirect, err := h.authService.Redirect(providerName)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RedirectResponse{Redirect: redirect})
}

// Login обменивает код авторизации на JWT. Если запрос пришел с
// действующим токеном, новый аккаунт привязывается к текущему
// пользователю.
func (h *AuthHandler) Login(c *gin.Context) {
	providerName := strings.ToLower(c.Param("provider"))

	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	sessionUserID := h.OptionalUserID(c)

	token, err := h.authService.Login(c.Request.Context(), providerName, req.Code, sessionUserID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}

// Refresh выпускает новый JWT со свежим сроком жизни.
func (h *AuthHandler) Refresh(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	token, err := h.authService.Refresh(userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}
