package handlers

import (
	"net/http"

	"pushresume/internal/middleware"
	"pushresume/internal/services"
	"pushresume/internal/services/dto"
	"pushresume/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	*BaseHandler
	resumeService services.ResumeService
}

func NewResumeHandler(base *BaseHandler, resumeService services.ResumeService) *ResumeHandler {
	return &ResumeHandler{
		BaseHandler:   base,
		resumeService: resumeService,
	}
}

func (h *ResumeHandler) RegisterRoutes(r *gin.RouterGroup) {
	resume := r.Group("/resume", middleware.AuthMiddleware())
	{
		resume.GET("", h.List)
		resume.POST("", h.Toggle)
	}
}

// List синхронизирует резюме со всеми провайдерами пользователя и
// возвращает объединенную выдачу.
func (h *ResumeHandler) List(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	result, err := h.resumeService.Reconcile(c.Request.Context(), userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Toggle переключает автообновление резюме.
func (h *ResumeHandler) Toggle(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.ToggleResumeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	enabled, err := h.resumeService.Toggle(userID, req.Identity)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToggleResumeResponse{Enabled: enabled})
}
