package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"appfab/internal/ai"
	"appfab/internal/app"
	"appfab/internal/transport/http/response"
)

type AppsHandler struct {
	generatorService *app.GeneratorService
}

type GenerateRequest struct {
	Prompt   string `json:"prompt" binding:"required"`
	Name     string `json:"name" binding:"max=128"`
	IsPublic bool   `json:"is_public"`
}

func NewAppsHandler(generatorService *app.GeneratorService) *AppsHandler {
	return &AppsHandler{generatorService: generatorService}
}

func (h *AppsHandler) Generate(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.generatorService.Generate(c.Request.Context(), app.GenerateInput{
		UserID:   userID,
		Prompt:   req.Prompt,
		Name:     req.Name,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		var genErr *ai.GenerationError
		switch {
		case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrPromptEmpty):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, err.Error())
		case errors.Is(err, app.ErrInsufficientCredit):
			response.Error(c, http.StatusPaymentRequired, response.CodePaymentRequired, err.Error())
		case errors.Is(err, ai.ErrMissingAPIKey):
			response.Error(c, http.StatusServiceUnavailable, response.CodeGenerationFailed, err.Error())
		case errors.As(err, &genErr):
			response.Error(c, http.StatusBadGateway, response.CodeGenerationFailed, genErr.Message)
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "generate failed")
		}
		return
	}

	response.OK(c, result)
}

func (h *AppsHandler) ListMine(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	apps, err := h.generatorService.ListUserApps(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list apps failed")
		return
	}

	response.OK(c, apps)
}

// Download streams the stored code verbatim as an attachment. No transform
// happens on export.
func (h *AppsHandler) Download(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	appRecord, err := h.generatorService.GetApp(userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrAppNotFound):
			response.Error(c, http.StatusNotFound, response.CodeAppNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "download failed")
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", appRecord.Name+".py"))
	c.Data(http.StatusOK, "text/x-python; charset=utf-8", []byte(appRecord.Code))
}

func (h *AppsHandler) Gallery(c *gin.Context) {
	apps, err := h.generatorService.Gallery(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list gallery failed")
		return
	}

	response.OK(c, apps)
}
