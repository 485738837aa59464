package http

import (
	"errors"
	"net/http"
	"strconv"

	"creedava-api/domain/dto"
	"creedava-api/domain/model"
	"creedava-api/infrastructure/clients/linkedin"
	"creedava-api/infrastructure/logger"
	"creedava-api/usecase"

	"github.com/gin-gonic/gin"
)

type ILinkedInHandler interface {
	Connect(ctx *gin.Context)
	Callback(ctx *gin.Context)
	GetPosts(ctx *gin.Context)
}

type LinkedInHandler struct {
	linkedInUsecase usecase.ILinkedInUsecase
}

func NewLinkedInHandler(uc usecase.ILinkedInUsecase) ILinkedInHandler {
	return &LinkedInHandler{linkedInUsecase: uc}
}

// Connect returns the consent-screen URL the admin browser should follow.
// The state query parameter carries the organization id and rides along as
// OAuth state; org is accepted as an alias.
func (h *LinkedInHandler) Connect(ctx *gin.Context) {
	state := ctx.Query("state")
	if state == "" {
		state = ctx.DefaultQuery("org", "default")
	}

	authURL, err := h.linkedInUsecase.BuildAuthURL(state)
	if err != nil {
		if errors.Is(err, linkedin.ErrNotConfigured) {
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: "LinkedIn integration is not configured", Code: "linkedin_not_configured",
			})
			return
		}
		logger.GetLogger().WithField("error", err).Error("failed building auth url")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}
	ctx.JSON(http.StatusOK, dto.ConnectResponse{AuthURL: authURL})
}

// Callback completes the OAuth flow. LinkedIn redirects the browser here
// with code and state; success lands back on the admin integration page.
func (h *LinkedInHandler) Callback(ctx *gin.Context) {
	code := ctx.Query("code")
	state := ctx.Query("state")
	if code == "" {
		if oauthErr := ctx.Query("error"); oauthErr != "" {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "authorization was denied", Code: oauthErr, Description: ctx.Query("error_description"),
			})
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "missing code", Code: "missing_code"})
		return
	}

	if err := h.linkedInUsecase.HandleCallback(ctx.Request.Context(), code, state); err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/admin/linkedin-integration?success=true")
}

// GetPosts serves the organization's LinkedIn posts, cached for up to an hour.
// refresh=true bypasses the cache.
func (h *LinkedInHandler) GetPosts(ctx *gin.Context) {
	organizationID := ctx.DefaultQuery("org", "default")
	force, _ := strconv.ParseBool(ctx.Query("refresh"))

	posts, cached, err := h.linkedInUsecase.GetOrganizationPosts(ctx.Request.Context(), organizationID, force)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.PostsResponse{Posts: posts, Cached: cached})
}

func (h *LinkedInHandler) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, linkedin.ErrNotConfigured):
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "LinkedIn integration is not configured", Code: "linkedin_not_configured",
		})
	case errors.Is(err, usecase.ErrNotConnected):
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "LinkedIn is not connected", Code: "not_connected",
		})
	case errors.Is(err, usecase.ErrReauthorizationRequired):
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "LinkedIn authorization expired, please reconnect", Code: "reauthorization_required",
		})
	default:
		var pe *model.ProviderError
		if errors.As(err, &pe) {
			logger.GetLogger().
				WithField("code", pe.Code).
				WithField("status", pe.Status).
				Error("linkedin request failed")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: "LinkedIn request failed", Code: pe.Code, Description: pe.Description,
			})
			return
		}
		logger.GetLogger().WithField("error", err).Error("linkedin handler error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}
