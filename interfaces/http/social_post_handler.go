package http

import (
	"net/http"
	"strconv"

	"creedava-api/domain/dto"
	"creedava-api/infrastructure/logger"
	"creedava-api/usecase"

	"github.com/gin-gonic/gin"
)

type ISocialPostHandler interface {
	Schedule(ctx *gin.Context)
	List(ctx *gin.Context)
	ProcessDue(ctx *gin.Context)
}

type SocialPostHandler struct {
	socialPostUsecase usecase.ISocialPostUsecase
}

func NewSocialPostHandler(uc usecase.ISocialPostUsecase) ISocialPostHandler {
	return &SocialPostHandler{socialPostUsecase: uc}
}

func (h *SocialPostHandler) Schedule(ctx *gin.Context) {
	var req dto.SocialPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	post, err := h.socialPostUsecase.Schedule(ctx.Request.Context(), req)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("schedule post failed")
		ctx.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: "Internal Server Error"})
		return
	}
	ctx.JSON(http.StatusCreated, dto.Res{ResponseCode: "201", ResponseMessage: "Created", Data: post})
}

func (h *SocialPostHandler) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "25"))

	posts, total, err := h.socialPostUsecase.List(ctx.Request.Context(), page, pageSize)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("list posts failed")
		ctx.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: "Internal Server Error"})
		return
	}
	ctx.JSON(http.StatusOK, dto.Res{ResponseCode: "200", ResponseMessage: "OK", Data: gin.H{
		"posts": posts,
		"total": total,
	}})
}

// ProcessDue publishes all due scheduled posts immediately. The background
// worker does the same on a timer; this endpoint exists for manual runs.
func (h *SocialPostHandler) ProcessDue(ctx *gin.Context) {
	attempted, err := h.socialPostUsecase.ProcessDue(ctx.Request.Context())
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("process due posts failed")
		ctx.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: "Internal Server Error"})
		return
	}
	ctx.JSON(http.StatusOK, dto.Res{ResponseCode: "200", ResponseMessage: "OK", Data: gin.H{"attempted": attempted}})
}
