package http

import (
	"errors"
	"net/http"
	"strconv"

	"creedava-api/domain/dto"
	"creedava-api/infrastructure/logger"
	"creedava-api/usecase"

	"github.com/gin-gonic/gin"
)

type ILeadHandler interface {
	Capture(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	List(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
	Export(ctx *gin.Context)
}

type LeadHandler struct {
	leadUsecase usecase.ILeadUsecase
}

func NewLeadHandler(uc usecase.ILeadUsecase) ILeadHandler {
	return &LeadHandler{leadUsecase: uc}
}

// Capture is the public contact-form endpoint.
func (h *LeadHandler) Capture(ctx *gin.Context) {
	var req dto.LeadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}

	lead, err := h.leadUsecase.Capture(ctx.Request.Context(), req)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("lead capture failed")
		ctx.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: "Internal Server Error"})
		return
	}
	ctx.JSON(http.StatusCreated, dto.Res{ResponseCode: "201", ResponseMessage: "Created", Data: lead})
}

func (h *LeadHandler) GetByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: "invalid id"})
		return
	}
	lead, err := h.leadUsecase.GetByID(ctx.Request.Context(), id)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Res{ResponseCode: "200", ResponseMessage: "OK", Data: lead})
}

func (h *LeadHandler) List(ctx *gin.Context) {
	var req dto.LeadListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	leads, total, err := h.leadUsecase.List(ctx.Request.Context(), req)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Res{ResponseCode: "200", ResponseMessage: "OK", Data: gin.H{
		"leads": leads,
		"total": total,
	}})
}

func (h *LeadHandler) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: "invalid id"})
		return
	}
	var req dto.LeadUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	lead, err := h.leadUsecase.Update(ctx.Request.Context(), id, req)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Res{ResponseCode: "200", ResponseMessage: "OK", Data: lead})
}

func (h *LeadHandler) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: "invalid id"})
		return
	}
	if err := h.leadUsecase.Delete(ctx.Request.Context(), id); err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Res{ResponseCode: "200", ResponseMessage: "Deleted"})
}

// Export pushes all leads to the configured Google Sheet.
func (h *LeadHandler) Export(ctx *gin.Context) {
	rows, err := h.leadUsecase.Export(ctx.Request.Context())
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("lead export failed")
		ctx.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.Res{ResponseCode: "200", ResponseMessage: "OK", Data: gin.H{"exported": rows}})
}

func (h *LeadHandler) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrLeadNotFound):
		ctx.JSON(http.StatusNotFound, dto.Res{ResponseCode: "404", ResponseMessage: "Not Found"})
	case errors.Is(err, usecase.ErrInvalidLeadStatus):
		ctx.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: "invalid lead status"})
	default:
		logger.GetLogger().WithField("error", err).Error("lead handler error")
		ctx.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: "Internal Server Error"})
	}
}
