package http

import (
	"net/http"

	"creedava-api/domain/dto"
	"creedava-api/usecase"

	"github.com/gin-gonic/gin"
)

type IChatHandler interface {
	Message(ctx *gin.Context)
}

type ChatHandler struct {
	chatUsecase usecase.IChatUsecase
}

func NewChatHandler(uc usecase.IChatUsecase) IChatHandler {
	return &ChatHandler{chatUsecase: uc}
}

func (h *ChatHandler) Message(ctx *gin.Context) {
	var req dto.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, h.chatUsecase.Reply(req))
}
