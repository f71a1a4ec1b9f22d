package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumi-diary/lumi/backend/internal/service"
	"github.com/lumi-diary/lumi/backend/internal/types"
)

// ChatHandler serves the keyword chatbot and the LLM-backed chat.
type ChatHandler struct {
	chatService service.IChatService
}

func NewChatHandler(chatService service.IChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// RegisterRoutes mounts both chat endpoints. limit guards only the LLM route.
func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup, limit gin.HandlerFunc) {
	router.POST("/chatbot", h.Chatbot)
	if limit != nil {
		router.POST("/chat", limit, h.Chat)
	} else {
		router.POST("/chat", h.Chat)
	}
}

func (h *ChatHandler) Chatbot(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	var req types.ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	c.JSON(http.StatusOK, h.chatService.Fallback(req.Message))
}

func (h *ChatHandler) Chat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.chatService.Reply(c.Request.Context(), userID, req.Message)
	if err != nil {
		respondError(c, err, "failed to answer")
		return
	}
	c.JSON(http.StatusOK, resp)
}
