package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/presentation/http/dto/response"
)

// ChatHandler handles assistant chat HTTP requests
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Send handles sending a message to the assistant
func (h *ChatHandler) Send(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		ConversationID *uuid.UUID `json:"conversation_id"`
		Content        string     `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	reply, err := h.chatService.SendMessage(c.Request.Context(), *userID, req.ConversationID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Message sent successfully", reply)
}

// History handles retrieving the caller's chat history
func (h *ChatHandler) History(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	messages, err := h.chatService.GetHistory(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Chat history retrieved successfully", messages)
}

// Clear handles deleting the caller's chat history
func (h *ChatHandler) Clear(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.chatService.ClearHistory(c.Request.Context(), *userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Chat history cleared successfully", nil)
}
