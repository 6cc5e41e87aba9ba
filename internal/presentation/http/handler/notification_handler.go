package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/presentation/http/dto/response"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles listing the caller's notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	result, err := h.notificationService.ListNotifications(c.Request.Context(), *userID, pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Notifications retrieved successfully", result)
}

// UnreadCount handles returning the caller's unread notification count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Unread count retrieved successfully", gin.H{"unread": count})
}

// MarkRead handles marking one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), *id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notification marked as read", nil)
}

// MarkAllRead handles marking all of the caller's notifications as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), *userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "All notifications marked as read", nil)
}
