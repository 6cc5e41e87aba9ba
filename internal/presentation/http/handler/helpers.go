package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// GetUserRole extracts the app role from the Gin context
func GetUserRole(c *gin.Context) enum.AppRole {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	return enum.AppRole(role.(string))
}

// IsAdmin checks if the user has the admin role
func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == enum.AppRoleAdmin
}

// pageParams builds page-based pagination params from query values
func pageParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
}

// parseUUIDParam parses a UUID path parameter, returning nil on failure
func parseUUIDParam(c *gin.Context, name string) *uuid.UUID {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return nil
	}
	return &id
}

// optionalUUIDQuery parses an optional UUID query parameter
func optionalUUIDQuery(c *gin.Context, name string) *uuid.UUID {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
