package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	infrarepo "github.com/vialtrack/vialtrack-api/internal/infrastructure/repository"
	"github.com/vialtrack/vialtrack-api/internal/presentation/http/dto/response"
)

// OrgMiddleware resolves the caller's organization from the token claims
// and injects it into the request context so repository queries are
// scoped to that organization.
func OrgMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgVal, exists := c.Get("org_id")
		if !exists {
			response.Forbidden(c, "No organization associated with this account")
			c.Abort()
			return
		}

		orgID, ok := orgVal.(uuid.UUID)
		if !ok || orgID == uuid.Nil {
			response.Forbidden(c, "No organization associated with this account")
			c.Abort()
			return
		}

		ctx := infrarepo.WithOrg(c.Request.Context(), orgID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
