package middleware

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
)

const (
	// IdempotencyKeyHeader is the HTTP header carrying the client's key
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long a processed key replays its response
	IdempotencyKeyTTL = 24 * time.Hour
)

// bodyCapturingWriter wraps gin.ResponseWriter to record the response body
type bodyCapturingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCapturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the cached response for mutation requests that carry
// an Idempotency-Key already seen from the same user. Requests without a
// key pass through untouched.
func Idempotency(repo repository.IdempotencyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" && c.Request.Method != "PUT" && c.Request.Method != "PATCH" {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		userIDValue, exists := c.Get("user_id")
		if !exists {
			c.Next()
			return
		}
		userID, ok := userIDValue.(uuid.UUID)
		if !ok {
			c.Next()
			return
		}

		existing, err := repo.GetByKey(c.Request.Context(), idempotencyKey, userID)
		if err != nil {
			c.Next()
			return
		}

		if existing != nil && !existing.IsExpired() {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		bcw := &bodyCapturingWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = bcw

		c.Next()

		// Only cache successful outcomes; a failed attempt should be retryable
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:          idempotencyKey,
			UserID:       userID,
			Endpoint:     c.Request.Method + " " + c.FullPath(),
			ResponseCode: c.Writer.Status(),
			ResponseBody: bcw.body.String(),
			ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
		}

		_ = repo.Create(c.Request.Context(), ikey)
	}
}
