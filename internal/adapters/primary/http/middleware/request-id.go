package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"

	requestIDKey       = "request_id"
	maxRequestIDLength = 128
)

// RequestID tags every request with an id. A caller supplied id is kept when it is short
// printable ASCII; anything else is replaced by a fresh uuid.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)

		c.Next()
	}
}

// RequestIDFrom returns the id assigned by RequestID, or "" outside of it.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
