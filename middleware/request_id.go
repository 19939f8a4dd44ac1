package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header carrying the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns a UUID to each request unless the client supplied one,
// and echoes it in the response so log lines can be correlated.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rid := ctx.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx.Writer.Header().Set(RequestIDHeader, rid)
		ctx.Next()
	}
}
