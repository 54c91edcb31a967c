package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/docfold/docfold/pkg/logging"
	"github.com/docfold/docfold/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

// CorrelationHeader carries the correlation ID of a request across services.
const CorrelationHeader = "X-Df-Correlation-Id"

// InitializeHandling is added at the beginning of handler chain. It attaches
// a correlation ID and a prefixed logger to the request context.
func InitializeHandling() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := uuid.FromStringOrNil(c.GetHeader(CorrelationHeader))
		if cid == uuid.Nil {
			cid = uuid.Must(uuid.NewV4())
		}

		l := util.Log().CopyWithPrefix(fmt.Sprintf("[Cid: %s]", cid))
		ctx := context.WithValue(c.Request.Context(), logging.CorrelationIDCtx{}, cid)
		ctx = logging.WithLogger(ctx, l)
		c.Request = c.Request.WithContext(ctx)
		c.Header(CorrelationHeader, cid.String())

		c.Next()
	}
}

// Logging logs incoming request info
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		l := logging.FromContext(c.Request.Context(), util.Log())
		logging.Request(l, c.Writer.Status(), c.Request.Method, c.ClientIP(), path,
			c.Errors.ByType(gin.ErrorTypePrivate).String(), start)
	}
}

// CacheControl disables client side caching.
func CacheControl() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "private, no-cache")
	}
}
