package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/logger"
)

// Recovery turns a handler panic into a 500 carrying the request id, so a
// client report can be matched to the logged stack. http.ErrAbortHandler is
// re-raised for net/http to handle.
func Recovery(log logger.Logger) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			requestID := c.GetString(RequestIDKey)
			log.LogAttrs(c.Request.Context(), logger.ErrorLevel, "panic in handler",
				logger.String("request_id", requestID),
				logger.String("route", c.FullPath()),
				logger.Any("panic", rec),
				logger.String("stack", string(debug.Stack())),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, ginext.H{
				"error":      "internal server error",
				"request_id": requestID,
			})
		}()

		c.Next()
	}
}
