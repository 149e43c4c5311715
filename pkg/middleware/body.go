package middleware

import (
	"net/http"
	"strings"

	"unischool/site-api/pkg/response"

	"github.com/gin-gonic/gin"
)

func BodySizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Fast reject for legit requests
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Request body size exceeds limit")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()

		if c.Errors.Last() != nil {
			if strings.Contains(c.Errors.Last().Error(), "http: request body too large") {
				response.Error(c, http.StatusRequestEntityTooLarge, response.CodeValidation, "Request body size exceeds limit")
			}
			return
		}
	}
}
