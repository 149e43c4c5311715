// Package middleware contains any custom middleware used in the app
package middleware

import (
	"unischool/site-api/pkg/util"

	"github.com/gin-gonic/gin"
)

const requestIDLength = 10

// NewRequestIDMiddleware tags every request with a short random ID under
// the "requestID" context key. Handlers attach it to their log lines so
// one request can be followed through the output.
func NewRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("requestID", util.RandStr(requestIDLength))
		c.Next()
	}
}
