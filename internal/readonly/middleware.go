// Package readonly serves the catalog without allowing changes.
package readonly

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyReadOnly marks requests served in read-only mode; the page
// template uses it to hide the form.
const ContextKeyReadOnly = "read_only"

const blockedMessage = "The catalog is read-only"

// Middleware blocks every request that could change the catalog.
type Middleware struct {
	enabled bool
}

func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

// Handler lets GET, HEAD and OPTIONS through and answers everything else
// with 403.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyReadOnly, m.enabled)

		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     blockedMessage,
			"read_only": true,
		})
	}
}

// IsReadOnly reports whether the request was served in read-only mode.
func IsReadOnly(c *gin.Context) bool {
	return c.GetBool(ContextKeyReadOnly)
}
