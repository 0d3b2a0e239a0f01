package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/defterhane/defterhane/internal/ownerctx"
	"github.com/gin-gonic/gin"
)

// OwnerRequired resolves the owning account from the X-Owner-Id header.
// Authentication happens upstream; this service only scopes data access.
func OwnerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("X-Owner-Id"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: errorPayload{
				Type:    "unauthorized",
				Message: "missing X-Owner-Id header",
			}})
			return
		}

		ownerID, err := snowflake.ParseString(raw)
		if err != nil || ownerID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: errorPayload{
				Type:    "unauthorized",
				Message: "invalid X-Owner-Id header",
			}})
			return
		}

		ctx := ownerctx.WithOwnerID(c.Request.Context(), ownerID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
