package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// queryInt parses an optional integer query parameter, returning zero
// when absent or malformed.
func queryInt(c *gin.Context, key string) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
