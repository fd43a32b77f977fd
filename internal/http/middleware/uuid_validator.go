package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/transitdesk/lostfound-backend/internal/http/response"
)

// UUIDValidator проверяет, что параметр с указанным именем является валидным UUID.
// Использование: api.PUT("/claims/:id", UUIDValidator("id"), handler.ResolveClaim)
func UUIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		if idStr == "" {
			response.BadRequest(c, "parameter "+paramName+" is required")
			return
		}

		if _, err := uuid.Parse(idStr); err != nil {
			response.BadRequest(c, "parameter "+paramName+" must be a valid UUID")
			return
		}

		c.Next()
	}
}
