package common

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/transitdesk/lostfound-backend/internal/models"
	"github.com/transitdesk/lostfound-backend/internal/pkg/apperror"
)

// ParseUUIDParam parses UUID from URL parameter
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(c.Param(paramName))
	if err != nil {
		return uuid.Nil, apperror.Validation(paramName, paramName+" must be a valid UUID")
	}
	return parsed, nil
}

// BindJSON binds JSON request and returns a validation error on malformed bodies
func BindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.Validation("body", "malformed request body: "+err.Error())
	}
	return nil
}

// ParseIntQuery safely reads an integer query parameter with a fallback value
func ParseIntQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

// GetPage extracts limit and offset. Missing limit means the whole list.
func GetPage(c *gin.Context) models.Page {
	page := models.Page{
		Limit:  ParseIntQuery(c, "limit", 0),
		Offset: ParseIntQuery(c, "offset", 0),
	}
	if page.Limit < 0 {
		page.Limit = 0
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	return page
}

// ParseStatuses reads a comma separated status filter
func ParseStatuses(c *gin.Context) []string {
	raw := c.Query("status")
	if raw == "" {
		return nil
	}
	var statuses []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			statuses = append(statuses, s)
		}
	}
	return statuses
}
