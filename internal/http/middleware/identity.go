package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/transitdesk/lostfound-backend/internal/http/response"
	"github.com/transitdesk/lostfound-backend/internal/models"
	"github.com/transitdesk/lostfound-backend/internal/service"
)

// Context ключи для gin.Context.
const (
	ContextIdentityKey = "identity"
)

// UserIDHeader заголовок, которым мобильный клиент передаёт идентификатор пассажира.
const UserIDHeader = "X-User-ID"

// Identity определяет вызывающего. Валидный Bearer токен даёт субъекта и роль из токена,
// иначе X-User-ID даёт пассажира, иначе вызов анонимный. Невалидный токен отклоняется.
func Identity(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := models.Identity{}

		if auth := c.GetHeader("Authorization"); auth != "" {
			raw, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok {
				response.Unauthorized(c, "authorization header must use Bearer scheme")
				return
			}
			subject, role, err := tokens.ParseAccess(strings.TrimSpace(raw))
			if err != nil {
				response.Unauthorized(c, "invalid token")
				return
			}
			identity = models.Identity{UserID: subject, Role: role}
		} else if userID := strings.TrimSpace(c.GetHeader(UserIDHeader)); userID != "" {
			identity = models.Identity{UserID: userID, Role: models.RolePassenger}
		}

		c.Set(ContextIdentityKey, identity)
		c.Next()
	}
}

// RequireStaff пропускает только вызовы с ролью staff.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity.UserID == "" {
			response.Unauthorized(c, "authorization required")
			return
		}
		if !identity.IsStaff() {
			response.Forbidden(c, "staff role required")
			return
		}
		c.Next()
	}
}

// CurrentIdentity возвращает identity запроса; без middleware вызов считается анонимным.
func CurrentIdentity(c *gin.Context) models.Identity {
	raw, exists := c.Get(ContextIdentityKey)
	if !exists {
		return models.Identity{}
	}
	identity, ok := raw.(models.Identity)
	if !ok {
		return models.Identity{}
	}
	return identity
}
