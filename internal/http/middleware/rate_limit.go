package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/transitdesk/lostfound-backend/internal/http/response"
	"github.com/transitdesk/lostfound-backend/internal/logger"
)

// RateLimitRule задаёт лимит для одной группы маршрутов.
type RateLimitRule struct {
	// Scope отделяет счётчики группы от остальных, например "auth" или "submit".
	Scope  string
	Limit  int64
	Period time.Duration
}

// RateLimit ограничивает частоту запросов в пределах Scope.
// Ключ счётчика: идентификатор пользователя, а для анонимных вызовов IP клиента.
func RateLimit(rule RateLimitRule) gin.HandlerFunc {
	if rule.Limit <= 0 {
		rule.Limit = 10
	}
	if rule.Period <= 0 {
		rule.Period = time.Minute
	}

	store := memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          "lostfound:" + rule.Scope,
		CleanUpInterval: limiter.DefaultCleanUpInterval,
	})
	instance := limiter.New(store, limiter.Rate{Period: rule.Period, Limit: rule.Limit})

	return func(c *gin.Context) {
		state, err := instance.Get(c, rateLimitKey(c))
		if err != nil {
			// Сбой счётчика не блокирует запрос.
			logger.Log.WithError(err).WithField("scope", rule.Scope).Warn("rate limit: store failure")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(state.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(state.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(state.Reset, 10))

		if state.Reached {
			response.TooManyRequests(c, "too many requests, try again later")
			return
		}
		c.Next()
	}
}

func rateLimitKey(c *gin.Context) string {
	if identity := CurrentIdentity(c); identity.UserID != "" {
		return "user:" + identity.UserID
	}
	return "ip:" + c.ClientIP()
}
