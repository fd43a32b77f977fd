package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitdesk/lostfound-backend/internal/models"
	"github.com/transitdesk/lostfound-backend/internal/service"
)

func identityRouter(tokens *service.TokenManager, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity(tokens))
	handlers := append(extra, func(c *gin.Context) {
		identity := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"user": identity.UserID, "role": identity.Role})
	})
	r.GET("/whoami", handlers...)
	return r
}

func TestIdentity(t *testing.T) {
	tokens := service.NewTokenManager("identity-test-secret-32-characters!!", time.Hour)
	token, _, err := tokens.Issue("staff-7", models.RoleStaff)
	require.NoError(t, err)

	tests := []struct {
		name     string
		headers  map[string]string
		wantCode int
		wantBody string
	}{
		{"anonymous", nil, http.StatusOK, `{"user":"","role":""}`},
		{"passenger header", map[string]string{"X-User-ID": " passenger-1 "}, http.StatusOK, `{"user":"passenger-1","role":"passenger"}`},
		{"staff token", map[string]string{"Authorization": "Bearer " + token, "X-User-ID": "passenger-1"}, http.StatusOK, `{"user":"staff-7","role":"staff"}`},
		{"bad token", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized, ""},
		{"wrong scheme", map[string]string{"Authorization": "Basic abc"}, http.StatusUnauthorized, ""},
	}

	r := identityRouter(tokens)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestRequireStaff(t *testing.T) {
	tokens := service.NewTokenManager("identity-test-secret-32-characters!!", time.Hour)
	r := identityRouter(tokens, RequireStaff())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(UserIDHeader, "passenger-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUUIDValidator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/claims/:id", UUIDValidator("id"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/claims/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/claims/6f1c1f5e-8d1b-4c52-9b1e-2b0b7a0e9a11", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://desk.example"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://desk.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://desk.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit_CountsPerCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader(UserIDHeader); id != "" {
			c.Set(ContextIdentityKey, models.Identity{UserID: id, Role: models.RolePassenger})
		}
		c.Next()
	})
	r.Use(RateLimit(RateLimitRule{Scope: "submit", Limit: 2, Period: time.Minute}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(userID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if userID != "" {
			req.Header.Set(UserIDHeader, userID)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	codes := []int{}
	for i := 0; i < 3; i++ {
		codes = append(codes, call("passenger-1").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := call("passenger-2")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, call("").Code)
}

func TestRateLimit_ScopesAreIndependent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/auth", RateLimit(RateLimitRule{Scope: "auth", Limit: 1, Period: time.Minute}), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/submit", RateLimit(RateLimitRule{Scope: "submit", Limit: 1, Period: time.Minute}), func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func(path string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, get("/auth"))
	assert.Equal(t, http.StatusTooManyRequests, get("/auth"))
	assert.Equal(t, http.StatusOK, get("/submit"))
}
