package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"mineral-catalog-service/internal/domain/models"
	"mineral-catalog-service/internal/domain/services"
	"mineral-catalog-service/internal/infrastructure/config"
	"mineral-catalog-service/internal/metrics"
	Logger "mineral-catalog-service/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func setupJWT(t *testing.T) services.InterfaceJWTService {
	t.Helper()
	svc := services.NewJWTService(&config.Config{JWTSecretKey: "middleware-secret", JWTTTLHours: 1})
	InitAuthMiddleware(svc)
	t.Cleanup(func() { InitAuthMiddleware(nil) })
	return svc
}

func bearer(t *testing.T, svc services.InterfaceJWTService, id uint, role models.Role) map[string]string {
	t.Helper()
	token, err := svc.GenerateToken(&models.User{BaseModel: models.BaseModel{ID: id}, Username: "u", Role: role})
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestAuthentication(t *testing.T) {
	svc := setupJWT(t)
	r := gin.New()
	r.GET("/me", Authentication(), func(c *gin.Context) {
		c.String(http.StatusOK, "%d", *UserID(c))
	})
	r.GET("/admin", Authentication(), RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := perform(r, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodGet, "/me", map[string]string{"Authorization": "Basic abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer broken"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":100004`)

	w = perform(r, http.MethodGet, "/me", bearer(t, svc, 12, models.RoleUser))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12", w.Body.String())

	w = perform(r, http.MethodGet, "/admin", bearer(t, svc, 12, models.RoleUser))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(r, http.MethodGet, "/admin", bearer(t, svc, 1, models.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthentication(t *testing.T) {
	svc := setupJWT(t)
	r := gin.New()
	r.GET("/list", OptionalAuthentication(), func(c *gin.Context) {
		if id := UserID(c); id != nil {
			c.String(http.StatusOK, "user %d", *id)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	assert.Equal(t, "anonymous", perform(r, http.MethodGet, "/list", nil).Body.String())
	assert.Equal(t, "anonymous", perform(r, http.MethodGet, "/list", map[string]string{"Authorization": "Bearer bad"}).Body.String())
	assert.Equal(t, "user 3", perform(r, http.MethodGet, "/list", bearer(t, svc, 3, models.RoleUser)).Body.String())
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.GET("/ip", IPRateLimiter(0.001, 2), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/path/:id", PathRateLimiter(0.001, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/ip", nil).Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/ip", nil).Code)
	w := perform(r, http.MethodGet, "/ip", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"code":100005`)

	other := httptest.NewRequest(http.MethodGet, "/ip", nil)
	other.RemoteAddr = "10.1.1.1:1234"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code, "limits are per client")

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/path/1", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, perform(r, http.MethodGet, "/path/1", nil).Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/path/2", nil).Code)
}

func TestCustomRateLimiterPerUser(t *testing.T) {
	svc := setupJWT(t)
	r := gin.New()
	r.POST("/favorites", Authentication(), CustomRateLimiter(0.001, 1, UserKey), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	alice := bearer(t, svc, 1, models.RoleUser)
	bob := bearer(t, svc, 2, models.RoleUser)
	assert.Equal(t, http.StatusCreated, perform(r, http.MethodPost, "/favorites", alice).Code)
	assert.Equal(t, http.StatusTooManyRequests, perform(r, http.MethodPost, "/favorites", alice).Code)
	assert.Equal(t, http.StatusCreated, perform(r, http.MethodPost, "/favorites", bob).Code, "same IP, different account")
}

func TestUserKeyFallsBackToClientIP(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "10.2.3.4:5555"
	assert.Equal(t, "10.2.3.4", UserKey(c))

	c.Set(ContextUserID, uint(9))
	assert.Equal(t, "user:9", UserKey(c))
}

func TestLimiterStoreEvictsIdle(t *testing.T) {
	now := time.Now()
	store := newLimiterStore(RateLimiterConfig{Rate: 1, Burst: 1, ExpiryTime: time.Minute})
	store.now = func() time.Time { return now }

	assert.True(t, store.allow("a"))
	assert.False(t, store.allow("a"))
	assert.True(t, store.allow("b"))
	assert.Equal(t, 2, store.size())

	now = now.Add(2 * time.Minute)
	assert.True(t, store.allow("c"))
	assert.Equal(t, 1, store.size())
}

func TestResponseCache(t *testing.T) {
	svc := setupJWT(t)
	rc := NewResponseCache(0)
	defer rc.Close()

	var calls atomic.Int32
	r := gin.New()
	r.Use(OptionalAuthentication())
	r.GET("/minerals", rc.Handler(time.Minute), func(c *gin.Context) {
		calls.Add(1)
		c.Header("X-Total-Count", "3")
		c.JSON(http.StatusOK, gin.H{"n": calls.Load(), "user": UserID(c) != nil})
	})
	r.GET("/fail", rc.Handler(time.Minute), func(c *gin.Context) {
		calls.Add(1)
		c.Status(http.StatusInternalServerError)
	})
	r.POST("/minerals", rc.InvalidateOnWrite(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	first := perform(r, http.MethodGet, "/minerals?b=2&a=1", nil)
	second := perform(r, http.MethodGet, "/minerals?a=1&b=2", nil)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "3", second.Header().Get("X-Total-Count"))
	assert.True(t, strings.HasPrefix(second.Header().Get("Content-Type"), "application/json"))
	assert.EqualValues(t, 1, calls.Load())

	authed := perform(r, http.MethodGet, "/minerals?a=1&b=2", bearer(t, svc, 5, models.RoleUser))
	assert.Equal(t, "MISS", authed.Header().Get("X-Cache"), "callers do not share entries")
	assert.Contains(t, authed.Body.String(), `"user":true`)

	perform(r, http.MethodGet, "/fail", nil)
	perform(r, http.MethodGet, "/fail", nil)
	assert.EqualValues(t, 4, calls.Load(), "errors are not cached")

	stats := rc.Stats()
	assert.Equal(t, 2, stats["total_items"])

	rc.PurgePrefix("/other")
	assert.Equal(t, 2, rc.Stats()["total_items"])

	assert.Equal(t, http.StatusCreated, perform(r, http.MethodPost, "/minerals", nil).Code)
	assert.Equal(t, 0, rc.Stats()["total_items"])
	assert.Equal(t, "MISS", perform(r, http.MethodGet, "/minerals?a=1&b=2", nil).Header().Get("X-Cache"))
}

func TestInvalidateOnWriteWithPrefixes(t *testing.T) {
	rc := NewResponseCache(0)
	defer rc.Close()

	r := gin.New()
	for _, path := range []string{"/api/v1/minerals", "/api/v1/minerals/7", "/api/v1/minerals-translated", "/api/v1/languages"} {
		r.GET(path, rc.Handler(time.Minute), func(c *gin.Context) { c.String(http.StatusOK, c.Request.URL.Path) })
	}
	r.POST("/api/v1/favorites/:id", rc.InvalidateOnWrite("/api/v1/minerals"), func(c *gin.Context) {
		if c.Param("id") == "0" {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusCreated)
	})

	for _, path := range []string{"/api/v1/minerals", "/api/v1/minerals/7", "/api/v1/minerals-translated", "/api/v1/languages"} {
		perform(r, http.MethodGet, path, nil)
	}
	require.Equal(t, 4, rc.Stats()["total_items"])

	perform(r, http.MethodPost, "/api/v1/favorites/0", nil)
	assert.Equal(t, 4, rc.Stats()["total_items"], "failed writes keep the cache")

	perform(r, http.MethodPost, "/api/v1/favorites/3", nil)
	assert.Equal(t, 2, rc.Stats()["total_items"])
	assert.Equal(t, "HIT", perform(r, http.MethodGet, "/api/v1/minerals-translated", nil).Header().Get("X-Cache"))
	assert.Equal(t, "HIT", perform(r, http.MethodGet, "/api/v1/languages", nil).Header().Get("X-Cache"))
	assert.Equal(t, "MISS", perform(r, http.MethodGet, "/api/v1/minerals", nil).Header().Get("X-Cache"))
}

func TestResponseCacheExpiry(t *testing.T) {
	rc := NewResponseCache(0)
	defer rc.Close()
	now := time.Now()
	rc.now = func() time.Time { return now }

	r := gin.New()
	r.GET("/x", rc.Handler(time.Second), func(c *gin.Context) { c.String(http.StatusOK, "x") })

	perform(r, http.MethodGet, "/x", nil)
	assert.Equal(t, "HIT", perform(r, http.MethodGet, "/x", nil).Header().Get("X-Cache"))

	now = now.Add(2 * time.Second)
	assert.Equal(t, "MISS", perform(r, http.MethodGet, "/x", nil).Header().Get("X-Cache"))

	now = now.Add(2 * time.Second)
	rc.cleanExpired()
	assert.Equal(t, 0, rc.Stats()["total_items"])
}

func TestRequestLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Logger.Set(zap.New(core))
	t.Cleanup(func() { Logger.Set(zap.NewNop()) })

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusInternalServerError)
	})

	perform(r, http.MethodGet, "/ok?page=2", nil)
	perform(r, http.MethodGet, "/bad", nil)
	perform(r, http.MethodGet, "/boom", nil)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/ok?page=2", entries[0].ContextMap()["path"])
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Contains(t, entries[2].ContextMap()["errors"], assert.AnError.Error())
}

func TestMetricsAndCORS(t *testing.T) {
	r := gin.New()
	r.Use(Metrics(), RequestLogger(), CORS("https://app.example"))
	r.GET("/api/v1/minerals/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/minerals/:id", "200"))
	w := perform(r, http.MethodGet, "/api/v1/minerals/7", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
	after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/minerals/:id", "200"))
	assert.Equal(t, before+1, after)

	w = perform(r, http.MethodOptions, "/api/v1/minerals/7", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
