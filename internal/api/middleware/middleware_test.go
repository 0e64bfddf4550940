package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"schedule-arranger/backend/config"
	"schedule-arranger/backend/pkg/jwt"
	applog "schedule-arranger/backend/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWT(ttl time.Duration) *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{JWTSecret: "middleware-test-secret", AccessTokenTTL: ttl})
}

func authRouter(mgr *jwt.Manager) *gin.Engine {
	r := gin.New()
	r.GET("/me", JWTAuth(mgr, nil), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id")+"|"+c.GetString("username"))
	})
	return r
}

// ═══════════════════════════════════════════════════════════
// JWTAuth
// ═══════════════════════════════════════════════════════════

func TestJWTAuth_BearerHeader(t *testing.T) {
	mgr := newTestJWT(time.Hour)
	token, _ := mgr.GenerateAccessToken("42", "alice")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	authRouter(mgr).ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "42|alice" {
		t.Errorf("expected 200 42|alice, got %d %s", w.Code, w.Body.String())
	}
}

func TestJWTAuth_Cookie(t *testing.T) {
	mgr := newTestJWT(time.Hour)
	token, _ := mgr.GenerateAccessToken("42", "alice")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	authRouter(mgr).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestJWTAuth_Rejects(t *testing.T) {
	mgr := newTestJWT(time.Hour)
	expired, _ := newTestJWT(-time.Minute).GenerateAccessToken("42", "alice")
	foreign, _ := jwt.NewManager(&config.AuthConfig{JWTSecret: "another-secret-value", AccessTokenTTL: time.Hour}).
		GenerateAccessToken("42", "alice")

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrong scheme", "Basic abc"},
		{"empty bearer", "Bearer "},
		{"garbage", "Bearer not-a-token"},
		{"expired", "Bearer " + expired},
		{"wrong signature", "Bearer " + foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			authRouter(mgr).ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// BodyLimit / CORS / SecurityHeaders / RequestID
// ═══════════════════════════════════════════════════════════

func TestBodyLimit_RejectsDeclaredOversize(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/x", strings.NewReader(strings.Repeat("a", 64))))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/x", strings.NewReader("ok")))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for small body, got %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Error("expected allowed origin header")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unknown origin must not be allowed")
	}
}

func TestSecurityHeadersAndRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(zap.NewNop()), SecurityHeaders())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	r.ServeHTTP(w, req)

	if w.Header().Get("X-Frame-Options") != "DENY" || w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers")
	}
	if w.Header().Get("X-Request-ID") != "rid-1" || w.Body.String() != "rid-1" {
		t.Errorf("expected request id to propagate, got %s", w.Header().Get("X-Request-ID"))
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 100))
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Errorf("oversized request id should be replaced by uuid, got %q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", "rid\nforged=1")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Errorf("request id with control chars should be replaced by uuid, got %q", got)
	}
}

func TestRequestID_ContextLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestID(zap.New(core)))
	r.GET("/x", func(c *gin.Context) {
		applog.FromContext(c.Request.Context(), zap.NewNop()).Info("handled")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", "rid-42")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.All()
	if len(entries) != 1 || entries[0].ContextMap()["request_id"] != "rid-42" {
		t.Errorf("expected request-scoped logger with request_id, got %+v", entries)
	}
}

func TestRateLimit_NilClientPassesThrough(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimit(nil, 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}
