package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/weiwangfds/studyhub/config"
	"github.com/weiwangfds/studyhub/internal/i18n"
	"github.com/weiwangfds/studyhub/internal/response"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHeaderAuth(t *testing.T) {
	r := newEngine()
	auth := NewAuthMiddleware(config.AuthConfig{Provider: "header"})
	r.GET("/public", auth.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentUserID(c), "org": CurrentOrgID(c)})
	})
	r.GET("/private", auth.Authenticate(), RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c))
	})

	t.Run("匿名访问公开接口", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":"","org":""}`, w.Body.String())
	})

	t.Run("请求头携带用户和组织", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.Header.Set(UserIDHeader, "user_1")
		req.Header.Set(OrgIDHeader, "org_1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.JSONEq(t, `{"user":"user_1","org":"org_1"}`, w.Body.String())
	})

	t.Run("私有接口要求登录", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set(UserIDHeader, "user_1")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user_1", w.Body.String())
	})
}

func TestClerkAuthRejectsBadToken(t *testing.T) {
	r := newEngine()
	auth := NewAuthMiddleware(config.AuthConfig{Provider: "clerk", ClerkSecretKey: "sk_test_dummy"})
	r.GET("/public", auth.Authenticate(), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c))
	})

	t.Run("没有凭证时匿名放行", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	for _, header := range []string{"Bearer not-a-jwt", "Bearer ", "Basic dXNlcjpwYXNz"} {
		t.Run(header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/public", nil)
			req.Header.Set("Authorization", header)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newEngine()
	m := NewLoggerMiddleware()
	r.Use(m.RequestID(), m.Logger())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(response.RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "trace-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "trace-123", w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 65))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestLanguage(t *testing.T) {
	r := newEngine()
	r.Use(Language())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(response.LanguageKey)+"|"+i18n.LanguageFrom(c.Request.Context()))
	})

	cases := map[string]string{
		"zh-TW,zh;q=0.9":  i18n.LangZhCN,
		"en-GB":           i18n.LangEnUS,
		"fr-FR, en;q=0.5": i18n.LangEnUS,
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want+"|"+want, w.Body.String(), header)
	}
}
