package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuth map[string]auth.Principal

func (s stubAuth) Authenticate(_ context.Context, token string) (*auth.Principal, error) {
	if p, ok := s[token]; ok {
		return &p, nil
	}
	return nil, httperr.ErrBusiness("invalid_token")
}

func newRouter(a Authenticator) *gin.Engine {
	r := gin.New()
	g := r.Group("/", AuthMiddleware(a))
	g.GET("/any", func(c *gin.Context) { c.Status(http.StatusOK) })
	g.GET("/owner", RequireRole(user.RoleOwner), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthAndRoles(t *testing.T) {
	r := newRouter(stubAuth{
		"owner": {UserID: uuid.New(), Role: user.RoleOwner},
		"emp":   {UserID: uuid.New(), Role: user.RoleEmployee},
	})

	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", "bogus").Code)
	assert.Equal(t, http.StatusOK, do(r, "/any", "emp").Code)
	assert.Equal(t, http.StatusForbidden, do(r, "/owner", "emp").Code)
	assert.Equal(t, http.StatusOK, do(r, "/owner", "owner").Code)
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(0.001, 2)
	r := gin.New()
	r.POST("/book", l.Middleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/book", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{201, 201, 429}, codes)

	assert.True(t, l.Allow("10.0.0.2"), "other clients have their own bucket")
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://shop.example"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://shop.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zerolog.Nop()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, "/x", "")
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}
