package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stablecoin-payment-ledger/internal/core/domain"
	"stablecoin-payment-ledger/internal/core/ports"
	"stablecoin-payment-ledger/internal/service"
	"stablecoin-payment-ledger/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testCaller = domain.Address("0x00000000000000000000000000000000000000b1")

// stubQuery provides only the Owner lookup AdminAuth needs.
type stubQuery struct {
	ports.QueryService
	owner domain.Address
}

func (s stubQuery) Owner() domain.Address { return s.owner }

func callerEcho() gin.HandlerFunc {
	return func(c *gin.Context) {
		addr, ok := CallerFrom(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no caller")
			return
		}
		c.String(http.StatusOK, addr.String())
	}
}

func TestJWTAuth(t *testing.T) {
	log := logger.NewWithWriter("error", io.Discard)
	tokenSvc := service.NewJWTTokenService("middleware-test-secret", time.Hour, "test")

	r := gin.New()
	r.GET("/protected", JWTAuth(tokenSvc, log), callerEcho())

	t.Run("valid token sets caller", func(t *testing.T) {
		token, _, err := tokenSvc.Generate(testCaller)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, testCaller.String(), w.Body.String())
	})

	t.Run("missing header rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminAuth(t *testing.T) {
	log := logger.NewWithWriter("error", io.Discard)
	hashSvc := service.NewArgon2HashService()
	keyHash, err := hashSvc.Hash("admin-key")
	require.NoError(t, err)

	owner := domain.Address("0x00000000000000000000000000000000000000ff")
	r := gin.New()
	r.GET("/admin", AdminAuth(hashSvc, keyHash, stubQuery{owner: owner}, log), callerEcho())

	t.Run("valid key acts as owner", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(HeaderAdminKey, "admin-key")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, owner.String(), w.Body.String())
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(HeaderAdminKey, "not-the-key")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing key rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminAuth_NoHashConfigured(t *testing.T) {
	log := logger.NewWithWriter("error", io.Discard)
	hashSvc := service.NewArgon2HashService()

	r := gin.New()
	r.GET("/admin", AdminAuth(hashSvc, "", stubQuery{}, log), callerEcho())

	// An empty configured hash disables admin access entirely.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(HeaderAdminKey, "anything")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("generates when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("propagates when present", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-123")
		r.ServeHTTP(w, req)
		assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	})
}

func TestMaxBodySize(t *testing.T) {
	r := gin.New()
	r.Use(MaxBodySize(16))
	r.POST("/", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 64))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRecovery(t *testing.T) {
	log := logger.NewWithWriter("error", io.Discard)
	r := gin.New()
	r.Use(Recovery(log))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_001")
}
