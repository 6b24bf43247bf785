package middleware

import (
	"net/http"
	"time"

	"stablecoin-payment-ledger/internal/core/domain"
	"stablecoin-payment-ledger/internal/core/ports"
	"stablecoin-payment-ledger/pkg/apperror"
	"stablecoin-payment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// HeaderAdminKey carries the owner's API key for admin routes.
	HeaderAdminKey = "X-Admin-API-Key"

	// Context keys
	CtxCaller    = "caller"
	CtxRequestID = "request_id"
)

// CallerFrom extracts the authenticated caller address set by JWTAuth
// or AdminAuth.
func CallerFrom(c *gin.Context) (domain.Address, bool) {
	v, ok := c.Get(CtxCaller)
	if !ok {
		return "", false
	}
	addr, ok := v.(domain.Address)
	return addr, ok
}

// JWTAuth validates the Bearer token and stores the caller address in
// the request context.
func JWTAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			response.Error(c, apperror.ErrUnauthorized())
			c.Abort()
			return
		}

		claims, err := tokenSvc.Validate(authHeader[7:])
		if err != nil {
			log.Debug().Err(err).Msg("token validation failed")
			response.Error(c, apperror.ErrUnauthorized())
			c.Abort()
			return
		}

		c.Set(CtxCaller, claims.Caller)
		c.Next()
	}
}

// AdminAuth verifies the admin API key against its Argon2id hash and
// sets the caller to the ledger's current owner. Ownership can move at
// runtime, so the owner is read per request.
func AdminAuth(hashSvc ports.HashService, apiKeyHash string, query ports.QueryService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderAdminKey)
		if key == "" || apiKeyHash == "" {
			response.Error(c, apperror.ErrUnauthorized())
			c.Abort()
			return
		}

		match, err := hashSvc.Verify(key, apiKeyHash)
		if err != nil {
			log.Error().Err(err).Msg("admin key verification failed")
			response.Error(c, apperror.InternalError(err))
			c.Abort()
			return
		}
		if !match {
			response.Error(c, apperror.ErrUnauthorized())
			c.Abort()
			return
		}

		c.Set(CtxCaller, query.Owner())
		c.Next()
	}
}

// RequestID attaches a request ID to the context and response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(CtxRequestID, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// MaxBodySize limits request body size.
func MaxBodySize(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

// RequestLogger logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": apperror.CodeInternal,
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
