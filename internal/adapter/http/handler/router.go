package handler

import (
	"stablecoin-payment-ledger/internal/adapter/http/middleware"
	redisStore "stablecoin-payment-ledger/internal/adapter/storage/redis"
	"stablecoin-payment-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AdminSvc      ports.AdminService
	MerchantSvc   ports.MerchantService
	PaymentSvc    ports.PaymentService
	WithdrawalSvc ports.WithdrawalService
	QuerySvc      ports.QueryService
	TokenSvc      ports.TokenService
	HashSvc       ports.HashService
	AdminKeyHash  string

	Events         EventLister                // nil = audit trail disabled
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL and Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	adminAuth := middleware.AdminAuth(deps.HashSvc, deps.AdminKeyHash, deps.QuerySvc, deps.Logger)

	v1 := r.Group("/api/v1")

	// --- Public read-only routes ---
	queryHandler := NewQueryHandler(deps.QuerySvc)
	{
		v1.GET("/merchants", rl("queries"), queryHandler.ListMerchants)
		v1.GET("/merchants/:address", rl("queries"), queryHandler.GetMerchant)
		v1.GET("/merchants/:address/balances/:token", rl("queries"), queryHandler.GetBalance)
		v1.GET("/merchants/:address/transactions", rl("queries"), queryHandler.GetMerchantTransactions)
		v1.GET("/transactions", rl("queries"), queryHandler.ListTransactions)
		v1.GET("/tokens/:address/allowed", rl("queries"), queryHandler.IsTokenAllowed)
		v1.GET("/stats", rl("queries"), queryHandler.Stats)
	}

	// --- JWT-authenticated routes (payers and merchants) ---
	paymentHandler := NewPaymentHandler(deps.PaymentSvc, deps.QuerySvc)
	payments := v1.Group("/payments", jwtAuth)
	{
		payments.POST("", rl("payments"), paymentHandler.ProcessPayment)
		payments.GET("/mine", rl("queries"), paymentHandler.ListMine)
	}

	merchantHandler := NewMerchantHandler(deps.MerchantSvc, deps.WithdrawalSvc)
	merchants := v1.Group("/merchants", jwtAuth)
	{
		merchants.POST("", rl("merchants"), merchantHandler.Register)
		merchants.PUT("/me/payout-wallet", rl("merchants"), merchantHandler.UpdatePayoutWallet)
	}

	withdrawals := v1.Group("/withdrawals", jwtAuth)
	{
		withdrawals.POST("", rl("withdrawals"), merchantHandler.Withdraw)
		withdrawals.POST("/batch", rl("withdrawals"), merchantHandler.BatchWithdraw)
	}

	// --- Admin routes (owner API key) ---
	adminHandler := NewAdminHandler(deps.AdminSvc, deps.TokenSvc, deps.Events)
	admin := v1.Group("/admin", adminAuth)
	{
		admin.POST("/tokens", rl("admin"), adminHandler.AddToken)
		admin.DELETE("/tokens/:address", rl("admin"), adminHandler.RemoveToken)
		admin.POST("/pause", rl("admin"), adminHandler.Pause)
		admin.POST("/unpause", rl("admin"), adminHandler.Unpause)
		admin.POST("/merchants/:address/activate", rl("admin"), adminHandler.ActivateMerchant)
		admin.POST("/merchants/:address/suspend", rl("admin"), adminHandler.SuspendMerchant)
		admin.POST("/emergency-withdraw", rl("admin"), adminHandler.EmergencyWithdraw)
		admin.POST("/transfer-ownership", rl("admin"), adminHandler.TransferOwnership)
		admin.POST("/auth-tokens", rl("admin"), adminHandler.IssueToken)
		admin.GET("/events", rl("admin"), adminHandler.ListEvents)
	}

	return r
}
