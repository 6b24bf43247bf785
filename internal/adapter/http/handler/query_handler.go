package handler

import (
	"net/http"
	"strconv"

	"stablecoin-payment-ledger/internal/adapter/http/dto"
	"stablecoin-payment-ledger/internal/core/domain"
	"stablecoin-payment-ledger/internal/core/ports"
	"stablecoin-payment-ledger/pkg/apperror"
	"stablecoin-payment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

const defaultTransactionWindow = 50

// QueryHandler exposes the read-only surface.
type QueryHandler struct {
	querySvc ports.QueryService
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(querySvc ports.QueryService) *QueryHandler {
	return &QueryHandler{querySvc: querySvc}
}

// GetMerchant handles GET /api/v1/merchants/:address.
func (h *QueryHandler) GetMerchant(c *gin.Context) {
	addr := domain.NormalizeAddress(c.Param("address"))
	m, ok := h.querySvc.GetMerchant(addr)
	if !ok {
		response.Error(c, apperror.ErrInvalidMerchant("merchant is not registered"))
		return
	}
	response.OK(c, toMerchantResponse(m))
}

// ListMerchants handles GET /api/v1/merchants.
func (h *QueryHandler) ListMerchants(c *gin.Context) {
	merchants := h.querySvc.GetAllMerchants()
	out := make([]string, len(merchants))
	for i, m := range merchants {
		out[i] = m.String()
	}
	response.OK(c, out)
}

// GetBalance handles GET /api/v1/merchants/:address/balances/:token.
func (h *QueryHandler) GetBalance(c *gin.Context) {
	merchant := domain.NormalizeAddress(c.Param("address"))
	token := domain.NormalizeAddress(c.Param("token"))
	response.OK(c, dto.BalanceResponse{
		Merchant: merchant.String(),
		Token:    token.String(),
		Balance:  h.querySvc.GetMerchantBalance(merchant, token),
	})
}

// GetMerchantTransactions handles GET /api/v1/merchants/:address/transactions.
func (h *QueryHandler) GetMerchantTransactions(c *gin.Context) {
	addr := domain.NormalizeAddress(c.Param("address"))
	txns := h.querySvc.GetMerchantTransactions(addr)
	items := make([]dto.TransactionResponse, len(txns))
	for i := range txns {
		items[i] = toTransactionResponse(&txns[i])
	}
	response.OK(c, items)
}

// ListTransactions handles GET /api/v1/transactions?start=&end=.
// The window is half-open [start, end) over the global sequence; end
// clamps to the sequence length.
func (h *QueryHandler) ListTransactions(c *gin.Context) {
	start, err := intQuery(c, "start", 0)
	if err != nil {
		response.Error(c, apperror.Validation("start must be an integer"))
		return
	}
	end, err := intQuery(c, "end", start+defaultTransactionWindow)
	if err != nil {
		response.Error(c, apperror.Validation("end must be an integer"))
		return
	}

	txns := h.querySvc.GetAllTransactions(start, end)
	items := make([]dto.TransactionResponse, len(txns))
	for i := range txns {
		items[i] = toTransactionResponse(&txns[i])
	}
	response.OK(c, dto.TransactionListResponse{Items: items, Start: start, End: end})
}

// IsTokenAllowed handles GET /api/v1/tokens/:address/allowed.
func (h *QueryHandler) IsTokenAllowed(c *gin.Context) {
	token := domain.NormalizeAddress(c.Param("address"))
	response.OK(c, gin.H{
		"token":   token.String(),
		"allowed": h.querySvc.IsTokenAllowed(token),
	})
}

// Stats handles GET /api/v1/stats.
func (h *QueryHandler) Stats(c *gin.Context) {
	stats := h.querySvc.Stats()
	response.OK(c, dto.StatsResponse{
		TotalMerchants:    stats.TotalMerchants,
		TotalTransactions: stats.TotalTransactions,
		Paused:            h.querySvc.IsPaused(),
	})
}

// HealthCheck handles GET /health, pinging every dependency.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
