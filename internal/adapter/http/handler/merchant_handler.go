package handler

import (
	"time"

	"stablecoin-payment-ledger/internal/adapter/http/dto"
	"stablecoin-payment-ledger/internal/core/domain"
	"stablecoin-payment-ledger/internal/core/ports"
	"stablecoin-payment-ledger/pkg/apperror"
	"stablecoin-payment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// MerchantHandler handles merchant self-service endpoints. The caller
// address from the JWT is the merchant identity.
type MerchantHandler struct {
	merchantSvc   ports.MerchantService
	withdrawalSvc ports.WithdrawalService
}

// NewMerchantHandler creates a new MerchantHandler.
func NewMerchantHandler(merchantSvc ports.MerchantService, withdrawalSvc ports.WithdrawalService) *MerchantHandler {
	return &MerchantHandler{merchantSvc: merchantSvc, withdrawalSvc: withdrawalSvc}
}

// Register handles POST /api/v1/merchants.
func (h *MerchantHandler) Register(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	var req dto.RegisterMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	m, err := h.merchantSvc.Register(c.Request.Context(), addr, domain.NormalizeAddress(req.PayoutWallet))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toMerchantResponse(m))
}

// UpdatePayoutWallet handles PUT /api/v1/merchants/me/payout-wallet.
func (h *MerchantHandler) UpdatePayoutWallet(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	var req dto.UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	wallet := domain.NormalizeAddress(req.PayoutWallet)
	if err := h.merchantSvc.UpdatePayoutWallet(c.Request.Context(), addr, wallet); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"payout_wallet": wallet})
}

// Withdraw handles POST /api/v1/withdrawals. A zero or omitted amount
// withdraws the full balance.
func (h *MerchantHandler) Withdraw(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	token := domain.NormalizeAddress(req.Token)
	amount := req.Amount
	if amount == 0 {
		moved, err := h.withdrawalSvc.WithdrawAll(c.Request.Context(), addr, token)
		if err != nil {
			response.Error(c, err)
			return
		}
		amount = moved
	} else if err := h.withdrawalSvc.Withdraw(c.Request.Context(), addr, token, amount); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WithdrawalResponse{Token: token.String(), Amount: amount})
}

// BatchWithdraw handles POST /api/v1/withdrawals/batch.
func (h *MerchantHandler) BatchWithdraw(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	var req dto.BatchWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	tokens := make([]domain.Address, len(req.Tokens))
	for i, t := range req.Tokens {
		tokens[i] = domain.NormalizeAddress(t)
	}

	withdrawn, err := h.withdrawalSvc.BatchWithdraw(c.Request.Context(), addr, tokens, req.Amounts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.BatchWithdrawalResponse{Tokens: req.Tokens, Amounts: withdrawn})
}

// toMerchantResponse converts domain.Merchant to its DTO.
func toMerchantResponse(m *domain.Merchant) dto.MerchantResponse {
	return dto.MerchantResponse{
		Address:      m.Address.String(),
		PayoutWallet: m.PayoutWallet.String(),
		Active:       m.Active,
		RegisteredAt: m.RegisteredAt.Format(time.RFC3339),
		TotalRevenue: m.TotalRevenue,
	}
}
