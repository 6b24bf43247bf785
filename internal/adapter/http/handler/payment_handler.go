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

// PaymentHandler handles the payment endpoint. The authenticated
// caller is always the payer.
type PaymentHandler struct {
	paymentSvc ports.PaymentService
	querySvc   ports.QueryService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentSvc ports.PaymentService, querySvc ports.QueryService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc, querySvc: querySvc}
}

// ProcessPayment handles POST /api/v1/payments.
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	payer, ok := caller(c)
	if !ok {
		return
	}

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	tx, err := h.paymentSvc.ProcessPayment(c.Request.Context(), ports.PaymentRequest{
		Payer:    payer,
		Merchant: domain.NormalizeAddress(req.Merchant),
		Token:    domain.NormalizeAddress(req.Token),
		Amount:   req.Amount,
		Metadata: req.Metadata,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toTransactionResponse(tx))
}

// ListMine handles GET /api/v1/payments/mine: the caller's own payment
// history.
func (h *PaymentHandler) ListMine(c *gin.Context) {
	payer, ok := caller(c)
	if !ok {
		return
	}

	txns := h.querySvc.GetUserTransactions(payer)
	items := make([]dto.TransactionResponse, len(txns))
	for i := range txns {
		items[i] = toTransactionResponse(&txns[i])
	}
	response.OK(c, items)
}

// toTransactionResponse converts domain.Transaction to its DTO.
func toTransactionResponse(tx *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        tx.ID.String(),
		Payer:     tx.Payer.String(),
		Merchant:  tx.Merchant.String(),
		Token:     tx.Token.String(),
		Amount:    tx.Amount,
		Metadata:  tx.Metadata,
		Timestamp: tx.Timestamp.Format(time.RFC3339),
	}
}
