package handler

import (
	"context"

	"stablecoin-payment-ledger/internal/adapter/http/dto"
	"stablecoin-payment-ledger/internal/adapter/http/middleware"
	"stablecoin-payment-ledger/internal/adapter/storage/postgres"
	"stablecoin-payment-ledger/internal/core/domain"
	"stablecoin-payment-ledger/internal/core/ports"
	"stablecoin-payment-ledger/pkg/apperror"
	"stablecoin-payment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// EventLister reads back the persisted audit trail.
type EventLister interface {
	ListRecent(ctx context.Context, limit int) ([]postgres.StoredEvent, error)
}

// AdminHandler handles the owner-gated endpoints.
type AdminHandler struct {
	adminSvc ports.AdminService
	tokenSvc ports.TokenService
	events   EventLister // nil = audit trail disabled
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminSvc ports.AdminService, tokenSvc ports.TokenService, events EventLister) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, tokenSvc: tokenSvc, events: events}
}

func caller(c *gin.Context) (domain.Address, bool) {
	addr, ok := middleware.CallerFrom(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized())
	}
	return addr, ok
}

// AddToken handles POST /api/v1/admin/tokens.
func (h *AdminHandler) AddToken(c *gin.Context) {
	owner, ok := caller(c)
	if !ok {
		return
	}

	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	token := domain.NormalizeAddress(req.Token)
	if err := h.adminSvc.AddAllowedToken(c.Request.Context(), owner, token); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"token": token})
}

// RemoveToken handles DELETE /api/v1/admin/tokens/:address.
func (h *AdminHandler) RemoveToken(c *gin.Context) {
	owner, ok := caller(c)
	if !ok {
		return
	}

	token := domain.NormalizeAddress(c.Param("address"))
	if err := h.adminSvc.RemoveAllowedToken(c.Request.Context(), owner, token); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"token": token})
}

// Pause handles POST /api/v1/admin/pause.
func (h *AdminHandler) Pause(c *gin.Context) {
	owner, ok := caller(c)
	if !ok {
		return
	}
	if err := h.adminSvc.Pause(c.Request.Context(), owner); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"paused": true})
}

// Unpause handles POST /api/v1/admin/unpause.
func (h *AdminHandler) Unpause(c *gin.Context) {
	owner, ok := caller(c)
	if !ok {
		return
	}
	if err := h.adminSvc.Unpause(c.Request.Context(), owner); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"paused": false})
}

// ActivateMerchant handles POST /api/v1/admin/merchants/:address/activate.
func (h *AdminHandler) ActivateMerchant(c *gin.Context) {
	owner, ok := caller(c)
	if !ok {
		return
	}
	merchant := domain.NormalizeAddress(c.Param("address"))
	if err := h.adminSvc.ActivateMerchant(c.Request.Context(), owner, merchant); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"merchant": merchant, "active": true})
}

// SuspendMerchant handles POST /api/v1/admin/merchants/:address/suspend.
func (h *AdminHandler) SuspendMerchant(c *gin.Context) {
	owner, ok := caller(c)
	if !ok {
		return
	}
	merchant := domain.NormalizeAddress(c.Param("address"))
	if err := h.adminSvc.SuspendMerchant(c.Request.Context(), owner, merchant); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"merchant": merchant, "active": false})
}

// EmergencyWithdraw handles POST /api/v1/admin/emergency-withdraw.
func (h *AdminHandler) EmergencyWithdraw(c *gin.Context) {
	owner, ok := caller(c)
	if !ok {
		return
	}

	var req dto.EmergencyWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	token := domain.NormalizeAddress(req.Token)
	if err := h.adminSvc.EmergencyWithdraw(c.Request.Context(), owner, token, req.Amount); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.WithdrawalResponse{Token: token.String(), Amount: req.Amount})
}

// TransferOwnership handles POST /api/v1/admin/transfer-ownership.
func (h *AdminHandler) TransferOwnership(c *gin.Context) {
	owner, ok := caller(c)
	if !ok {
		return
	}

	var req dto.TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	newOwner := domain.NormalizeAddress(req.NewOwner)
	if err := h.adminSvc.TransferOwnership(c.Request.Context(), owner, newOwner); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"owner": newOwner})
}

// IssueToken handles POST /api/v1/admin/auth-tokens. The owner mints
// caller JWTs for payers and merchants.
func (h *AdminHandler) IssueToken(c *gin.Context) {
	if _, ok := caller(c); !ok {
		return
	}

	var req dto.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	token, expiresAt, err := h.tokenSvc.Generate(domain.NormalizeAddress(req.Caller))
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	response.Created(c, dto.IssueTokenResponse{Token: token, Expiry: expiresAt.Unix()})
}

// ListEvents handles GET /api/v1/admin/events.
func (h *AdminHandler) ListEvents(c *gin.Context) {
	if _, ok := caller(c); !ok {
		return
	}
	if h.events == nil {
		response.Error(c, apperror.Validation("event audit trail is not configured"))
		return
	}

	limit := 100
	events, err := h.events.ListRecent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	response.OK(c, events)
}
