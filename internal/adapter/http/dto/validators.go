package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ledgerAddressRe matches 0x-prefixed 20-byte hex identifiers.
var ledgerAddressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ledger_address", validateLedgerAddress)
	}
}

func validateLedgerAddress(fl validator.FieldLevel) bool {
	return ledgerAddressRe.MatchString(fl.Field().String())
}
