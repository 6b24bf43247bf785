package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerAddressPattern(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid lowercase", "0x00000000000000000000000000000000000000a1", true},
		{"valid mixed case", "0xAbCdEf0000000000000000000000000000000001", true},
		{"zero address", "0x0000000000000000000000000000000000000000", true},
		{"missing prefix", "00000000000000000000000000000000000000a1", false},
		{"too short", "0x1234", false},
		{"too long", "0x00000000000000000000000000000000000000a1ff", false},
		{"non-hex", "0x0000000000000000000000000000000000000zzz", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledgerAddressRe.MatchString(tt.input))
		})
	}
}
