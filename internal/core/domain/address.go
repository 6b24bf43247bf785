package domain

import "strings"

// Address is an opaque, address-like identity for payers, merchants,
// payout wallets and tokens. Stored lowercase-hex, EVM style.
type Address string

// ZeroAddress is the null sentinel.
const ZeroAddress Address = "0x0000000000000000000000000000000000000000"

// IsZero reports whether the address is empty or the zero sentinel.
func (a Address) IsZero() bool {
	return a == "" || strings.EqualFold(string(a), string(ZeroAddress))
}

func (a Address) String() string {
	return string(a)
}

// Short returns a truncated form for log fields.
func (a Address) Short() string {
	if len(a) <= 10 {
		return string(a)
	}
	return string(a[:10]) + "..."
}

// NormalizeAddress lowercases and trims an address-like identifier.
func NormalizeAddress(s string) Address {
	return Address(strings.ToLower(strings.TrimSpace(s)))
}
