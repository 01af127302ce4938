package utils

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/shopspring/decimal"
)

// ParseBaseUnits parses an integer token amount in base units ("1000000"), also accepting 0x hex.
func ParseBaseUnits(amount string) (*big.Int, error) {
	if amount == "" {
		return nil, fmt.Errorf("empty base-unit amount")
	}
	v, ok := math.ParseBig256(amount)
	if !ok {
		return nil, fmt.Errorf("invalid base-unit amount %q", amount)
	}
	return v, nil
}

// FormatBaseUnits converts a base-unit amount to a human-readable token amount.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
func FormatBaseUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}
