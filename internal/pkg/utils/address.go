package utils

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ChecksumAddress returns the EIP-55 form of a hex address, or the trimmed
// input unchanged when it is not a valid address.
func ChecksumAddress(address string) string {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) {
		return address
	}
	return common.HexToAddress(address).Hex()
}

// ShortAddress abbreviates an address for log lines, e.g. 0xdB79...777d.
func ShortAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
