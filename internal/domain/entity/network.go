package entity

// NetworkDefinition describes a chain the vaults API reports on.
type NetworkDefinition struct {
	ChainID uint64 `json:"chainId" yaml:"chainId"`
	// Identifier is the network name used in vaults API paths, e.g. "mainnet" or "base".
	Identifier       string `json:"identifier" yaml:"identifier"`
	Name             string `json:"name" yaml:"name"`
	NativeSymbol     string `json:"nativeSymbol" yaml:"nativeSymbol"`
	BlockExplorerURL string `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}

// AddressURL links an address on the network's block explorer, or returns "" without one.
func (n NetworkDefinition) AddressURL(address string) string {
	if n.BlockExplorerURL == "" {
		return ""
	}
	return n.BlockExplorerURL + "/address/" + address
}
