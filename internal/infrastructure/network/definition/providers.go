package networkdefinition

import (
	"sort"
	"strings"

	"vault_reporter/internal/app/port"
	"vault_reporter/internal/domain/entity"
)

// Known vaults API networks.
var ( //nolint:gochecknoglobals // Global for definitions
	Mainnet = entity.NetworkDefinition{
		ChainID:          1,
		Identifier:       "mainnet",
		Name:             "Ethereum Mainnet",
		NativeSymbol:     "ETH",
		BlockExplorerURL: "https://etherscan.io",
	}
	Optimism = entity.NetworkDefinition{
		ChainID:          10,
		Identifier:       "optimism",
		Name:             "OP Mainnet",
		NativeSymbol:     "ETH",
		BlockExplorerURL: "https://optimistic.etherscan.io",
	}
	BSC = entity.NetworkDefinition{
		ChainID:          56,
		Identifier:       "bsc",
		Name:             "BNB Smart Chain",
		NativeSymbol:     "BNB",
		BlockExplorerURL: "https://bscscan.com",
	}
	Gnosis = entity.NetworkDefinition{
		ChainID:          100,
		Identifier:       "gnosis",
		Name:             "Gnosis Chain",
		NativeSymbol:     "xDAI",
		BlockExplorerURL: "https://gnosisscan.io",
	}
	Unichain = entity.NetworkDefinition{
		ChainID:          130,
		Identifier:       "unichain",
		Name:             "Unichain",
		NativeSymbol:     "ETH",
		BlockExplorerURL: "https://uniscan.xyz",
	}
	Polygon = entity.NetworkDefinition{
		ChainID:          137,
		Identifier:       "polygon",
		Name:             "Polygon PoS",
		NativeSymbol:     "POL",
		BlockExplorerURL: "https://polygonscan.com",
	}
	Base = entity.NetworkDefinition{
		ChainID:          8453,
		Identifier:       "base",
		Name:             "Base",
		NativeSymbol:     "ETH",
		BlockExplorerURL: "https://basescan.org",
	}
	Arbitrum = entity.NetworkDefinition{
		ChainID:          42161,
		Identifier:       "arbitrum",
		Name:             "Arbitrum One",
		NativeSymbol:     "ETH",
		BlockExplorerURL: "https://arbiscan.io",
	}
	Celo = entity.NetworkDefinition{
		ChainID:          42220,
		Identifier:       "celo",
		Name:             "Celo",
		NativeSymbol:     "CELO",
		BlockExplorerURL: "https://celoscan.io",
	}
)

var allKnownDefinitions = map[string]entity.NetworkDefinition{ //nolint:gochecknoglobals
	Mainnet.Identifier:  Mainnet,
	Optimism.Identifier: Optimism,
	BSC.Identifier:      BSC,
	Gnosis.Identifier:   Gnosis,
	Unichain.Identifier: Unichain,
	Polygon.Identifier:  Polygon,
	Base.Identifier:     Base,
	Arbitrum.Identifier: Arbitrum,
	Celo.Identifier:     Celo,
}

// NetworkDefinitionProvider answers network lookups from the built-in definitions.
type NetworkDefinitionProvider struct {
	logger  port.Logger
	defs    map[string]entity.NetworkDefinition
	ordered []entity.NetworkDefinition
}

var _ port.NetworkRegistry = (*NetworkDefinitionProvider)(nil)

// NewNetworkDefinitionProvider creates a provider over the known networks.
func NewNetworkDefinitionProvider(log port.Logger) *NetworkDefinitionProvider {
	p := &NetworkDefinitionProvider{
		logger: log,
		defs:   allKnownDefinitions,
	}
	for _, def := range p.defs {
		p.ordered = append(p.ordered, def)
	}
	sort.Slice(p.ordered, func(i, j int) bool { return p.ordered[i].ChainID < p.ordered[j].ChainID })

	p.logger.Debug("NetworkDefinitionProvider initialized", "networks", len(p.ordered))
	return p
}

// GetAllNetworkDefinitions returns every known network ordered by chain ID.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defsCopy := make([]entity.NetworkDefinition, len(p.ordered))
	copy(defsCopy, p.ordered)
	return defsCopy
}

// GetNetworkDefinitionByName looks up a network by its identifier, ignoring case.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	def, ok := p.defs[strings.ToLower(strings.TrimSpace(identifier))]
	return def, ok
}

// GetNetworkDefinitionByChainID looks up a network by chain ID.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByChainID(chainID uint64) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	for _, def := range p.ordered {
		if def.ChainID == chainID {
			return def, true
		}
	}
	return entity.NetworkDefinition{}, false
}
