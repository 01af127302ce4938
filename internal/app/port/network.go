package port

import "vault_reporter/internal/domain/entity"

// NetworkRegistry resolves vaults API network identifiers.
type NetworkRegistry interface {
	GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool)
	GetNetworkDefinitionByChainID(chainID uint64) (entity.NetworkDefinition, bool)
	GetAllNetworkDefinitions() []entity.NetworkDefinition
}
