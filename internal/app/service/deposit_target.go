package service

import (
	"errors"
	"fmt"

	"vault_reporter/internal/domain/entity"
	"vault_reporter/internal/domain/payload"
)

// ErrNoDepositOptions means the deposit-options payload had no balance entries.
var ErrNoDepositOptions = errors.New("no deposit options available")

// NotEnoughOptionsError means the first balance entry has too few options for the configured index.
type NotEnoughOptionsError struct {
	Need int
	Have int
}

func (e *NotEnoughOptionsError) Error() string {
	return fmt.Sprintf("not enough deposit options available (need at least %d, have %d)", e.Need, e.Have)
}

const unknownVault = "Unknown vault"

// DepositTarget is the vault and asset chosen for the deposit transaction.
type DepositTarget struct {
	VaultName    string
	VaultAddress string
	HasVault     bool
	AssetAddress string
	HasAsset     bool
	Network      string
	Asset        entity.Asset
}

// Ready reports whether both addresses needed to build a transaction were found.
func (t DepositTarget) Ready() bool { return t.HasVault && t.HasAsset }

// SelectDepositTarget picks the option at index from the first balance entry.
// The choice is positional; options are never ranked by APY here.
func SelectDepositTarget(resp payload.Value, index int, defaultNetwork string) (DepositTarget, error) {
	entries, _ := entity.UserBalances(resp)
	if len(entries) == 0 {
		return DepositTarget{}, ErrNoDepositOptions
	}

	first := entries[0]
	options, _ := first.DepositOptions()
	if index < 0 || len(options) <= index {
		return DepositTarget{}, &NotEnoughOptionsError{Need: index + 1, Have: len(options)}
	}

	option := options[index]
	name, ok := option.Name()
	if !ok {
		name = unknownVault
	}
	asset := first.Asset()
	vault, hasVault := option.Address()
	assetAddr, hasAsset := asset.Address()

	return DepositTarget{
		VaultName:    name,
		VaultAddress: vault,
		HasVault:     hasVault,
		AssetAddress: assetAddr,
		HasAsset:     hasAsset,
		Network:      option.Network().NameOr(defaultNetwork),
		Asset:        asset,
	}, nil
}
