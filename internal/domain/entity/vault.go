package entity

import "vault_reporter/internal/domain/payload"

// NetworkKind tells how a network reference was encoded on the wire.
type NetworkKind uint8

const (
	// NetworkNone means the field is missing, null or of an unusable type.
	NetworkNone NetworkKind = iota
	// NetworkRaw is a bare network name string, e.g. "base".
	NetworkRaw
	// NetworkObject is a {"name": ...} object; the name itself may be missing.
	NetworkObject
)

// NetworkRef is the resolved form of a network field that may be a string or an object.
type NetworkRef struct {
	Kind    NetworkKind
	Name    string
	HasName bool
}

// NewNetworkRef classifies a raw network field.
func NewNetworkRef(v payload.Value) NetworkRef {
	switch v.Kind() {
	case payload.String:
		if name, ok := v.Scalar(); ok {
			return NetworkRef{Kind: NetworkRaw, Name: name, HasName: true}
		}
	case payload.Object:
		name, ok := v.Get("name").Scalar()
		return NetworkRef{Kind: NetworkObject, Name: name, HasName: ok}
	}
	return NetworkRef{Kind: NetworkNone}
}

// NameOr returns the network name, or fallback when none can be resolved.
func (n NetworkRef) NameOr(fallback string) string {
	switch n.Kind {
	case NetworkRaw:
		return n.Name
	case NetworkObject:
		if n.HasName {
			return n.Name
		}
	}
	return fallback
}

// Asset is a read-only view over a token record.
type Asset struct{ raw payload.Value }

func NewAsset(v payload.Value) Asset { return Asset{raw: v} }

func (a Asset) Symbol() (string, bool) { return a.raw.Get("symbol").Scalar() }

func (a Asset) Address() (string, bool) { return a.raw.Get("address").Scalar() }

// BalanceNative is the balance in token units, usually a numeric string.
func (a Asset) BalanceNative() payload.Value { return a.raw.Get("balanceNative") }

// BalanceUSD is the balance in USD, usually a numeric string.
func (a Asset) BalanceUSD() payload.Value { return a.raw.Get("balanceUsd") }

func (a Asset) Network() NetworkRef { return NewNetworkRef(a.raw.Get("network")) }

// Decimals is the token's decimal places, when the record carries a usable value.
func (a Asset) Decimals() (uint8, bool) {
	d, ok := a.raw.Get("decimals").Decimal()
	if !ok || !d.IsInteger() || d.Sign() < 0 || d.IntPart() > 255 {
		return 0, false
	}
	return uint8(d.IntPart()), true
}

// DepositOption is a vault eligible to receive a held asset.
type DepositOption struct{ raw payload.Value }

func NewDepositOption(v payload.Value) DepositOption { return DepositOption{raw: v} }

func (o DepositOption) Name() (string, bool) { return o.raw.Get("name").Scalar() }

func (o DepositOption) Address() (string, bool) { return o.raw.Get("address").Scalar() }

func (o DepositOption) Network() NetworkRef { return NewNetworkRef(o.raw.Get("network")) }

func (o DepositOption) ProtocolName() (string, bool) {
	return o.raw.Get("protocol").Get("name").Scalar()
}

// APYTotal is the total APY as a fraction (0.15 == 15%).
func (o DepositOption) APYTotal() payload.Value { return o.raw.Get("apy").Get("total") }

// UserBalanceEntry pairs one held asset with the vaults it can go into.
type UserBalanceEntry struct{ raw payload.Value }

func NewUserBalanceEntry(v payload.Value) UserBalanceEntry { return UserBalanceEntry{raw: v} }

func (e UserBalanceEntry) Asset() Asset { return NewAsset(e.raw.Get("asset")) }

// DepositOptions returns the entry's options; ok is false when the field is not a list.
func (e UserBalanceEntry) DepositOptions() ([]DepositOption, bool) {
	items, ok := e.raw.Get("depositOptions").Items()
	if !ok {
		return nil, false
	}
	options := make([]DepositOption, len(items))
	for i, item := range items {
		options[i] = NewDepositOption(item)
	}
	return options, true
}

// Position is an existing deposit in a vault.
type Position struct{ raw payload.Value }

func NewPosition(v payload.Value) Position { return Position{raw: v} }

func (p Position) Name() (string, bool) { return p.raw.Get("name").Scalar() }

func (p Position) Network() NetworkRef { return NewNetworkRef(p.raw.Get("network")) }

func (p Position) ProtocolName() (string, bool) {
	return p.raw.Get("protocol").Get("name").Scalar()
}

func (p Position) Asset() Asset { return NewAsset(p.raw.Get("asset")) }

func (p Position) APYTotal() payload.Value { return p.raw.Get("apy").Get("total") }

// IdleAssets extracts the asset list of an idle-assets response.
// ok is false when the data field is missing or is not a list.
func IdleAssets(resp payload.Value) ([]Asset, bool) {
	items, ok := resp.Get("data").Items()
	if !ok {
		return nil, false
	}
	assets := make([]Asset, len(items))
	for i, item := range items {
		assets[i] = NewAsset(item)
	}
	return assets, true
}

// UserBalances extracts the balance entries of a deposit-options response.
func UserBalances(resp payload.Value) ([]UserBalanceEntry, bool) {
	items, ok := resp.Get("userBalances").Items()
	if !ok {
		return nil, false
	}
	entries := make([]UserBalanceEntry, len(items))
	for i, item := range items {
		entries[i] = NewUserBalanceEntry(item)
	}
	return entries, true
}

// Positions extracts the position list of a positions response.
func Positions(resp payload.Value) ([]Position, bool) {
	items, ok := resp.Get("data").Items()
	if !ok {
		return nil, false
	}
	positions := make([]Position, len(items))
	for i, item := range items {
		positions[i] = NewPosition(item)
	}
	return positions, true
}
