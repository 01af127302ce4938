package entity

import "vault_reporter/internal/domain/payload"

// ActionsKey is the reserved transaction field holding the constituent actions.
const ActionsKey = "actions"

// TransactionBlob is a generated transaction payload: arbitrary ordered
// properties plus an optional list of actions.
type TransactionBlob struct{ raw payload.Value }

// NewTransactionBlob wraps v; ok is false unless v is an object.
func NewTransactionBlob(v payload.Value) (TransactionBlob, bool) {
	if v.Kind() != payload.Object {
		return TransactionBlob{}, false
	}
	return TransactionBlob{raw: v}, true
}

// Properties returns every field except the reserved actions field, in wire order.
func (b TransactionBlob) Properties() []payload.Field {
	fields, _ := b.raw.Fields()
	props := make([]payload.Field, 0, len(fields))
	for _, f := range fields {
		if f.Key == ActionsKey {
			continue
		}
		props = append(props, f)
	}
	return props
}

// Actions returns the actions list; ok is false when it is missing or not a list.
func (b TransactionBlob) Actions() ([]TransactionAction, bool) {
	items, ok := b.raw.Get(ActionsKey).Items()
	if !ok {
		return nil, false
	}
	actions := make([]TransactionAction, len(items))
	for i, item := range items {
		actions[i] = TransactionAction{raw: item}
	}
	return actions, true
}

// TransactionAction is one step of a generated transaction (approve, deposit, ...).
type TransactionAction struct{ raw payload.Value }

func NewTransactionAction(v payload.Value) TransactionAction { return TransactionAction{raw: v} }

func (a TransactionAction) IsObject() bool { return a.raw.Kind() == payload.Object }

func (a TransactionAction) Raw() payload.Value { return a.raw }

func (a TransactionAction) Name() (string, bool) { return a.raw.Get("name").Scalar() }

// Tx returns the nested transaction fields when tx is an object.
func (a TransactionAction) Tx() ([]payload.Field, bool) {
	return a.raw.Get("tx").Fields()
}

// ActionRequest describes a transaction-generation call to the vaults API.
type ActionRequest struct {
	Action       string `json:"action"`
	UserAddress  string `json:"userAddress"`
	Network      string `json:"network"`
	VaultAddress string `json:"vaultAddress"`
	Amount       string `json:"amount"`
	AssetAddress string `json:"assetAddress"`
	Simulate     bool   `json:"simulate"`
}

// TransactionFailure is returned instead of a payload when generation fails.
type TransactionFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}
