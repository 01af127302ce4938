package payload

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind identifies which JSON shape a Value holds.
type Kind uint8

const (
	// Absent marks a field that is not present at all. It is the zero Kind.
	Absent Kind = iota
	Null
	Bool
	Number
	String
	List
	Object
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case List:
		return "list"
	case Object:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Field is one key/value pair of an object, in wire order.
type Field struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value as returned by the vaults API.
// The zero Value is Absent, so lookups on missing keys never need a nil check.
type Value struct {
	kind   Kind
	text   string // string contents, or the verbatim number literal
	flag   bool
	items  []Value
	fields []Field
}

// NewString wraps s as a JSON string.
func NewString(s string) Value { return Value{kind: String, text: s} }

// NewNumber wraps a JSON number literal such as "12", "0.15" or "1e-3".
func NewNumber(literal string) Value { return Value{kind: Number, text: literal} }

// NewFloat wraps f as a JSON number.
func NewFloat(f float64) Value {
	return Value{kind: Number, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// NewBool wraps b as a JSON boolean.
func NewBool(b bool) Value { return Value{kind: Bool, flag: b} }

// NewNull returns the JSON null value.
func NewNull() Value { return Value{kind: Null} }

// NewList builds a JSON array.
func NewList(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: List, items: items}
}

// NewObject builds a JSON object keeping the given field order.
func NewObject(fields ...Field) Value {
	if fields == nil {
		fields = []Field{}
	}
	return Value{kind: Object, fields: fields}
}

// F is shorthand for building a Field.
func F(key string, v Value) Field { return Field{Key: key, Value: v} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsAbsent() bool { return v.kind == Absent }

func (v Value) IsNull() bool { return v.kind == Null }

// IsScalar reports whether v is a string, number or bool.
func (v Value) IsScalar() bool {
	return v.kind == String || v.kind == Number || v.kind == Bool
}

// Get returns the value of key. Missing keys and non-object receivers yield Absent.
func (v Value) Get(key string) Value {
	if v.kind != Object {
		return Value{}
	}
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value
		}
	}
	return Value{}
}

// Has reports whether v is an object carrying key, null or not.
func (v Value) Has(key string) bool {
	if v.kind != Object {
		return false
	}
	for _, f := range v.fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

// Items returns the elements of a list. ok is false for any other kind.
func (v Value) Items() ([]Value, bool) {
	if v.kind != List {
		return nil, false
	}
	return v.items, true
}

// Fields returns the fields of an object in wire order. ok is false for any other kind.
func (v Value) Fields() ([]Field, bool) {
	if v.kind != Object {
		return nil, false
	}
	return v.fields, true
}

// Str returns the contents of a JSON string.
func (v Value) Str() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.text, true
}

// maxDecimalExponent bounds parsed numbers to the float64 range.
const maxDecimalExponent = 308

// Decimal parses numbers and numeric strings. Values whose magnitude falls
// outside the float64 range are rejected.
func (v Value) Decimal() (decimal.Decimal, bool) {
	var text string
	switch v.kind {
	case Number:
		text = v.text
	case String:
		text = strings.TrimSpace(v.text)
	default:
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(text)
	if err != nil || !inRange(d) {
		return decimal.Zero, false
	}
	return d, true
}

func inRange(d decimal.Decimal) bool {
	if d.IsZero() {
		return true
	}
	exp := int64(d.Exponent())
	magnitude := exp + int64(d.NumDigits()) - 1
	return exp >= -maxDecimalExponent && exp <= maxDecimalExponent &&
		magnitude >= -maxDecimalExponent && magnitude <= maxDecimalExponent
}

// Truthy follows the usual dynamic-language rules: absent, null, false, zero,
// the empty string and empty containers are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case Bool:
		return v.flag
	case Number:
		d, err := decimal.NewFromString(v.text)
		if err != nil {
			return true
		}
		return !d.IsZero()
	case String:
		return v.text != ""
	case List:
		return len(v.items) > 0
	case Object:
		return len(v.fields) > 0
	default:
		return false
	}
}

// Scalar returns the text of a truthy scalar. Everything else reports ok=false.
func (v Value) Scalar() (string, bool) {
	if !v.IsScalar() || !v.Truthy() {
		return "", false
	}
	return v.Text(), true
}

// Text renders v for display: strings verbatim, numbers as their literal,
// booleans as true/false, null as "null" and containers as compact JSON.
// Absent renders as the empty string.
func (v Value) Text() string {
	switch v.kind {
	case Absent:
		return ""
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(v.flag)
	case Number, String:
		return v.text
	default:
		return encodeCompact(v)
	}
}

// TextOr renders truthy scalars and falls back for anything else.
func TextOr(v Value, fallback string) string {
	if s, ok := v.Scalar(); ok {
		return s
	}
	return fallback
}
