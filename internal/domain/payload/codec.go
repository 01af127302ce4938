package payload

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrTrailingData is returned when a complete document is followed by more tokens.
var ErrTrailingData = errors.New("unexpected data after top-level value")

// Parse decodes a JSON document into a Value, keeping object field order and
// number literals exactly as received. An empty body decodes to Absent.
func Parse(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, nil
	}

	iter := json.BorrowIterator(data)
	defer json.ReturnIterator(iter)

	v := readValue(iter)
	if !readable(iter) {
		return Value{}, fmt.Errorf("failed to decode payload: %w", iter.Error)
	}
	if iter.Error == nil {
		// Only whitespace may follow; reaching the end sets io.EOF.
		if iter.WhatIsNext() != jsoniter.InvalidValue || iter.Error == nil {
			return Value{}, fmt.Errorf("failed to decode payload: %w", ErrTrailingData)
		}
	}
	return v, nil
}

// readable reports whether decoding can continue. A number that ends the input
// leaves io.EOF behind even though it was read completely; an enclosing
// container then fails on its missing closing token.
func readable(iter *jsoniter.Iterator) bool {
	return iter.Error == nil || errors.Is(iter.Error, io.EOF)
}

func readValue(iter *jsoniter.Iterator) Value {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		return NewString(iter.ReadString())
	case jsoniter.NumberValue:
		return NewNumber(string(iter.ReadNumber()))
	case jsoniter.BoolValue:
		return NewBool(iter.ReadBool())
	case jsoniter.NilValue:
		iter.ReadNil()
		return NewNull()
	case jsoniter.ArrayValue:
		items := []Value{}
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			items = append(items, readValue(it))
			return readable(it)
		})
		return Value{kind: List, items: items}
	case jsoniter.ObjectValue:
		fields := []Field{}
		seen := make(map[string]int)
		iter.ReadMapCB(func(it *jsoniter.Iterator, key string) bool {
			val := readValue(it)
			// Duplicate keys keep their first position and their last value.
			if idx, dup := seen[key]; dup {
				fields[idx].Value = val
			} else {
				seen[key] = len(fields)
				fields = append(fields, Field{Key: key, Value: val})
			}
			return readable(it)
		})
		return Value{kind: Object, fields: fields}
	default:
		iter.ReportError("payload.Parse", "unexpected token")
		return Value{}
	}
}

func encodeCompact(v Value) string {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)
	writeValue(stream, v)
	return string(stream.Buffer())
}

func writeValue(stream *jsoniter.Stream, v Value) {
	switch v.kind {
	case Absent, Null:
		stream.WriteNil()
	case Bool:
		stream.WriteBool(v.flag)
	case Number:
		stream.WriteRaw(v.text)
	case String:
		stream.WriteString(v.text)
	case List:
		stream.WriteArrayStart()
		for i, item := range v.items {
			if i > 0 {
				stream.WriteMore()
			}
			writeValue(stream, item)
		}
		stream.WriteArrayEnd()
	case Object:
		stream.WriteObjectStart()
		for i, f := range v.fields {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(f.Key)
			writeValue(stream, f.Value)
		}
		stream.WriteObjectEnd()
	}
}

// MarshalJSON lets a Value be embedded in API responses unchanged.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(encodeCompact(v)), nil
}
