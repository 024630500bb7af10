package params

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Parse decodes a single JSON document into a Value, preserving object
// key order and number text.
func Parse(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}

	// A parameter tree is one document; anything after it is an error.
	if dec.More() {
		return Value{}, fmt.Errorf("unexpected data after JSON document")
	}

	return v, nil
}

// ParseBytes decodes a single JSON document from a byte slice.
func ParseBytes(data []byte) (Value, error) {
	return Parse(bytes.NewReader(data))
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return Value{}, fmt.Errorf("unexpected end of JSON document")
		}
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t.String())
	case string:
		return String(t), nil
	case json.Number:
		return Number(t.String()), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	}

	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (Value, error) {
	var fields []Field

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
		}

		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}

		fields = append(fields, Field{Key: key, Val: val})
	}

	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}

	return Object(fields...), nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	var items []Value

	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		items = append(items, val)
	}

	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}

	return Array(items...), nil
}
