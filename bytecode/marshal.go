package bytecode

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// The JSON form of a unit tree. Constants are tagged unions so that
// numbers, strings, nested tuples, and nested code units all round-trip
// without ambiguity. Shared or cyclic unit references do not survive a
// round trip: each nested occurrence unmarshals to a distinct unit.

type codeJSON struct {
	ID           string      `json:"id,omitempty"`
	Name         string      `json:"name,omitempty"`
	Filename     string      `json:"filename,omitempty"`
	Instructions string      `json:"instructions"`
	Symbols      []string    `json:"symbols,omitempty"`
	Constants    []valueJSON `json:"constants,omitempty"`
}

type valueJSON struct {
	Type  string      `json:"type"`
	Int   *int64      `json:"int,omitempty"`
	Float *float64    `json:"float,omitempty"`
	Str   *string     `json:"str,omitempty"`
	Bool  *bool       `json:"bool,omitempty"`
	Items []valueJSON `json:"items,omitempty"`
	Code  *codeJSON   `json:"code,omitempty"`
}

// Marshal encodes a unit tree as JSON.
func Marshal(code *Code) ([]byte, error) {
	enc, err := encodeCode(code)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(enc, "", "  ")
}

// Unmarshal decodes a unit tree from JSON. Units without an ID in the
// encoded form are assigned fresh ones.
func Unmarshal(data []byte) (*Code, error) {
	var enc codeJSON
	if err := json.Unmarshal(data, &enc); err != nil {
		return nil, fmt.Errorf("bytecode error: %w", err)
	}
	return decodeCode(&enc)
}

func encodeCode(code *Code) (*codeJSON, error) {
	enc := &codeJSON{
		ID:           code.id,
		Name:         code.name,
		Filename:     code.filename,
		Instructions: hex.EncodeToString(code.instructions),
		Symbols:      copyStrings(code.symbols),
	}
	for i, value := range code.constants {
		v, err := encodeValue(value)
		if err != nil {
			return nil, fmt.Errorf("bytecode error: unit %q constant %d: %w", code.Label(), i, err)
		}
		enc.Constants = append(enc.Constants, v)
	}
	return enc, nil
}

func encodeValue(value any) (valueJSON, error) {
	switch v := value.(type) {
	case nil:
		return valueJSON{Type: "none"}, nil
	case bool:
		return valueJSON{Type: "bool", Bool: &v}, nil
	case int:
		n := int64(v)
		return valueJSON{Type: "int", Int: &n}, nil
	case int64:
		return valueJSON{Type: "int", Int: &v}, nil
	case float64:
		return valueJSON{Type: "float", Float: &v}, nil
	case string:
		return valueJSON{Type: "str", Str: &v}, nil
	case []any:
		enc := valueJSON{Type: "tuple", Items: []valueJSON{}}
		for _, item := range v {
			e, err := encodeValue(item)
			if err != nil {
				return valueJSON{}, err
			}
			enc.Items = append(enc.Items, e)
		}
		return enc, nil
	case *Code:
		e, err := encodeCode(v)
		if err != nil {
			return valueJSON{}, err
		}
		return valueJSON{Type: "code", Code: e}, nil
	default:
		return valueJSON{}, fmt.Errorf("unsupported constant type %T", value)
	}
}

func decodeCode(enc *codeJSON) (*Code, error) {
	instructions, err := hex.DecodeString(enc.Instructions)
	if err != nil {
		return nil, fmt.Errorf("bytecode error: unit %q instructions: %w", enc.Name, err)
	}
	var constants []any
	for i, v := range enc.Constants {
		value, err := decodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("bytecode error: unit %q constant %d: %w", enc.Name, i, err)
		}
		constants = append(constants, value)
	}
	return NewCode(CodeParams{
		ID:           enc.ID,
		Name:         enc.Name,
		Filename:     enc.Filename,
		Instructions: instructions,
		Symbols:      enc.Symbols,
		Constants:    constants,
	}), nil
}

func decodeValue(enc valueJSON) (any, error) {
	switch enc.Type {
	case "none":
		return nil, nil
	case "bool":
		if enc.Bool == nil {
			return nil, fmt.Errorf("missing bool value")
		}
		return *enc.Bool, nil
	case "int":
		if enc.Int == nil {
			return nil, fmt.Errorf("missing int value")
		}
		return *enc.Int, nil
	case "float":
		if enc.Float == nil {
			return nil, fmt.Errorf("missing float value")
		}
		return *enc.Float, nil
	case "str":
		if enc.Str == nil {
			return nil, fmt.Errorf("missing str value")
		}
		return *enc.Str, nil
	case "tuple":
		items := make([]any, 0, len(enc.Items))
		for _, item := range enc.Items {
			value, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		return items, nil
	case "code":
		if enc.Code == nil {
			return nil, fmt.Errorf("missing code value")
		}
		return decodeCode(enc.Code)
	default:
		return nil, fmt.Errorf("unsupported constant type %q", enc.Type)
	}
}
