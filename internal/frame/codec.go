package frame

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Mr-Dark-debug/vamonos/internal/array"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrInvalidFrame is returned when a payload is not a JSON object.
var ErrInvalidFrame = errors.New("frame payload is not a JSON object")

// Encode serializes a frame as a flat JSON object. Arrays are written
// with null for empty cells; keys are emitted in sorted order.
func Encode(f Frame) ([]byte, error) {
	out := []byte("{}")
	for _, name := range f.Names() {
		var err error
		out, err = sjson.SetBytes(out, escapePath(name), encodable(f.vars[name]))
		if err != nil {
			return nil, fmt.Errorf("encoding variable %s: %w", name, err)
		}
	}
	return out, nil
}

// Decode parses a JSON object produced by Encode (or by any external
// frame producer following the same shape).
func Decode(data []byte) (Frame, error) {
	if !gjson.ValidBytes(data) {
		return Frame{}, ErrInvalidFrame
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Frame{}, ErrInvalidFrame
	}
	vars := make(map[string]any)
	root.ForEach(func(k, v gjson.Result) bool {
		vars[k.String()] = decodeValue(v)
		return true
	})
	return New(vars), nil
}

func decodeValue(v gjson.Result) any {
	switch {
	case v.IsArray():
		items := v.Array()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = decodeValue(item)
		}
		return out
	case v.IsObject():
		return v.Value()
	}
	switch v.Type {
	case gjson.Number:
		return v.Float()
	case gjson.String:
		return v.String()
	case gjson.True, gjson.False:
		return v.Bool()
	default:
		return nil
	}
}

func encodable(v any) any {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case []array.Value:
		out := make([]any, len(x))
		for i, cell := range x {
			if f, ok := cell.Float(); ok {
				out[i] = f
			}
		}
		return out
	default:
		return x
	}
}

// escapePath protects sjson path metacharacters in a variable name.
func escapePath(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
