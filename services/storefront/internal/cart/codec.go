package cart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidState = errors.New("invalid persisted cart")

// lineKeys are the exact keys of a persisted line. Matching is case-sensitive.
var lineKeys = []string{"id", "name", "price", "image", "qty"}

// Encode serializes the cart as a JSON array of lines. An empty cart encodes as [].
func Encode(c Cart) ([]byte, error) {
	lines := c.Lines
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(lines)
}

// Decode parses a persisted cart. Empty input and a JSON null are an empty cart;
// anything that is not a well-formed list of lines fails with ErrInvalidState.
func Decode(data []byte) (Cart, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Cart{}, nil
	}

	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Cart{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	lines := make([]Line, 0, len(raw))
	seen := make(map[int]struct{}, len(raw))
	for i, fields := range raw {
		l, err := decodeLine(fields)
		if err != nil {
			return Cart{}, fmt.Errorf("%w: line %d: %v", ErrInvalidState, i, err)
		}
		if _, dup := seen[l.ProductID]; dup {
			return Cart{}, fmt.Errorf("%w: duplicate id %d", ErrInvalidState, l.ProductID)
		}
		seen[l.ProductID] = struct{}{}
		lines = append(lines, l)
	}

	if len(lines) == 0 {
		return Cart{}, nil
	}
	return Cart{Lines: lines}, nil
}

func decodeLine(fields map[string]json.RawMessage) (Line, error) {
	if len(fields) != len(lineKeys) {
		return Line{}, fmt.Errorf("want keys %v, got %d keys", lineKeys, len(fields))
	}
	for _, k := range lineKeys {
		v, ok := fields[k]
		if !ok {
			return Line{}, fmt.Errorf("missing %q", k)
		}
		if bytes.Equal(v, []byte("null")) {
			return Line{}, fmt.Errorf("%q is null", k)
		}
	}

	var l Line
	targets := []any{&l.ProductID, &l.Name, &l.Price, &l.Image, &l.Quantity}
	for i, k := range lineKeys {
		if err := json.Unmarshal(fields[k], targets[i]); err != nil {
			return Line{}, fmt.Errorf("%q: %v", k, err)
		}
	}

	switch {
	case l.ProductID < 1:
		return Line{}, fmt.Errorf("id %d", l.ProductID)
	case l.Price < 0:
		return Line{}, fmt.Errorf("price %d", l.Price)
	case l.Quantity < 1 || l.Quantity > MaxQuantity:
		return Line{}, fmt.Errorf("qty %d", l.Quantity)
	}
	return l, nil
}
