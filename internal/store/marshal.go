package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/svgreact/internal/ir"
)

// marshalAttributes converts attributes to canonical JSON TEXT for storage.
// Attributes are stored as an array of [name, value] pairs so source order
// survives the round trip.
func marshalAttributes(attrs ir.Attributes) (string, error) {
	if attrs == nil {
		attrs = ir.Attributes{}
	}
	data, err := ir.MarshalCanonical(attrs)
	if err != nil {
		return "", fmt.Errorf("marshal attributes: %w", err)
	}
	return string(data), nil
}

// unmarshalAttributes parses the stored [name, value] pair array.
func unmarshalAttributes(data string) (ir.Attributes, error) {
	if data == "" || data == "[]" {
		return ir.Attributes{}, nil
	}

	var pairs [][2]string
	if err := json.Unmarshal([]byte(data), &pairs); err != nil {
		return nil, fmt.Errorf("unmarshal attributes: %w", err)
	}

	attrs := make(ir.Attributes, len(pairs))
	for i, p := range pairs {
		attrs[i] = ir.Attribute{Name: p[0], Value: p[1]}
	}
	return attrs, nil
}
