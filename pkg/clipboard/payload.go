package clipboard

import (
	"encoding/json"
	"fmt"
	"io"
)

type payload struct {
	Flavors map[string]string `json:"flavors"`
}

// EncodePayload serialises flavors for the selection owner's stdin.
func EncodePayload(flavors Flavors) ([]byte, error) {
	p := payload{Flavors: make(map[string]string, len(flavors))}
	for k, v := range flavors {
		p.Flavors[k] = string(v)
	}
	return json.Marshal(p)
}

// DecodePayload reads what EncodePayload wrote.
func DecodePayload(r io.Reader) (Flavors, error) {
	var p payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode clipboard payload: %w", err)
	}
	if len(p.Flavors) == 0 {
		return nil, fmt.Errorf("decode clipboard payload: no flavors")
	}
	flavors := make(Flavors, len(p.Flavors))
	for k, v := range p.Flavors {
		flavors[k] = []byte(v)
	}
	return flavors, nil
}
