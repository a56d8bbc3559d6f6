// Package wire frames codec payloads the way cache entries are stored:
//
//	item: a JSON string whose content is the encoded object   "{\"uuid\":..}"
//	list: a JSON array of such strings                         ["{\"uuid\":..}", ..]
//
// Readers also accept a bare object and arrays of bare objects.
package wire

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrCorrupt = errors.New("cinecache: corrupt entry")

// EncodeItem wraps an encoded object into a JSON string.
func EncodeItem(payload []byte) ([]byte, error) {
	return json.Marshal(string(payload))
}

// DecodeItem returns the encoded object stored in b.
func DecodeItem(b []byte) ([]byte, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, ErrCorrupt
	}
	return unwrap(b)
}

// EncodeList frames each payload as a JSON string inside one array.
func EncodeList(payloads [][]byte) ([]byte, error) {
	out := make([]string, len(payloads))
	for i, p := range payloads {
		out[i] = string(p)
	}
	return json.Marshal(out)
}

// DecodeList returns the encoded objects stored in b in order.
func DecodeList(b []byte) ([][]byte, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '[' {
		return nil, ErrCorrupt
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, ErrCorrupt
	}
	out := make([][]byte, 0, len(raw))
	for _, r := range raw {
		p, err := unwrap(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func unwrap(b []byte) ([]byte, error) {
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil, ErrCorrupt
		}
		return []byte(s), nil
	case '{':
		if !json.Valid(b) {
			return nil, ErrCorrupt
		}
		return b, nil
	default:
		return nil, ErrCorrupt
	}
}
