// Package codec converts printer byte streams to and from the text-safe
// form used across the bridge boundary.
package codec

import (
	"encoding/base64"
	"fmt"
)

// Encode renders a byte sequence as standard padded Base64.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode parses standard padded Base64, rejecting malformed input.
func Decode(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return data, nil
}
