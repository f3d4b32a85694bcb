package crypto

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// strictStd is standard base64 with padding that also rejects
// non-canonical trailing bits.
var strictStd = base64.StdEncoding.Strict()

// ToBase64 encodes bytes to standard base64 with padding (RFC 4648 §4).
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// FromBase64 decodes standard base64 with padding.
// Line breaks, missing padding, URL-safe characters and non-canonical
// encodings are all rejected with ErrMalformedEncoding.
func FromBase64(s string) ([]byte, error) {
	// encoding/base64 silently skips CR and LF.
	if strings.ContainsAny(s, "\r\n") {
		return nil, fmt.Errorf("%w: line breaks are not allowed", ErrMalformedEncoding)
	}

	data, err := strictStd.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}

	return data, nil
}

// KeyFromBase64 decodes a base64 key and checks that it is KeySize bytes.
func KeyFromBase64(s string) ([KeySize]byte, error) {
	var key [KeySize]byte

	data, err := FromBase64(s)
	if err != nil {
		return key, err
	}
	if len(data) != KeySize {
		return key, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeyLength, len(data), KeySize)
	}

	copy(key[:], data)
	return key, nil
}
