package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToBase64_FromBase64_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"single byte", []byte{0x42}},
		{"two bytes", []byte{0x42, 0x43}},
		{"three bytes", []byte{0x42, 0x43, 0x44}},
		{"key", bytes.Repeat([]byte{0xfb}, KeySize)},
		{"all values", func() []byte {
			b := make([]byte, 256)
			for i := range b {
				b[i] = byte(i)
			}
			return b
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := FromBase64(ToBase64(tt.data))
			require.NoError(t, err)
			require.True(t, bytes.Equal(decoded, tt.data), "round trip = %x, want %x", decoded, tt.data)
		})
	}
}

func TestToBase64_StandardAlphabetWithPadding(t *testing.T) {
	require.Equal(t, "+/8=", ToBase64([]byte{0xfb, 0xff}))
}

func TestFromBase64_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid character", "!!!!"},
		{"url-safe alphabet", "-_8="},
		{"missing padding", "+/8"},
		{"non-canonical trailing bits", "+/9="},
		{"embedded newline", "AAAA\nAAAA"},
		{"trailing CRLF", "AAAA\r\n"},
		{"whitespace", "AA AA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromBase64(tt.input)
			require.ErrorIs(t, err, ErrMalformedEncoding)
		})
	}
}

func TestKeyFromBase64(t *testing.T) {
	key := bytes.Repeat([]byte{0x5a}, KeySize)

	got, err := KeyFromBase64(ToBase64(key))
	require.NoError(t, err)
	require.Equal(t, key, got[:])
}

func TestKeyFromBase64_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"bad alphabet", "not base64!", ErrMalformedEncoding},
		{"too short", ToBase64(make([]byte, KeySize-1)), ErrInvalidKeyLength},
		{"too long", ToBase64(make([]byte, KeySize+1)), ErrInvalidKeyLength},
		{"empty", "", ErrInvalidKeyLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := KeyFromBase64(tt.input)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
