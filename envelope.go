package boxinterop

import (
	"bytes"
	"fmt"

	"github.com/vaultsandbox/boxinterop/internal/crypto"
)

const (
	// NonceSize is the size of the nonce at the start of every envelope.
	NonceSize = crypto.NonceSize
	// TagSize is the size of the authentication tag at the end of every envelope.
	TagSize = crypto.TagSize
	// MinEnvelopeSize is the size of an envelope with an empty plaintext.
	MinEnvelopeSize = crypto.MinEnvelopeSize
)

// Envelope is an encrypted message laid out as
//
//	nonce (24 bytes) || ciphertext || tag (16 bytes)
//
// Envelopes are immutable values. The zero Envelope is malformed.
type Envelope struct {
	raw []byte
}

// EnvelopeFromBytes copies raw envelope bytes. Input shorter than
// MinEnvelopeSize returns ErrMalformedEnvelope.
func EnvelopeFromBytes(raw []byte) (Envelope, error) {
	if len(raw) < MinEnvelopeSize {
		return Envelope{}, fmt.Errorf("%w: got %d bytes, need at least %d", ErrMalformedEnvelope, len(raw), MinEnvelopeSize)
	}
	return Envelope{raw: bytes.Clone(raw)}, nil
}

// Nonce returns a copy of the first 24 bytes.
func (e Envelope) Nonce() []byte {
	if len(e.raw) < NonceSize {
		return nil
	}
	return bytes.Clone(e.raw[:NonceSize])
}

// SealedBody returns a copy of the ciphertext and trailing tag.
func (e Envelope) SealedBody() []byte {
	if len(e.raw) < NonceSize {
		return nil
	}
	return bytes.Clone(e.raw[NonceSize:])
}

// Bytes returns a copy of nonce || sealed body.
func (e Envelope) Bytes() []byte {
	return bytes.Clone(e.raw)
}

// Len returns the total envelope length in bytes.
func (e Envelope) Len() int {
	return len(e.raw)
}

// PlaintextLen returns the length of the plaintext the envelope carries,
// or -1 for a malformed envelope.
func (e Envelope) PlaintextLen() int {
	if len(e.raw) < MinEnvelopeSize {
		return -1
	}
	return len(e.raw) - MinEnvelopeSize
}

// Equal reports whether both envelopes hold the same bytes.
func (e Envelope) Equal(other Envelope) bool {
	return bytes.Equal(e.raw, other.raw)
}

// String returns the wire encoding.
func (e Envelope) String() string {
	return EncodeEnvelope(e)
}

// EncodeEnvelope returns standard base64 of nonce || sealed body. Any
// peer implementation must produce and accept exactly this byte order.
func EncodeEnvelope(e Envelope) string {
	return crypto.ToBase64(e.raw)
}

// DecodeEnvelope is the inverse of EncodeEnvelope. Invalid base64 returns
// ErrMalformedEncoding; fewer than MinEnvelopeSize decoded bytes returns
// ErrMalformedEnvelope.
func DecodeEnvelope(s string) (Envelope, error) {
	raw, err := crypto.FromBase64(s)
	if err != nil {
		return Envelope{}, err
	}
	return EnvelopeFromBytes(raw)
}
