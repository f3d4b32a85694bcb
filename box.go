package boxinterop

import (
	"errors"
	"io"
	"unicode/utf8"

	"github.com/vaultsandbox/boxinterop/internal/crypto"
)

// Box encrypts from one local private key to one remote public key, and
// decrypts what the remote side sent back. The shared key is computed once
// and never exposed.
//
// A Box holds no mutable state and may be used from multiple goroutines.
// Only NewBox builds a usable Box; the zero value fails every operation
// with ErrUninitializedBox.
type Box struct {
	key  *crypto.SharedKey
	rand io.Reader
}

// NewBox creates a Box for local's private key and the peer's public key.
// A low-order remote key fails with ErrLowOrderKey.
func NewBox(local *KeyPair, remote PublicKey, opts ...BoxOption) (*Box, error) {
	if local == nil {
		return nil, errors.New("local key pair is required")
	}

	cfg := newBoxConfig(opts)
	peer := [KeySize]byte(remote)

	key, err := crypto.Precompute(&local.kp.PrivateKey, &peer)
	if err != nil {
		return nil, err
	}

	return &Box{
		key:  key,
		rand: cfg.rand,
	}, nil
}

// Encrypt seals plaintext under a fresh random nonce. Every call draws a
// new nonce; envelopes are 40 bytes longer than the plaintext.
func (b *Box) Encrypt(plaintext []byte) (Envelope, error) {
	if b == nil || b.key == nil {
		return Envelope{}, ErrUninitializedBox
	}
	raw, err := crypto.Seal(b.rand, b.key, plaintext)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{raw: raw}, nil
}

// EncryptString seals the UTF-8 bytes of s.
func (b *Box) EncryptString(s string) (Envelope, error) {
	return b.Encrypt([]byte(s))
}

// Decrypt verifies and opens an envelope. It returns ErrMalformedEnvelope
// for envelopes shorter than MinEnvelopeSize and ErrAuthenticationFailure
// when the tag does not verify; no plaintext is returned on failure.
func (b *Box) Decrypt(e Envelope) ([]byte, error) {
	return b.Open(e.raw)
}

// DecryptString is Decrypt followed by a UTF-8 check, which fails with
// ErrEncoding.
func (b *Box) DecryptString(e Envelope) (string, error) {
	plaintext, err := b.Decrypt(e)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plaintext) {
		return "", ErrEncoding
	}
	return string(plaintext), nil
}

// Open decrypts raw envelope bytes.
func (b *Box) Open(raw []byte) ([]byte, error) {
	if b == nil || b.key == nil {
		return nil, ErrUninitializedBox
	}
	return crypto.Open(b.key, raw)
}
