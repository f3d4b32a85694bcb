package crypto

import (
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"
)

// SharedKey is the precomputed box key for one private key and one peer
// public key.
type SharedKey [KeySize]byte

// Precompute derives the shared box key (X25519 followed by HSalsa20).
// A low-order peer public key yields the all-zero X25519 output for every
// private key and is rejected with ErrLowOrderKey, as libsodium does.
func Precompute(privateKey, peerPublicKey *[KeySize]byte) (*SharedKey, error) {
	if _, err := curve25519.X25519(privateKey[:], peerPublicKey[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLowOrderKey, err)
	}

	var key SharedKey
	box.Precompute((*[KeySize]byte)(&key), peerPublicKey, privateKey)
	return &key, nil
}

// Seal encrypts plaintext under key with a fresh nonce read from r.
// A nil r uses crypto/rand.
// Returns: nonce (24 bytes) || ciphertext || tag (16 bytes)
func Seal(r io.Reader, key *SharedKey, plaintext []byte) ([]byte, error) {
	if key == nil {
		return nil, ErrNoSharedKey
	}
	var nonce [NonceSize]byte
	if _, err := io.ReadFull(source(r), nonce[:]); err != nil {
		return nil, fmt.Errorf("%w: nonce: %v", ErrRandomSource, err)
	}

	out := make([]byte, NonceSize, NonceSize+len(plaintext)+TagSize)
	copy(out, nonce[:])
	return box.SealAfterPrecomputation(out, plaintext, &nonce, (*[KeySize]byte)(key)), nil
}

// Open authenticates and decrypts an envelope sealed under key.
// Input format: nonce (24 bytes) || ciphertext || tag (16 bytes)
//
// The tag is verified before any plaintext is produced.
func Open(key *SharedKey, envelope []byte) ([]byte, error) {
	if key == nil {
		return nil, ErrNoSharedKey
	}
	if len(envelope) < MinEnvelopeSize {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrMalformedEnvelope, len(envelope), MinEnvelopeSize)
	}

	var nonce [NonceSize]byte
	copy(nonce[:], envelope[:NonceSize])

	plaintext, ok := box.OpenAfterPrecomputation(nil, envelope[NonceSize:], &nonce, (*[KeySize]byte)(key))
	if !ok {
		return nil, ErrAuthenticationFailure
	}
	if plaintext == nil {
		plaintext = []byte{}
	}

	return plaintext, nil
}
