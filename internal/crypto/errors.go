package crypto

import "errors"

var (
	// ErrInvalidKeyLength is returned when key material is not exactly KeySize bytes.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrMalformedEncoding is returned when base64 text cannot be decoded.
	ErrMalformedEncoding = errors.New("malformed encoding")

	// ErrMalformedEnvelope is returned when an envelope is shorter than
	// MinEnvelopeSize.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrAuthenticationFailure is returned when the Poly1305 tag does not verify.
	// No plaintext is ever returned alongside it.
	ErrAuthenticationFailure = errors.New("authentication failure")

	// ErrEncoding is returned when decrypted bytes are not valid UTF-8.
	ErrEncoding = errors.New("plaintext is not valid UTF-8")

	// ErrPublicKeyMismatch is returned when a declared public key differs
	// from the one derived from its private key.
	ErrPublicKeyMismatch = errors.New("public key does not match private key")

	// ErrLowOrderKey is returned when a peer public key is a low-order
	// point, which would give every private key the same shared key.
	ErrLowOrderKey = errors.New("low-order public key")

	// ErrNoSharedKey is returned when sealing or opening without a
	// precomputed key.
	ErrNoSharedKey = errors.New("no shared key")

	// ErrRandomSource is returned when the random source cannot supply
	// enough bytes.
	ErrRandomSource = errors.New("random source failure")
)
