package crypto

import "golang.org/x/crypto/nacl/box"

const (
	// KeySize is the size of a Curve25519 private or public key in bytes.
	// Both roles use the same size.
	KeySize = 32

	// NonceSize is the size of the XSalsa20 nonce that prefixes every envelope.
	NonceSize = 24

	// TagSize is the size of the Poly1305 authentication tag appended to
	// the ciphertext.
	TagSize = box.Overhead

	// MinEnvelopeSize is the size of an envelope carrying an empty plaintext.
	MinEnvelopeSize = NonceSize + TagSize

	// SeededReaderContext is the HKDF info prefix used by [NewSeededReader]
	// for domain separation.
	SeededReaderContext = "boxinterop:seeded-reader:v1"
)

// Suite is the canonical name of the construction. It is informational
// only: the wire format carries no algorithm identifier.
const Suite = "X25519:XSalsa20-Poly1305"
