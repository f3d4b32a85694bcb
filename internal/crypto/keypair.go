package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
)

// randReader is the random source used when callers pass a nil reader.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

func source(r io.Reader) io.Reader {
	if r != nil {
		return r
	}
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// Keypair is a Curve25519 keypair for box encryption.
// PublicKey is always derived from PrivateKey.
type Keypair struct {
	// PrivateKey is the raw, unclamped secret scalar.
	PrivateKey [KeySize]byte
	// PublicKey is X25519(PrivateKey, basepoint).
	PublicKey [KeySize]byte
}

// GenerateKeypair creates a new keypair from KeySize bytes of r.
// A nil r uses crypto/rand.
func GenerateKeypair(r io.Reader) (*Keypair, error) {
	var priv [KeySize]byte
	if _, err := io.ReadFull(source(r), priv[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	return keypairFromScalar(priv), nil
}

// KeypairFromPrivateKey reconstructs a keypair from raw private key bytes.
// The public key is re-derived, never taken from the caller.
func KeypairFromPrivateKey(privateKey []byte) (*Keypair, error) {
	if len(privateKey) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeyLength, len(privateKey), KeySize)
	}

	var priv [KeySize]byte
	copy(priv[:], privateKey)
	return keypairFromScalar(priv), nil
}

func keypairFromScalar(priv [KeySize]byte) *Keypair {
	return &Keypair{
		PrivateKey: priv,
		PublicKey:  DerivePublicKey(priv),
	}
}

// DerivePublicKey computes the X25519 public key for a private scalar.
// Clamping is applied inside the scalar multiplication; the input is not modified.
func DerivePublicKey(privateKey [KeySize]byte) [KeySize]byte {
	var pub [KeySize]byte
	// X25519 only fails for low-order peer points, never for the basepoint.
	out, _ := curve25519.X25519(privateKey[:], curve25519.Basepoint)
	copy(pub[:], out)
	return pub
}

// PublicKeyFromBytes validates and copies raw public key bytes.
func PublicKeyFromBytes(publicKey []byte) ([KeySize]byte, error) {
	var pub [KeySize]byte
	if len(publicKey) != KeySize {
		return pub, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeyLength, len(publicKey), KeySize)
	}
	copy(pub[:], publicKey)
	return pub, nil
}

// ValidateKeypair reports whether the keypair's public key matches its
// private key. It returns false for a nil keypair.
func ValidateKeypair(keypair *Keypair) bool {
	if keypair == nil {
		return false
	}
	return CheckPublicKey(keypair.PrivateKey, keypair.PublicKey) == nil
}
