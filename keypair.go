package boxinterop

import (
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/vaultsandbox/boxinterop/internal/crypto"
)

// KeySize is the size of a private or public key in bytes.
const KeySize = crypto.KeySize

// PublicKey is a Curve25519 public key.
type PublicKey [KeySize]byte

// PublicKeyFromBytes copies a raw 32-byte public key.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	pub, err := crypto.PublicKeyFromBytes(b)
	if err != nil {
		return PublicKey{}, err
	}
	return PublicKey(pub), nil
}

// PublicKeyFromBase64 decodes a standard base64 public key.
func PublicKeyFromBase64(s string) (PublicKey, error) {
	pub, err := crypto.KeyFromBase64(s)
	if err != nil {
		return PublicKey{}, err
	}
	return PublicKey(pub), nil
}

// Bytes returns a copy of the raw key.
func (p PublicKey) Bytes() []byte {
	b := make([]byte, KeySize)
	copy(b, p[:])
	return b
}

// String returns the key as standard base64.
func (p PublicKey) String() string {
	return crypto.ToBase64(p[:])
}

// Equal reports whether p and other are the same key.
func (p PublicKey) Equal(other PublicKey) bool {
	return subtle.ConstantTimeCompare(p[:], other[:]) == 1
}

// KeyPair is a Curve25519 private key together with its derived public key.
// It is immutable; accessors return copies.
type KeyPair struct {
	kp crypto.Keypair
}

// GenerateKeyPair creates a key pair from crypto/rand.
func GenerateKeyPair() (*KeyPair, error) {
	return GenerateKeyPairFrom(nil)
}

// GenerateKeyPairFrom creates a key pair from 32 bytes of r.
// A nil r uses crypto/rand. Failure to read is returned as ErrRandomSource.
func GenerateKeyPairFrom(r io.Reader) (*KeyPair, error) {
	kp, err := crypto.GenerateKeypair(r)
	if err != nil {
		return nil, err
	}
	return &KeyPair{kp: *kp}, nil
}

// KeyPairFromBytes reconstructs a key pair from a raw 32-byte private key.
// The public key is always re-derived.
func KeyPairFromBytes(privateKey []byte) (*KeyPair, error) {
	kp, err := crypto.KeypairFromPrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	return &KeyPair{kp: *kp}, nil
}

// KeyPairFromBase64 reconstructs a key pair from a base64 private key.
func KeyPairFromBase64(privateKey string) (*KeyPair, error) {
	priv, err := crypto.KeyFromBase64(privateKey)
	if err != nil {
		return nil, err
	}
	return KeyPairFromBytes(priv[:])
}

// PrivateKey returns a copy of the raw private key.
func (k *KeyPair) PrivateKey() []byte {
	b := make([]byte, KeySize)
	copy(b, k.kp.PrivateKey[:])
	return b
}

// PublicKey returns the derived public key.
func (k *KeyPair) PublicKey() PublicKey {
	return PublicKey(k.kp.PublicKey)
}

// PrivateKeyBase64 returns the private key as standard base64.
func (k *KeyPair) PrivateKeyBase64() string {
	return crypto.ToBase64(k.kp.PrivateKey[:])
}

// PublicKeyBase64 returns the public key as standard base64.
func (k *KeyPair) PublicKeyBase64() string {
	return crypto.ToBase64(k.kp.PublicKey[:])
}

// CheckPublicKey returns ErrPublicKeyMismatch unless pub is this key
// pair's public key under two independent X25519 implementations.
func (k *KeyPair) CheckPublicKey(pub PublicKey) error {
	return crypto.CheckPublicKey(k.kp.PrivateKey, [KeySize]byte(pub))
}

// String identifies the key pair by its public key only.
func (k *KeyPair) String() string {
	return fmt.Sprintf("KeyPair(public=%s)", k.PublicKeyBase64())
}

// GoString keeps %#v from printing the private key.
func (k *KeyPair) GoString() string {
	return k.String()
}
