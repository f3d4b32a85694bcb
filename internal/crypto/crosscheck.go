package crypto

import (
	"crypto/subtle"

	"github.com/cloudflare/circl/dh/x25519"
)

// CheckPublicKey verifies that publicKey is the X25519 public key of
// privateKey. The derivation is computed twice, with golang.org/x/crypto
// and with circl, and both results must agree with the declared key.
func CheckPublicKey(privateKey, publicKey [KeySize]byte) error {
	primary := DerivePublicKey(privateKey)
	if subtle.ConstantTimeCompare(primary[:], publicKey[:]) != 1 {
		return ErrPublicKeyMismatch
	}

	independent := derivePublicKeyCircl(privateKey)
	if subtle.ConstantTimeCompare(independent[:], publicKey[:]) != 1 {
		return ErrPublicKeyMismatch
	}

	return nil
}

// SharedSecret computes the raw X25519 shared secret with circl. It is
// used to cross-check key agreement; boxes use the HSalsa20 derived key
// from nacl/box instead. ok is false for low-order public keys.
func SharedSecret(privateKey, peerPublicKey [KeySize]byte) (shared [KeySize]byte, ok bool) {
	var s, sk, pk x25519.Key
	copy(sk[:], privateKey[:])
	copy(pk[:], peerPublicKey[:])
	ok = x25519.Shared(&s, &sk, &pk)
	copy(shared[:], s[:])
	return shared, ok
}

func derivePublicKeyCircl(privateKey [KeySize]byte) [KeySize]byte {
	var pub, sk x25519.Key
	copy(sk[:], privateKey[:])
	x25519.KeyGen(&pub, &sk)

	var out [KeySize]byte
	copy(out[:], pub[:])
	return out
}
