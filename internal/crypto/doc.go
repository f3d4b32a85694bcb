// Package crypto provides the raw primitives behind boxinterop: Curve25519
// keypairs, NaCl box sealing over a fixed envelope layout, strict base64,
// and a seeded reader for reproducible test vectors.
//
// # Construction
//
// The box is NaCl crypto_box as implemented by golang.org/x/crypto/nacl/box:
//
//   - X25519 (RFC 7748) key agreement between the local private key and the
//     peer's public key, followed by HSalsa20 to form the shared key.
//
//   - XSalsa20-Poly1305 authenticated encryption with a 24-byte nonce and a
//     16-byte tag.
//
// # Envelope Layout
//
// Every sealed message is laid out as
//
//	nonce (24 bytes) || ciphertext (len(plaintext) bytes) || tag (16 bytes)
//
// This is the same layout PyNaCl's Box.encrypt and libsodium's
// crypto_box_easy with a prepended nonce produce. There is no version byte
// and no algorithm identifier. A peer that changes the cipher or the nonce
// size is only detected as an authentication failure.
//
// Nonces MUST be unique per key pair. [Seal] always reads a fresh nonce
// from the supplied reader (crypto/rand by default); there are no counters.
//
// # Key Encoding
//
// Keys are 32 raw bytes for both roles and travel as standard base64 with
// padding. [FromBase64] is strict: it rejects line breaks and
// non-canonical trailing bits so that two peers can never disagree about
// which bytes a string denotes.
//
// Private keys are kept unclamped, as PyNaCl and libsodium export them.
// Clamping happens inside X25519.
//
// # Cross-checking
//
// [CheckPublicKey] derives the public key with both golang.org/x/crypto and
// github.com/cloudflare/circl. A defect in either curve implementation
// therefore shows up as [ErrPublicKeyMismatch] rather than as a silent
// interop break.
package crypto
