package boxinterop

import (
	"errors"
	"fmt"

	"github.com/vaultsandbox/boxinterop/internal/crypto"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidKeyLength is returned when key material is not exactly 32 bytes.
	ErrInvalidKeyLength = crypto.ErrInvalidKeyLength

	// ErrMalformedEncoding is returned when base64 text cannot be decoded.
	ErrMalformedEncoding = crypto.ErrMalformedEncoding

	// ErrMalformedEnvelope is returned when an envelope is shorter than
	// 40 bytes (24-byte nonce plus 16-byte tag).
	ErrMalformedEnvelope = crypto.ErrMalformedEnvelope

	// ErrAuthenticationFailure is returned when the authentication tag does
	// not verify. It may indicate tampering, a wrong key pairing, or a
	// corrupted nonce or ciphertext.
	ErrAuthenticationFailure = crypto.ErrAuthenticationFailure

	// ErrEncoding is returned when decrypted bytes are not valid UTF-8.
	ErrEncoding = crypto.ErrEncoding

	// ErrPublicKeyMismatch is returned when a declared public key is not
	// the one derived from the matching private key.
	ErrPublicKeyMismatch = crypto.ErrPublicKeyMismatch

	// ErrLowOrderKey is returned when a remote public key is a low-order
	// point. Such a key gives the same shared key for every private key.
	ErrLowOrderKey = crypto.ErrLowOrderKey

	// ErrUninitializedBox is returned by a Box that was not built by NewBox.
	ErrUninitializedBox = crypto.ErrNoSharedKey

	// ErrRandomSource is returned when the random source fails.
	ErrRandomSource = crypto.ErrRandomSource

	// ErrPlaintextMismatch is returned by the verifier when decryption
	// succeeds but the plaintext differs from the vector's declared one.
	ErrPlaintextMismatch = errors.New("plaintext mismatch")

	// ErrMalformedRecord is returned when exchange record text cannot be parsed.
	ErrMalformedRecord = errors.New("malformed exchange record")

	// ErrInvalidVector is returned when a vector is missing required fields.
	ErrInvalidVector = errors.New("invalid vector")

	// ErrInvalidDocument is returned when a JSON exchange document has bad
	// metadata, such as a run_id that is not a UUID.
	ErrInvalidDocument = errors.New("invalid exchange document")

	// ErrNoVectors is returned when a verification run had nothing to verify.
	ErrNoVectors = errors.New("no vectors to verify")
)

// InteropError is implemented by all typed errors in this package.
type InteropError interface {
	error
	InteropError() // marker method
}

// ErrorKind classifies a verification failure.
type ErrorKind string

const (
	// KindNone means no error.
	KindNone ErrorKind = ""
	// KindInvalidKeyLength means key material was not 32 bytes.
	KindInvalidKeyLength ErrorKind = "InvalidKeyLength"
	// KindMalformedEncoding means base64 text could not be decoded.
	KindMalformedEncoding ErrorKind = "MalformedEncoding"
	// KindMalformedEnvelope means the envelope was structurally invalid.
	KindMalformedEnvelope ErrorKind = "MalformedEnvelope"
	// KindAuthenticationFailure means the authentication tag did not verify.
	KindAuthenticationFailure ErrorKind = "AuthenticationFailure"
	// KindEncodingError means the plaintext was not valid UTF-8.
	KindEncodingError ErrorKind = "EncodingError"
	// KindPlaintextMismatch means the plaintext differed from the expected one.
	KindPlaintextMismatch ErrorKind = "PlaintextMismatch"
	// KindPublicKeyMismatch means a declared public key did not match its private key.
	KindPublicKeyMismatch ErrorKind = "PublicKeyMismatch"
	// KindLowOrderKey means a public key was a low-order point.
	KindLowOrderKey ErrorKind = "LowOrderKey"
	// KindInvalidDocument means exchange document metadata was invalid.
	KindInvalidDocument ErrorKind = "InvalidDocument"
	// KindInvalidVector means the vector was missing fields.
	KindInvalidVector ErrorKind = "InvalidVector"
	// KindUnknown is any other error.
	KindUnknown ErrorKind = "Unknown"
)

// KindOf classifies err. It returns KindNone for nil.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidKeyLength):
		return KindInvalidKeyLength
	case errors.Is(err, ErrMalformedEncoding):
		return KindMalformedEncoding
	case errors.Is(err, ErrMalformedEnvelope):
		return KindMalformedEnvelope
	case errors.Is(err, ErrAuthenticationFailure):
		return KindAuthenticationFailure
	case errors.Is(err, ErrEncoding):
		return KindEncodingError
	case errors.Is(err, ErrPlaintextMismatch):
		return KindPlaintextMismatch
	case errors.Is(err, ErrPublicKeyMismatch):
		return KindPublicKeyMismatch
	case errors.Is(err, ErrLowOrderKey):
		return KindLowOrderKey
	case errors.Is(err, ErrInvalidDocument):
		return KindInvalidDocument
	case errors.Is(err, ErrInvalidVector):
		return KindInvalidVector
	}
	return KindUnknown
}

// VectorError is a verification failure for one vector.
type VectorError struct {
	Label string
	Stage string // "recipient private key", "sender public key", "envelope", "decrypt", "compare", ...
	Err   error
}

func (e *VectorError) Error() string {
	return fmt.Sprintf("vector %q: %s: %v", e.Label, e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *VectorError) Unwrap() error {
	return e.Err
}

// Kind classifies the underlying error.
func (e *VectorError) Kind() ErrorKind {
	return KindOf(e.Err)
}

// InteropError implements the InteropError interface.
func (e *VectorError) InteropError() {}

// MismatchError reports a successful decryption whose plaintext differs
// from the expected one. This points at a bug in vector construction, not
// at a cryptographic failure.
type MismatchError struct {
	Expected string
	Got      string
}

// Error reports lengths and the first differing byte offset only, so the
// message can be logged without leaking plaintext.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("plaintext mismatch: expected %d bytes, got %d bytes, first difference at byte %d",
		len(e.Expected), len(e.Got), firstDifference(e.Expected, e.Got))
}

func firstDifference(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Is implements errors.Is for sentinel error matching.
func (e *MismatchError) Is(target error) bool {
	return target == ErrPlaintextMismatch
}

// InteropError implements the InteropError interface.
func (e *MismatchError) InteropError() {}

// RecordError reports a syntax error in exchange record text.
type RecordError struct {
	Line    int
	Message string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("exchange record line %d: %s", e.Line, e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *RecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// InteropError implements the InteropError interface.
func (e *RecordError) InteropError() {}
