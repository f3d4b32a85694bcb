package boxinterop

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vaultsandbox/boxinterop/internal/crypto"
)

// BaselineMessage is the plaintext used by Baseline.
const BaselineMessage = "Hello, World!"

// Baseline checks that this implementation can talk to itself before any
// cross-implementation run. Both key pairs must derive consistently, raw
// X25519 agreement (via circl) must be symmetric, Alice encrypts
// BaselineMessage to Bob in exactly 24 + 13 + 16 bytes, and Bob's mirrored
// box must recover the message. A nil r uses crypto/rand.
func Baseline(r io.Reader) error {
	alice, err := GenerateKeyPairFrom(r)
	if err != nil {
		return fmt.Errorf("baseline: generate alice: %w", err)
	}
	bob, err := GenerateKeyPairFrom(r)
	if err != nil {
		return fmt.Errorf("baseline: generate bob: %w", err)
	}

	for _, kp := range []*KeyPair{alice, bob} {
		if !crypto.ValidateKeypair(&kp.kp) {
			return fmt.Errorf("baseline: %w", ErrPublicKeyMismatch)
		}
	}
	ab, okA := crypto.SharedSecret(alice.kp.PrivateKey, bob.kp.PublicKey)
	ba, okB := crypto.SharedSecret(bob.kp.PrivateKey, alice.kp.PublicKey)
	if !okA || !okB || ab != ba {
		return errors.New("baseline: x25519 key agreement is not symmetric")
	}

	aliceToBob, err := NewBox(alice, bob.PublicKey(), WithRandom(r))
	if err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	bobFromAlice, err := NewBox(bob, alice.PublicKey())
	if err != nil {
		return fmt.Errorf("baseline: %w", err)
	}

	envelope, err := aliceToBob.EncryptString(BaselineMessage)
	if err != nil {
		return fmt.Errorf("baseline: encrypt: %w", err)
	}

	if want := NonceSize + len(BaselineMessage) + TagSize; envelope.Len() != want {
		return fmt.Errorf("baseline: %w: envelope is %d bytes, want %d", ErrMalformedEnvelope, envelope.Len(), want)
	}

	got, err := bobFromAlice.DecryptString(envelope)
	if err != nil {
		return fmt.Errorf("baseline: decrypt: %w", err)
	}
	if got != BaselineMessage {
		return fmt.Errorf("baseline: %w", &MismatchError{Expected: BaselineMessage, Got: got})
	}

	return nil
}

// SelfTest produces vectors for cases with fresh keys, passes them through
// the exchange record format, and verifies them with a default Verifier.
func SelfTest(cases []Case, opts ...ProducerOption) (*Report, error) {
	vectors, err := GenerateVectors(cases, opts...)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := WriteRecords(&buf, vectors); err != nil {
		return nil, fmt.Errorf("self-test: write records: %w", err)
	}
	received, err := ParseRecords(&buf)
	if err != nil {
		return nil, fmt.Errorf("self-test: parse records: %w", err)
	}

	return NewVerifier().VerifyAll(received), nil
}
