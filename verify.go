package boxinterop

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vaultsandbox/boxinterop/internal/crypto"
)

// dumpBytes is how much of a failing envelope an Outcome hex-dumps.
const dumpBytes = 48

// Outcome is the result of verifying one vector.
type Outcome struct {
	// Label is the vector's case name.
	Label string
	// Passed is true when the envelope decrypted to the expected plaintext.
	Passed bool
	// Kind classifies the failure. KindNone when Passed.
	Kind ErrorKind
	// Err is a *VectorError describing the failure. Nil when Passed.
	Err error
	// EnvelopeLen is the decoded envelope length, or 0 if it could not be decoded.
	EnvelopeLen int
	// Dump is a hex dump of the first 48 envelope bytes on failure.
	Dump string
}

func (o Outcome) String() string {
	if o.Passed {
		return fmt.Sprintf("PASS %s", o.Label)
	}
	return fmt.Sprintf("FAIL %s [%s]: %v", o.Label, o.Kind, o.Err)
}

// Report collects the outcomes of a verification run.
type Report struct {
	Outcomes []Outcome
}

// Passed reports whether at least one vector was verified and all passed.
func (r *Report) Passed() bool {
	if len(r.Outcomes) == 0 {
		return false
	}
	for _, o := range r.Outcomes {
		if !o.Passed {
			return false
		}
	}
	return true
}

// Failures returns the failed outcomes in input order.
func (r *Report) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if !o.Passed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Counts returns the number of passed and failed vectors.
func (r *Report) Counts() (passed, failed int) {
	for _, o := range r.Outcomes {
		if o.Passed {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// Err joins every failure, or returns ErrNoVectors for an empty run.
func (r *Report) Err() error {
	if len(r.Outcomes) == 0 {
		return ErrNoVectors
	}
	var errs []error
	for _, o := range r.Outcomes {
		if !o.Passed {
			errs = append(errs, o.Err)
		}
	}
	return errors.Join(errs...)
}

// Verifier checks vectors produced by another implementation with the
// local Box. It is safe for concurrent use.
type Verifier struct {
	cfg verifierConfig
}

// NewVerifier creates a Verifier.
func NewVerifier(opts ...VerifierOption) *Verifier {
	return &Verifier{cfg: newVerifierConfig(opts)}
}

// Verify decrypts one vector as its recipient and compares the result with
// the declared plaintext. It never returns early with a Go error; every
// problem is reported in the Outcome.
func (v *Verifier) Verify(vec *Vector) Outcome {
	label := ""
	if vec != nil {
		label = vec.Label
	}

	out := Outcome{Label: label}
	stage, err := v.verify(vec, &out)
	if err == nil {
		out.Passed = true
		v.cfg.logger.Debug().
			Str("label", label).
			Int("envelope_len", out.EnvelopeLen).
			Msg("vector passed")
		return out
	}

	vErr := &VectorError{Label: label, Stage: stage, Err: err}
	out.Err = vErr
	out.Kind = vErr.Kind()
	if vec != nil {
		out.Dump = dumpEnvelope(vec.Envelope)
	}

	v.cfg.logger.Warn().
		Str("label", label).
		Str("stage", stage).
		Str("kind", string(out.Kind)).
		Int("envelope_len", out.EnvelopeLen).
		Err(err).
		Msg("vector failed")

	return out
}

// VerifyAll verifies every vector, in order, and never stops at the first
// failure.
func (v *Verifier) VerifyAll(vectors []*Vector) *Report {
	report := &Report{Outcomes: make([]Outcome, 0, len(vectors))}
	for _, vec := range vectors {
		report.Outcomes = append(report.Outcomes, v.Verify(vec))
	}

	passed, failed := report.Counts()
	event := v.cfg.logger.Info()
	if failed > 0 {
		event = v.cfg.logger.Error()
	}
	event.Int("passed", passed).Int("failed", failed).Msg("verification finished")

	return report
}

func (v *Verifier) verify(vec *Vector, out *Outcome) (string, error) {
	if err := vec.Validate(); err != nil {
		return "vector", err
	}

	// Roles are reversed: we are the recipient, the producer was the sender.
	recipient, err := KeyPairFromBase64(vec.RecipientPrivateKey)
	if err != nil {
		return "recipient private key", err
	}

	recipientPub, err := PublicKeyFromBase64(vec.RecipientPublicKey)
	if err != nil {
		return "recipient public key", err
	}
	if v.cfg.checkKeys {
		if err := recipient.CheckPublicKey(recipientPub); err != nil {
			return "recipient public key", err
		}
	}

	senderPub, err := PublicKeyFromBase64(vec.SenderPublicKey)
	if err != nil {
		return "sender public key", err
	}

	if vec.SenderPrivateKey != "" {
		sender, err := KeyPairFromBase64(vec.SenderPrivateKey)
		if err != nil {
			return "sender private key", err
		}
		if v.cfg.checkKeys {
			if err := sender.CheckPublicKey(senderPub); err != nil {
				return "sender public key", err
			}
		}
	}

	if raw, err := crypto.FromBase64(vec.Envelope); err == nil {
		out.EnvelopeLen = len(raw)
	}

	envelope, err := DecodeEnvelope(vec.Envelope)
	if err != nil {
		return "envelope", err
	}

	b, err := NewBox(recipient, senderPub)
	if err != nil {
		return "box", err
	}

	plaintext, err := b.DecryptString(envelope)
	if err != nil {
		return "decrypt", err
	}

	if plaintext != vec.Plaintext {
		return "compare", &MismatchError{Expected: vec.Plaintext, Got: plaintext}
	}

	return "", nil
}

// dumpEnvelope renders the first bytes of an envelope as space-separated
// hex, or "" if it is not valid base64.
func dumpEnvelope(encoded string) string {
	raw, err := crypto.FromBase64(encoded)
	if err != nil || len(raw) == 0 {
		return ""
	}
	if len(raw) > dumpBytes {
		raw = raw[:dumpBytes]
	}
	return strings.TrimSpace(fmt.Sprintf("% x", raw))
}
