package boxinterop

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Vector is one exchangeable interop test case: key material, the
// expected plaintext, and the envelope a producer sealed for it.
//
// Invariant: Envelope opens to exactly Plaintext under
// Box(RecipientPrivateKey, SenderPublicKey).
type Vector struct {
	// Label is a human-readable case name.
	Label string `json:"label"`
	// SenderPrivateKey is the sender's private key (base64). May be empty.
	SenderPrivateKey string `json:"sender_private_key_b64"`
	// SenderPublicKey is the sender's public key (base64).
	SenderPublicKey string `json:"sender_public_key_b64"`
	// RecipientPrivateKey is the recipient's private key (base64).
	RecipientPrivateKey string `json:"recipient_private_key_b64"`
	// RecipientPublicKey is the recipient's public key (base64).
	RecipientPublicKey string `json:"recipient_public_key_b64"`
	// Plaintext is the expected decrypted text.
	Plaintext string `json:"plaintext_utf8"`
	// Envelope is base64 of nonce (24) || ciphertext || tag (16).
	Envelope string `json:"envelope_b64"`
}

// Validate checks that every required field is present. It does not
// decode keys or decrypt; that is the verifier's job.
func (v *Vector) Validate() error {
	if v == nil {
		return fmt.Errorf("%w: vector is nil", ErrInvalidVector)
	}
	if v.Label == "" {
		return fmt.Errorf("%w: label is required", ErrInvalidVector)
	}
	if v.SenderPublicKey == "" {
		return fmt.Errorf("%w: sender_public_key_b64 is required", ErrInvalidVector)
	}
	if v.RecipientPrivateKey == "" {
		return fmt.Errorf("%w: recipient_private_key_b64 is required", ErrInvalidVector)
	}
	if v.RecipientPublicKey == "" {
		return fmt.Errorf("%w: recipient_public_key_b64 is required", ErrInvalidVector)
	}
	if v.Envelope == "" {
		return fmt.Errorf("%w: envelope_b64 is required", ErrInvalidVector)
	}
	if !utf8.ValidString(v.Plaintext) {
		return fmt.Errorf("%w: plaintext_utf8: %w", ErrInvalidVector, ErrEncoding)
	}
	return nil
}

// Case is a labelled plaintext to produce a vector for.
type Case struct {
	Label     string
	Plaintext string
}

// DefaultCases returns the standard interop cases: ASCII, multi-byte
// UTF-8 with an emoji, JSON, and the empty message.
func DefaultCases() []Case {
	return []Case{
		{Label: "simple-ascii", Plaintext: "Hello, World!"},
		{Label: "unicode", Plaintext: "Hello, 世界! 🌍"},
		{Label: "json", Plaintext: `{"type":"test","data":123}`},
		{Label: "greeting", Plaintext: "Hello from Go!"},
		{Label: "empty", Plaintext: ""},
	}
}

// Producer seals vectors from a fixed sender to a fixed recipient.
type Producer struct {
	sender    *KeyPair
	recipient *KeyPair
	box       *Box
	mirror    *Box
	cfg       producerConfig
}

// NewProducer creates a producer that encrypts from sender to recipient.
func NewProducer(sender, recipient *KeyPair, opts ...ProducerOption) (*Producer, error) {
	if sender == nil || recipient == nil {
		return nil, errors.New("sender and recipient key pairs are required")
	}

	cfg := newProducerConfig(opts)

	b, err := NewBox(sender, recipient.PublicKey(), WithRandom(cfg.rand))
	if err != nil {
		return nil, err
	}
	mirror, err := NewBox(recipient, sender.PublicKey())
	if err != nil {
		return nil, err
	}

	return &Producer{
		sender:    sender,
		recipient: recipient,
		box:       b,
		mirror:    mirror,
		cfg:       cfg,
	}, nil
}

// Produce seals plaintext and wraps the result in a Vector.
// Plaintext must be valid UTF-8.
func (p *Producer) Produce(label, plaintext string) (*Vector, error) {
	if !utf8.ValidString(plaintext) {
		return nil, fmt.Errorf("produce %q: %w", label, ErrEncoding)
	}

	envelope, err := p.box.EncryptString(plaintext)
	if err != nil {
		return nil, fmt.Errorf("produce %q: %w", label, err)
	}

	if p.cfg.selfCheck {
		got, err := p.mirror.DecryptString(envelope)
		if err != nil {
			return nil, fmt.Errorf("produce %q: self-check: %w", label, err)
		}
		if got != plaintext {
			return nil, fmt.Errorf("produce %q: self-check: %w", label, &MismatchError{Expected: plaintext, Got: got})
		}
	}

	v := &Vector{
		Label:               label,
		SenderPrivateKey:    p.sender.PrivateKeyBase64(),
		SenderPublicKey:     p.sender.PublicKeyBase64(),
		RecipientPrivateKey: p.recipient.PrivateKeyBase64(),
		RecipientPublicKey:  p.recipient.PublicKeyBase64(),
		Plaintext:           plaintext,
		Envelope:            EncodeEnvelope(envelope),
	}
	if p.cfg.omitSenderPrivate {
		v.SenderPrivateKey = ""
	}

	return v, nil
}

// ProduceAll produces one vector per case, in order.
func (p *Producer) ProduceAll(cases []Case) ([]*Vector, error) {
	vectors := make([]*Vector, 0, len(cases))
	for _, c := range cases {
		v, err := p.Produce(c.Label, c.Plaintext)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, v)
	}
	return vectors, nil
}

// GenerateVectors creates a fresh sender and recipient key pair and
// produces one vector per case with them.
func GenerateVectors(cases []Case, opts ...ProducerOption) ([]*Vector, error) {
	cfg := newProducerConfig(opts)

	sender, err := GenerateKeyPairFrom(cfg.rand)
	if err != nil {
		return nil, fmt.Errorf("generate sender: %w", err)
	}
	recipient, err := GenerateKeyPairFrom(cfg.rand)
	if err != nil {
		return nil, fmt.Errorf("generate recipient: %w", err)
	}

	p, err := NewProducer(sender, recipient, opts...)
	if err != nil {
		return nil, err
	}
	return p.ProduceAll(cases)
}
