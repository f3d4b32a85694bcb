package boxinterop

import (
	"io"

	"github.com/rs/zerolog"
)

// boxConfig holds configuration for a Box.
type boxConfig struct {
	rand io.Reader
}

// producerConfig holds configuration for vector production.
type producerConfig struct {
	rand              io.Reader
	omitSenderPrivate bool
	selfCheck         bool
}

// verifierConfig holds configuration for vector verification.
type verifierConfig struct {
	logger    zerolog.Logger
	checkKeys bool
}

// BoxOption configures a Box.
type BoxOption func(*boxConfig)

// ProducerOption configures vector production.
type ProducerOption func(*producerConfig)

// VerifierOption configures vector verification.
type VerifierOption func(*verifierConfig)

// WithRandom sets the source of nonces. It must be safe for concurrent use
// if the Box is shared between goroutines.
// Default: crypto/rand.
func WithRandom(r io.Reader) BoxOption {
	return func(c *boxConfig) {
		c.rand = r
	}
}

// WithEntropy sets the source of key material and nonces used while
// producing vectors. Pass a seeded reader to get reproducible vectors.
// Default: crypto/rand.
func WithEntropy(r io.Reader) ProducerOption {
	return func(c *producerConfig) {
		c.rand = r
	}
}

// WithoutSenderPrivateKey leaves sender_private_key_b64 empty in produced
// vectors. Verification only needs the sender's public key.
func WithoutSenderPrivateKey() ProducerOption {
	return func(c *producerConfig) {
		c.omitSenderPrivate = true
	}
}

// WithSelfCheck controls whether each produced vector is decrypted locally
// before it is returned.
// Default: true
func WithSelfCheck(enabled bool) ProducerOption {
	return func(c *producerConfig) {
		c.selfCheck = enabled
	}
}

// WithLogger sets the logger that receives one event per verified vector.
// Keys and plaintexts are never logged.
// Default: zerolog.Nop()
func WithLogger(logger zerolog.Logger) VerifierOption {
	return func(c *verifierConfig) {
		c.logger = logger
	}
}

// WithKeyChecks controls whether declared public keys are checked against
// their private keys before decryption.
// Default: true
func WithKeyChecks(enabled bool) VerifierOption {
	return func(c *verifierConfig) {
		c.checkKeys = enabled
	}
}

func newBoxConfig(opts []BoxOption) boxConfig {
	var cfg boxConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func newProducerConfig(opts []ProducerOption) producerConfig {
	cfg := producerConfig{selfCheck: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func newVerifierConfig(opts []VerifierOption) verifierConfig {
	cfg := verifierConfig{
		logger:    zerolog.Nop(),
		checkKeys: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
