// Command boxinterop produces and verifies box interop vectors so that
// this implementation can be checked against another one.
//
// Usage:
//
//	boxinterop keygen [-format text|json]
//	boxinterop produce [-format text|json] [-seed hex] [-label-prefix s] [-omit-sender-private]
//	boxinterop verify [-format text|json] [-no-key-checks] [file|-]
//	boxinterop baseline
//
// Defaults come from BOXINTEROP_* environment variables, optionally loaded
// from a .env file in the working directory. Flags override them.
package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vaultsandbox/boxinterop"
	"github.com/vaultsandbox/boxinterop/internal/crypto"
)

// Environment variables read by the command.
const (
	envFormat         = "BOXINTEROP_FORMAT"
	envLogLevel       = "BOXINTEROP_LOG_LEVEL"
	envImplementation = "BOXINTEROP_IMPLEMENTATION"
	envSeed           = "BOXINTEROP_SEED"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// seedLabel separates the produce stream from any other use of the same seed.
const seedLabel = "produce"

const usage = "usage: boxinterop <keygen|produce|verify|baseline> [flags]"

// Config holds the I/O and environment the command runs against.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
}

// DefaultConfig returns a Config bound to the process.
func DefaultConfig() *Config {
	return &Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
	}
}

func (c *Config) env(key, fallback string) string {
	if c.Getenv == nil {
		return fallback
	}
	if v := c.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func run(args []string, cfg *Config) error {
	if len(args) < 2 {
		return errors.New(usage)
	}

	logger, err := newLogger(cfg.Stderr, cfg.env(envLogLevel, "info"))
	if err != nil {
		return err
	}

	switch args[1] {
	case "keygen":
		return runKeygen(args[2:], cfg)
	case "produce":
		return runProduce(args[2:], cfg, logger)
	case "verify":
		return runVerify(args[2:], cfg, logger)
	case "baseline":
		return runBaseline(cfg, logger)
	default:
		return fmt.Errorf("unknown command: %s\n%s", args[1], usage)
	}
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("%s: %w", envLogLevel, err)
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}
	return zerolog.New(out).Level(lvl), nil
}

func newFlagSet(name string, cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cfg.Stderr)
	return fs
}

func checkFormat(format string) error {
	if format != formatText && format != formatJSON {
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatJSON)
	}
	return nil
}

// KeyOutput is the JSON form of a generated key pair.
type KeyOutput struct {
	PrivateKey string `json:"private_key_b64"`
	PublicKey  string `json:"public_key_b64"`
}

func runKeygen(args []string, cfg *Config) error {
	fs := newFlagSet("keygen", cfg)
	format := fs.String("format", cfg.env(envFormat, formatText), "output format: text or json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkFormat(*format); err != nil {
		return err
	}

	kp, err := boxinterop.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("generate key pair: %w", err)
	}

	out := KeyOutput{PrivateKey: kp.PrivateKeyBase64(), PublicKey: kp.PublicKeyBase64()}
	if *format == formatJSON {
		return json.NewEncoder(cfg.Stdout).Encode(out)
	}
	_, err = fmt.Fprintf(cfg.Stdout, "private_key_b64: %s\npublic_key_b64: %s\n", out.PrivateKey, out.PublicKey)
	return err
}

func runProduce(args []string, cfg *Config, logger zerolog.Logger) error {
	fs := newFlagSet("produce", cfg)
	format := fs.String("format", cfg.env(envFormat, formatText), "output format: text or json")
	seedHex := fs.String("seed", cfg.env(envSeed, ""), "hex seed for reproducible keys and nonces (testing only)")
	prefix := fs.String("label-prefix", "", "prefix added to every case label")
	omitSender := fs.Bool("omit-sender-private", false, "leave sender_private_key_b64 empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkFormat(*format); err != nil {
		return err
	}

	var opts []boxinterop.ProducerOption
	if *seedHex != "" {
		seed, err := hex.DecodeString(*seedHex)
		if err != nil {
			return fmt.Errorf("parse seed: %w", err)
		}
		logger.Warn().Msg("using a seeded random source; vectors are reproducible and not secret")
		opts = append(opts, boxinterop.WithEntropy(crypto.NewSeededReader(seed, seedLabel)))
	}
	if *omitSender {
		opts = append(opts, boxinterop.WithoutSenderPrivateKey())
	}

	cases := boxinterop.DefaultCases()
	for i := range cases {
		cases[i].Label = *prefix + cases[i].Label
	}

	vectors, err := boxinterop.GenerateVectors(cases, opts...)
	if err != nil {
		return fmt.Errorf("produce vectors: %w", err)
	}
	logger.Info().Int("count", len(vectors)).Str("format", *format).Msg("produced vectors")

	if *format == formatJSON {
		doc := boxinterop.NewDocument(cfg.env(envImplementation, boxinterop.DefaultImplementation), vectors)
		return doc.Write(cfg.Stdout)
	}
	return boxinterop.WriteRecords(cfg.Stdout, vectors)
}

func runVerify(args []string, cfg *Config, logger zerolog.Logger) error {
	fs := newFlagSet("verify", cfg)
	format := fs.String("format", cfg.env(envFormat, formatText), "input format: text or json")
	noKeyChecks := fs.Bool("no-key-checks", false, "skip checking declared public keys against private keys")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkFormat(*format); err != nil {
		return err
	}

	in := cfg.Stdin
	if path := fs.Arg(0); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open vectors: %w", err)
		}
		defer f.Close()
		in = f
	}

	vectors, err := readVectors(in, *format, logger)
	if err != nil {
		return err
	}

	verifier := boxinterop.NewVerifier(
		boxinterop.WithLogger(logger),
		boxinterop.WithKeyChecks(!*noKeyChecks),
	)
	report := verifier.VerifyAll(vectors)

	for _, o := range report.Outcomes {
		fmt.Fprintln(cfg.Stdout, o.String())
		if !o.Passed && o.Dump != "" {
			fmt.Fprintf(cfg.Stdout, "  envelope (%d bytes): %s\n", o.EnvelopeLen, o.Dump)
		}
	}
	passed, failed := report.Counts()
	fmt.Fprintf(cfg.Stdout, "%d passed, %d failed\n", passed, failed)

	if !report.Passed() {
		return fmt.Errorf("verification failed: %w", report.Err())
	}
	return nil
}

func readVectors(r io.Reader, format string, logger zerolog.Logger) ([]*boxinterop.Vector, error) {
	if format == formatJSON {
		doc, err := boxinterop.ReadDocument(r)
		if err != nil {
			return nil, err
		}
		logger.Info().
			Str("run_id", doc.RunID).
			Str("implementation", doc.Implementation).
			Int("count", len(doc.Vectors)).
			Msg("read document")
		return doc.Vectors, nil
	}

	vectors, err := boxinterop.ParseRecords(r)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("count", len(vectors)).Msg("read exchange records")
	return vectors, nil
}

func runBaseline(cfg *Config, logger zerolog.Logger) error {
	if err := boxinterop.Baseline(nil); err != nil {
		return err
	}
	fmt.Fprintln(cfg.Stdout, "baseline: ok")

	report, err := boxinterop.SelfTest(boxinterop.DefaultCases())
	if err != nil {
		return err
	}
	passed, failed := report.Counts()
	logger.Info().Int("passed", passed).Int("failed", failed).Msg("self-test finished")
	fmt.Fprintf(cfg.Stdout, "self-test: %d passed, %d failed\n", passed, failed)

	if !report.Passed() {
		return fmt.Errorf("self-test failed: %w", report.Err())
	}
	return nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
