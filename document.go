package boxinterop

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/vaultsandbox/boxinterop/internal/crypto"
)

// DefaultImplementation names this implementation in produced documents.
const DefaultImplementation = "go/golang.org/x/crypto/nacl/box"

// Suite names the construction: X25519 key agreement, XSalsa20-Poly1305
// sealing.
const Suite = crypto.Suite

// Document is the JSON form of an exchange: a batch of vectors plus
// informational metadata about the run that produced them.
//
// WARNING: vectors contain private key material. Only generate them with
// throwaway keys.
//
// Like the text records, a Document carries no format version. The
// per-vector fields are exactly the exchange record fields.
type Document struct {
	// RunID identifies the producing run (UUID). Informational only.
	RunID string `json:"run_id"`
	// Implementation describes the producer, e.g. "python/pynacl".
	Implementation string `json:"implementation,omitempty"`
	// Suite names the construction. Informational only; readers must not
	// reject a document because of it.
	Suite string `json:"suite,omitempty"`
	// GeneratedAt is when the vectors were produced. Informational only.
	GeneratedAt time.Time `json:"generated_at"`
	// Vectors holds the test vectors.
	Vectors []*Vector `json:"vectors"`
}

// NewDocument wraps vectors with a fresh run ID and timestamp.
func NewDocument(implementation string, vectors []*Vector) *Document {
	return &Document{
		RunID:          uuid.NewString(),
		Implementation: implementation,
		Suite:          Suite,
		GeneratedAt:    time.Now().UTC(),
		Vectors:        vectors,
	}
}

// Validate checks the run ID, if present, and every vector.
func (d *Document) Validate() error {
	if err := d.validateRunID(); err != nil {
		return err
	}

	for i, v := range d.Vectors {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("vectors[%d]: %w", i, err)
		}
	}

	return nil
}

func (d *Document) validateRunID() error {
	if d.RunID == "" {
		return nil
	}
	if _, err := uuid.Parse(d.RunID); err != nil {
		return fmt.Errorf("%w: run_id: %v", ErrInvalidDocument, err)
	}
	return nil
}

// Write encodes the document as indented JSON.
func (d *Document) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(d)
}

// ReadDocument decodes a JSON document. Individual vectors are not
// validated so that a verifier can report each bad one separately.
func ReadDocument(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if err := d.validateRunID(); err != nil {
		return nil, err
	}
	return &d, nil
}
