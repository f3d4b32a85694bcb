package crypto

import (
	"crypto/sha512"
	"encoding/binary"
	"io"
	"sync"

	"golang.org/x/crypto/hkdf"
)

// hkdfStreamSize is the most output a single HKDF-SHA-512 expansion can give.
const hkdfStreamSize = 255 * sha512.Size

// SeededReader is a deterministic byte stream expanded from a seed with
// HKDF-SHA-512. It is meant for tests and reproducible vector generation
// and must never stand in for crypto/rand in production.
//
// Output is split into blocks; block n is HKDF(seed, info = context || label || n).
// Reads never fail and the stream does not run out.
type SeededReader struct {
	mu        sync.Mutex
	seed      []byte
	label     string
	block     uint64
	stream    io.Reader
	remaining int
}

// NewSeededReader returns a reader that yields the same bytes for the same
// seed and label.
func NewSeededReader(seed []byte, label string) *SeededReader {
	s := make([]byte, len(seed))
	copy(s, seed)
	return &SeededReader{seed: s, label: label}
}

// Read fills p. It is safe for concurrent use, though concurrent readers
// will interleave the stream.
func (r *SeededReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for n < len(p) {
		if r.remaining == 0 {
			r.stream = hkdf.New(sha512.New, r.seed, nil, r.info())
			r.remaining = hkdfStreamSize
			r.block++
		}

		chunk := len(p) - n
		if chunk > r.remaining {
			chunk = r.remaining
		}

		m, err := io.ReadFull(r.stream, p[n:n+chunk])
		if err != nil {
			// Cannot happen while chunk stays within the stream limit.
			return n + m, err
		}
		n += m
		r.remaining -= m
	}

	return n, nil
}

// info builds: context || 0x00 || label || 0x00 || block (8 bytes BE)
func (r *SeededReader) info() []byte {
	info := make([]byte, 0, len(SeededReaderContext)+len(r.label)+10)
	info = append(info, SeededReaderContext...)
	info = append(info, 0)
	info = append(info, r.label...)
	info = append(info, 0)
	return binary.BigEndian.AppendUint64(info, r.block)
}
