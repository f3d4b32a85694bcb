package crypto

import (
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readN(t *testing.T, r io.Reader, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	_, err := io.ReadFull(r, buf)
	require.NoError(t, err)
	return buf
}

func TestSeededReader_Deterministic(t *testing.T) {
	seed := []byte("fixed seed")

	a := readN(t, NewSeededReader(seed, "vectors"), 256)
	b := readN(t, NewSeededReader(seed, "vectors"), 256)

	require.Equal(t, a, b)
}

func TestSeededReader_DomainSeparation(t *testing.T) {
	tests := []struct {
		name   string
		seedA  []byte
		labelA string
		seedB  []byte
		labelB string
	}{
		{"different label", []byte("seed"), "a", []byte("seed"), "b"},
		{"different seed", []byte("seed-1"), "a", []byte("seed-2"), "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := readN(t, NewSeededReader(tt.seedA, tt.labelA), 64)
			b := readN(t, NewSeededReader(tt.seedB, tt.labelB), 64)
			require.NotEqual(t, a, b)
		})
	}
}

func TestSeededReader_ChunkingIsTransparent(t *testing.T) {
	seed := []byte("chunking")

	whole := readN(t, NewSeededReader(seed, ""), 1000)

	r := NewSeededReader(seed, "")
	var pieces []byte
	for _, n := range []int{1, 23, 24, 32, 200, 720} {
		pieces = append(pieces, readN(t, r, n)...)
	}

	require.Equal(t, whole, pieces, "output depends on read sizes")
}

func TestSeededReader_BeyondSingleExpansion(t *testing.T) {
	out := readN(t, NewSeededReader([]byte("long"), ""), 3*hkdfStreamSize+17)

	first := out[:hkdfStreamSize]
	second := out[hkdfStreamSize : 2*hkdfStreamSize]
	require.NotEqual(t, first, second, "consecutive blocks repeat")
}

func TestSeededReader_CopiesSeed(t *testing.T) {
	seed := []byte("mutable")
	r := NewSeededReader(seed, "")
	want := readN(t, NewSeededReader([]byte("mutable"), ""), 32)

	seed[0] = 'X'
	require.Equal(t, want, readN(t, r, 32))
}

func TestSeededReader_Concurrent(t *testing.T) {
	r := NewSeededReader([]byte("concurrent"), "")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, 512)
			_, err := io.ReadFull(r, buf)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestSeededReader_DrivesGenerateKeypair(t *testing.T) {
	a, err := GenerateKeypair(NewSeededReader([]byte("kp"), "alice"))
	require.NoError(t, err)
	b, err := GenerateKeypair(NewSeededReader([]byte("kp"), "alice"))
	require.NoError(t, err)

	require.Equal(t, a.PrivateKey, b.PrivateKey)
}
