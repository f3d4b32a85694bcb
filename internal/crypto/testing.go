package crypto

import "io"

// SetRandReaderForTesting swaps the fallback source used when GenerateKeypair
// or Seal is given a nil reader, and returns a func that restores it.
// Tests that call it must not run in parallel.
func SetRandReaderForTesting(r io.Reader) (restore func()) {
	original := randReader
	randReader = r
	return func() { randReader = original }
}
