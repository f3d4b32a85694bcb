package boxinterop

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDocument_WriteRead(t *testing.T) {
	vectors, err := GenerateVectors(DefaultCases())
	require.NoError(t, err)

	doc := NewDocument(DefaultImplementation, vectors)
	_, err = uuid.Parse(doc.RunID)
	require.NoError(t, err)
	require.NoError(t, doc.Validate())

	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))

	out := buf.String()
	require.Contains(t, out, `"envelope_b64"`)
	require.Contains(t, out, `"plaintext_utf8": "{\"type\":\"test\",\"data\":123}"`)

	got, err := ReadDocument(&buf)
	require.NoError(t, err)
	require.Equal(t, doc.RunID, got.RunID)
	require.Equal(t, doc.Implementation, got.Implementation)
	require.Equal(t, "X25519:XSalsa20-Poly1305", got.Suite)
	require.True(t, doc.GeneratedAt.Equal(got.GeneratedAt))
	require.Equal(t, doc.Vectors, got.Vectors)

	report := NewVerifier().VerifyAll(got.Vectors)
	require.True(t, report.Passed(), "%v", report.Err())
}

func TestReadDocument_PeerProduced(t *testing.T) {
	// A document as another implementation might write it: no run ID,
	// no sender private key.
	vectors, err := GenerateVectors([]Case{{Label: "peer", Plaintext: "Hello, 世界! 🌍"}}, WithoutSenderPrivateKey())
	require.NoError(t, err)
	v := vectors[0]

	doc := `{
  "implementation": "python/pynacl",
  "generated_at": "2026-01-01T00:00:00Z",
  "vectors": [{
    "label": "peer",
    "sender_private_key_b64": "",
    "sender_public_key_b64": "` + v.SenderPublicKey + `",
    "recipient_private_key_b64": "` + v.RecipientPrivateKey + `",
    "recipient_public_key_b64": "` + v.RecipientPublicKey + `",
    "plaintext_utf8": "Hello, 世界! 🌍",
    "envelope_b64": "` + v.Envelope + `"
  }]
}`

	got, err := ReadDocument(strings.NewReader(doc))
	require.NoError(t, err)
	require.Empty(t, got.RunID)
	require.Equal(t, "python/pynacl", got.Implementation)
	require.Len(t, got.Vectors, 1)

	report := NewVerifier().VerifyAll(got.Vectors)
	require.True(t, report.Passed(), "%v", report.Err())
}

func TestReadDocument_Errors(t *testing.T) {
	_, err := ReadDocument(strings.NewReader("not json"))
	require.Error(t, err)

	_, err = ReadDocument(strings.NewReader(`{"run_id":"nope","vectors":[]}`))
	require.ErrorIs(t, err, ErrInvalidDocument)
	require.NotErrorIs(t, err, ErrInvalidVector)
	require.Equal(t, KindInvalidDocument, KindOf(err))
}

func TestReadDocument_KeepsBadVectors(t *testing.T) {
	got, err := ReadDocument(strings.NewReader(`{"vectors":[{"label":"incomplete"}]}`))
	require.NoError(t, err)
	require.Len(t, got.Vectors, 1)
	require.ErrorIs(t, got.Validate(), ErrInvalidVector)

	out := NewVerifier().Verify(got.Vectors[0])
	require.Equal(t, KindInvalidVector, out.Kind)
}
