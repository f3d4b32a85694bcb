package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/nacl/box"
)

// Known answer from the NaCl distribution (tests/box.c, tests/box.out):
// Alice's RFC 7748 private key seals to Bob's public key.
const (
	naclFirstKey = "1b27556473e985d462cd51197a9a46c76009549eac6474f206c4ee0844f68389"
	naclNonce    = "69696ee955b62b73cd62bda875fc73d68219e0036b7a0b37"
	naclMessage  = "be075fc53c81f2d5cf141316ebeb0c7b5228c52a4c62cbd44b66849b64244ffc" +
		"e5ecbaaf33bd751a1ac728d45e6c61296cdc3c01233561f41db66cce314adb31" +
		"0e3be8250c46f06dceea3a7fa1348057e2f6556ad6b1318a024a838f21af1fde" +
		"048977eb48f59ffd4924ca1c60902e52f0a089bc76897040e082f93776384864" +
		"5e0705"
	// Tag (16 bytes) followed by the ciphertext.
	naclSealed = "f3ffc7703f9400e52a7dfb4b3d3305d98e993b9f48681273c29650ba32fc76ce" +
		"48332ea7164d96a4476fb8c531a1186ac0dfc17c98dce87b4da7f011ec48c972" +
		"71d2c20f9b928fe2270d6fb863d51738b48eeee314a7cc8ab932164548e526ae" +
		"90224368517acfeabd6bb3732bc0e9da99832b61ca01b6de56244a9e88d5f9b3" +
		"7973f622a43d14a6599b1f654cb45a74e355a5"
)

func newPair(t *testing.T) (*Keypair, *Keypair) {
	t.Helper()
	alice, err := GenerateKeypair(nil)
	require.NoError(t, err)
	bob, err := GenerateKeypair(nil)
	require.NoError(t, err)
	return alice, bob
}

func mustPrecompute(t *testing.T, priv, peer *[KeySize]byte) *SharedKey {
	t.Helper()
	key, err := Precompute(priv, peer)
	require.NoError(t, err)
	return key
}

func TestPrecompute_KnownAnswer(t *testing.T) {
	alicePriv := mustHexKey(t, rfcAlicePrivate)
	bobPub := mustHexKey(t, rfcBobPublic)

	key := mustPrecompute(t, &alicePriv, &bobPub)
	require.Equal(t, mustHex(t, naclFirstKey), key[:])
}

func TestSeal_KnownAnswer(t *testing.T) {
	alicePriv := mustHexKey(t, rfcAlicePrivate)
	bobPub := mustHexKey(t, rfcBobPublic)
	nonce := mustHex(t, naclNonce)

	got, err := Seal(bytes.NewReader(nonce), mustPrecompute(t, &alicePriv, &bobPub), mustHex(t, naclMessage))
	require.NoError(t, err)

	want := append(bytes.Clone(nonce), mustHex(t, naclSealed)...)
	require.Equal(t, want, got)
}

func TestOpen_KnownAnswer(t *testing.T) {
	bobPriv := mustHexKey(t, rfcBobPrivate)
	alicePub := mustHexKey(t, rfcAlicePublic)

	envelope := append(mustHex(t, naclNonce), mustHex(t, naclSealed)...)
	got, err := Open(mustPrecompute(t, &bobPriv, &alicePub), envelope)
	require.NoError(t, err)
	require.Equal(t, mustHex(t, naclMessage), got)
}

func TestPrecompute_RejectsLowOrderKeys(t *testing.T) {
	alice, _ := newPair(t)

	lowOrder := map[string][KeySize]byte{
		"zero": {},
		"one":  {1},
		// Order-8 point from the libsodium blacklist.
		"order eight": mustHexKey(t, "e0eb7a7c3b41b8ae1656e3faf19fc46ada098deb9c32b1fd866205165f49b800"),
	}

	for name, pub := range lowOrder {
		t.Run(name, func(t *testing.T) {
			key, err := Precompute(&alice.PrivateKey, &pub)
			require.ErrorIs(t, err, ErrLowOrderKey)
			require.Nil(t, key)
		})
	}
}

func TestSealOpen_NilKey(t *testing.T) {
	_, err := Seal(nil, nil, []byte("x"))
	require.ErrorIs(t, err, ErrNoSharedKey)

	_, err = Open(nil, make([]byte, MinEnvelopeSize))
	require.ErrorIs(t, err, ErrNoSharedKey)
}

func TestSeal_Open_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"empty", []byte{}},
		{"simple", []byte("Hello, World!")},
		{"json", []byte(`{"type":"test","data":123}`)},
		{"binary", []byte{0x00, 0xff, 0x7f, 0x80}},
		{"large", make([]byte, 10000)},
	}

	alice, bob := newPair(t)
	sendKey := mustPrecompute(t, &alice.PrivateKey, &bob.PublicKey)
	recvKey := mustPrecompute(t, &bob.PrivateKey, &alice.PublicKey)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope, err := Seal(nil, sendKey, tt.plaintext)
			require.NoError(t, err)
			require.Len(t, envelope, NonceSize+len(tt.plaintext)+TagSize)

			decrypted, err := Open(recvKey, envelope)
			require.NoError(t, err)
			require.Equal(t, tt.plaintext, decrypted)
		})
	}
}

func TestPrecompute_Symmetric(t *testing.T) {
	alice, bob := newPair(t)

	require.Equal(t,
		mustPrecompute(t, &alice.PrivateKey, &bob.PublicKey),
		mustPrecompute(t, &bob.PrivateKey, &alice.PublicKey))
}

func TestSeal_NoncePrefix(t *testing.T) {
	alice, bob := newPair(t)
	key := mustPrecompute(t, &alice.PrivateKey, &bob.PublicKey)

	nonce := bytes.Repeat([]byte{0xAB}, NonceSize)
	envelope, err := Seal(bytes.NewReader(nonce), key, []byte("test"))
	require.NoError(t, err)
	require.Equal(t, nonce, envelope[:NonceSize])
}

// Sealing must equal nacl/box.Seal with the nonce prepended.
func TestSeal_MatchesNaClLayout(t *testing.T) {
	alice, bob := newPair(t)
	key := mustPrecompute(t, &alice.PrivateKey, &bob.PublicKey)

	var nonce [NonceSize]byte
	copy(nonce[:], bytes.Repeat([]byte{0x11}, NonceSize))
	plaintext := []byte("Hello from Python!")

	got, err := Seal(bytes.NewReader(nonce[:]), key, plaintext)
	require.NoError(t, err)

	want := box.Seal(nonce[:], plaintext, &nonce, &bob.PublicKey, &alice.PrivateKey)
	require.Equal(t, want, got)
}

func TestSeal_RandomSourceFailure(t *testing.T) {
	alice, bob := newPair(t)
	key := mustPrecompute(t, &alice.PrivateKey, &bob.PublicKey)

	_, err := Seal(bytes.NewReader(make([]byte, NonceSize-1)), key, []byte("x"))
	require.ErrorIs(t, err, ErrRandomSource)
}

func TestOpen_TooShort(t *testing.T) {
	alice, bob := newPair(t)
	key := mustPrecompute(t, &bob.PrivateKey, &alice.PublicKey)

	tests := []struct {
		name   string
		length int
	}{
		{"empty", 0},
		{"nonce only", NonceSize},
		{"one byte short", MinEnvelopeSize - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(key, make([]byte, tt.length))
			require.ErrorIs(t, err, ErrMalformedEnvelope)
		})
	}
}

func TestOpen_Tampered(t *testing.T) {
	alice, bob := newPair(t)
	sendKey := mustPrecompute(t, &alice.PrivateKey, &bob.PublicKey)
	recvKey := mustPrecompute(t, &bob.PrivateKey, &alice.PublicKey)

	envelope, err := Seal(nil, sendKey, []byte("Hello, World!"))
	require.NoError(t, err)

	for i := range envelope {
		tampered := bytes.Clone(envelope)
		tampered[i] ^= 0x01

		plaintext, err := Open(recvKey, tampered)
		require.ErrorIs(t, err, ErrAuthenticationFailure, "byte %d", i)
		require.Nil(t, plaintext, "byte %d", i)
	}
}

func TestOpen_WrongKey(t *testing.T) {
	alice, bob := newPair(t)
	eve, _ := newPair(t)

	envelope, err := Seal(nil, mustPrecompute(t, &alice.PrivateKey, &bob.PublicKey), []byte("secret"))
	require.NoError(t, err)

	_, err = Open(mustPrecompute(t, &eve.PrivateKey, &alice.PublicKey), envelope)
	require.ErrorIs(t, err, ErrAuthenticationFailure)
}
