// Package boxinterop provides NaCl box public-key authenticated encryption
// with a fixed, versionless wire format, and a test-vector protocol for
// proving that two independent implementations agree on that format.
//
// Encrypting from Alice to Bob and decrypting as Bob:
//
//	alice, _ := boxinterop.GenerateKeyPair()
//	bob, _ := boxinterop.GenerateKeyPair()
//
//	toBob, _ := boxinterop.NewBox(alice, bob.PublicKey())
//	envelope, err := toBob.EncryptString("Hello, World!")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	wire := boxinterop.EncodeEnvelope(envelope) // base64(nonce || ciphertext || tag)
//
//	fromAlice, _ := boxinterop.NewBox(bob, alice.PublicKey())
//	received, _ := boxinterop.DecodeEnvelope(wire)
//	text, err := fromAlice.DecryptString(received)
//
// Checking vectors produced by another implementation:
//
//	vectors, err := boxinterop.ParseRecords(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report := boxinterop.NewVerifier().VerifyAll(vectors)
//	if err := report.Err(); err != nil {
//	    log.Fatal(err) // every failing vector, not just the first
//	}
package boxinterop
