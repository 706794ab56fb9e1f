// Package engine is sixlock's single public entry point for turning
// plaintext into a blob and back: it derives keys and nonces from the
// master secret and file path, runs the cascade, and encodes or decodes
// the wire format, reporting failures through sixerr's typed result
// instead of a bare error string. Nothing here keeps state between calls
// — every call is a fresh derivation, the same way the teacher package's
// AEAD.Seal/Open take a key argument on every call rather than caching
// one internally.
package engine

import (
	"github.com/oxcrypt/sixlock/internal/cascade"
	"github.com/oxcrypt/sixlock/internal/keyschedule"
	"github.com/oxcrypt/sixlock/internal/sixerr"
	"github.com/oxcrypt/sixlock/internal/wireformat"
)

// Encrypt derives per-layer keys and nonces from masterSecret and path,
// runs plaintext through the cascade, and returns the encoded blob. The
// path is also used as the cascade's associated data, binding a blob to
// the location it was encrypted for: moving a blob to a different path
// and trying to decrypt it there fails verification.
func Encrypt(masterSecret [32]byte, path string, plaintext []byte) ([]byte, error) {
	keys, err := keyschedule.Derive(masterSecret, path)
	if err != nil {
		return nil, sixerr.Wrap(sixerr.InternalCryptoError, "deriving per-layer keys", err)
	}
	nonces := keyschedule.DeriveNonces(keys)

	aad := []byte(path)
	ciphertext, tags, err := cascade.Encrypt(plaintext, aad, keys, nonces)
	if err != nil {
		return nil, sixerr.Wrap(sixerr.InternalCryptoError, "sealing cascade", err)
	}

	blob, err := wireformat.Encode(tags, ciphertext)
	if err != nil {
		return nil, sixerr.Wrap(sixerr.InternalCryptoError, "encoding blob", err)
	}
	return blob, nil
}

// Decrypt reverses Encrypt: it decodes the blob, derives the same
// per-layer keys and nonces from masterSecret and path, and removes the
// cascade's six layers in reverse order. Any tag mismatch, at any layer,
// is reported as sixerr.AuthenticationFailure; a blob that is too short
// or carries an unsupported version is reported as sixerr.MalformedBlob
// before any cryptography runs.
func Decrypt(masterSecret [32]byte, path string, blob []byte) ([]byte, error) {
	_, tags, ciphertext, err := wireformat.Decode(blob)
	if err != nil {
		return nil, sixerr.Wrap(sixerr.MalformedBlob, "decoding blob", err)
	}

	keys, err := keyschedule.Derive(masterSecret, path)
	if err != nil {
		return nil, sixerr.Wrap(sixerr.InternalCryptoError, "deriving per-layer keys", err)
	}
	nonces := keyschedule.DeriveNonces(keys)

	aad := []byte(path)
	plaintext, err := cascade.Decrypt(ciphertext, tags, aad, keys, nonces)
	if err != nil {
		return nil, sixerr.Wrap(sixerr.AuthenticationFailure, "verifying cascade", err)
	}
	return plaintext, nil
}
