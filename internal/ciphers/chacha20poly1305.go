package ciphers

import (
	"golang.org/x/crypto/chacha20poly1305"
)

// ChaCha20Poly1305 is layer 6 of the cascade, wrapping
// golang.org/x/crypto/chacha20poly1305 the same way the teacher package
// wraps golang.org/x/crypto/chacha20: a handful of lines translating the
// library's native API into the cascade's uniform adapter shape.
type ChaCha20Poly1305 struct{}

func (ChaCha20Poly1305) KeySize() int   { return chacha20poly1305.KeySize }
func (ChaCha20Poly1305) NonceSize() int { return chacha20poly1305.NonceSize }
func (ChaCha20Poly1305) TagSize() int   { return chacha20poly1305.Overhead }

func (c ChaCha20Poly1305) Seal(key, nonce, plaintext, aad []byte) ([]byte, []byte, error) {
	if err := checkSizes(c, key, nonce); err != nil {
		return nil, nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, nil, err
	}
	sealed := aead.Seal(nil, nonce, plaintext, aad)
	ct := sealed[:len(plaintext)]
	tag := sealed[len(plaintext):]
	return ct, tag, nil
}

func (c ChaCha20Poly1305) Open(key, nonce, ciphertext, tag, aad []byte) ([]byte, error) {
	if err := checkSizes(c, key, nonce); err != nil {
		return nil, err
	}
	if len(tag) != c.TagSize() {
		return nil, ErrInvalidSize
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)
	pt, err := aead.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return pt, nil
}
