// Package cascade wires the six AEAD layers into one fixed, compile-time
// pipeline: AES-256-GCM, AEGIS-256, Schwaemm256-256, Deoxys-II-256,
// Ascon-128a, then ChaCha20-Poly1305. There is no runtime registry or
// plugin lookup — the cascade is a literal array built once at package
// init, the same way the teacher package commits to one AEAD construction
// rather than dispatching over an interface chosen at runtime.
package cascade

import (
	"github.com/oxcrypt/sixlock/internal/ciphers"
	"github.com/oxcrypt/sixlock/internal/keyschedule"
)

// Layers is the cascade's fixed composition order. Index 0 is applied
// first on encrypt (innermost) and last on decrypt (outermost-removed
// last); index 5 is applied last on encrypt and first removed on decrypt.
var Layers = [keyschedule.LayerCount]ciphers.AEAD{
	ciphers.AESGCM{},
	ciphers.AEGIS256{},
	ciphers.Schwaemm256256{},
	ciphers.Deoxys256{},
	ciphers.Ascon128a{},
	ciphers.ChaCha20Poly1305{},
}

// Tags holds the six authentication tags produced by one Encrypt call, in
// cascade order.
type Tags [keyschedule.LayerCount][]byte

// Encrypt runs plaintext through all six layers in order, each keyed and
// nonced from the matching entries of keys/nonces, and returns the final
// ciphertext plus one tag per layer.
func Encrypt(plaintext, aad []byte, keys keyschedule.DerivedKeys, nonces [keyschedule.LayerCount][]byte) ([]byte, Tags, error) {
	var tags Tags
	buf := plaintext
	for i, layer := range Layers {
		ct, tag, err := layer.Seal(keys[i], nonces[i], buf, aad)
		if err != nil {
			return nil, Tags{}, err
		}
		buf = ct
		tags[i] = tag
	}
	return buf, tags, nil
}

// Decrypt reverses the cascade, removing layer 6 first and layer 1 last.
// It stops at the first layer whose tag fails to verify rather than
// continuing through the remaining layers, since a forged outer layer
// makes any inner plaintext meaningless.
func Decrypt(ciphertext []byte, tags Tags, aad []byte, keys keyschedule.DerivedKeys, nonces [keyschedule.LayerCount][]byte) ([]byte, error) {
	buf := ciphertext
	for i := len(Layers) - 1; i >= 0; i-- {
		pt, err := Layers[i].Open(keys[i], nonces[i], buf, tags[i], aad)
		if err != nil {
			return nil, err
		}
		buf = pt
	}
	return buf, nil
}
