// Package keyschedule turns a 32-byte master secret and a file path into
// the per-layer keys and nonces the cascade needs. It follows the same
// "derive, don't store" shape the teacher package uses for its NH/poly/ASU
// subkeys (hs1.go, deleted, see DESIGN.md) but replaces the from-scratch
// hash tower with golang.org/x/crypto's HKDF and SHA3 implementations,
// since the derivation here is an ordinary Extract-then-Expand rather than
// a universal hash built for raw throughput.
package keyschedule

import (
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

// LayerCount is the number of AEAD layers in the cascade.
const LayerCount = 6

var keySizes = [LayerCount]int{32, 32, 32, 32, 16, 32}
var nonceSizes = [LayerCount]int{12, 32, 32, 15, 16, 12}

var layerInfo = [LayerCount][]byte{
	[]byte("Layer1.AES256"),
	[]byte("Layer2.AEGIS256"),
	[]byte("Layer3.Schwaemm256"),
	[]byte("Layer4.DeoxysII256"),
	[]byte("Layer5.Ascon128a"),
	[]byte("Layer6.ChaCha20"),
}

// KeySize and NonceSize report the fixed sizes the cascade's six layers
// require, in cascade order.
func KeySize(layer int) int   { return keySizes[layer] }
func NonceSize(layer int) int { return nonceSizes[layer] }

// DerivedKeys holds the six per-layer keys produced by Derive.
type DerivedKeys [LayerCount][]byte

// Derive runs HKDF-SHA3-512 Extract-then-Expand over the master secret,
// salted with SHA3-512 of the file path, and expands one domain-separated
// key per cascade layer. The same (secret, path) pair always yields the
// same six keys; a different path yields an unrelated set even under the
// same secret, which is what lets two files under the same master secret
// be decrypted independently of one another.
func Derive(masterSecret [32]byte, path string) (DerivedKeys, error) {
	var out DerivedKeys
	pathDigest := sha3.Sum512([]byte(path))
	salt := pathDigest[:32]

	for i := 0; i < LayerCount; i++ {
		reader := hkdf.New(sha3.New512, masterSecret[:], salt, layerInfo[i])
		key := make([]byte, keySizes[i])
		if _, err := io.ReadFull(reader, key); err != nil {
			return out, err
		}
		out[i] = key
	}
	return out, nil
}

// DeriveNonces computes the deterministic per-layer nonce schedule:
// nonce_i = SHA3-256(k_i || layer_index), truncated to the layer's nonce
// size, where layer_index is the single-octet 1-based layer number.
// Binding the nonce to the layer's own derived key (rather than to a
// counter or random source) means the nonce schedule needs no state
// across calls and never repeats for two different keys.
func DeriveNonces(keys DerivedKeys) [LayerCount][]byte {
	var out [LayerCount][]byte
	for i := 0; i < LayerCount; i++ {
		h := sha3.New256()
		h.Write(keys[i])
		h.Write([]byte{byte(i + 1)})
		digest := h.Sum(nil)
		out[i] = append([]byte{}, digest[:nonceSizes[i]]...)
	}
	return out
}
