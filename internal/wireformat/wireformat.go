// Package wireformat encodes and decodes the on-disk blob format: one
// version byte, the cascade's six fixed-size authentication tags back to
// back, then the ciphertext. The layout is fully fixed-width until the
// ciphertext, mirroring the teacher package's own Seal/Open convention of
// appending a fixed-size tag after the ciphertext (sliceForAppend in
// hs1siv.go, deleted, see DESIGN.md) generalized to six tags instead of
// one.
package wireformat

import (
	"fmt"

	"github.com/oxcrypt/sixlock/internal/cascade"
	"github.com/oxcrypt/sixlock/internal/keyschedule"
)

// Version is the only wire format this package emits or accepts.
const Version byte = 3

var tagSizes = [keyschedule.LayerCount]int{16, 32, 32, 16, 16, 16}

// Overhead is the fixed number of bytes a blob carries beyond the
// plaintext: one version byte plus all six tags.
const Overhead = 1 + 16 + 32 + 32 + 16 + 16 + 16

func init() {
	sum := 1
	for _, s := range tagSizes {
		sum += s
	}
	if sum != Overhead {
		panic("wireformat: tag size table does not match Overhead constant")
	}
}

// Encode lays out version, tags, and ciphertext into one contiguous blob.
func Encode(tags cascade.Tags, ciphertext []byte) ([]byte, error) {
	for i, sz := range tagSizes {
		if len(tags[i]) != sz {
			return nil, fmt.Errorf("wireformat: layer %d tag has length %d, want %d", i, len(tags[i]), sz)
		}
	}

	blob := make([]byte, 0, Overhead+len(ciphertext))
	blob = append(blob, Version)
	for _, tag := range tags {
		blob = append(blob, tag...)
	}
	blob = append(blob, ciphertext...)
	return blob, nil
}

// Decode splits a blob back into its version byte, the six tags, and the
// ciphertext. It does not verify the tags — that is the cascade's job —
// it only checks that the blob is long enough and carries a version this
// package understands.
func Decode(blob []byte) (version byte, tags cascade.Tags, ciphertext []byte, err error) {
	if len(blob) < Overhead {
		return 0, cascade.Tags{}, nil, fmt.Errorf("wireformat: blob too short: %d bytes, need at least %d", len(blob), Overhead)
	}

	version = blob[0]
	if version != Version {
		return version, cascade.Tags{}, nil, fmt.Errorf("wireformat: unsupported version %d", version)
	}

	off := 1
	for i, sz := range tagSizes {
		tags[i] = blob[off : off+sz]
		off += sz
	}
	ciphertext = blob[off:]
	return version, tags, ciphertext, nil
}
