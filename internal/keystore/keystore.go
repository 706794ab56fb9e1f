// Package keystore loads and persists the 32-byte master secret sixlock's
// cascade is keyed from, plus a small epoch sidecar recording when a key
// was created. It follows the same shape as nfctools's key file
// handling (LoadKeyHexFile in pkg/ntag424/keys.go: open, read,
// validate, return raw key bytes) but adds the permission check a
// git-crypt-style secret file needs that an NFC key file on a developer's
// own machine does not.
package keystore

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const masterSecretSize = 32

// epochSuffix names the sidecar file recording when a key file's
// contents were generated, stored next to the key file itself.
const epochSuffix = ".epoch.yml"

// Epoch is never read by the cryptographic core — it exists purely so an
// operator can tell which key generation a given secret file represents.
type Epoch struct {
	ID        string `yaml:"id"`
	CreatedAt string `yaml:"created_at"`
}

// Exists reports whether a master secret file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadMaster reads and validates the master secret file at path. It
// rejects a key file whose permission bits are broader than owner
// read/write (0600), since a secret file readable by other accounts on
// the machine defeats the point of keeping it out of the repository.
func LoadMaster(path string) ([32]byte, error) {
	var secret [32]byte

	info, err := os.Stat(path)
	if err != nil {
		return secret, fmt.Errorf("keystore: stat %s: %w", path, err)
	}
	if info.Mode().Perm()&0o077 != 0 {
		return secret, fmt.Errorf("keystore: %s has permissions %04o, want 0600 or narrower", path, info.Mode().Perm())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return secret, fmt.Errorf("keystore: read %s: %w", path, err)
	}
	if len(data) != masterSecretSize {
		return secret, fmt.Errorf("keystore: %s holds %d bytes, want %d", path, len(data), masterSecretSize)
	}

	copy(secret[:], data)
	return secret, nil
}

// Persist writes a master secret to path with owner-only permissions and
// records a fresh epoch sidecar next to it. createdAt is the caller's
// timestamp (RFC 3339), passed in rather than read from the clock here so
// the recorded time is under the caller's control; the epoch ID is a new
// random UUID on every call.
func Persist(path string, secret [32]byte, createdAt string) (Epoch, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return Epoch{}, fmt.Errorf("keystore: mkdir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, secret[:], 0o600); err != nil {
		return Epoch{}, fmt.Errorf("keystore: write %s: %w", path, err)
	}

	epoch := Epoch{ID: uuid.NewString(), CreatedAt: createdAt}
	data, err := yaml.Marshal(epoch)
	if err != nil {
		return Epoch{}, fmt.Errorf("keystore: marshal epoch: %w", err)
	}
	if err := os.WriteFile(path+epochSuffix, data, 0o600); err != nil {
		return Epoch{}, fmt.Errorf("keystore: write epoch sidecar: %w", err)
	}
	return epoch, nil
}

// GenerateSecret draws a fresh 32-byte master secret from the operating
// system's CSPRNG.
func GenerateSecret() ([32]byte, error) {
	var secret [32]byte
	if _, err := rand.Read(secret[:]); err != nil {
		return secret, fmt.Errorf("keystore: generate secret: %w", err)
	}
	return secret, nil
}

// LoadEpoch reads the epoch sidecar for the master secret at path, if
// one exists.
func LoadEpoch(path string) (Epoch, error) {
	data, err := os.ReadFile(path + epochSuffix)
	if err != nil {
		return Epoch{}, fmt.Errorf("keystore: read epoch sidecar: %w", err)
	}
	var epoch Epoch
	if err := yaml.Unmarshal(data, &epoch); err != nil {
		return Epoch{}, fmt.Errorf("keystore: parse epoch sidecar: %w", err)
	}
	return epoch, nil
}
