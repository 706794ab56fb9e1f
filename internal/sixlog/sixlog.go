// Package sixlog wraps github.com/sirupsen/logrus with a narrow,
// kind-specific set of helpers instead of a general "log whatever fields
// you like" entry point. Each helper takes only the values that are safe
// to ever print (path lengths, byte counts, epochs, and the key file's
// location for KeyUnavailable and KeyInitialized) — never the raw path of
// the file being filtered (which may itself be sensitive), key, nonce,
// tag, or plaintext — so a call site cannot accidentally leak secret or
// sensitive material into a log stream the way a generic logger would
// let it.
package sixlog

import (
	"os"

	"github.com/sirupsen/logrus"
)

var base = logrus.New()

func init() {
	base.SetOutput(os.Stderr)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	base.SetLevel(logrus.InfoLevel)
}

// SetLevel parses a level name ("debug", "info", "warn", "error") and
// applies it to the package logger. An unrecognized name leaves the
// current level unchanged.
func SetLevel(name string) {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return
	}
	base.SetLevel(lvl)
}

// AuthFailure reports a cascade layer rejecting a blob during decrypt. It
// logs only the path's length, never the path itself, which may be
// sensitive in its own right.
func AuthFailure(pathLen int) {
	base.WithFields(logrus.Fields{
		"path_len": pathLen,
	}).Warn("authentication failed")
}

// KeyUnavailable reports that the master secret could not be loaded.
func KeyUnavailable(keyFile string, reason string) {
	base.WithFields(logrus.Fields{
		"key_file": keyFile,
		"reason":   reason,
	}).Error("master key unavailable")
}

// MalformedBlob reports a blob that failed structural validation before
// any cryptography ran. It logs only the path's length, never the path
// itself.
func MalformedBlob(pathLen int, reason string) {
	base.WithFields(logrus.Fields{
		"path_len": pathLen,
		"reason":   reason,
	}).Warn("malformed blob")
}

// Cleaned reports a successful clean-filter (plaintext-to-ciphertext)
// transform, logging only sizes and the epoch used — never the path
// itself.
func Cleaned(pathLen int, plaintextLen, blobLen int, epoch string) {
	base.WithFields(logrus.Fields{
		"path_len":      pathLen,
		"plaintext_len": plaintextLen,
		"blob_len":      blobLen,
		"epoch":         epoch,
	}).Info("cleaned")
}

// Smudged reports a successful smudge-filter (ciphertext-to-plaintext)
// transform. It logs only the path's length, never the path itself.
func Smudged(pathLen int, blobLen, plaintextLen int) {
	base.WithFields(logrus.Fields{
		"path_len":      pathLen,
		"blob_len":      blobLen,
		"plaintext_len": plaintextLen,
	}).Info("smudged")
}

// KeyInitialized reports that a new master secret was generated and
// persisted, identifying it only by its epoch, never its value.
func KeyInitialized(keyFile, epoch string) {
	base.WithFields(logrus.Fields{
		"key_file": keyFile,
		"epoch":    epoch,
	}).Info("master key initialized")
}

// IOError reports a filesystem or stream failure unrelated to the
// cryptography itself. It logs only the path's length, never the path
// itself.
func IOError(op string, pathLen int, err error) {
	base.WithFields(logrus.Fields{
		"op":       op,
		"path_len": pathLen,
	}).WithError(err).Error("io error")
}
