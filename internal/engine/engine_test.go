package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxcrypt/sixlock/internal/sixerr"
)

func fixedSecret(seed byte) [32]byte {
	var s [32]byte
	for i := range s {
		s[i] = byte(int(seed) + i*5)
	}
	return s
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	secret := fixedSecret(1)
	path := "config/secrets.yaml"

	for _, n := range []int{0, 1, 13, 1024} {
		plaintext := make([]byte, n)
		for i := range plaintext {
			plaintext[i] = byte(i * 3)
		}

		blob, err := Encrypt(secret, path, plaintext)
		require.NoError(t, err)

		got, err := Decrypt(secret, path, blob)
		require.NoError(t, err)
		require.Equal(t, plaintext, got)
	}
}

func TestDecryptWrongPathFails(t *testing.T) {
	secret := fixedSecret(2)
	blob, err := Encrypt(secret, "a.txt", []byte("hello"))
	require.NoError(t, err)

	_, err = Decrypt(secret, "b.txt", blob)
	require.Error(t, err)
	var sixErr *sixerr.Error
	require.True(t, errors.As(err, &sixErr))
	require.Equal(t, sixerr.AuthenticationFailure, sixErr.Kind)
}

func TestDecryptWrongSecretFails(t *testing.T) {
	secretA := fixedSecret(3)
	secretB := fixedSecret(4)
	blob, err := Encrypt(secretA, "x", []byte("payload"))
	require.NoError(t, err)

	_, err = Decrypt(secretB, "x", blob)
	require.Error(t, err)
	var sixErr *sixerr.Error
	require.True(t, errors.As(err, &sixErr))
	require.Equal(t, sixerr.AuthenticationFailure, sixErr.Kind)
}

func TestDecryptMalformedBlob(t *testing.T) {
	secret := fixedSecret(5)
	_, err := Decrypt(secret, "x", []byte("too short"))
	require.Error(t, err)
	var sixErr *sixerr.Error
	require.True(t, errors.As(err, &sixErr))
	require.Equal(t, sixerr.MalformedBlob, sixErr.Kind)
}

func TestDecryptTamperedCiphertextFails(t *testing.T) {
	secret := fixedSecret(6)
	blob, err := Encrypt(secret, "x", []byte("the quick brown fox"))
	require.NoError(t, err)

	blob[len(blob)-1] ^= 0xff
	_, err = Decrypt(secret, "x", blob)
	require.Error(t, err)
}

// The scenarios below are the literal seeded cases a conformance suite
// must cover, not just randomized properties.

func TestScenarioEmptyPlaintext(t *testing.T) {
	var secret [32]byte
	blob, err := Encrypt(secret, "a.txt", []byte(""))
	require.NoError(t, err)
	require.Len(t, blob, 129)

	got, err := Decrypt(secret, "a.txt", blob)
	require.NoError(t, err)
	require.Equal(t, []byte(""), got)
}

func TestScenarioSingleByteIsDeterministic(t *testing.T) {
	var secret [32]byte
	blob1, err := Encrypt(secret, "a.txt", []byte{0x41})
	require.NoError(t, err)
	blob2, err := Encrypt(secret, "a.txt", []byte{0x41})
	require.NoError(t, err)

	require.Equal(t, blob1, blob2)
	require.Len(t, blob1, 130)
}

func TestScenarioPathBinding(t *testing.T) {
	var secret [32]byte
	plaintext := []byte("hello")

	blobX, err := Encrypt(secret, "x", plaintext)
	require.NoError(t, err)
	blobY, err := Encrypt(secret, "y", plaintext)
	require.NoError(t, err)

	require.NotEqual(t, blobX, blobY)

	_, err = Decrypt(secret, "y", blobX)
	require.Error(t, err)
	var sixErr *sixerr.Error
	require.True(t, errors.As(err, &sixErr))
	require.Equal(t, sixerr.AuthenticationFailure, sixErr.Kind)
}

func TestScenarioTamperFirstTagBit(t *testing.T) {
	var secret [32]byte
	blob, err := Encrypt(secret, "a.txt", []byte("hello"))
	require.NoError(t, err)

	blob[1] ^= 0x01 // least-significant bit of tag1, which starts at blob[1]
	_, err = Decrypt(secret, "a.txt", blob)
	require.Error(t, err)
	var sixErr *sixerr.Error
	require.True(t, errors.As(err, &sixErr))
	require.Equal(t, sixerr.AuthenticationFailure, sixErr.Kind)
}

func TestScenarioVersionRejectionWithoutKeyUse(t *testing.T) {
	var secret [32]byte
	blob, err := Encrypt(secret, "a.txt", []byte("hello"))
	require.NoError(t, err)

	blob[0] = 0x02
	_, err = Decrypt(secret, "a.txt", blob)
	require.Error(t, err)
	var sixErr *sixerr.Error
	require.True(t, errors.As(err, &sixErr))
	require.Equal(t, sixerr.MalformedBlob, sixErr.Kind)
}

func TestScenarioLargePayloadRoundTrip(t *testing.T) {
	var secret [32]byte
	plaintext := make([]byte, 1024*1024)
	for i := range plaintext {
		plaintext[i] = 0x5a
	}

	blob, err := Encrypt(secret, "big.bin", plaintext)
	require.NoError(t, err)
	require.Len(t, blob, len(plaintext)+129)

	got, err := Decrypt(secret, "big.bin", blob)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestScenarioBitFlipEveryByteOfBlobFailsDecryption(t *testing.T) {
	var secret [32]byte
	blob, err := Encrypt(secret, "a.txt", []byte("hello world"))
	require.NoError(t, err)

	for i := range blob {
		tampered := append([]byte{}, blob...)
		tampered[i] ^= 0x01
		pt, err := Decrypt(secret, "a.txt", tampered)
		require.Error(t, err, "byte %d should fail to decrypt", i)
		require.Nil(t, pt)
	}
}
