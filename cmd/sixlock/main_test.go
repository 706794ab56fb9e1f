package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// withStdio redirects the process-wide stdin/stdout for the duration of
// fn, the way an external clean/smudge invocation would see them, then
// restores the originals and returns what fn wrote to stdout.
func withStdio(t *testing.T, input []byte, fn func()) []byte {
	t.Helper()

	origStdin, origStdout := os.Stdin, os.Stdout

	inR, inW, err := os.Pipe()
	require.NoError(t, err)
	outR, outW, err := os.Pipe()
	require.NoError(t, err)

	os.Stdin = inR
	os.Stdout = outW

	done := make(chan []byte, 1)
	go func() {
		data, _ := io.ReadAll(outR)
		done <- data
	}()

	_, werr := inW.Write(input)
	require.NoError(t, werr)
	require.NoError(t, inW.Close())

	fn()

	require.NoError(t, outW.Close())
	out := <-done

	os.Stdin = origStdin
	os.Stdout = origStdout
	return out
}

func writeConfig(t *testing.T, dir string) {
	t.Helper()
	keyFile := filepath.Join(dir, "master.key")
	content := "key_file: " + keyFile + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, sixconfigFileNameForTest()), []byte(content), 0o644))
}

func TestCleanSmudgeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir)

	require.NoError(t, runInit([]string{"--config-dir", dir}))

	plaintext := []byte("the secret ingredient is love")
	ciphertext := withStdio(t, plaintext, func() {
		err := runClean([]string{"--config-dir", dir, "notes/recipe.txt"})
		require.NoError(t, err)
	})
	require.NotEmpty(t, ciphertext)
	require.NotEqual(t, plaintext, ciphertext)

	recovered := withStdio(t, ciphertext, func() {
		err := runSmudge([]string{"--config-dir", dir, "notes/recipe.txt"})
		require.NoError(t, err)
	})
	require.Equal(t, plaintext, recovered)
}

func TestSmudgeWrongPathFails(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir)
	require.NoError(t, runInit([]string{"--config-dir", dir}))

	plaintext := []byte("payload")
	ciphertext := withStdio(t, plaintext, func() {
		require.NoError(t, runClean([]string{"--config-dir", dir, "a.txt"}))
	})

	withStdio(t, ciphertext, func() {
		err := runSmudge([]string{"--config-dir", dir, "b.txt"})
		require.Error(t, err)
	})
}

func TestInitRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir)
	require.NoError(t, runInit([]string{"--config-dir", dir}))
	err := runInit([]string{"--config-dir", dir})
	require.Error(t, err)
}

func TestDiagnoseReportsMissingKey(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir)
	out := withStdio(t, nil, func() {
		err := runDiagnose([]string{"--config-dir", dir})
		require.NoError(t, err)
	})
	require.Contains(t, string(out), "status: missing")
}

func sixconfigFileNameForTest() string { return ".sixlock.yml" }
