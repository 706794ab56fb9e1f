package keystore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPersistAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "master.key")

	secret, err := GenerateSecret()
	require.NoError(t, err)

	epoch, err := Persist(path, secret, "2026-07-29T00:00:00Z")
	require.NoError(t, err)
	require.NotEmpty(t, epoch.ID)

	require.True(t, Exists(path))

	loaded, err := LoadMaster(path)
	require.NoError(t, err)
	require.Equal(t, secret, loaded)

	gotEpoch, err := LoadEpoch(path)
	require.NoError(t, err)
	require.Equal(t, epoch, gotEpoch)
}

func TestLoadMasterRejectsWrongSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "master.key")
	require.NoError(t, os.WriteFile(path, []byte("too short"), 0o600))

	_, err := LoadMaster(path)
	require.Error(t, err)
}

func TestLoadMasterRejectsLoosePermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "master.key")
	secret := make([]byte, masterSecretSize)
	require.NoError(t, os.WriteFile(path, secret, 0o644))

	_, err := LoadMaster(path)
	require.Error(t, err)
}

func TestExistsFalseForMissingFile(t *testing.T) {
	dir := t.TempDir()
	require.False(t, Exists(filepath.Join(dir, "nope.key")))
}
