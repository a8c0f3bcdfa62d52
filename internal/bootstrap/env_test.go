package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadenvSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "local.env")
	require.NoError(t, os.WriteFile(present, []byte("SDR_TEST_ONLY=from-file\n"), 0o600))
	t.Setenv("SDR_TEST_ONLY", "")
	require.NoError(t, os.Unsetenv("SDR_TEST_ONLY"))

	loaded, err := Loadenv(filepath.Join(dir, "missing.env"), present)
	require.NoError(t, err)
	assert.Equal(t, []string{present}, loaded)
	assert.Equal(t, "from-file", os.Getenv("SDR_TEST_ONLY"))
}

func TestLoadenvKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("SDR_TEST_KEEP=from-file\n"), 0o600))
	t.Setenv("SDR_TEST_KEEP", "from-env")

	_, err := Loadenv(file)
	require.NoError(t, err)
	assert.Equal(t, "from-env", os.Getenv("SDR_TEST_KEEP"))
}
