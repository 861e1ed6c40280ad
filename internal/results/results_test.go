package results

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	r := Result{Error: []float64{0.2, 0.1}, Response: []float64{0.05, 0.9, 0.93, 0.1}}
	require.NoError(t, Write(dir, r))

	got, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, r, got)

	data, err := os.ReadFile(filepath.Join(dir, OutFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"error"`)
	assert.Contains(t, string(data), `"response"`)
}

func TestOpenLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "run")
	f, err := OpenLog(dir)
	require.NoError(t, err)
	_, err = f.WriteString("Hello.\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Equal(t, "Hello.\n", string(data))
}
