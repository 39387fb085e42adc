package ioclassify

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBinary writes body as a shell script standing in for the
// classifier and returns the script's path. outFile is not used: body
// itself decides what the script writes and where.
func fakeBinary(t *testing.T, dir, outFile, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in requires a POSIX shell")
	}
	script := filepath.Join(dir, "fake-raxtax")
	content := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(script, []byte(content), 0o755))
	return script
}

func TestInvoke_BinaryNotFoundIsReported(t *testing.T) {
	dir := t.TempDir()
	err := invoke(context.Background(), filepath.Join(dir, "missing"), "db", "query", filepath.Join(dir, "out"))
	require.Error(t, err)
}

func TestInvoke_MissingOutputAfterRunIsReported(t *testing.T) {
	dir := t.TempDir()
	bin := fakeBinary(t, dir, "", "exit 0")
	err := invoke(context.Background(), bin, "db", "query", filepath.Join(dir, "raxtax.out"))
	require.Error(t, err)
}

func TestInvoke_WritesResultWhenBinarySucceeds(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "raxtax.out")
	bin := fakeBinary(t, dir, out, "echo done > "+out)

	err := invoke(context.Background(), bin, "db", "query", out)
	require.NoError(t, err)
	assert.FileExists(t, out)
}
