package ioclassify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeResultFile(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "raxtax.out")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFlaggedSpecimens_CollectsOnlyDisagreeingHits(t *testing.T) {
	path := writeResultFile(t,
		"1;tax=p:Chordata,c:Mammalia\tChordata,Carnivora\t0.95,0.95",
		"2;tax=p:Chordata,c:Mammalia\tChordata,Mammalia\t0.95,0.95",
	)
	flagged, err := flaggedSpecimens(path)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, flagged)
}

func TestFlaggedSpecimens_DedupsRepeatedSpecimenID(t *testing.T) {
	path := writeResultFile(t,
		"1;tax=p:Chordata,c:Mammalia\tChordata,Carnivora\t0.95,0.95",
		"1;tax=p:Chordata,c:Mammalia\tChordata,Mammalia\t0.95,0.95",
	)
	flagged, err := flaggedSpecimens(path)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, flagged)
}

func TestFlaggedSpecimens_SkipsMalformedLines(t *testing.T) {
	path := writeResultFile(t, "not-a-valid-line")
	flagged, err := flaggedSpecimens(path)
	require.NoError(t, err)
	assert.Empty(t, flagged)
}
