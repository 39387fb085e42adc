package bits_test

import (
	"testing"

	"github.com/boldcurate/eyebold/pkg/bits"
	"github.com/stretchr/testify/assert"
)

func TestGolden(t *testing.T) {
	tests := []struct {
		name   string
		checks bits.Checks
		want   bool
	}{
		{
			name:   "name checked only",
			checks: bits.NAME_CHECKED,
			want:   true,
		},
		{
			name:   "name checked plus incl species",
			checks: bits.NAME_CHECKED | bits.INCL_SPECIES,
			want:   true,
		},
		{
			name:   "not name checked",
			checks: bits.INCL_SPECIES,
			want:   false,
		},
		{
			name:   "name failed",
			checks: bits.NAME_CHECKED | bits.NAME_FAILED,
			want:   false,
		},
		{
			name:   "duplicate",
			checks: bits.NAME_CHECKED | bits.DUPLICATE,
			want:   false,
		},
		{
			name:   "failed length",
			checks: bits.NAME_CHECKED | bits.FAILED_LENGTH,
			want:   false,
		},
		{
			name:   "bad classification",
			checks: bits.NAME_CHECKED | bits.BAD_CLASSIFICATION,
			want:   false,
		},
		{
			name:   "selected already set does not itself break golden",
			checks: bits.NAME_CHECKED | bits.SELECTED,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bits.Golden(tt.checks))
		})
	}
}

func TestUpdateClearMask(t *testing.T) {
	all := bits.Checks(-1) // every bit set
	cleared := bits.Clear(all, bits.UpdateClearMask())

	assert.True(t, bits.Has(cleared, bits.LOC_CHECKED))
	assert.True(t, bits.Has(cleared, bits.LOC_PASSED))
	assert.True(t, bits.Has(cleared, bits.LOC_EMPTY))

	assert.False(t, bits.Has(cleared, bits.SELECTED))
	assert.False(t, bits.Has(cleared, bits.NAME_CHECKED))
	assert.False(t, bits.Has(cleared, bits.NAME_FAILED))
	assert.False(t, bits.Has(cleared, bits.DUPLICATE))
	assert.False(t, bits.Has(cleared, bits.FAILED_LENGTH))
	assert.False(t, bits.Has(cleared, bits.HYBRID))
	assert.False(t, bits.Has(cleared, bits.BAD_CLASSIFICATION))
	assert.False(t, bits.Has(cleared, bits.INCL_KINGDOM))
}

func TestNameToBit(t *testing.T) {
	bit, rank, ok := bits.NameToBit("species")
	assert.True(t, ok)
	assert.Equal(t, bits.INCL_SPECIES, bit)
	assert.Equal(t, bits.Species, rank)

	_, _, ok = bits.NameToBit("form")
	assert.False(t, ok, "ranks outside the ten-rank enum are not found")
}

func TestDeeperThan(t *testing.T) {
	mask := bits.DeeperThan(bits.Class)
	assert.True(t, bits.Has(mask, bits.INCL_ORDER))
	assert.True(t, bits.Has(mask, bits.INCL_SPECIES))
	assert.False(t, bits.Has(mask, bits.INCL_CLASS))
	assert.False(t, bits.Has(mask, bits.INCL_KINGDOM))

	assert.Equal(t, bits.Checks(0), bits.DeeperThan(bits.Subspecies),
		"nothing is deeper than the deepest rank")
}

func TestRankString(t *testing.T) {
	assert.Equal(t, "kingdom", bits.Kingdom.String())
	assert.Equal(t, "subspecies", bits.Subspecies.String())
}
