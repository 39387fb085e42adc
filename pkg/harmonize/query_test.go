package harmonize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boldcurate/eyebold/pkg/bits"
	"github.com/boldcurate/eyebold/pkg/store"
)

func TestBuildQueries_GroupsSharedLineage(t *testing.T) {
	rows := []store.LineageRow{
		{SpecimenID: 1, Lineage: [10]string{"Animalia", "Chordata", "Mammalia", "", "", "", "", "", "", ""}},
		{SpecimenID: 2, Lineage: [10]string{"Animalia", "Chordata", "Mammalia", "", "", "", "", "", "", ""}},
		{SpecimenID: 3, Lineage: [10]string{"Animalia", "Chordata", "Aves", "", "", "", "", "", "", ""}},
		{SpecimenID: 4, Lineage: [10]string{"", "", "", "", "", "", "", "", "", ""}}, // all-null, skipped
	}

	queries := BuildQueries(rows)
	require.Len(t, queries, 2)

	var mammalQ, avesQ *Query
	for i := range queries {
		switch queries[i].QueryString {
		case "Mammalia":
			mammalQ = &queries[i]
		case "Aves":
			avesQ = &queries[i]
		}
	}
	require.NotNil(t, mammalQ)
	require.NotNil(t, avesQ)

	assert.Equal(t, bits.Class, mammalQ.Rank)
	assert.ElementsMatch(t, []int64{1, 2}, mammalQ.SpecimenIDs)
	assert.Equal(t, "Chordata", mammalQ.AncestorHints[bits.Phylum])

	assert.ElementsMatch(t, []int64{3}, avesQ.SpecimenIDs)
}

func TestBuildQueries_DifferentDepthsKeptSeparate(t *testing.T) {
	rows := []store.LineageRow{
		{SpecimenID: 1, Lineage: [10]string{"Animalia", "", "", "", "", "", "", "", "", ""}},
		{SpecimenID: 2, Lineage: [10]string{"Animalia", "Chordata", "", "", "", "", "", "", "", ""}},
	}
	queries := BuildQueries(rows)
	require.Len(t, queries, 2)
}
