// Package hybrid implements the hybrid-species marker (C6): a single
// pure predicate over a taxon_species string.
package hybrid

import "strings"

// IsHybrid reports whether species contains the space-delimited hybrid
// marker token " x " or " X ". The flanking spaces are required, so
// "Quercusxcrenata" does not match.
func IsHybrid(species string) bool {
	return strings.Contains(species, " x ") || strings.Contains(species, " X ")
}
