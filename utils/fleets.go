// backend/utils/fleets.go
package utils

import "strings"

// Fleet labels the TLC publishes trip files under.
var knownTaxiTypes = []string{"yellow", "green", "fhv", "fhvhv"}

// DefaultTaxiTypes returns the fleet list used when a run names none.
// Yellow is the original, always-published dataset.
func DefaultTaxiTypes() []string {
	return []string{"yellow"}
}

// NormalizeTaxiType lowercases and trims a fleet label. Unknown labels are
// returned as is; they simply resolve to files that do not exist.
func NormalizeTaxiType(taxiType string) string {
	return strings.ToLower(strings.TrimSpace(taxiType))
}

// IsKnownTaxiType reports whether the label matches a fleet the TLC publishes.
func IsKnownTaxiType(taxiType string) bool {
	normalized := NormalizeTaxiType(taxiType)
	for _, t := range knownTaxiTypes {
		if t == normalized {
			return true
		}
	}
	return false
}
