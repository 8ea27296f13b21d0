package category

import (
	"housekeeping/internal/common"
	"housekeeping/warnings"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind is the branch of the taxonomy a category belongs to.
type Kind int

const (
	_ Kind = iota // zero value is not a valid kind

	// KindPendingRemoval is for functionality planned for deprecation at an
	// unspecified future point.
	KindPendingRemoval
	// KindRemovedIn is for functionality deprecated and scheduled for
	// removal in a known version.
	KindRemovedIn

	// KindTotal is the total number of kinds defined
	KindTotal = int(iota)
)

// Family maps the kind onto the dispatcher's base categories.
func (k Kind) Family() warnings.Family {
	switch k {
	case KindRemovedIn:
		return warnings.FamilyDeprecation
	case KindPendingRemoval:
		return warnings.FamilyPendingDeprecation
	default:
		return 0
	}
}

// IsValid reports whether k is one of the declared kinds.
func (k Kind) IsValid() bool {
	return common.IsInRange(KindPendingRemoval, k, Kind(KindTotal-1))
}
