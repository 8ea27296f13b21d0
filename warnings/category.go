package warnings

//go:generate go tool stringer -type=Family -trimprefix=Family -output=family_string.go

// Family is the base category a warning belongs to.
type Family int

const (
	_ Family = iota // zero value is not a valid family

	FamilyDeprecation
	FamilyPendingDeprecation

	// FamilyTotal is the total number of families defined
	FamilyTotal = int(iota)
)

// Category identifies what kind of warning a record carries.
type Category interface {
	Family() Family
	String() string
}

// matchCategory accepts an empty pattern, a family name, or the exact
// category name.
func matchCategory(pattern string, cat Category) bool {
	switch pattern {
	case "":
		return true
	case "deprecation", "Deprecation", "DeprecationWarning":
		return cat.Family() == FamilyDeprecation
	case "pending", "PendingDeprecation", "PendingDeprecationWarning":
		return cat.Family() == FamilyPendingDeprecation
	default:
		return cat.String() == pattern
	}
}
