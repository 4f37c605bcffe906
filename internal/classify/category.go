package classify

// Category represents the destination class assigned to a finished torrent.
type Category string

const (
	CategoryTV    Category = "tv"
	CategoryMovie Category = "movie"
	CategoryOther Category = "other"
)

// Categories returns every category in evaluation order. CategoryOther is
// last because it is the fallback and never requires a pattern match.
func Categories() []Category {
	return []Category{CategoryTV, CategoryMovie, CategoryOther}
}

var categorySet = func() map[Category]struct{} {
	set := make(map[Category]struct{}, 3)
	for _, category := range Categories() {
		set[category] = struct{}{}
	}
	return set
}()

// IsValid reports whether value names a known category.
func IsValid(value string) bool {
	_, ok := categorySet[Category(value)]
	return ok
}
