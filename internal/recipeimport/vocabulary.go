package recipeimport

// Vocabulary is the closed set of tags an imported recipe may carry.
var Vocabulary = []string{
	"italian", "asian", "mexican", "french", "indian", "mediterranean", "american",
	"breakfast", "lunch", "dinner", "dessert", "snack", "drinks",
	"vegetarian", "vegan", "healthy", "quick",
	"pasta", "seafood", "meat", "soup", "baking",
	"try",
}

var vocabularySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Vocabulary))
	for _, t := range Vocabulary {
		m[t] = struct{}{}
	}
	return m
}()

// IsKnownTag expects an already lowercased tag.
func IsKnownTag(tag string) bool {
	_, ok := vocabularySet[tag]
	return ok
}
