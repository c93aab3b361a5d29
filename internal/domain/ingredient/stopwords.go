package ingredient

import "github.com/alchemorsel/pantry/internal/domain/measurement"

// descriptorWords are the non-unit stop words removed from ingredient
// names: preparation descriptors, size adjectives and conjunctions.
var descriptorWords = []string{
	"fresh", "freshly", "dried", "frozen", "raw", "cooked",
	"diced", "chopped", "minced", "sliced", "grated", "shredded",
	"peeled", "crushed", "ground", "melted", "softened", "beaten",
	"finely", "coarsely", "thinly", "roughly",
	"large", "medium", "small", "ripe", "whole",
	"optional", "taste", "needed", "divided", "packed",
	"a", "an", "the", "of", "to", "and", "or", "plus", "for",
}

// stopWords is the full word-boundary removal set: descriptors plus
// every unit synonym, so "2 cups flour" and "flour cup" both clean to
// "flour".
var stopWords = buildStopWords()

func buildStopWords() map[string]struct{} {
	set := measurement.SynonymSet()
	for _, w := range descriptorWords {
		set[w] = struct{}{}
	}
	return set
}

func isStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}
