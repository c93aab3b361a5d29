package pantry

import "math"

// PartialMatch records one partially covered ingredient of a recipe.
type PartialMatch struct {
	Ingredient string
	Percentage float64
	Item       *Item
}

// RecipeMatch aggregates per-ingredient matches into a recipe-level
// feasibility result. Score is the rounded weighted coverage: full
// matches weigh 100 each, partials weigh their own percentage.
type RecipeMatch struct {
	FullMatches      []string
	PartialMatches   []PartialMatch
	Missing          []string
	Score            int
	TotalIngredients int
}

// ScoreRecipe matches every ingredient line independently and computes
// the recipe feasibility score. The score is not capped at 100 unless
// the matcher's policy opts in.
func (m *Matcher) ScoreRecipe(lines []string, items []Item) RecipeMatch {
	result := RecipeMatch{TotalIngredients: len(lines)}
	if len(lines) == 0 {
		return result
	}

	var weighted float64
	for _, line := range lines {
		match := m.Match(line, items)
		name := match.Parsed.Name
		switch match.Status {
		case MatchStatusFull:
			result.FullMatches = append(result.FullMatches, name)
			weighted += 100
		case MatchStatusPartial:
			result.PartialMatches = append(result.PartialMatches, PartialMatch{
				Ingredient: name,
				Percentage: match.Percentage,
				Item:       match.Item,
			})
			weighted += match.Percentage
		default:
			result.Missing = append(result.Missing, name)
		}
	}

	score := weighted / float64(result.TotalIngredients)
	if m.policy.CapScore && score > 100 {
		score = 100
	}
	result.Score = int(math.Round(score))
	return result
}
