package search

import (
	"strings"

	domrec "github.com/ladle-cloud/ladle/internal/domain/recipe"
)

// queryTerms lowercases and splits the query on whitespace. Terms are
// OR'ed: a recipe matches when any term occurs in its text.
func queryTerms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// keywordScore sums the non-overlapping occurrences of every term in
// the recipe's searchable text. Zero means no match.
func keywordScore(r *domrec.Recipe, terms []string) int {
	text := strings.ToLower(r.EmbeddingText())
	score := 0
	for _, t := range terms {
		score += strings.Count(text, t)
	}
	return score
}

// matchesIngredients reports whether the recipe uses any of the given
// ingredient ids. Ids match exactly, not by substring.
func matchesIngredients(r *domrec.Recipe, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	for _, want := range ids {
		for _, ing := range r.Ingredients {
			if ing.IngredientID == want {
				return true
			}
		}
	}
	return false
}

// matchesAnyValue reports whether any filter term is a case-insensitive
// substring of any of the recipe's values. Empty filters always match.
func matchesAnyValue(values []string, filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		f = strings.ToLower(f)
		for _, v := range values {
			if strings.Contains(strings.ToLower(v), f) {
				return true
			}
		}
	}
	return false
}
