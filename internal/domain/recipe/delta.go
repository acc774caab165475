package recipe

import "sort"

// Delta describes additive/subtractive array updates for a recipe. All
// fields are optional; removals apply before additions.
type Delta struct {
	AddTags       []string
	RemoveTags    []string
	AddCategories []string
	RemoveCats    []string

	// UpsertIngredients replaces by IngredientID when present, appends otherwise.
	UpsertIngredients []Ingredient
	// RemoveIngredients lists ingredient ids to drop.
	RemoveIngredients []string

	// RemoveStepIndexes are zero-based positions into the current step
	// list; processed in descending order so earlier removals do not
	// shift later ones. AddSteps are appended afterwards.
	RemoveStepIndexes []int
	AddSteps          []Step
}

// IsZero reports whether the delta carries no operations.
func (d *Delta) IsZero() bool {
	return len(d.AddTags) == 0 && len(d.RemoveTags) == 0 &&
		len(d.AddCategories) == 0 && len(d.RemoveCats) == 0 &&
		len(d.UpsertIngredients) == 0 && len(d.RemoveIngredients) == 0 &&
		len(d.RemoveStepIndexes) == 0 && len(d.AddSteps) == 0
}

// TouchesTags reports whether the delta mutates the tag set.
func (d *Delta) TouchesTags() bool { return len(d.AddTags) > 0 || len(d.RemoveTags) > 0 }

// TouchesCategories reports whether the delta mutates the category set.
func (d *Delta) TouchesCategories() bool { return len(d.AddCategories) > 0 || len(d.RemoveCats) > 0 }

// TouchesIngredients reports whether the delta mutates the ingredient list.
func (d *Delta) TouchesIngredients() bool {
	return len(d.UpsertIngredients) > 0 || len(d.RemoveIngredients) > 0
}

// TouchesSteps reports whether the delta mutates the step list.
func (d *Delta) TouchesSteps() bool { return len(d.RemoveStepIndexes) > 0 || len(d.AddSteps) > 0 }

// Apply mutates the recipe's arrays per the delta semantics.
func (d *Delta) Apply(r *Recipe) {
	if d.TouchesTags() {
		r.Tags = mergeStringSet(r.Tags, d.AddTags, d.RemoveTags)
	}
	if d.TouchesCategories() {
		r.Categories = mergeStringSet(r.Categories, d.AddCategories, d.RemoveCats)
	}
	if d.TouchesIngredients() {
		r.Ingredients = mergeIngredients(r.Ingredients, d.UpsertIngredients, d.RemoveIngredients)
	}
	if d.TouchesSteps() {
		r.Steps = mergeSteps(r.Steps, d.AddSteps, d.RemoveStepIndexes)
	}
}

// mergeStringSet applies removals then additions; additions already
// present are skipped, so re-adding is idempotent.
func mergeStringSet(current, additions, removals []string) []string {
	drop := make(map[string]bool, len(removals))
	for _, v := range removals {
		drop[v] = true
	}

	next := make([]string, 0, len(current)+len(additions))
	present := make(map[string]bool, len(current))
	for _, v := range current {
		if drop[v] {
			continue
		}
		next = append(next, v)
		present[v] = true
	}
	for _, v := range additions {
		if present[v] {
			continue
		}
		next = append(next, v)
		present[v] = true
	}
	return next
}

// mergeIngredients removes by id, then upserts: replace in place when the
// id exists, append otherwise.
func mergeIngredients(current, upserts []Ingredient, removals []string) []Ingredient {
	drop := make(map[string]bool, len(removals))
	for _, id := range removals {
		drop[id] = true
	}

	next := make([]Ingredient, 0, len(current)+len(upserts))
	index := make(map[string]int, len(current))
	for _, ing := range current {
		if drop[ing.IngredientID] {
			continue
		}
		index[ing.IngredientID] = len(next)
		next = append(next, ing)
	}
	for _, ing := range upserts {
		if pos, ok := index[ing.IngredientID]; ok {
			next[pos] = ing
			continue
		}
		index[ing.IngredientID] = len(next)
		next = append(next, ing)
	}
	return next
}

// mergeSteps removes indexes in descending order (so a batch of removals
// does not shift its own targets), then appends new steps. Out-of-range
// and duplicate indexes are ignored.
func mergeSteps(current, additions []Step, removeIndexes []int) []Step {
	next := make([]Step, len(current))
	copy(next, current)

	if len(removeIndexes) > 0 {
		idx := make([]int, len(removeIndexes))
		copy(idx, removeIndexes)
		sort.Sort(sort.Reverse(sort.IntSlice(idx)))

		prev := -1
		for _, i := range idx {
			if i == prev {
				continue
			}
			prev = i
			if i < 0 || i >= len(next) {
				continue
			}
			next = append(next[:i], next[i+1:]...)
		}
	}

	return append(next, additions...)
}
