package recipe

import (
	"reflect"
	"testing"
)

func TestDelta_Tags(t *testing.T) {
	tests := []struct {
		name    string
		current []string
		add     []string
		remove  []string
		want    []string
	}{
		{"add new", []string{"quick"}, []string{"vegan"}, nil, []string{"quick", "vegan"}},
		{"add existing is idempotent", []string{"quick"}, []string{"quick"}, nil, []string{"quick"}},
		{"remove", []string{"quick", "vegan"}, nil, []string{"quick"}, []string{"vegan"}},
		{"remove missing is a no-op", []string{"quick"}, nil, []string{"vegan"}, []string{"quick"}},
		{
			"removals apply before additions",
			[]string{"quick"},
			[]string{"quick"},
			[]string{"quick"},
			[]string{"quick"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Recipe{Tags: tt.current}
			d := Delta{AddTags: tt.add, RemoveTags: tt.remove}
			d.Apply(&r)
			if !reflect.DeepEqual(r.Tags, tt.want) {
				t.Errorf("tags = %v, want %v", r.Tags, tt.want)
			}
		})
	}
}

func TestDelta_IngredientUpsert(t *testing.T) {
	qty := func(v float64) *float64 { return &v }

	r := Recipe{Ingredients: []Ingredient{
		{IngredientID: "egg", Quantity: qty(2), Unit: "piece"},
		{IngredientID: "flour", Quantity: qty(200), Unit: "g"},
	}}

	d := Delta{
		UpsertIngredients: []Ingredient{
			{IngredientID: "egg", Quantity: qty(3), Unit: "piece"}, // replace
			{IngredientID: "milk", Quantity: qty(100), Unit: "ml"}, // append
		},
		RemoveIngredients: []string{"flour"},
	}
	d.Apply(&r)

	if len(r.Ingredients) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(r.Ingredients), r.Ingredients)
	}
	if r.Ingredients[0].IngredientID != "egg" || *r.Ingredients[0].Quantity != 3 {
		t.Errorf("egg not replaced in place: %+v", r.Ingredients[0])
	}
	if r.Ingredients[1].IngredientID != "milk" {
		t.Errorf("milk not appended: %+v", r.Ingredients[1])
	}
}

func TestDelta_Steps(t *testing.T) {
	r := Recipe{Steps: []Step{
		{Text: "one"}, {Text: "two"}, {Text: "three"}, {Text: "four"},
	}}

	// Removing 1 and 3 in one call must not shift: "two" and "four" go.
	d := Delta{
		RemoveStepIndexes: []int{1, 3},
		AddSteps:          []Step{{Text: "five"}},
	}
	d.Apply(&r)

	want := []string{"one", "three", "five"}
	if len(r.Steps) != len(want) {
		t.Fatalf("steps = %+v, want %v", r.Steps, want)
	}
	for i, w := range want {
		if r.Steps[i].Text != w {
			t.Errorf("steps[%d] = %q, want %q", i, r.Steps[i].Text, w)
		}
	}
}

func TestDelta_StepRemovalIgnoresBadIndexes(t *testing.T) {
	r := Recipe{Steps: []Step{{Text: "one"}, {Text: "two"}}}

	d := Delta{RemoveStepIndexes: []int{5, -1, 0, 0}}
	d.Apply(&r)

	if len(r.Steps) != 1 || r.Steps[0].Text != "two" {
		t.Errorf("steps = %+v, want [two]", r.Steps)
	}
}

func TestDelta_IsZero(t *testing.T) {
	var d Delta
	if !d.IsZero() {
		t.Error("empty delta should be zero")
	}
	d.AddTags = []string{"x"}
	if d.IsZero() {
		t.Error("delta with AddTags should not be zero")
	}
}
