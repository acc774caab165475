package suggestion

import (
	"errors"
	"strings"
	"testing"

	"github.com/ladle-cloud/ladle/internal/domain"
)

func validSuggestion() *Suggestion {
	return &Suggestion{
		Title:       "Add pantry mode",
		Description: "Show recipes filtered by what I already have at home.",
		Category:    CategoryFeature,
		Priority:    PriorityMedium,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Suggestion)
		wantErr bool
	}{
		{name: "valid", mutate: func(s *Suggestion) {}},
		{name: "missing title", mutate: func(s *Suggestion) { s.Title = "" }, wantErr: true},
		{name: "title too long", mutate: func(s *Suggestion) { s.Title = strings.Repeat("x", MaxTitleLen+1) }, wantErr: true},
		{name: "title at limit", mutate: func(s *Suggestion) { s.Title = strings.Repeat("x", MaxTitleLen) }},
		{name: "missing description", mutate: func(s *Suggestion) { s.Description = "" }, wantErr: true},
		{name: "bad category", mutate: func(s *Suggestion) { s.Category = "wishlist" }, wantErr: true},
		{name: "bad priority", mutate: func(s *Suggestion) { s.Priority = "urgent" }, wantErr: true},
		{name: "bad status", mutate: func(s *Suggestion) { s.Status = "done" }, wantErr: true},
		{name: "explicit status ok", mutate: func(s *Suggestion) { s.Status = StatusUnderReview }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSuggestion()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("Validate() = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	s := validSuggestion()
	s.Normalize()
	if s.Status != StatusSubmitted {
		t.Errorf("Status = %q, want %q", s.Status, StatusSubmitted)
	}
	if s.VotedByGroups == nil {
		t.Error("VotedByGroups is nil, want empty slice")
	}
}

func TestToggleVote(t *testing.T) {
	s := validSuggestion()
	s.Normalize()

	if voted := s.ToggleVote("kitchen-a"); !voted {
		t.Fatal("first toggle should add the vote")
	}
	if s.Votes != 1 || !s.HasVoted("kitchen-a") {
		t.Fatalf("after first toggle: votes=%d hasVoted=%v", s.Votes, s.HasVoted("kitchen-a"))
	}

	s.ToggleVote("kitchen-b")
	if s.Votes != 2 {
		t.Fatalf("votes = %d, want 2", s.Votes)
	}

	if voted := s.ToggleVote("kitchen-a"); voted {
		t.Fatal("second toggle should remove the vote")
	}
	if s.Votes != 1 || s.HasVoted("kitchen-a") {
		t.Fatalf("after removal: votes=%d hasVoted=%v", s.Votes, s.HasVoted("kitchen-a"))
	}
	if !s.HasVoted("kitchen-b") {
		t.Fatal("unrelated voter was removed")
	}
}

func TestToggleVote_CountTracksSet(t *testing.T) {
	s := validSuggestion()
	s.Normalize()
	groups := []string{"a", "b", "c", "a", "b", "a"}
	for _, g := range groups {
		s.ToggleVote(g)
	}
	if s.Votes != len(s.VotedByGroups) {
		t.Fatalf("votes=%d voters=%d, want equal", s.Votes, len(s.VotedByGroups))
	}
	if s.Votes != 2 {
		t.Fatalf("votes = %d, want 2", s.Votes)
	}
}

func TestRecomputeRank_VotesDominate(t *testing.T) {
	older := validSuggestion()
	older.CreatedAt = 1_700_000_000_000
	older.Votes = 1
	older.RecomputeRank()

	newer := validSuggestion()
	newer.CreatedAt = 1_800_000_000_000
	newer.Votes = 0
	newer.RecomputeRank()

	if older.Rank <= newer.Rank {
		t.Fatalf("one vote (%d) should outrank newer with none (%d)", older.Rank, newer.Rank)
	}
}

func TestRecomputeRank_TiesBreakNewestFirst(t *testing.T) {
	older := validSuggestion()
	older.CreatedAt = 1_700_000_000_000
	older.RecomputeRank()

	newer := validSuggestion()
	newer.CreatedAt = 1_700_000_005_000
	newer.RecomputeRank()

	if newer.Rank <= older.Rank {
		t.Fatalf("equal votes: newer (%d) should outrank older (%d)", newer.Rank, older.Rank)
	}
}

func TestRecomputeRank_ExactAsFloat64(t *testing.T) {
	s := validSuggestion()
	s.CreatedAt = 1_999_999_999_000
	s.Votes = 1_000_000
	s.RecomputeRank()
	if int64(float64(s.Rank)) != s.Rank {
		t.Fatalf("rank %d is not exactly representable as float64", s.Rank)
	}
}

func TestResetLifecycle(t *testing.T) {
	s := validSuggestion()
	s.Status = StatusAccepted
	s.ToggleVote("a")
	s.ToggleVote("b")
	s.ResetLifecycle()
	if s.Status != StatusSubmitted || s.Votes != 0 || len(s.VotedByGroups) != 0 {
		t.Fatalf("ResetLifecycle left status=%q votes=%d voters=%d", s.Status, s.Votes, len(s.VotedByGroups))
	}
}
