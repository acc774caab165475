// Package suggestion defines the Suggestion document, its enums, and the
// vote-toggle invariant (votes always equals the voter set size).
package suggestion

import (
	"fmt"

	"github.com/ladle-cloud/ladle/internal/domain"
)

// Entity and operation names used in ownership errors.
const (
	EntityName  = "suggestion"
	DuplicateOp = "suggestionsDuplicate"
)

// MaxTitleLen bounds the suggestion title.
const MaxTitleLen = 200

// Category classifies a suggestion.
type Category string

const (
	CategoryFeature     Category = "feature"
	CategoryBug         Category = "bug"
	CategoryImprovement Category = "improvement"
	CategoryOther       Category = "other"
)

// Priority ranks a suggestion.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status tracks a suggestion through review.
type Status string

const (
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under-review"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
	StatusImplemented Status = "implemented"
)

var (
	knownCategories = map[Category]bool{
		CategoryFeature: true, CategoryBug: true, CategoryImprovement: true, CategoryOther: true,
	}
	knownPriorities = map[Priority]bool{
		PriorityLow: true, PriorityMedium: true, PriorityHigh: true,
	}
	knownStatuses = map[Status]bool{
		StatusSubmitted: true, StatusUnderReview: true, StatusAccepted: true,
		StatusRejected: true, StatusImplemented: true,
	}
)

// Suggestion is a product suggestion document. VotedByGroups is a set
// stored as an array; membership means "has voted".
type Suggestion struct {
	domain.Envelope

	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        Category `json:"category"`
	Priority        Priority `json:"priority"`
	Status          Status   `json:"status"`
	Votes           int      `json:"votes"`
	VotedByGroups   []string `json:"votedByGroups"`
	RelatedRecipeID string   `json:"relatedRecipeId,omitempty"`

	// Rank is a persisted composite sort key: votes in the high bits,
	// creation time (seconds) in the low 32. FT.SEARCH sorts on a single
	// field, so the two-level ordering (votes desc, then newest first)
	// has to be baked into one sortable numeric.
	Rank int64 `json:"rank"`
}

// Validate checks required fields and enum values.
func (s *Suggestion) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("title is required: %w", domain.ErrValidation)
	}
	if len(s.Title) > MaxTitleLen {
		return fmt.Errorf("title exceeds %d characters: %w", MaxTitleLen, domain.ErrValidation)
	}
	if s.Description == "" {
		return fmt.Errorf("description is required: %w", domain.ErrValidation)
	}
	if !knownCategories[s.Category] {
		return fmt.Errorf("unknown category %q: %w", s.Category, domain.ErrValidation)
	}
	if !knownPriorities[s.Priority] {
		return fmt.Errorf("unknown priority %q: %w", s.Priority, domain.ErrValidation)
	}
	if s.Status != "" && !knownStatuses[s.Status] {
		return fmt.Errorf("unknown status %q: %w", s.Status, domain.ErrValidation)
	}
	return nil
}

// Normalize applies defaults for a fresh or duplicated suggestion:
// status submitted, empty voter set, votes zero.
func (s *Suggestion) Normalize() {
	if s.Status == "" {
		s.Status = StatusSubmitted
	}
	if s.VotedByGroups == nil {
		s.VotedByGroups = []string{}
	}
	if s.Votes < 0 {
		s.Votes = 0
	}
}

// ResetLifecycle clears review state for a duplicate: submitted status,
// no votes, empty voter set.
func (s *Suggestion) ResetLifecycle() {
	s.Status = StatusSubmitted
	s.Votes = 0
	s.VotedByGroups = []string{}
}

// ToggleVote flips the group's membership in the voter set and keeps
// votes equal to the set size. Returns the resulting membership state:
// true means the group has now voted.
func (s *Suggestion) ToggleVote(groupID string) bool {
	for i, g := range s.VotedByGroups {
		if g == groupID {
			s.VotedByGroups = append(s.VotedByGroups[:i], s.VotedByGroups[i+1:]...)
			s.Votes = len(s.VotedByGroups)
			return false
		}
	}
	s.VotedByGroups = append(s.VotedByGroups, groupID)
	s.Votes = len(s.VotedByGroups)
	return true
}

// RecomputeRank refreshes the composite sort key from votes and
// createdAt. Callers persisting a suggestion must invoke this after any
// change to either input. Votes stay well under 2^21, so the composite
// survives the index's float64 representation exactly.
func (s *Suggestion) RecomputeRank() {
	s.Rank = int64(s.Votes)<<32 | (s.CreatedAt/1000)&0xFFFFFFFF
}

// HasVoted reports whether the group is in the voter set.
func (s *Suggestion) HasVoted(groupID string) bool {
	for _, g := range s.VotedByGroups {
		if g == groupID {
			return true
		}
	}
	return false
}
