package domain

import "time"

// Envelope is the shared document envelope: identity, audit stamps, group
// ownership, soft-delete flag, and duplicate lineage. Embedded in every
// entity; JSON tags double as storage field names.
type Envelope struct {
	ID               string `json:"id"`
	CreatedAt        int64  `json:"createdAt"` // unix milliseconds
	UpdatedAt        int64  `json:"updatedAt"`
	CreatedByGroupID string `json:"createdByGroupId"`
	UpdatedByGroupID string `json:"updatedByGroupId"`
	IsArchived       bool   `json:"isArchived"`
	VariantOf        string `json:"variantOf,omitempty"`
}

// StampCreate sets the full audit envelope for a freshly created document.
func (e *Envelope) StampCreate(groupID string, now time.Time) {
	ms := now.UnixMilli()
	e.CreatedAt = ms
	e.UpdatedAt = ms
	e.CreatedByGroupID = groupID
	e.UpdatedByGroupID = groupID
	e.IsArchived = false
}

// StampUpdate refreshes the mutable half of the audit envelope.
// CreatedAt and CreatedByGroupID are never touched after creation.
func (e *Envelope) StampUpdate(groupID string, now time.Time) {
	e.UpdatedAt = now.UnixMilli()
	e.UpdatedByGroupID = groupID
}

// CanEdit reports whether the given group owns the document.
func (e *Envelope) CanEdit(groupID string) bool {
	return groupID != "" && e.CreatedByGroupID == groupID
}

// RequireOwnership returns an AccessDeniedError unless groupID owns the
// document. entity and duplicateOp feed the error message; reads never
// call this.
func (e *Envelope) RequireOwnership(groupID, entity, duplicateOp string) error {
	if e.CanEdit(groupID) {
		return nil
	}
	return &AccessDeniedError{
		Entity:       entity,
		ID:           e.ID,
		OwnerGroupID: e.CreatedByGroupID,
		DuplicateOp:  duplicateOp,
	}
}
