// Package review owns the canonical redaction review state for one
// document: per-entity approval status, user-drawn redaction regions,
// entity geometry modifications, and a linear undo/redo history.
//
// A Store is an explicitly constructed, injectable container. Nothing in
// this package is a process-wide singleton; callers create one store per
// document under review and dispose of it when the session ends.
package review

import (
	"time"

	"github.com/google/uuid"

	"pii-redaction-be/pkg/geometry"
)

// EntityType is the closed set of detected entity categories.
type EntityType string

const (
	TypePerson       EntityType = "PERSON"
	TypeDate         EntityType = "DATE"
	TypeID           EntityType = "ID"
	TypeOrganization EntityType = "ORGANIZATION"
	TypeEmail        EntityType = "EMAIL"
	TypePhone        EntityType = "PHONE"
	TypeAddress      EntityType = "ADDRESS"
	TypeCustom       EntityType = "CUSTOM"
)

// ApprovalStatus is the reviewer's tri-state classification of an entity.
// The zero value is Pending, so an entity absent from the status map is
// simply "not yet reviewed".
type ApprovalStatus int

const (
	StatusPending ApprovalStatus = iota
	StatusApproved
	StatusRejected
)

func (s ApprovalStatus) String() string {
	switch s {
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Entity is a detected sensitive span, produced by the external detector
// and loaded once at session start. The original detection is never
// mutated; geometry edits are layered on top as Modifications.
type Entity struct {
	ID         uuid.UUID
	Type       EntityType
	Text       string
	Confidence float64
	Page       int
	// Bounds is nil until resolved by the text-span matcher or supplied
	// by the detector.
	Bounds *geometry.Rect
}

// CustomRedaction is a user-drawn region not tied to any detected entity.
type CustomRedaction struct {
	ID        uuid.UUID
	Page      int
	Bounds    geometry.Rect
	Type      EntityType
	Label     string
	CreatedAt time.Time
}

// ModificationKind says what aspect of an entity an edit touches.
type ModificationKind string

const (
	ModResize ModificationKind = "resize"
	ModMove   ModificationKind = "move"
	ModRetext ModificationKind = "retext"
)

// Modification is one append-only edit to an entity. The current
// effective geometry of an entity is its original bounds overridden by
// the most recent modification that carries bounds.
type Modification struct {
	Kind      ModificationKind
	Bounds    *geometry.Rect
	Text      string
	Timestamp time.Time
}
