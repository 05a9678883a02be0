package dto

import (
	"time"

	"github.com/google/uuid"
)

// RectBody mirrors the geometry rect wire shape used across review
// payloads.
type RectBody struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

type StartReviewSessionResponse struct {
	DocumentId  uuid.UUID `json:"document_id"`
	EntityCount int       `json:"entity_count"`
	Resumed     bool      `json:"resumed"`
}

type ReviewEntityResponse struct {
	Id         uuid.UUID `json:"id"`
	Label      string    `json:"label"`
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence"`
	Page       int       `json:"page"`
	Bbox       *RectBody `json:"bbox,omitempty"`
	Status     string    `json:"status"`
}

type CustomRedactionResponse struct {
	Id        uuid.UUID `json:"id"`
	Page      int       `json:"page"`
	Bbox      RectBody  `json:"bbox"`
	Type      string    `json:"type"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewStateResponse struct {
	DocumentId       uuid.UUID                 `json:"document_id"`
	Entities         []ReviewEntityResponse    `json:"entities"`
	CustomRedactions []CustomRedactionResponse `json:"custom_redactions"`
	TotalRedactions  int                       `json:"total_redactions"`
	CanUndo          bool                      `json:"can_undo"`
	CanRedo          bool                      `json:"can_redo"`
}

type EntityStatusRequest struct {
	EntityId uuid.UUID `json:"entity_id" validate:"required"`
}

type BulkEntityStatusRequest struct {
	EntityIds []uuid.UUID `json:"entity_ids" validate:"required,min=1"`
}

type AddCustomRedactionRequest struct {
	Page  int      `json:"page" validate:"gte=0"`
	Bbox  RectBody `json:"bbox" validate:"required"`
	Label string   `json:"label"`
}

type AddCustomRedactionResponse struct {
	Id uuid.UUID `json:"id"`
}

type ModifyEntityRequest struct {
	EntityId uuid.UUID `json:"entity_id" validate:"required"`
	Kind     string    `json:"kind" validate:"required,oneof=move resize retext"`
	Bbox     *RectBody `json:"bbox"`
	Text     string    `json:"text"`
}

type UndoRedoResponse struct {
	Applied bool `json:"applied"`
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}

type TextRunBody struct {
	Text   string  `json:"text" validate:"required"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

type ResolvePositionsRequest struct {
	Page     int           `json:"page" validate:"gte=0"`
	TextRuns []TextRunBody `json:"text_runs" validate:"required,min=1,dive"`
}

type ResolvePositionsResponse struct {
	Resolved  int      `json:"resolved"`
	Unmatched []string `json:"unmatched"`
}
