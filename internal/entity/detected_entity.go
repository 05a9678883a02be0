package entity

import (
	"time"

	"github.com/google/uuid"

	"pii-redaction-be/pkg/geometry"
)

// DetectedEntity is one sensitive span found by the offline detector,
// persisted per document. Bounds stays nil until either the detector
// supplied a box or the text-span matcher resolved one.
type DetectedEntity struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	Label      string
	Text       string
	Confidence float64
	Page       int
	Bounds     *geometry.Rect
	CreatedAt  time.Time
}
