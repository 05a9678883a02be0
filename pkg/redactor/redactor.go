package redactor

import (
	"context"

	"pii-redaction-be/pkg/review"
)

// Stats summarizes one apply run, as reported by the redaction engine.
type Stats struct {
	TotalRedacted    int   `json:"totalRedacted"`
	TotalPages       int   `json:"totalPages"`
	ProcessedPages   int   `json:"processedPages"`
	FailedPages      int   `json:"failedPages"`
	OriginalFileSize int64 `json:"originalFileSize"`
	RedactedFileSize int64 `json:"redactedFileSize"`
	ProcessingTimeMs int64 `json:"processingTimeMs"`
}

// Result is the engine's answer for a completed apply.
type Result struct {
	RedactedPath string `json:"redactedPath"`
	Stats        Stats  `json:"stats"`
}

// Engine defines the contract for a redaction backend that burns the
// selected regions into a document. Implementations must not mutate
// the request.
type Engine interface {
	Apply(ctx context.Context, req *review.ApplyRequest) (*Result, error)
}
