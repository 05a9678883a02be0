package dto

import (
	"github.com/google/uuid"
)

type ApplyRedactionResponse struct {
	DocumentId   uuid.UUID           `json:"documentId"`
	RedactedPath string              `json:"redactedPath"`
	Stats        ApplyRedactionStats `json:"stats"`
}

type ApplyRedactionStats struct {
	TotalRedacted    int   `json:"totalRedacted"`
	TotalPages       int   `json:"totalPages"`
	ProcessedPages   int   `json:"processedPages"`
	FailedPages      int   `json:"failedPages"`
	OriginalFileSize int64 `json:"originalFileSize"`
	RedactedFileSize int64 `json:"redactedFileSize"`
	ProcessingTimeMs int64 `json:"processingTimeMs"`
}
