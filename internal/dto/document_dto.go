package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterDocumentRequest struct {
	OriginalFilename string                 `json:"original_filename" validate:"required"`
	FileSize         int64                  `json:"file_size" validate:"required,gt=0"`
	MimeType         string                 `json:"mime_type" validate:"required"`
	StoragePath      string                 `json:"storage_path" validate:"required"`
	PageCount        int                    `json:"page_count" validate:"gte=0"`
	Metadata         map[string]interface{} `json:"metadata"`
}

type RegisterDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowDocumentResponse struct {
	Id                  uuid.UUID  `json:"id"`
	OriginalFilename    string     `json:"original_filename"`
	FileSize            int64      `json:"file_size"`
	MimeType            string     `json:"mime_type"`
	Status              string     `json:"status"`
	PageCount           int        `json:"page_count"`
	RedactedStoragePath *string    `json:"redacted_storage_path,omitempty"`
	EntityCount         int64      `json:"entity_count"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at"`
}

type ListDocumentsResponse struct {
	Documents []ShowDocumentResponse `json:"documents"`
	Total     int64                  `json:"total"`
}

type IngestEntitiesRequest struct {
	Entities []IngestEntityItem `json:"entities" validate:"required,min=1,dive"`
}

type IngestEntityItem struct {
	Label      string    `json:"label" validate:"required"`
	Text       string    `json:"text" validate:"required"`
	Confidence float64   `json:"confidence" validate:"gte=0,lte=1"`
	Page       int       `json:"page" validate:"gte=0"`
	Bbox       *RectBody `json:"bbox"`
}

type IngestEntitiesResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	Ingested   int       `json:"ingested"`
}

type AuditLogResponse struct {
	Id         uuid.UUID              `json:"id"`
	Action     string                 `json:"action"`
	DocumentId *uuid.UUID             `json:"document_id,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

type ListAuditLogsResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
}
