package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus tracks a document through detection and redaction.
type DocumentStatus string

const (
	DocumentUploaded   DocumentStatus = "uploaded"
	DocumentProcessing DocumentStatus = "processing"
	DocumentReady      DocumentStatus = "ready"
	DocumentRedacted   DocumentStatus = "redacted"
	DocumentFailed     DocumentStatus = "failed"
)

type Document struct {
	Id                  uuid.UUID
	OriginalFilename    string
	FileSize            int64
	MimeType            string
	StoragePath         string
	RedactedStoragePath *string
	Status              DocumentStatus
	PageCount           int
	Metadata            map[string]interface{}
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}
