package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction enumerates recorded compliance events.
type AuditAction string

const (
	AuditPiiDetection      AuditAction = "pii_detection"
	AuditPositionResolve   AuditAction = "position_resolution"
	AuditRedactionApplied  AuditAction = "document_redaction"
	AuditDocumentDelete    AuditAction = "document_delete"
	AuditReviewSessionOpen AuditAction = "review_session_open"
)

type AuditLog struct {
	Id         uuid.UUID
	Action     AuditAction
	DocumentId *uuid.UUID
	Details    map[string]interface{}
	CreatedAt  time.Time
}
