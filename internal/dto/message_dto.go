package dto

import "github.com/google/uuid"

// PublishAuditMessage travels over the in-process pub/sub channel; the
// consumer persists it as an audit log row off the request path.
type PublishAuditMessage struct {
	Action     string                 `json:"action"`
	DocumentId *uuid.UUID             `json:"document_id,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
}
