package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"pii-redaction-be/internal/entity"
	"pii-redaction-be/internal/model"
)

type AuditLogMapper struct{}

func NewAuditLogMapper() *AuditLogMapper {
	return &AuditLogMapper{}
}

func (m *AuditLogMapper) ToEntity(l *model.AuditLog) *entity.AuditLog {
	if l == nil {
		return nil
	}

	var details map[string]interface{}
	if len(l.Details) > 0 {
		_ = json.Unmarshal(l.Details, &details)
	}

	return &entity.AuditLog{
		Id:         l.Id,
		Action:     entity.AuditAction(l.Action),
		DocumentId: l.DocumentId,
		Details:    details,
		CreatedAt:  l.CreatedAt,
	}
}

func (m *AuditLogMapper) ToModel(l *entity.AuditLog) *model.AuditLog {
	if l == nil {
		return nil
	}

	var details datatypes.JSON
	if l.Details != nil {
		raw, err := json.Marshal(l.Details)
		if err == nil {
			details = raw
		}
	}

	return &model.AuditLog{
		Id:         l.Id,
		Action:     string(l.Action),
		DocumentId: l.DocumentId,
		Details:    details,
		CreatedAt:  l.CreatedAt,
	}
}

func (m *AuditLogMapper) ToEntities(logs []*model.AuditLog) []*entity.AuditLog {
	entities := make([]*entity.AuditLog, len(logs))
	for i, l := range logs {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
