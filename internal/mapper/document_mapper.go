package mapper

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"pii-redaction-be/internal/entity"
	"pii-redaction-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(d.Metadata) > 0 {
		_ = json.Unmarshal(d.Metadata, &metadata)
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Document{
		Id:                  d.Id,
		OriginalFilename:    d.OriginalFilename,
		FileSize:            d.FileSize,
		MimeType:            d.MimeType,
		StoragePath:         d.StoragePath,
		RedactedStoragePath: d.RedactedStoragePath,
		Status:              entity.DocumentStatus(d.Status),
		PageCount:           d.PageCount,
		Metadata:            metadata,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var metadata datatypes.JSON
	if d.Metadata != nil {
		raw, err := json.Marshal(d.Metadata)
		if err == nil {
			metadata = raw
		}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Document{
		Id:                  d.Id,
		OriginalFilename:    d.OriginalFilename,
		FileSize:            d.FileSize,
		MimeType:            d.MimeType,
		StoragePath:         d.StoragePath,
		RedactedStoragePath: d.RedactedStoragePath,
		Status:              string(d.Status),
		PageCount:           d.PageCount,
		Metadata:            metadata,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
