package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"pii-redaction-be/internal/entity"
	"pii-redaction-be/internal/model"
	"pii-redaction-be/pkg/geometry"
)

type DetectedEntityMapper struct{}

func NewDetectedEntityMapper() *DetectedEntityMapper {
	return &DetectedEntityMapper{}
}

func (m *DetectedEntityMapper) ToEntity(e *model.DetectedEntity) *entity.DetectedEntity {
	if e == nil {
		return nil
	}

	var bounds *geometry.Rect
	if len(e.Bbox) > 0 {
		var r geometry.Rect
		if err := json.Unmarshal(e.Bbox, &r); err == nil {
			bounds = &r
		}
	}

	return &entity.DetectedEntity{
		Id:         e.Id,
		DocumentId: e.DocumentId,
		Label:      e.Label,
		Text:       e.Text,
		Confidence: e.Confidence,
		Page:       e.Page,
		Bounds:     bounds,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *DetectedEntityMapper) ToModel(e *entity.DetectedEntity) *model.DetectedEntity {
	if e == nil {
		return nil
	}

	var bbox datatypes.JSON
	if e.Bounds != nil {
		raw, err := json.Marshal(e.Bounds)
		if err == nil {
			bbox = raw
		}
	}

	return &model.DetectedEntity{
		Id:         e.Id,
		DocumentId: e.DocumentId,
		Label:      e.Label,
		Text:       e.Text,
		Confidence: e.Confidence,
		Page:       e.Page,
		Bbox:       bbox,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *DetectedEntityMapper) ToEntities(models []*model.DetectedEntity) []*entity.DetectedEntity {
	entities := make([]*entity.DetectedEntity, len(models))
	for i, e := range models {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *DetectedEntityMapper) ToModels(entities []*entity.DetectedEntity) []*model.DetectedEntity {
	models := make([]*model.DetectedEntity, len(entities))
	for i, e := range entities {
		models[i] = m.ToModel(e)
	}
	return models
}
