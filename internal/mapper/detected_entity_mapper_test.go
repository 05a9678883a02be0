package mapper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"pii-redaction-be/internal/entity"
	"pii-redaction-be/pkg/geometry"
)

func TestDetectedEntityMapperBboxRoundtrip(t *testing.T) {
	m := NewDetectedEntityMapper()

	e := &entity.DetectedEntity{
		Id:         uuid.New(),
		DocumentId: uuid.New(),
		Label:      "PERSON",
		Text:       "John Doe",
		Confidence: 0.93,
		Page:       2,
		Bounds:     &geometry.Rect{X: 100, Y: 200, Width: 60, Height: 12},
		CreatedAt:  time.Now(),
	}

	row := m.ToModel(e)
	assert.NotEmpty(t, row.Bbox)

	back := m.ToEntity(row)
	assert.Equal(t, e.Id, back.Id)
	assert.Equal(t, e.Text, back.Text)
	if assert.NotNil(t, back.Bounds) {
		assert.Equal(t, *e.Bounds, *back.Bounds)
	}
}

func TestDetectedEntityMapperNilBounds(t *testing.T) {
	m := NewDetectedEntityMapper()

	e := &entity.DetectedEntity{
		Id:         uuid.New(),
		DocumentId: uuid.New(),
		Label:      "EMAIL",
		Text:       "jd@example.com",
		Page:       0,
	}

	row := m.ToModel(e)
	assert.Empty(t, row.Bbox)

	back := m.ToEntity(row)
	assert.Nil(t, back.Bounds)
}
