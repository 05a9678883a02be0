package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DetectedEntity struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Label      string         `gorm:"type:varchar(50);not null;index"`
	Text       string         `gorm:"type:text;not null"`
	Confidence float64        `gorm:"not null"`
	Page       int            `gorm:"not null"`
	Bbox       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}

func (DetectedEntity) TableName() string {
	return "detected_entities"
}
