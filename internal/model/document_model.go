package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	Id                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OriginalFilename    string         `gorm:"type:varchar(255);not null"`
	FileSize            int64          `gorm:"not null"`
	MimeType            string         `gorm:"type:varchar(100);not null"`
	StoragePath         string         `gorm:"type:text;not null"`
	RedactedStoragePath *string        `gorm:"type:text"`
	Status              string         `gorm:"type:varchar(20);not null;index"`
	PageCount           int            `gorm:"not null;default:0"`
	Metadata            datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt           time.Time      `gorm:"autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
