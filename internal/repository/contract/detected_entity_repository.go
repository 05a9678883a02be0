package contract

import (
	"context"

	"pii-redaction-be/internal/entity"
	"pii-redaction-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DetectedEntityRepository interface {
	CreateBatch(ctx context.Context, entities []*entity.DetectedEntity) error
	Update(ctx context.Context, e *entity.DetectedEntity) error
	DeleteAllByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DetectedEntity, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DetectedEntity, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
