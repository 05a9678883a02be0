package implementation

import (
	"context"
	"errors"

	"pii-redaction-be/internal/entity"
	"pii-redaction-be/internal/mapper"
	"pii-redaction-be/internal/model"
	"pii-redaction-be/internal/repository/contract"
	"pii-redaction-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DetectedEntityRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DetectedEntityMapper
}

func NewDetectedEntityRepository(db *gorm.DB) contract.DetectedEntityRepository {
	return &DetectedEntityRepositoryImpl{
		db:     db,
		mapper: mapper.NewDetectedEntityMapper(),
	}
}

func (r *DetectedEntityRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DetectedEntityRepositoryImpl) CreateBatch(ctx context.Context, entities []*entity.DetectedEntity) error {
	if len(entities) == 0 {
		return nil
	}
	models := r.mapper.ToModels(entities)
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*entities[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DetectedEntityRepositoryImpl) Update(ctx context.Context, e *entity.DetectedEntity) error {
	m := r.mapper.ToModel(e)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*e = *r.mapper.ToEntity(m)
	return nil
}

func (r *DetectedEntityRepositoryImpl) DeleteAllByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.DetectedEntity{}).Error
}

func (r *DetectedEntityRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DetectedEntity, error) {
	var m model.DetectedEntity
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DetectedEntityRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DetectedEntity, error) {
	var models []*model.DetectedEntity
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DetectedEntityRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.DetectedEntity{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
