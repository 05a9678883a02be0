package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"pii-redaction-be/internal/entity"
	"pii-redaction-be/internal/repository/contract"
	"pii-redaction-be/internal/repository/specification"
	"pii-redaction-be/internal/repository/unitofwork"
)

// fakeUowFactory backs the service tests with plain in-memory maps. The
// fakes interpret only the specification types the services actually use.
type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func newFakeUowFactory() *fakeUowFactory {
	return &fakeUowFactory{
		uow: &fakeUnitOfWork{
			documents: make(map[uuid.UUID]*entity.Document),
			entities:  make(map[uuid.UUID]*entity.DetectedEntity),
		},
	}
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUnitOfWork struct {
	mu        sync.Mutex
	documents map[uuid.UUID]*entity.Document
	entities  map[uuid.UUID]*entity.DetectedEntity
	audits    []*entity.AuditLog

	// When set, DetectedEntityRepository().Update fails with this error.
	entityUpdateErr error
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return &fakeDocumentRepo{uow: u}
}

func (u *fakeUnitOfWork) DetectedEntityRepository() contract.DetectedEntityRepository {
	return &fakeDetectedEntityRepo{uow: u}
}

func (u *fakeUnitOfWork) AuditLogRepository() contract.AuditLogRepository {
	return &fakeAuditLogRepo{uow: u}
}

type fakeDocumentRepo struct {
	uow *fakeUnitOfWork
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	copied := *doc
	r.uow.documents[doc.Id] = &copied
	return nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, doc *entity.Document) error {
	return r.Create(ctx, doc)
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	delete(r.uow.documents, id)
	return nil
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if doc, found := r.uow.documents[byID.ID]; found {
				copied := *doc
				return &copied, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	out := make([]*entity.Document, 0, len(r.uow.documents))
	for _, doc := range r.uow.documents {
		copied := *doc
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	return int64(len(r.uow.documents)), nil
}

type fakeDetectedEntityRepo struct {
	uow *fakeUnitOfWork
}

func (r *fakeDetectedEntityRepo) CreateBatch(ctx context.Context, entities []*entity.DetectedEntity) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	for _, e := range entities {
		copied := *e
		r.uow.entities[e.Id] = &copied
	}
	return nil
}

func (r *fakeDetectedEntityRepo) Update(ctx context.Context, e *entity.DetectedEntity) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	if r.uow.entityUpdateErr != nil {
		return r.uow.entityUpdateErr
	}
	copied := *e
	r.uow.entities[e.Id] = &copied
	return nil
}

func (r *fakeDetectedEntityRepo) DeleteAllByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	for id, e := range r.uow.entities {
		if e.DocumentId == documentId {
			delete(r.uow.entities, id)
		}
	}
	return nil
}

func (r *fakeDetectedEntityRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DetectedEntity, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if e, found := r.uow.entities[byID.ID]; found {
				copied := *e
				return &copied, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakeDetectedEntityRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DetectedEntity, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	var docFilter *uuid.UUID
	for _, spec := range specs {
		if byDoc, ok := spec.(specification.ByDocumentID); ok {
			id := byDoc.DocumentID
			docFilter = &id
		}
	}
	out := make([]*entity.DetectedEntity, 0)
	for _, e := range r.uow.entities {
		if docFilter != nil && e.DocumentId != *docFilter {
			continue
		}
		copied := *e
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeDetectedEntityRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, _ := r.FindAll(ctx, specs...)
	return int64(len(rows)), nil
}

type fakeAuditLogRepo struct {
	uow *fakeUnitOfWork
}

func (r *fakeAuditLogRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	copied := *log
	r.uow.audits = append(r.uow.audits, &copied)
	return nil
}

func (r *fakeAuditLogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	return append([]*entity.AuditLog{}, r.uow.audits...), nil
}

func (r *fakeAuditLogRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	return int64(len(r.uow.audits)), nil
}

// fakePublisher records published payloads.
type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}
