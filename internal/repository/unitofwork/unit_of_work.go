package unitofwork

import (
	"context"

	"pii-redaction-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	DetectedEntityRepository() contract.DetectedEntityRepository
	AuditLogRepository() contract.AuditLogRepository
}
