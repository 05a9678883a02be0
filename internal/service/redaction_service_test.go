package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pii-redaction-be/internal/entity"
	"pii-redaction-be/internal/repository/memory"
	"pii-redaction-be/internal/repository/specification"
	"pii-redaction-be/pkg/redactor"
	"pii-redaction-be/pkg/review"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fakeEngine struct {
	lastRequest *review.ApplyRequest
	result      *redactor.Result
	err         error
}

func (e *fakeEngine) Apply(ctx context.Context, req *review.ApplyRequest) (*redactor.Result, error) {
	e.lastRequest = req
	if e.err != nil {
		return nil, e.err
	}
	return e.result, nil
}

func newRedactionServiceForTest(engine redactor.Engine) (IRedactionService, IReviewService, *fakeUowFactory, *memory.SessionRepository) {
	factory := newFakeUowFactory()
	sessions := memory.NewSessionRepository()
	publisher := &fakePublisher{}
	reviewSvc := NewReviewService(factory, sessions, publisher, noopLogger{})
	redactionSvc := NewRedactionService(factory, sessions, engine, publisher, nil, noopLogger{})
	return redactionSvc, reviewSvc, factory, sessions
}

func TestApplySendsProjectedRequest(t *testing.T) {
	engine := &fakeEngine{
		result: &redactor.Result{
			RedactedPath: "/uploads/report.redacted.pdf",
			Stats: redactor.Stats{
				TotalRedacted:  2,
				TotalPages:     3,
				ProcessedPages: 3,
			},
		},
	}
	svc, reviewSvc, factory, _ := newRedactionServiceForTest(engine)
	docId, entityIds := seedDocument(factory, 2)

	_, err := reviewSvc.StartSession(context.Background(), docId)
	require.NoError(t, err)
	require.NoError(t, reviewSvc.Approve(context.Background(), docId, entityIds[0]))

	res, err := svc.Apply(context.Background(), docId)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/report.redacted.pdf", res.RedactedPath)
	assert.Equal(t, 2, res.Stats.TotalRedacted)

	require.NotNil(t, engine.lastRequest)
	assert.Equal(t, docId.String(), engine.lastRequest.DocumentID)
	assert.Equal(t, []string{entityIds[0].String()}, engine.lastRequest.ApprovedEntityIDs)

	// Document row reflects the completed apply.
	doc, err := factory.uow.DocumentRepository().FindOne(context.Background(), specification.ByID{ID: docId})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, entity.DocumentRedacted, doc.Status)
	require.NotNil(t, doc.RedactedStoragePath)
	assert.Equal(t, "/uploads/report.redacted.pdf", *doc.RedactedStoragePath)
}

func TestApplyEmptySelection(t *testing.T) {
	engine := &fakeEngine{}
	svc, reviewSvc, factory, _ := newRedactionServiceForTest(engine)
	docId, _ := seedDocument(factory, 2)

	_, err := reviewSvc.StartSession(context.Background(), docId)
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), docId)
	var empty *review.EmptySelectionError
	require.ErrorAs(t, err, &empty)
	assert.Nil(t, engine.lastRequest)
}

func TestApplyEngineFailureLeavesDocumentUntouched(t *testing.T) {
	engine := &fakeEngine{err: assert.AnError}
	svc, reviewSvc, factory, _ := newRedactionServiceForTest(engine)
	docId, entityIds := seedDocument(factory, 1)

	_, err := reviewSvc.StartSession(context.Background(), docId)
	require.NoError(t, err)
	require.NoError(t, reviewSvc.Approve(context.Background(), docId, entityIds[0]))

	_, err = svc.Apply(context.Background(), docId)
	require.Error(t, err)

	doc, err := factory.uow.DocumentRepository().FindOne(context.Background(), specification.ByID{ID: docId})
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentReady, doc.Status)
	assert.Nil(t, doc.RedactedStoragePath)
}

func TestApplyWithoutSession(t *testing.T) {
	engine := &fakeEngine{}
	svc, _, factory, _ := newRedactionServiceForTest(engine)
	docId, _ := seedDocument(factory, 1)

	_, err := svc.Apply(context.Background(), docId)
	var notFound *review.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "review session", notFound.Kind)
}
