package memory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"

	"pii-redaction-be/pkg/review"
)

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository()
	docId := uuid.New()

	_, found := repo.Get(docId)
	assert.False(t, found)

	store := review.NewStore(nil)
	repo.Save(docId, store)

	got, found := repo.Get(docId)
	assert.True(t, found)
	assert.Same(t, store, got)

	// Different document ids never collide.
	_, found = repo.Get(uuid.New())
	assert.False(t, found)

	repo.Delete(docId)
	_, found = repo.Get(docId)
	assert.False(t, found)
}

func TestSessionRepositoryGetRenewsExpiry(t *testing.T) {
	// Short TTL so the idle semantics are observable in-test.
	repo := &SessionRepository{cache: cache.New(200*time.Millisecond, time.Minute)}
	docId := uuid.New()
	repo.Save(docId, review.NewStore(nil))

	// Keep touching the session past the absolute TTL; each Get must
	// push the deadline out, so continuous activity never loses it.
	for i := 0; i < 6; i++ {
		time.Sleep(60 * time.Millisecond)
		_, found := repo.Get(docId)
		assert.True(t, found, "session evicted at step %d despite continuous activity", i)
	}

	// Once idle, the session does expire.
	time.Sleep(300 * time.Millisecond)
	_, found := repo.Get(docId)
	assert.False(t, found)
}

func TestSessionRepositorySaveOverwrites(t *testing.T) {
	repo := NewSessionRepository()
	docId := uuid.New()

	first := review.NewStore(nil)
	second := review.NewStore(nil)
	repo.Save(docId, first)
	repo.Save(docId, second)

	got, found := repo.Get(docId)
	assert.True(t, found)
	assert.Same(t, second, got)
}
