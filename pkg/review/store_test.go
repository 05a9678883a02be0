package review

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pii-redaction-be/pkg/geometry"
)

func testEntities(n int) []Entity {
	out := make([]Entity, 0, n)
	types := []EntityType{TypePerson, TypeEmail, TypeDate, TypePhone}
	for i := 0; i < n; i++ {
		out = append(out, Entity{
			ID:         uuid.New(),
			Type:       types[i%len(types)],
			Text:       "entity",
			Confidence: 0.9,
			Page:       0,
		})
	}
	return out
}

func TestApproveReject(t *testing.T) {
	entities := testEntities(3)
	s := NewStore(entities)
	a, b := entities[0].ID, entities[1].ID

	require.NoError(t, s.Approve(a))
	require.NoError(t, s.Reject(b))

	approved := s.ApprovedEntities()
	require.Len(t, approved, 1)
	assert.Equal(t, a, approved[0].ID)
	assert.Equal(t, 1, s.TotalRedactions())

	stB, err := s.Status(b)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, stB)

	stC, err := s.Status(entities[2].ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stC)
}

func TestApproveThenRejectStaysDisjoint(t *testing.T) {
	entities := testEntities(1)
	s := NewStore(entities)
	id := entities[0].ID

	require.NoError(t, s.Approve(id))
	require.NoError(t, s.Reject(id))

	st, err := s.Status(id)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, st)
	assert.Empty(t, s.ApprovedEntities())
}

func TestApproveUnknownEntity(t *testing.T) {
	s := NewStore(testEntities(1))

	err := s.Approve(uuid.New())

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "entity", nf.Kind)
}

func TestApproveIdempotent(t *testing.T) {
	entities := testEntities(1)
	s := NewStore(entities)
	id := entities[0].ID

	require.NoError(t, s.Approve(id))
	require.NoError(t, s.Approve(id))

	assert.Len(t, s.ApprovedEntities(), 1)
	// The second approve recorded nothing: one undo clears everything.
	require.True(t, s.Undo())
	assert.False(t, s.CanUndo())
	assert.Empty(t, s.ApprovedEntities())
}

func TestBulkApproveIsOneHistoryEntry(t *testing.T) {
	entities := testEntities(4)
	s := NewStore(entities)
	ids := []uuid.UUID{entities[0].ID, entities[1].ID, entities[2].ID}

	require.NoError(t, s.BulkApprove(ids))
	assert.Len(t, s.ApprovedEntities(), 3)

	require.True(t, s.Undo())
	assert.Empty(t, s.ApprovedEntities())
	assert.False(t, s.CanUndo())

	require.True(t, s.Redo())
	assert.Len(t, s.ApprovedEntities(), 3)
}

func TestBulkRejectUnknownIDFailsWholeBatch(t *testing.T) {
	entities := testEntities(2)
	s := NewStore(entities)

	err := s.BulkReject([]uuid.UUID{entities[0].ID, uuid.New()})

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	st, _ := s.Status(entities[0].ID)
	assert.Equal(t, StatusPending, st)
	assert.False(t, s.CanUndo())
}

func TestAddRemoveCustom(t *testing.T) {
	s := NewStore(nil)
	before := s.TotalRedactions()

	region, err := s.AddCustom(0, geometry.Rect{X: 10, Y: 10, Width: 50, Height: 20}, "")
	require.NoError(t, err)
	assert.Equal(t, TypeCustom, region.Type)
	assert.Equal(t, before+1, s.TotalRedactions())

	assert.True(t, s.RemoveCustom(region.ID))
	assert.Empty(t, s.CustomRedactions())
	assert.Equal(t, before, s.TotalRedactions())

	// Removing again is a lenient no-op.
	assert.False(t, s.RemoveCustom(region.ID))
}

func TestAddCustomValidation(t *testing.T) {
	s := NewStore(nil)

	tests := []struct {
		name   string
		page   int
		bounds geometry.Rect
	}{
		{"zero width", 0, geometry.Rect{Width: 0, Height: 10}},
		{"negative height", 0, geometry.Rect{Width: 10, Height: -5}},
		{"negative page", -1, geometry.Rect{Width: 10, Height: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddCustom(tt.page, tt.bounds, "")
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
		})
	}
	assert.Empty(t, s.CustomRedactions())
	assert.False(t, s.CanUndo())
}

func TestModifyEntity(t *testing.T) {
	entities := testEntities(1)
	orig := geometry.Rect{X: 0, Y: 0, Width: 40, Height: 10}
	entities[0].Bounds = &orig
	s := NewStore(entities)
	id := entities[0].ID

	moved := geometry.Rect{X: 25, Y: 5, Width: 40, Height: 10}
	require.NoError(t, s.Modify(id, Modification{Kind: ModMove, Bounds: &moved}))

	got, ok := s.EffectiveBounds(id)
	require.True(t, ok)
	assert.Equal(t, moved, got)

	// Undo restores the original detection geometry.
	require.True(t, s.Undo())
	got, ok = s.EffectiveBounds(id)
	require.True(t, ok)
	assert.Equal(t, orig, got)
}

func TestModifyUnknownEntity(t *testing.T) {
	s := NewStore(testEntities(1))
	b := geometry.Rect{Width: 10, Height: 10}

	err := s.Modify(uuid.New(), Modification{Kind: ModMove, Bounds: &b})

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
}

func TestUndoRedoRoundtrip(t *testing.T) {
	entities := testEntities(2)
	s := NewStore(entities)

	mutations := []func(){
		func() { _ = s.Approve(entities[0].ID) },
		func() { _ = s.Reject(entities[1].ID) },
		func() { _, _ = s.AddCustom(1, geometry.Rect{X: 1, Y: 1, Width: 5, Height: 5}, "note") },
		func() { _ = s.BulkApprove([]uuid.UUID{entities[1].ID}) },
	}

	for i, mutate := range mutations {
		mutate()
		before := s.Snapshot()

		require.True(t, s.Undo(), "mutation %d", i)
		require.True(t, s.Redo(), "mutation %d", i)

		assert.Equal(t, before, s.Snapshot(), "undo+redo must be a no-op for mutation %d", i)
	}
}

func TestUndoAllReturnsToInitialState(t *testing.T) {
	entities := testEntities(3)
	s := NewStore(entities)
	initial := s.Snapshot()

	require.NoError(t, s.Approve(entities[0].ID))
	require.NoError(t, s.Reject(entities[1].ID))
	region, err := s.AddCustom(0, geometry.Rect{X: 2, Y: 2, Width: 8, Height: 8}, "")
	require.NoError(t, err)
	require.True(t, s.RemoveCustom(region.ID))
	require.NoError(t, s.BulkApprove([]uuid.UUID{entities[1].ID, entities[2].ID}))

	steps := 0
	for s.Undo() {
		steps++
	}
	assert.Equal(t, 5, steps)
	assert.Equal(t, initial, s.Snapshot())
	assert.Equal(t, 0, s.TotalRedactions())
}

func TestNewMutationTruncatesRedoTail(t *testing.T) {
	entities := testEntities(2)
	s := NewStore(entities)

	require.NoError(t, s.Approve(entities[0].ID))
	require.NoError(t, s.Approve(entities[1].ID))
	require.True(t, s.Undo())
	require.True(t, s.CanRedo())

	// A fresh mutation discards the redo branch.
	require.NoError(t, s.Reject(entities[0].ID))
	assert.False(t, s.CanRedo())

	st, _ := s.Status(entities[1].ID)
	assert.Equal(t, StatusPending, st)
}

func TestLoadEntitiesSecondCallIsNoop(t *testing.T) {
	first := testEntities(2)
	s := NewStore(first)

	s.LoadEntities(testEntities(5))

	assert.Len(t, s.Entities(), 2)
	assert.Equal(t, first[0].ID, s.Entities()[0].ID)
}

func TestSetResolvedBoundsAtomicPublish(t *testing.T) {
	entities := testEntities(2)
	s := NewStore(entities)

	resolved := map[uuid.UUID]geometry.Rect{
		entities[0].ID: {X: 0, Y: 0, Width: 60, Height: 10},
		entities[1].ID: {X: 0, Y: 20, Width: 40, Height: 10},
		uuid.New():     {X: 9, Y: 9, Width: 9, Height: 9}, // unknown id ignored
	}
	s.SetResolvedBounds(resolved)

	got, ok := s.EffectiveBounds(entities[0].ID)
	require.True(t, ok)
	assert.Equal(t, resolved[entities[0].ID], got)
	assert.Len(t, s.Entities(), 2)

	// Resolution is not a reviewer edit: nothing to undo.
	assert.False(t, s.CanUndo())
}

func TestRemoveCustomUndoRestoresZOrder(t *testing.T) {
	s := NewStore(nil)
	r1, _ := s.AddCustom(0, geometry.Rect{X: 0, Y: 0, Width: 10, Height: 10}, "first")
	r2, _ := s.AddCustom(0, geometry.Rect{X: 1, Y: 1, Width: 10, Height: 10}, "second")
	r3, _ := s.AddCustom(0, geometry.Rect{X: 2, Y: 2, Width: 10, Height: 10}, "third")

	require.True(t, s.RemoveCustom(r2.ID))
	require.True(t, s.Undo())

	got := s.CustomRedactions()
	require.Len(t, got, 3)
	assert.Equal(t, []uuid.UUID{r1.ID, r2.ID, r3.ID},
		[]uuid.UUID{got[0].ID, got[1].ID, got[2].ID})
}
