package review

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pii-redaction-be/pkg/geometry"
)

func TestProjectEmptySelection(t *testing.T) {
	s := NewStore(testEntities(2))

	_, err := Project(s.Snapshot())

	var empty *EmptySelectionError
	require.True(t, errors.As(err, &empty))
}

func TestProjectContents(t *testing.T) {
	entities := testEntities(3)
	s := NewStore(entities)

	require.NoError(t, s.Approve(entities[0].ID))
	require.NoError(t, s.Approve(entities[2].ID))
	require.NoError(t, s.Reject(entities[1].ID))
	region, err := s.AddCustom(1, geometry.Rect{X: 10, Y: 10, Width: 50, Height: 20}, "signature")
	require.NoError(t, err)

	req, err := Project(s.Snapshot())
	require.NoError(t, err)

	assert.Len(t, req.ApprovedEntityIDs, 2)
	assert.Contains(t, req.ApprovedEntityIDs, entities[0].ID.String())
	assert.Contains(t, req.ApprovedEntityIDs, entities[2].ID.String())
	assert.NotContains(t, req.ApprovedEntityIDs, entities[1].ID.String())

	// Ascending order for testability.
	assert.True(t, req.ApprovedEntityIDs[0] < req.ApprovedEntityIDs[1])

	require.Len(t, req.CustomRedactions, 1)
	assert.Equal(t, 1, req.CustomRedactions[0].Page)
	assert.Equal(t, region.Bounds, req.CustomRedactions[0].Bounds)
	assert.Equal(t, TypeCustom, req.CustomRedactions[0].Type)
	assert.Equal(t, "signature", req.CustomRedactions[0].Label)
}

func TestProjectIdempotent(t *testing.T) {
	entities := testEntities(4)
	s := NewStore(entities)
	require.NoError(t, s.BulkApprove(entityIDs(entities)))
	_, err := s.AddCustom(0, geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4}, "")
	require.NoError(t, err)

	snap := s.Snapshot()
	first, err := Project(snap)
	require.NoError(t, err)
	second, err := Project(snap)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b, "projection must be byte-identical across calls")
}

func TestProjectSnapshotIsFrozen(t *testing.T) {
	entities := testEntities(2)
	s := NewStore(entities)
	require.NoError(t, s.Approve(entities[0].ID))

	snap := s.Snapshot()

	// Edits after the snapshot do not leak into the in-flight request.
	require.NoError(t, s.Approve(entities[1].ID))
	_, err := s.AddCustom(0, geometry.Rect{Width: 5, Height: 5}, "")
	require.NoError(t, err)

	req, err := Project(snap)
	require.NoError(t, err)
	assert.Equal(t, []string{entities[0].ID.String()}, req.ApprovedEntityIDs)
	assert.Empty(t, req.CustomRedactions)
}

func entityIDs(entities []Entity) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.ID)
	}
	return out
}
