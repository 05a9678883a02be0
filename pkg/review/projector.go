package review

import (
	"sort"

	"pii-redaction-be/pkg/geometry"
)

// Snapshot is a frozen copy of the reviewable state, taken under the
// store lock. Apply requests are projected from a snapshot so continued
// editing during a pending network call cannot alter a request already
// sent.
type Snapshot struct {
	Entities         []Entity
	ApprovedIDs      []string
	CustomRedactions []CustomRedaction
}

// Snapshot copies the state the projector needs in one atomic read.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{}
	for _, id := range s.entityOrder {
		snap.Entities = append(snap.Entities, *s.entities[id])
		if s.status(id) == StatusApproved {
			snap.ApprovedIDs = append(snap.ApprovedIDs, id.String())
		}
	}
	snap.CustomRedactions = s.customRedactionsLocked()
	return snap
}

// CustomRegion is one user-drawn rectangle in the apply request.
type CustomRegion struct {
	Page   int           `json:"page"`
	Bounds geometry.Rect `json:"bbox"`
	Type   EntityType    `json:"type"`
	Label  string        `json:"label,omitempty"`
}

// ApplyRequest is the final, deduplicated command set handed to the
// external apply endpoint. Entity geometry is resolved downstream by the
// endpoint using the entity id; only custom regions carry rectangles.
type ApplyRequest struct {
	DocumentID        string         `json:"documentId,omitempty"`
	ApprovedEntityIDs []string       `json:"approvedEntityIds"`
	CustomRedactions  []CustomRegion `json:"customRedactions"`
}

// Project derives the apply request from a snapshot. It is pure and
// referentially transparent: identical snapshots always yield identical
// requests. Approved ids are sorted ascending; custom regions keep their
// insertion order.
func Project(snap Snapshot) (ApplyRequest, error) {
	if len(snap.ApprovedIDs) == 0 && len(snap.CustomRedactions) == 0 {
		return ApplyRequest{}, &EmptySelectionError{}
	}

	ids := make([]string, 0, len(snap.ApprovedIDs))
	seen := make(map[string]struct{}, len(snap.ApprovedIDs))
	for _, id := range snap.ApprovedIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	regions := make([]CustomRegion, 0, len(snap.CustomRedactions))
	for _, r := range snap.CustomRedactions {
		regions = append(regions, CustomRegion{
			Page:   r.Page,
			Bounds: r.Bounds,
			Type:   r.Type,
			Label:  r.Label,
		})
	}

	return ApplyRequest{ApprovedEntityIDs: ids, CustomRedactions: regions}, nil
}
