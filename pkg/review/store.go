package review

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"pii-redaction-be/pkg/geometry"
)

// Store is the redaction review state machine for one document.
//
// All mutations are serialized by an internal mutex, which preserves the
// single-writer discipline the review model assumes: asynchronous work
// (position resolution, apply calls) reads a Snapshot and publishes its
// result back as one atomic mutation.
type Store struct {
	mu sync.Mutex

	entities    map[uuid.UUID]*Entity
	entityOrder []uuid.UUID

	// statuses holds only non-pending entries; absence means Pending.
	statuses map[uuid.UUID]ApprovalStatus

	customs     map[uuid.UUID]*CustomRedaction
	customOrder []uuid.UUID

	mods map[uuid.UUID][]Modification

	history []action
	cursor  int

	selected    *uuid.UUID
	currentPage int
	zoom        float64

	now   func() time.Time
	newID func() uuid.UUID
}

// NewStore creates a store pre-loaded with the detector's entities.
func NewStore(entities []Entity) *Store {
	s := &Store{
		entities: make(map[uuid.UUID]*Entity),
		statuses: make(map[uuid.UUID]ApprovalStatus),
		customs:  make(map[uuid.UUID]*CustomRedaction),
		mods:     make(map[uuid.UUID][]Modification),
		zoom:     1.0,
		now:      time.Now,
		newID:    uuid.New,
	}
	s.LoadEntities(entities)
	return s
}

// LoadEntities loads the detector output exactly once. A second call is a
// no-op when entities are already present, guarding against duplicate
// initialization from repeated session starts.
func (s *Store) LoadEntities(entities []Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entities) > 0 {
		return
	}
	for i := range entities {
		e := entities[i]
		if _, dup := s.entities[e.ID]; dup {
			continue
		}
		s.entities[e.ID] = &e
		s.entityOrder = append(s.entityOrder, e.ID)
	}
}

// setStatus writes the tri-state classification. Pending entries are
// removed from the map so approved and rejected sets stay disjoint by
// construction.
func (s *Store) setStatus(id uuid.UUID, status ApprovalStatus) {
	if status == StatusPending {
		delete(s.statuses, id)
		return
	}
	s.statuses[id] = status
}

func (s *Store) status(id uuid.UUID) ApprovalStatus {
	return s.statuses[id]
}

// push truncates any redo tail, appends the action and applies it.
// Standard linear undo discipline: redo history is discarded, not branched.
func (s *Store) push(a action) {
	s.history = append(s.history[:s.cursor], a)
	s.cursor = len(s.history)
	a.apply(s)
}

// Approve moves an entity from rejected-or-pending into approved.
// Approving an already-approved entity is a no-op and records no history
// entry, keeping undo strictly meaningful.
func (s *Store) Approve(id uuid.UUID) error {
	return s.transition(id, StatusApproved)
}

// Reject moves an entity from approved-or-pending into rejected.
func (s *Store) Reject(id uuid.UUID) error {
	return s.transition(id, StatusRejected)
}

func (s *Store) transition(id uuid.UUID, to ApprovalStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[id]; !ok {
		return &NotFoundError{Kind: "entity", ID: id.String()}
	}
	from := s.status(id)
	if from == to {
		return nil
	}
	s.push(setStatusAction{change: statusChange{id: id, from: from, to: to}})
	return nil
}

// BulkApprove applies one status transition per id as a single history
// entry; one undo reverses the whole batch.
func (s *Store) BulkApprove(ids []uuid.UUID) error {
	return s.bulkTransition(ids, StatusApproved)
}

// BulkReject is the rejecting counterpart of BulkApprove.
func (s *Store) BulkReject(ids []uuid.UUID) error {
	return s.bulkTransition(ids, StatusRejected)
}

func (s *Store) bulkTransition(ids []uuid.UUID, to ApprovalStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changes := make([]statusChange, 0, len(ids))
	for _, id := range ids {
		if _, ok := s.entities[id]; !ok {
			return &NotFoundError{Kind: "entity", ID: id.String()}
		}
		if from := s.status(id); from != to {
			changes = append(changes, statusChange{id: id, from: from, to: to})
		}
	}
	if len(changes) == 0 {
		return nil
	}
	s.push(bulkStatusAction{changes: changes})
	return nil
}

// AddCustom inserts a user-drawn region with a freshly generated id.
func (s *Store) AddCustom(page int, bounds geometry.Rect, label string) (CustomRedaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page < 0 {
		return CustomRedaction{}, &ValidationError{Field: "page", Reason: "must not be negative"}
	}
	if !bounds.IsValid() {
		return CustomRedaction{}, &ValidationError{Field: "bbox", Reason: "width and height must be positive"}
	}

	region := CustomRedaction{
		ID:        s.newID(),
		Page:      page,
		Bounds:    bounds,
		Type:      TypeCustom,
		Label:     label,
		CreatedAt: s.now(),
	}
	s.push(addCustomAction{region: region})
	return region, nil
}

// RemoveCustom deletes a region. Unknown ids are a silent no-op: deletion
// of a non-existent region is not an error since UI events may race.
func (s *Store) RemoveCustom(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	region, ok := s.customs[id]
	if !ok {
		return false
	}
	index := 0
	for i, v := range s.customOrder {
		if v == id {
			index = i
			break
		}
	}
	s.push(removeCustomAction{region: *region, index: index})
	return true
}

// Modify appends a geometry or text edit to an entity's modification log.
func (s *Store) Modify(id uuid.UUID, mod Modification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[id]; !ok {
		return &NotFoundError{Kind: "entity", ID: id.String()}
	}
	if mod.Kind == ModResize || mod.Kind == ModMove {
		if mod.Bounds == nil || !mod.Bounds.IsValid() {
			return &ValidationError{Field: "bbox", Reason: "width and height must be positive"}
		}
	}
	if mod.Timestamp.IsZero() {
		mod.Timestamp = s.now()
	}
	s.push(modifyEntityAction{id: id, mod: mod})
	return nil
}

// SetResolvedBounds publishes a page's full resolved geometry map in one
// atomic update. Resolution results are detector-grade data, not reviewer
// edits, so they do not enter the undo history.
func (s *Store) SetResolvedBounds(bounds map[uuid.UUID]geometry.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, rect := range bounds {
		if e, ok := s.entities[id]; ok {
			r := rect
			e.Bounds = &r
		}
	}
}

// Undo steps the history cursor back one action and reverts its effect.
func (s *Store) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor == 0 {
		return false
	}
	s.cursor--
	s.history[s.cursor].invert(s)
	return true
}

// Redo re-applies the action at the cursor, if any.
func (s *Store) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor >= len(s.history) {
		return false
	}
	s.history[s.cursor].apply(s)
	s.cursor++
	return true
}

func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor > 0
}

func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor < len(s.history)
}

// Status returns the reviewer's classification of one entity.
func (s *Store) Status(id uuid.UUID) (ApprovalStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[id]; !ok {
		return StatusPending, &NotFoundError{Kind: "entity", ID: id.String()}
	}
	return s.status(id), nil
}

// ApprovedEntities returns all currently approved entities in load order.
func (s *Store) ApprovedEntities() []Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entity, 0)
	for _, id := range s.entityOrder {
		if s.status(id) == StatusApproved {
			out = append(out, *s.entities[id])
		}
	}
	return out
}

// Entities returns all loaded entities in load order.
func (s *Store) Entities() []Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entity, 0, len(s.entityOrder))
	for _, id := range s.entityOrder {
		out = append(out, *s.entities[id])
	}
	return out
}

// CustomRedactions returns user-drawn regions in z-order (insertion
// order, last added topmost).
func (s *Store) CustomRedactions() []CustomRedaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customRedactionsLocked()
}

func (s *Store) customRedactionsLocked() []CustomRedaction {
	out := make([]CustomRedaction, 0, len(s.customOrder))
	for _, id := range s.customOrder {
		out = append(out, *s.customs[id])
	}
	return out
}

// TotalRedactions is the live "items to apply" count: approved entities
// plus custom regions. Always recomputed, never cached.
func (s *Store) TotalRedactions() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.customOrder)
	for _, st := range s.statuses {
		if st == StatusApproved {
			n++
		}
	}
	return n
}

// EffectiveBounds resolves an entity's current geometry: the most recent
// modification carrying bounds wins, else the original detection bounds.
// ok is false when neither exists.
func (s *Store) EffectiveBounds(id uuid.UUID) (geometry.Rect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectiveBoundsLocked(id)
}

func (s *Store) effectiveBoundsLocked(id uuid.UUID) (geometry.Rect, bool) {
	list := s.mods[id]
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Bounds != nil {
			return *list[i].Bounds, true
		}
	}
	if e, ok := s.entities[id]; ok && e.Bounds != nil {
		return *e.Bounds, true
	}
	return geometry.Rect{}, false
}

// Select marks an entity as the UI selection. Transient state; not undoable.
func (s *Store) Select(id *uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = id
}

// Selected returns the current selection, or nil.
func (s *Store) Selected() *uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// SetPage records the page the reviewer is looking at.
func (s *Store) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentPage = page
}

// Page returns the current page index.
func (s *Store) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPage
}

// SetZoom records the active zoom factor. Non-positive values are ignored.
func (s *Store) SetZoom(zoom float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if zoom > 0 {
		s.zoom = zoom
	}
}

// Zoom returns the active zoom factor.
func (s *Store) Zoom() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoom
}
