package review

import "github.com/google/uuid"

// action is one undoable event in the history log. Each variant carries
// enough data to be fully reversed; apply and invert are exact inverses.
// Variants mutate store maps directly and never touch the history.
type action interface {
	apply(s *Store)
	invert(s *Store)
}

// statusChange records a single entity's status transition.
type statusChange struct {
	id   uuid.UUID
	from ApprovalStatus
	to   ApprovalStatus
}

// setStatusAction covers approve and reject of one entity.
type setStatusAction struct {
	change statusChange
}

func (a setStatusAction) apply(s *Store) {
	s.setStatus(a.change.id, a.change.to)
}

func (a setStatusAction) invert(s *Store) {
	s.setStatus(a.change.id, a.change.from)
}

// bulkStatusAction covers bulk approve/reject. The whole batch is one
// history entry, so one undo reverses it atomically.
type bulkStatusAction struct {
	changes []statusChange
}

func (a bulkStatusAction) apply(s *Store) {
	for _, c := range a.changes {
		s.setStatus(c.id, c.to)
	}
}

func (a bulkStatusAction) invert(s *Store) {
	for i := len(a.changes) - 1; i >= 0; i-- {
		s.setStatus(a.changes[i].id, a.changes[i].from)
	}
}

type addCustomAction struct {
	region CustomRedaction
}

func (a addCustomAction) apply(s *Store) {
	r := a.region
	s.customs[r.ID] = &r
	s.customOrder = append(s.customOrder, r.ID)
}

func (a addCustomAction) invert(s *Store) {
	delete(s.customs, a.region.ID)
	s.customOrder = removeID(s.customOrder, a.region.ID)
}

// removeCustomAction remembers the region's z-order index so invert can
// restore it in place.
type removeCustomAction struct {
	region CustomRedaction
	index  int
}

func (a removeCustomAction) apply(s *Store) {
	delete(s.customs, a.region.ID)
	s.customOrder = removeID(s.customOrder, a.region.ID)
}

func (a removeCustomAction) invert(s *Store) {
	r := a.region
	s.customs[r.ID] = &r
	if a.index < 0 || a.index > len(s.customOrder) {
		s.customOrder = append(s.customOrder, r.ID)
		return
	}
	s.customOrder = append(s.customOrder[:a.index],
		append([]uuid.UUID{r.ID}, s.customOrder[a.index:]...)...)
}

// modifyEntityAction appends one modification to an entity's overlay log.
type modifyEntityAction struct {
	id  uuid.UUID
	mod Modification
}

func (a modifyEntityAction) apply(s *Store) {
	s.mods[a.id] = append(s.mods[a.id], a.mod)
}

func (a modifyEntityAction) invert(s *Store) {
	list := s.mods[a.id]
	if len(list) == 0 {
		return
	}
	list = list[:len(list)-1]
	if len(list) == 0 {
		delete(s.mods, a.id)
		return
	}
	s.mods[a.id] = list
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
