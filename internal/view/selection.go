package view

// Selection is the set of checked record IDs. Membership is independent of
// the active filters: selecting a record and then filtering it out of view
// leaves it selected, only hidden.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle flips the membership of a single ID.
func (s *Selection) Toggle(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
}

// Has reports whether the ID is selected.
func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected IDs.
func (s *Selection) Len() int { return len(s.ids) }

// ToggleAll implements select-all over the currently filtered IDs: when
// every filtered ID is already selected the selection is cleared entirely,
// otherwise it becomes exactly the filtered set.
func (s *Selection) ToggleAll(filteredIDs []string) {
	if len(filteredIDs) > 0 && s.Len() == len(filteredIDs) {
		s.ids = make(map[string]struct{})
		return
	}
	s.ids = make(map[string]struct{}, len(filteredIDs))
	for _, id := range filteredIDs {
		s.ids[id] = struct{}{}
	}
}

// IDs returns the selected IDs in unspecified order.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}
