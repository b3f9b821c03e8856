package domain

// SavedIDs is an insertion-ordered set of bookmarked article ids.
// Methods never mutate the receiver; Toggle returns a new set.
type SavedIDs struct {
	ids []int64
}

// NewSavedIDs builds a set from ids, dropping duplicates.
func NewSavedIDs(ids ...int64) SavedIDs {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return SavedIDs{ids: out}
}

// Has reports whether id is in the set.
func (s SavedIDs) Has(id int64) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle removes id when present, appends it otherwise.
func (s SavedIDs) Toggle(id int64) SavedIDs {
	out := make([]int64, 0, len(s.ids)+1)
	removed := false
	for _, v := range s.ids {
		if v == id {
			removed = true
			continue
		}
		out = append(out, v)
	}
	if !removed {
		out = append(out, id)
	}
	return SavedIDs{ids: out}
}

// IDs returns a copy of the ids in insertion order. Never nil.
func (s SavedIDs) IDs() []int64 {
	out := make([]int64, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of saved ids.
func (s SavedIDs) Len() int { return len(s.ids) }
