package courses

import (
	"encoding/json"
	"log"
	"slices"
	"strings"

	"github.com/five82/notedeck/internal/storage"
)

// HiddenKey is the storage key holding the hidden course ids.
const HiddenKey = "hiddenCourses"

// HiddenSet is the set of course ids the user has hidden. Ids need not exist
// in the current course collection.
type HiddenSet map[int64]struct{}

// NewHiddenSet builds a set from ids.
func NewHiddenSet(ids ...int64) HiddenSet {
	set := make(HiddenSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports membership. It is safe on a nil set.
func (h HiddenSet) Has(id int64) bool {
	_, ok := h[id]
	return ok
}

// Toggle flips membership of id and reports whether it is now hidden.
func (h HiddenSet) Toggle(id int64) bool {
	if h.Has(id) {
		delete(h, id)
		return false
	}
	h[id] = struct{}{}
	return true
}

// IDs returns the members in ascending order.
func (h HiddenSet) IDs() []int64 {
	ids := make([]int64, 0, len(h))
	for id := range h {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Clone returns an independent copy.
func (h HiddenSet) Clone() HiddenSet {
	out := make(HiddenSet, len(h))
	for id := range h {
		out[id] = struct{}{}
	}
	return out
}

// HiddenStore persists a HiddenSet as a JSON array under HiddenKey. Both
// operations absorb and log failures.
type HiddenStore struct {
	kv     storage.Store
	logger *log.Logger
}

// NewHiddenStore wraps kv. A nil logger discards messages.
func NewHiddenStore(kv storage.Store, logger *log.Logger) *HiddenStore {
	return &HiddenStore{kv: kv, logger: logger}
}

// Load returns the persisted set, or an empty set when nothing usable is
// stored.
func (s *HiddenStore) Load() HiddenSet {
	if s == nil || s.kv == nil {
		return HiddenSet{}
	}
	raw, ok, err := s.kv.Get(HiddenKey)
	if err != nil {
		s.logf("load hidden courses: %v", err)
		return HiddenSet{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return HiddenSet{}
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.logf("load hidden courses: malformed value %q: %v", raw, err)
		return HiddenSet{}
	}
	return NewHiddenSet(ids...)
}

// Save writes the full set. Failures are logged and otherwise ignored.
func (s *HiddenStore) Save(set HiddenSet) {
	if s == nil || s.kv == nil {
		return
	}
	data, err := json.Marshal(set.IDs())
	if err != nil {
		s.logf("save hidden courses: %v", err)
		return
	}
	if err := s.kv.Set(HiddenKey, string(data)); err != nil {
		s.logf("save hidden courses: %v", err)
	}
}

func (s *HiddenStore) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
