package courses

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/five82/notedeck/internal/storage"
)

type failingStore struct {
	getErr, setErr error
	sets           int
}

func (f *failingStore) Get(string) (string, bool, error) { return "", false, f.getErr }
func (f *failingStore) Set(string, string) error {
	f.sets++
	return f.setErr
}
func (f *failingStore) Close() error { return nil }

func TestHiddenSetToggle(t *testing.T) {
	set := HiddenSet{}
	if !set.Toggle(5) || !set.Has(5) {
		t.Fatalf("first toggle should hide")
	}
	if set.Toggle(5) || set.Has(5) {
		t.Fatalf("second toggle should unhide")
	}
	var nilSet HiddenSet
	if nilSet.Has(1) {
		t.Fatalf("nil set has no members")
	}
}

func TestHiddenStoreRoundTrip(t *testing.T) {
	kv := storage.NewMemoryStore()
	store := NewHiddenStore(kv, nil)

	store.Save(NewHiddenSet(3, 1, 2))
	raw, ok, err := kv.Get(HiddenKey)
	if err != nil || !ok {
		t.Fatalf("expected persisted value, ok=%v err=%v", ok, err)
	}
	if raw != "[1,2,3]" {
		t.Fatalf("persisted %q, want sorted JSON array", raw)
	}

	got := store.Load()
	if !equalIDs(got.IDs(), []int64{1, 2, 3}) {
		t.Fatalf("Load = %v, want [1 2 3]", got.IDs())
	}
}

func TestHiddenStoreLoadAcceptsAnyOrder(t *testing.T) {
	kv := storage.NewMemoryStore()
	_ = kv.Set(HiddenKey, "[3,1,2,2]")
	got := NewHiddenStore(kv, nil).Load()
	if !equalIDs(got.IDs(), []int64{1, 2, 3}) {
		t.Fatalf("Load = %v, want [1 2 3]", got.IDs())
	}
}

func TestHiddenStoreLoadDegrades(t *testing.T) {
	tests := []struct {
		name  string
		value *string
	}{
		{"absent", nil},
		{"blank", strPtr("  ")},
		{"malformed", strPtr("{not json")},
		{"wrong shape", strPtr(`{"ids":[1]}`)},
		{"strings", strPtr(`["a","b"]`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemoryStore()
			if tt.value != nil {
				_ = kv.Set(HiddenKey, *tt.value)
			}
			if got := NewHiddenStore(kv, nil).Load(); len(got) != 0 {
				t.Fatalf("expected empty set, got %v", got.IDs())
			}
		})
	}
}

func TestHiddenStoreLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	kv := &failingStore{getErr: errors.New("disk gone"), setErr: errors.New("quota exceeded")}
	store := NewHiddenStore(kv, logger)

	if got := store.Load(); len(got) != 0 {
		t.Fatalf("expected empty set on read failure, got %v", got.IDs())
	}
	store.Save(NewHiddenSet(1))
	if kv.sets != 1 {
		t.Fatalf("expected one write attempt, got %d", kv.sets)
	}
	out := buf.String()
	if !strings.Contains(out, "disk gone") || !strings.Contains(out, "quota exceeded") {
		t.Fatalf("expected both failures logged, got %q", out)
	}
}

func TestHiddenStoreSaveOfLoadIsIdempotent(t *testing.T) {
	kv := storage.NewMemoryStore()
	_ = kv.Set(HiddenKey, "[7,4]")
	store := NewHiddenStore(kv, nil)

	store.Save(store.Load())
	first, _, _ := kv.Get(HiddenKey)
	store.Save(store.Load())
	second, _, _ := kv.Get(HiddenKey)
	if first != second || first != "[4,7]" {
		t.Fatalf("save(load()) not stable: %q then %q", first, second)
	}
}

func TestHiddenStoreNilSafe(t *testing.T) {
	var store *HiddenStore
	if got := store.Load(); len(got) != 0 {
		t.Fatalf("nil store should load empty set")
	}
	store.Save(NewHiddenSet(1))
}
