package storage

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/samvad-hq/cryptonews-reader/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// putRaw stores an arbitrary value under the saved ids key.
func (b *boltStore) putRaw(raw []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(prefsBucket)).Put([]byte(SavedIDsKey), raw)
	})
}

func TestBoltStoreRoundTripsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reader.db")

	storeRaw, err := openBolt(path)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}

	got, err := storeRaw.LoadSaved()
	if err != nil || got.Len() != 0 {
		t.Fatalf("expected empty saved set, got %v err=%v", got.IDs(), err)
	}

	if err := storeRaw.SaveSaved(domain.NewSavedIDs(3, 1, 2)); err != nil {
		t.Fatalf("SaveSaved: %v", err)
	}
	if err := storeRaw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := openBolt(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err = reopened.LoadSaved()
	if err != nil {
		t.Fatalf("LoadSaved: %v", err)
	}
	if diff := cmp.Diff([]int64{3, 1, 2}, got.IDs()); diff != "" {
		t.Fatalf("saved ids mismatch (-want +got):\n%s", diff)
	}
}

func TestBoltStoreToleratesCorruptValue(t *testing.T) {
	storeRaw, err := openBolt(filepath.Join(t.TempDir(), "reader.db"))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	for _, raw := range []string{`{not json`, `{"ids":[1]}`, `"7"`} {
		if err := store.putRaw([]byte(raw)); err != nil {
			t.Fatalf("putRaw: %v", err)
		}
		got, err := store.LoadSaved()
		if err != nil {
			t.Fatalf("LoadSaved(%s): %v", raw, err)
		}
		if got.Len() != 0 {
			t.Fatalf("LoadSaved(%s) = %v, want empty", raw, got.IDs())
		}
	}
}

func TestDecodeSavedDropsNonIntegers(t *testing.T) {
	got := decodeSaved([]byte(`[1, "2", 3.5, null, 4, 1, true]`))
	if diff := cmp.Diff([]int64{1, 4}, got.IDs()); diff != "" {
		t.Fatalf("decodeSaved mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSavedDropsOutOfRangeNumbers(t *testing.T) {
	got := decodeSaved([]byte(`[1, 1e300, -1e300, 9.3e18, -9.3e18, -5, 2]`))
	if diff := cmp.Diff([]int64{1, -5, 2}, got.IDs()); diff != "" {
		t.Fatalf("decodeSaved mismatch (-want +got):\n%s", diff)
	}
}

func TestNewStoreBackends(t *testing.T) {
	store, err := NewStore("none", "")
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.SaveSaved(domain.NewSavedIDs(1)); err != nil {
		t.Fatalf("noop store SaveSaved: %v", err)
	}

	mem, err := NewStore("memory", "")
	if err != nil {
		t.Fatalf("NewStore memory: %v", err)
	}
	if err := mem.SaveSaved(domain.NewSavedIDs(9, 8)); err != nil {
		t.Fatalf("memory SaveSaved: %v", err)
	}
	got, _ := mem.LoadSaved()
	if diff := cmp.Diff([]int64{9, 8}, got.IDs()); diff != "" {
		t.Fatalf("memory round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := NewStore("bbolt", " "); err == nil {
		t.Fatalf("expected error for bbolt without path")
	}
	if _, err := NewStore("redis", "x"); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}
