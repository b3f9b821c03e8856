package storage

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/samvad-hq/cryptonews-reader/internal/domain"
)

// Package storage persists the user's saved article ids.

// SavedIDsKey is the fixed key the saved id list lives under.
const SavedIDsKey = "crypto_news_saved_ids_v1"

// Storage backend types.
const (
	TypeNone   = "none"
	TypeMemory = "memory"
	TypeBBolt  = "bbolt"
)

// Store loads and rewrites the saved id set.
type Store interface {
	Close() error
	LoadSaved() (domain.SavedIDs, error)
	SaveSaved(ids domain.SavedIDs) error
}

// NewStore creates the configured storage backend.
func NewStore(typ, path string) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))

	switch typ {
	case "", TypeNone, "disabled":
		return noopStore{}, nil
	case TypeMemory:
		return &memoryStore{}, nil
	case TypeBBolt:
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

// encodeSaved renders the set as a JSON array of ids.
func encodeSaved(ids domain.SavedIDs) ([]byte, error) {
	return json.Marshal(ids.IDs())
}

// decodeSaved parses a stored value. Absent, invalid or non-array data yields
// an empty set; non-integer elements are dropped.
func decodeSaved(raw []byte) domain.SavedIDs {
	if len(raw) == 0 {
		return domain.NewSavedIDs()
	}
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return domain.NewSavedIDs()
	}
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		f, ok := it.(float64)
		if !ok || f != math.Trunc(f) || f < -(1<<63) || f >= 1<<63 {
			continue
		}
		ids = append(ids, int64(f))
	}
	return domain.NewSavedIDs(ids...)
}

type noopStore struct{}

func (noopStore) Close() error                        { return nil }
func (noopStore) LoadSaved() (domain.SavedIDs, error) { return domain.NewSavedIDs(), nil }
func (noopStore) SaveSaved(domain.SavedIDs) error     { return nil }

// memoryStore keeps the encoded value in process, mirroring the bbolt layout.
type memoryStore struct {
	mu  sync.Mutex
	raw []byte
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) LoadSaved() (domain.SavedIDs, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decodeSaved(m.raw), nil
}

func (m *memoryStore) SaveSaved(ids domain.SavedIDs) error {
	raw, err := encodeSaved(ids)
	if err != nil {
		return fmt.Errorf("encode saved ids: %w", err)
	}
	m.mu.Lock()
	m.raw = raw
	m.mu.Unlock()
	return nil
}
