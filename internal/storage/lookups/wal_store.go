package lookups

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"
	"github.com/vadiminshakov/predictor/internal/domain"
)

const (
	defaultLookupDir   = "./wal/lookups"
	lookupSegmentLimit = 200
	lookupMaxSegments  = 5
	lookupKeyPrefix    = "lookup_"
)

// WALStore journals finished prediction lookups.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore initializes a WAL-backed lookup journal under the provided directory.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		dir = defaultLookupDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "lookup_",
		SegmentThreshold: lookupSegmentLimit,
		MaxSegments:      lookupMaxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init lookup WAL")
	}

	return &WALStore{wal: wal}, nil
}

// Save appends the lookup event. Callers must ensure event.Symbol is set.
func (s *WALStore) Save(event domain.LookupEvent) error {
	if s == nil || s.wal == nil {
		return errors.New("lookup store is not initialized")
	}
	if event.Symbol == "" {
		return fmt.Errorf("lookup event symbol is required")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal lookup event")
	}

	key := fmt.Sprintf("%s%s", lookupKeyPrefix, event.Symbol)

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, key, payload)
}

// EventsAfter returns all lookup events written after the provided WAL index.
func (s *WALStore) EventsAfter(index uint64) ([]domain.LookupEventRecord, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("lookup store is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.wal.CurrentIndex()
	if current <= index {
		return nil, nil
	}

	records := make([]domain.LookupEventRecord, 0, current-index)
	for idx := index + 1; idx <= current; idx++ {
		key, payload, err := s.wal.Get(idx)
		if err != nil || !strings.HasPrefix(key, lookupKeyPrefix) {
			continue
		}
		var event domain.LookupEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, errors.Wrap(err, "decode lookup event")
		}
		records = append(records, domain.LookupEventRecord{
			Index: idx,
			Event: event,
		})
	}

	return records, nil
}

// CurrentIndex returns the latest WAL index stored.
func (s *WALStore) CurrentIndex() uint64 {
	if s == nil || s.wal == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wal.CurrentIndex()
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("lookup store is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
