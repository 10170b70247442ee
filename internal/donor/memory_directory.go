package donor

import (
	"context"
	"sync"
)

// MemoryDirectory is an in-memory Directory used in tests.
type MemoryDirectory struct {
	mu      sync.RWMutex
	records []Record
	failing bool
}

// NewMemoryDirectory builds an in-memory directory for testing.
func NewMemoryDirectory(records ...Record) *MemoryDirectory {
	return &MemoryDirectory{records: records}
}

// Add appends a donor record.
func (d *MemoryDirectory) Add(rec Record) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = append(d.records, rec)
}

// SetFailing makes subsequent lookups return ErrUnavailable.
func (d *MemoryDirectory) SetFailing(failing bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failing = failing
}

func (d *MemoryDirectory) Find(_ context.Context, criteria Criteria) ([]Record, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.failing {
		return nil, ErrUnavailable
	}

	var matches []Record
	for _, rec := range d.records {
		if rec.BloodGroup == criteria.BloodGroup && rec.City == criteria.City && rec.State == criteria.State {
			matches = append(matches, rec)
		}
	}
	return matches, nil
}
