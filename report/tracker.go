package report

import (
	"context"
	"sync"
	"time"
)

// Record captures one generated report for history listings.
type Record struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	Destination string    `json:"destination"`
	FileID      string    `json:"fileId,omitempty"`
	LocalPath   string    `json:"localPath,omitempty"`
	Bytes       int64     `json:"bytes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Destinations a report can be persisted to.
const (
	DestinationLocal = "local"
	DestinationDrive = "drive"
)

// Tracker records generated reports.
type Tracker interface {
	Save(ctx context.Context, rec Record) error
	List(ctx context.Context) ([]Record, error)
}

// MemoryTracker stores report records in memory (test/dev only).
type MemoryTracker struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryTracker creates an in-memory tracker.
func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{}
}

// Save appends a report record.
func (t *MemoryTracker) Save(ctx context.Context, rec Record) error {
	_ = ctx
	if rec.ID == "" {
		return NewError(KindValidation, "record ID is required", nil)
	}
	t.mu.Lock()
	t.records = append(t.records, rec)
	t.mu.Unlock()
	return nil
}

// List returns recorded reports, newest last.
func (t *MemoryTracker) List(ctx context.Context) ([]Record, error) {
	_ = ctx
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out, nil
}
