package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"student-loan-calc/domain"
)

// CalculationRepositoryMemory keeps the most recent calculations in memory.
type CalculationRepositoryMemory struct {
	mu       sync.Mutex
	capacity int
	order    []string
	data     map[string]domain.CalculationRecord
	now      func() time.Time
}

// NewCalculationRepositoryMemory creates a repository holding at most
// capacity records; the oldest is evicted first. capacity <= 0 means unbounded.
func NewCalculationRepositoryMemory(capacity int) *CalculationRepositoryMemory {
	return &CalculationRepositoryMemory{
		capacity: capacity,
		data:     make(map[string]domain.CalculationRecord),
		now:      time.Now,
	}
}

// Save stores the record, assigning an id and timestamp when missing.
func (r *CalculationRepositoryMemory) Save(
	_ context.Context,
	record domain.CalculationRecord,
) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = r.now().UTC()
	}
	if _, exists := r.data[record.ID]; !exists {
		r.order = append(r.order, record.ID)
	}
	r.data[record.ID] = record

	for r.capacity > 0 && len(r.order) > r.capacity {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.data, oldest)
	}
	return record.ID, nil
}

func (r *CalculationRepositoryMemory) Get(_ context.Context, id string) (domain.CalculationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.data[id]
	if !ok {
		return domain.CalculationRecord{}, fmt.Errorf("%w: %s", ErrCalculationNotFound, id)
	}
	return record, nil
}

func (r *CalculationRepositoryMemory) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}
