package historical

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu     sync.RWMutex
	data   []Hire
	nextID int64
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1}
}

// Create stores a new hire record and assigns the next identifier.
func (r *MemoryRepo) Create(ctx context.Context, h Hire) (Hire, error) {
	if err := ctx.Err(); err != nil {
		return Hire{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	h.ID = r.nextID
	r.nextID++
	h.CreatedAt = time.Now().UTC()
	r.data = append(r.data, h)
	return h, nil
}

// List returns hires in insertion order, optionally filtered by outcome.
func (r *MemoryRepo) List(ctx context.Context, outcome string, limit, offset int) ([]Hire, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Hire, 0, len(r.data))
	for _, h := range r.data {
		if outcome != "" && h.Outcome != outcome {
			continue
		}
		matched = append(matched, h)
	}

	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []Hire{}, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], nil
}

// Stats aggregates the stored hires.
func (r *MemoryRepo) Stats(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		TotalHires:       len(r.data),
		OutcomeBreakdown: make(map[string]int),
	}
	var tenureSum float64
	var tenureCount int
	var ratingSum float64
	var ratingCount int
	for _, h := range r.data {
		stats.OutcomeBreakdown[h.Outcome]++
		if h.TenureMonths != nil {
			tenureSum += float64(*h.TenureMonths)
			tenureCount++
		}
		if h.PerformanceRating != nil {
			ratingSum += *h.PerformanceRating
			ratingCount++
		}
	}
	if tenureCount > 0 {
		avg := tenureSum / float64(tenureCount)
		stats.AverageTenureMonths = &avg
	}
	if ratingCount > 0 {
		avg := ratingSum / float64(ratingCount)
		stats.AveragePerformanceRating = &avg
	}
	return stats, nil
}

// Delete removes a hire record.
func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, h := range r.data {
		if h.ID == id {
			r.data = append(r.data[:i], r.data[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
