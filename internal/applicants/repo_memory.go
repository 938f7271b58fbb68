package applicants

import (
	"context"
	"sync"
	"time"

	"screener-backend/internal/screening"
)

// MemoryRepo is an in-memory implementation of Repo. Every mutation holds
// the lock for the full read-modify-write; returned records are deep copies
// so callers cannot alias internal state.
type MemoryRepo struct {
	mu        sync.RWMutex
	data      map[int64]Applicant
	order     []int64
	nextID    int64
	nextDocID int64
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data:      make(map[int64]Applicant),
		nextID:    1,
		nextDocID: 1,
	}
}

// Create stores a new applicant and assigns the next identifier.
func (r *MemoryRepo) Create(ctx context.Context, a Applicant) (Applicant, error) {
	if err := ctx.Err(); err != nil {
		return Applicant{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	a.ID = r.nextID
	r.nextID++
	a.CreatedAt = now
	a.UpdatedAt = now
	a.Documents = nil
	a.ScreeningResult = nil

	r.data[a.ID] = a
	r.order = append(r.order, a.ID)
	return copyApplicant(a), nil
}

// GetByID returns the applicant with the given identifier.
func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Applicant, error) {
	if err := ctx.Err(); err != nil {
		return Applicant{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.data[id]
	if !ok {
		return Applicant{}, ErrNotFound
	}
	return copyApplicant(a), nil
}

// List returns all applicants in insertion order.
func (r *MemoryRepo) List(ctx context.Context) ([]Applicant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Applicant, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, copyApplicant(r.data[id]))
	}
	return out, nil
}

// Update merges the provided fields into an existing applicant.
func (r *MemoryRepo) Update(ctx context.Context, id int64, patch Patch) (Applicant, error) {
	if err := ctx.Err(); err != nil {
		return Applicant{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.data[id]
	if !ok {
		return Applicant{}, ErrNotFound
	}
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Email != nil {
		a.Email = *patch.Email
	}
	if patch.Phone != nil {
		a.Phone = *patch.Phone
	}
	if patch.Source != nil {
		a.Source = *patch.Source
	}
	if patch.PositionApplied != nil {
		a.PositionApplied = *patch.PositionApplied
	}
	a.UpdatedAt = time.Now().UTC()
	r.data[id] = a
	return copyApplicant(a), nil
}

// AddDocument attaches a document to an existing applicant.
func (r *MemoryRepo) AddDocument(ctx context.Context, doc Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.data[doc.ApplicantID]
	if !ok {
		return Document{}, ErrNotFound
	}
	doc.ID = r.nextDocID
	r.nextDocID++
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}
	a.Documents = append(a.Documents, doc)
	r.data[doc.ApplicantID] = a
	return doc, nil
}

// SetScreeningResult attaches the screening result to an applicant.
func (r *MemoryRepo) SetScreeningResult(ctx context.Context, applicantID int64, result screening.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.data[applicantID]
	if !ok {
		return ErrNotFound
	}
	stored := result
	a.ScreeningResult = &stored
	a.UpdatedAt = time.Now().UTC()
	r.data[applicantID] = a
	return nil
}

// Delete removes an applicant and its documents.
func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Clear empties the store and resets the identifier counters to 1.
func (r *MemoryRepo) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = make(map[int64]Applicant)
	r.order = nil
	r.nextID = 1
	r.nextDocID = 1
	return nil
}

func copyApplicant(a Applicant) Applicant {
	out := a
	if a.Documents != nil {
		out.Documents = make([]Document, len(a.Documents))
		copy(out.Documents, a.Documents)
	}
	if a.ScreeningResult != nil {
		result := *a.ScreeningResult
		if a.ScreeningResult.Strengths != nil {
			result.Strengths = append([]string(nil), a.ScreeningResult.Strengths...)
		}
		if a.ScreeningResult.Weaknesses != nil {
			result.Weaknesses = append([]string(nil), a.ScreeningResult.Weaknesses...)
		}
		out.ScreeningResult = &result
	}
	return out
}
