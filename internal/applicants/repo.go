package applicants

import (
	"context"

	"screener-backend/internal/screening"
)

// Patch carries a partial applicant update. Nil fields are left untouched.
type Patch struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Source          *string `json:"source"`
	PositionApplied *string `json:"position_applied"`
}

// Repo defines persistence operations for applicants. Identifiers are
// assigned by the store, monotonically increasing from 1; Clear resets the
// counter. List gives no ordering guarantee beyond insertion order; callers
// sort.
type Repo interface {
	Create(ctx context.Context, a Applicant) (Applicant, error)
	GetByID(ctx context.Context, id int64) (Applicant, error)
	List(ctx context.Context) ([]Applicant, error)
	Update(ctx context.Context, id int64, patch Patch) (Applicant, error)
	AddDocument(ctx context.Context, doc Document) (Document, error)
	SetScreeningResult(ctx context.Context, applicantID int64, result screening.Result) error
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}
