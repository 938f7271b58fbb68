package historical

import "context"

// Repo defines persistence operations for historical hires.
type Repo interface {
	Create(ctx context.Context, h Hire) (Hire, error)
	List(ctx context.Context, outcome string, limit, offset int) ([]Hire, error)
	Stats(ctx context.Context) (Stats, error)
	Delete(ctx context.Context, id int64) error
}
