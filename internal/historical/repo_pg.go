package historical

import (
	"context"
	"database/sql"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new hire record.
func (r *PGRepo) Create(ctx context.Context, h Hire) (Hire, error) {
	const query = `
INSERT INTO historical_hires (name, hired_date, position, resume_text, cover_letter_text, transcript_text, outcome, outcome_notes, tenure_months, performance_rating)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, created_at`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		h.Name,
		nullTime(h.HiredDate),
		h.Position,
		h.ResumeText,
		h.CoverLetterText,
		h.TranscriptText,
		h.Outcome,
		h.OutcomeNotes,
		nullInt(h.TenureMonths),
		nullFloat(h.PerformanceRating),
	).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		return Hire{}, err
	}
	return h, nil
}

// List returns hires ordered by identifier, optionally filtered by outcome.
func (r *PGRepo) List(ctx context.Context, outcome string, limit, offset int) ([]Hire, error) {
	const base = `
SELECT id, name, hired_date, position, resume_text, cover_letter_text, transcript_text, outcome, outcome_notes, tenure_months, performance_rating, created_at
FROM historical_hires`

	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var rows *sql.Rows
	var err error
	if outcome != "" {
		rows, err = r.DB.QueryContext(ctx, base+` WHERE outcome = $1 ORDER BY id LIMIT $2 OFFSET $3`, outcome, limit, offset)
	} else {
		rows, err = r.DB.QueryContext(ctx, base+` ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Hire{}
	for rows.Next() {
		var h Hire
		var name, position, resume, cover, transcript, notes sql.NullString
		var hired sql.NullTime
		var tenure sql.NullInt64
		var rating sql.NullFloat64
		err := rows.Scan(&h.ID, &name, &hired, &position, &resume, &cover, &transcript, &h.Outcome, &notes, &tenure, &rating, &h.CreatedAt)
		if err != nil {
			return nil, err
		}
		h.Name = name.String
		h.Position = position.String
		h.ResumeText = resume.String
		h.CoverLetterText = cover.String
		h.TranscriptText = transcript.String
		h.OutcomeNotes = notes.String
		if hired.Valid {
			h.HiredDate = &hired.Time
		}
		if tenure.Valid {
			v := int(tenure.Int64)
			h.TenureMonths = &v
		}
		if rating.Valid {
			h.PerformanceRating = &rating.Float64
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Stats aggregates the stored hires.
func (r *PGRepo) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{OutcomeBreakdown: make(map[string]int)}

	const totals = `
SELECT count(*), avg(tenure_months), avg(performance_rating)
FROM historical_hires`

	var tenure, rating sql.NullFloat64
	if err := r.DB.QueryRowContext(ctx, totals).Scan(&stats.TotalHires, &tenure, &rating); err != nil {
		return Stats{}, err
	}
	if tenure.Valid {
		stats.AverageTenureMonths = &tenure.Float64
	}
	if rating.Valid {
		stats.AveragePerformanceRating = &rating.Float64
	}

	const breakdown = `
SELECT outcome, count(*)
FROM historical_hires
GROUP BY outcome`

	rows, err := r.DB.QueryContext(ctx, breakdown)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var outcome string
		var count int
		if err := rows.Scan(&outcome, &count); err != nil {
			return Stats{}, err
		}
		stats.OutcomeBreakdown[outcome] = count
	}
	return stats, rows.Err()
}

// Delete removes a hire record.
func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM historical_hires WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
