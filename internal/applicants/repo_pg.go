package applicants

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"screener-backend/internal/screening"
)

// PGRepo implements Repo using Postgres. Identifier assignment is delegated
// to the BIGSERIAL sequences, which preserves the monotonic-from-1 contract.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new applicant and returns it with its assigned identifier.
func (r *PGRepo) Create(ctx context.Context, a Applicant) (Applicant, error) {
	const query = `
INSERT INTO applicants (name, email, phone, source, position_applied)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at`

	source := a.Source
	if source == "" {
		source = "handshake"
	}
	err := r.DB.QueryRowContext(ctx, query, a.Name, a.Email, a.Phone, source, a.PositionApplied).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return Applicant{}, err
	}
	a.Source = source
	a.Documents = nil
	a.ScreeningResult = nil
	return a, nil
}

// GetByID returns one applicant with documents and screening result attached.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (Applicant, error) {
	const query = `
SELECT id, name, email, phone, source, position_applied, created_at, updated_at
FROM applicants
WHERE id = $1`

	var a Applicant
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Email, &a.Phone, &a.Source, &a.PositionApplied, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Applicant{}, ErrNotFound
		}
		return Applicant{}, err
	}

	docs, err := r.loadDocuments(ctx, id)
	if err != nil {
		return Applicant{}, err
	}
	a.Documents = docs

	result, err := r.loadResult(ctx, id)
	if err != nil {
		return Applicant{}, err
	}
	a.ScreeningResult = result
	return a, nil
}

// List returns all applicants in identifier order with documents and
// screening results attached.
func (r *PGRepo) List(ctx context.Context) ([]Applicant, error) {
	const query = `
SELECT id, name, email, phone, source, position_applied, created_at, updated_at
FROM applicants
ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Applicant
	index := make(map[int64]int)
	for rows.Next() {
		var a Applicant
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Source, &a.PositionApplied, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		index[a.ID] = len(out)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return []Applicant{}, nil
	}

	if err := r.attachDocuments(ctx, out, index); err != nil {
		return nil, err
	}
	if err := r.attachResults(ctx, out, index); err != nil {
		return nil, err
	}
	return out, nil
}

// Update merges the provided fields into an existing applicant.
func (r *PGRepo) Update(ctx context.Context, id int64, patch Patch) (Applicant, error) {
	sets := []string{"updated_at = now()"}
	args := []any{}
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("name", patch.Name)
	add("email", patch.Email)
	add("phone", patch.Phone)
	add("source", patch.Source)
	add("position_applied", patch.PositionApplied)

	args = append(args, id)
	query := fmt.Sprintf("UPDATE applicants SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return Applicant{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Applicant{}, err
	}
	if affected == 0 {
		return Applicant{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// AddDocument inserts a document row for an applicant.
func (r *PGRepo) AddDocument(ctx context.Context, doc Document) (Document, error) {
	const query = `
INSERT INTO documents (applicant_id, document_type, storage_key, original_filename, extracted_text, checksum, file_size_bytes)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, uploaded_at`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		doc.ApplicantID,
		doc.DocumentType,
		doc.StorageKey,
		doc.OriginalFilename,
		doc.ExtractedText,
		doc.Checksum,
		doc.FileSizeBytes,
	).Scan(&doc.ID, &doc.UploadedAt)
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

// SetScreeningResult upserts the screening result for an applicant.
func (r *PGRepo) SetScreeningResult(ctx context.Context, applicantID int64, result screening.Result) error {
	const query = `
INSERT INTO screening_results (
    applicant_id, overall_score, resume_score, cover_letter_score, transcript_score,
    strengths, weaknesses, reasoning, recommended_for_interview, confidence_level,
    screened_at, ai_model_used
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (applicant_id) DO UPDATE SET
    overall_score = EXCLUDED.overall_score,
    resume_score = EXCLUDED.resume_score,
    cover_letter_score = EXCLUDED.cover_letter_score,
    transcript_score = EXCLUDED.transcript_score,
    strengths = EXCLUDED.strengths,
    weaknesses = EXCLUDED.weaknesses,
    reasoning = EXCLUDED.reasoning,
    recommended_for_interview = EXCLUDED.recommended_for_interview,
    confidence_level = EXCLUDED.confidence_level,
    screened_at = EXCLUDED.screened_at,
    ai_model_used = EXCLUDED.ai_model_used`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		applicantID,
		result.OverallScore,
		nullFloat(result.ResumeScore),
		nullFloat(result.CoverLetterScore),
		nullFloat(result.TranscriptScore),
		screening.EncodeStringList(result.Strengths),
		screening.EncodeStringList(result.Weaknesses),
		result.Reasoning,
		result.RecommendedForInterview,
		result.ConfidenceLevel,
		result.ScreenedAt,
		result.AIModelUsed,
	)
	if err != nil {
		return err
	}
	if _, err := res.RowsAffected(); err != nil {
		return err
	}
	return nil
}

// Delete removes an applicant; documents and results cascade.
func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM applicants WHERE id = $1`, id)
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

// Clear empties all applicant tables and resets the identity sequences.
func (r *PGRepo) Clear(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `TRUNCATE applicants, documents, screening_results RESTART IDENTITY CASCADE`)
	return err
}

func (r *PGRepo) loadDocuments(ctx context.Context, applicantID int64) ([]Document, error) {
	const query = `
SELECT id, applicant_id, document_type, storage_key, original_filename, extracted_text, checksum, file_size_bytes, uploaded_at
FROM documents
WHERE applicant_id = $1
ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func (r *PGRepo) attachDocuments(ctx context.Context, applicants []Applicant, index map[int64]int) error {
	const query = `
SELECT id, applicant_id, document_type, storage_key, original_filename, extracted_text, checksum, file_size_bytes, uploaded_at
FROM documents
ORDER BY applicant_id, id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	docs, err := scanDocuments(rows)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if i, ok := index[doc.ApplicantID]; ok {
			applicants[i].Documents = append(applicants[i].Documents, doc)
		}
	}
	return nil
}

func (r *PGRepo) loadResult(ctx context.Context, applicantID int64) (*screening.Result, error) {
	const query = `
SELECT overall_score, resume_score, cover_letter_score, transcript_score, strengths, weaknesses, reasoning, recommended_for_interview, confidence_level, screened_at, ai_model_used
FROM screening_results
WHERE applicant_id = $1`

	row := r.DB.QueryRowContext(ctx, query, applicantID)
	result, err := scanResult(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}

func (r *PGRepo) attachResults(ctx context.Context, applicants []Applicant, index map[int64]int) error {
	const query = `
SELECT applicant_id, overall_score, resume_score, cover_letter_score, transcript_score, strengths, weaknesses, reasoning, recommended_for_interview, confidence_level, screened_at, ai_model_used
FROM screening_results`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var applicantID int64
		var result screening.Result
		var resume, cover, transcript sql.NullFloat64
		var strengths, weaknesses, reasoning, confidence sql.NullString
		err := rows.Scan(
			&applicantID,
			&result.OverallScore,
			&resume, &cover, &transcript,
			&strengths, &weaknesses, &reasoning,
			&result.RecommendedForInterview,
			&confidence,
			&result.ScreenedAt,
			&result.AIModelUsed,
		)
		if err != nil {
			return err
		}
		fillResult(&result, resume, cover, transcript, strengths, weaknesses, reasoning, confidence)
		if i, ok := index[applicantID]; ok {
			stored := result
			applicants[i].ScreeningResult = &stored
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*screening.Result, error) {
	var result screening.Result
	var resume, cover, transcript sql.NullFloat64
	var strengths, weaknesses, reasoning, confidence sql.NullString
	err := row.Scan(
		&result.OverallScore,
		&resume, &cover, &transcript,
		&strengths, &weaknesses, &reasoning,
		&result.RecommendedForInterview,
		&confidence,
		&result.ScreenedAt,
		&result.AIModelUsed,
	)
	if err != nil {
		return nil, err
	}
	fillResult(&result, resume, cover, transcript, strengths, weaknesses, reasoning, confidence)
	return &result, nil
}

func fillResult(result *screening.Result, resume, cover, transcript sql.NullFloat64, strengths, weaknesses, reasoning, confidence sql.NullString) {
	if resume.Valid {
		result.ResumeScore = &resume.Float64
	}
	if cover.Valid {
		result.CoverLetterScore = &cover.Float64
	}
	if transcript.Valid {
		result.TranscriptScore = &transcript.Float64
	}
	result.Strengths = screening.DecodeStringList(strengths.String)
	result.Weaknesses = screening.DecodeStringList(weaknesses.String)
	if reasoning.Valid {
		result.Reasoning = reasoning.String
	}
	if confidence.Valid {
		result.ConfidenceLevel = confidence.String
	}
}

func scanDocuments(rows *sql.Rows) ([]Document, error) {
	var out []Document
	for rows.Next() {
		var doc Document
		var extracted, checksum sql.NullString
		var uploadedAt time.Time
		err := rows.Scan(
			&doc.ID,
			&doc.ApplicantID,
			&doc.DocumentType,
			&doc.StorageKey,
			&doc.OriginalFilename,
			&extracted,
			&checksum,
			&doc.FileSizeBytes,
			&uploadedAt,
		)
		if err != nil {
			return nil, err
		}
		doc.ExtractedText = extracted.String
		doc.Checksum = checksum.String
		doc.UploadedAt = uploadedAt
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
