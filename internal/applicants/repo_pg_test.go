package applicants

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"screener-backend/internal/screening"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateReturnsAssignedID(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO applicants").
		WithArgs("Ada", "ada@example.com", "555-0100", "handshake", "engineer").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	a, err := repo.Create(context.Background(), Applicant{
		Name:            "Ada",
		Email:           "ada@example.com",
		Phone:           "555-0100",
		PositionApplied: "engineer",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID != 7 {
		t.Fatalf("id = %d, want 7", a.ID)
	}
	if a.Source != "handshake" {
		t.Fatalf("source = %q, want default", a.Source)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, name, email, phone, source, position_applied").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "source", "position_applied", "created_at", "updated_at"}))

	_, err := repo.GetByID(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDLoadsDocumentsAndResult(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, name, email, phone, source, position_applied").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "source", "position_applied", "created_at", "updated_at"}).
			AddRow(int64(3), "Ada", "ada@example.com", "", "handshake", "engineer", now, now))

	mock.ExpectQuery("SELECT id, applicant_id, document_type").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "applicant_id", "document_type", "storage_key", "original_filename", "extracted_text", "checksum", "file_size_bytes", "uploaded_at"}).
			AddRow(int64(1), int64(3), DocTypeResume, "applicant_3/resume_x.pdf", "resume.pdf", "text", "abc", int64(128), now))

	mock.ExpectQuery("SELECT overall_score").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"overall_score", "resume_score", "cover_letter_score", "transcript_score", "strengths", "weaknesses", "reasoning", "recommended_for_interview", "confidence_level", "screened_at", "ai_model_used"}).
			AddRow(88.0, 85.0, nil, nil, `["sharp"]`, `[]`, "good fit", true, "high", now, "gpt-4o"))

	a, err := repo.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(a.Documents) != 1 || a.Documents[0].DocumentType != DocTypeResume {
		t.Fatalf("documents = %+v", a.Documents)
	}
	if !a.Screened() || a.ScreeningResult.OverallScore != 88 {
		t.Fatalf("result = %+v", a.ScreeningResult)
	}
	if a.ScreeningResult.ResumeScore == nil || *a.ScreeningResult.ResumeScore != 85 {
		t.Fatalf("resume score = %v", a.ScreeningResult.ResumeScore)
	}
	if a.ScreeningResult.CoverLetterScore != nil {
		t.Fatal("cover letter score should stay nil")
	}
	if len(a.ScreeningResult.Strengths) != 1 || a.ScreeningResult.Strengths[0] != "sharp" {
		t.Fatalf("strengths = %v", a.ScreeningResult.Strengths)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSetScreeningResultEncodesLists(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO screening_results").
		WithArgs(
			int64(5),
			30.0,
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			`["Unable to analyze"]`,
			`["Screening failed"]`,
			"Screening failed: boom",
			false,
			"low",
			now,
			"gpt-4o",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetScreeningResult(context.Background(), 5, screening.Result{
		OverallScore:    30,
		Strengths:       []string{"Unable to analyze"},
		Weaknesses:      []string{"Screening failed"},
		Reasoning:       "Screening failed: boom",
		ConfidenceLevel: screening.ConfidenceLow,
		ScreenedAt:      now,
		AIModelUsed:     "gpt-4o",
	})
	if err != nil {
		t.Fatalf("SetScreeningResult: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateBuildsPartialSet(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectExec("UPDATE applicants SET").
		WithArgs("Ada Lovelace", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery("SELECT id, name, email, phone, source, position_applied").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "source", "position_applied", "created_at", "updated_at"}).
			AddRow(int64(9), "Ada Lovelace", "", "", "handshake", "", now, now))
	mock.ExpectQuery("SELECT id, applicant_id, document_type").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "applicant_id", "document_type", "storage_key", "original_filename", "extracted_text", "checksum", "file_size_bytes", "uploaded_at"}))
	mock.ExpectQuery("SELECT overall_score").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"overall_score", "resume_score", "cover_letter_score", "transcript_score", "strengths", "weaknesses", "reasoning", "recommended_for_interview", "confidence_level", "screened_at", "ai_model_used"}))

	name := "Ada Lovelace"
	a, err := repo.Update(context.Background(), 9, Patch{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if a.Name != "Ada Lovelace" {
		t.Fatalf("name = %q", a.Name)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM applicants").
		WithArgs(int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 12); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
