package applicants

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"screener-backend/internal/extract"
	"screener-backend/internal/llm"
	"screener-backend/internal/screening"
	"screener-backend/internal/shared/storage/object"
	"screener-backend/internal/shared/telemetry"
	"screener-backend/internal/shared/util"
)

const defaultSource = "handshake"

// UploadFile is one document submitted with an upload request.
type UploadFile struct {
	Kind             string
	OriginalFilename string
	Data             []byte
}

// UploadInput carries everything from one upload request.
type UploadInput struct {
	Name            string
	Email           string
	Phone           string
	Source          string
	PositionApplied string
	Files           []UploadFile
}

// Service coordinates the upload pipeline: validate, store, extract, screen.
type Service struct {
	Repo           Repo
	Store          object.ObjectStore
	Screener       *screening.Screener
	MaxUploadBytes int64
}

// Upload validates every submitted file, creates the applicant, stores the
// files, extracts their text, and screens the applicant synchronously.
// Validation failures reject the request before any state is created; a
// scoring failure never does, the applicant keeps a degraded result instead.
func (s *Service) Upload(ctx context.Context, requestID string, in UploadInput) (Applicant, error) {
	if len(in.Files) == 0 {
		return Applicant{}, ErrNoDocuments
	}
	for i := range in.Files {
		if err := s.validateFile(in.Files[i]); err != nil {
			return Applicant{}, err
		}
	}

	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = defaultSource
	}
	applicant, err := s.Repo.Create(ctx, Applicant{
		Name:            strings.TrimSpace(in.Name),
		Email:           strings.TrimSpace(in.Email),
		Phone:           strings.TrimSpace(in.Phone),
		Source:          source,
		PositionApplied: strings.TrimSpace(in.PositionApplied),
	})
	if err != nil {
		return Applicant{}, err
	}

	texts := make(map[string]string, len(in.Files))
	for _, file := range in.Files {
		doc, err := s.storeFile(ctx, applicant.ID, file)
		if err != nil {
			return Applicant{}, err
		}
		texts[doc.DocumentType] = doc.ExtractedText
	}

	result := s.Screener.Screen(ctx, requestID, llm.Input{
		ResumeText:      texts[DocTypeResume],
		CoverLetterText: texts[DocTypeCoverLetter],
		TranscriptText:  texts[DocTypeTranscript],
		Position:        applicant.PositionApplied,
	})
	if err := s.Repo.SetScreeningResult(ctx, applicant.ID, result); err != nil {
		return Applicant{}, err
	}

	return s.Repo.GetByID(ctx, applicant.ID)
}

// Get returns one applicant.
func (s *Service) Get(ctx context.Context, id int64) (Applicant, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns applicants ordered by score descending, unscreened last,
// with derived rank and percentile, optionally filtered.
func (s *Service) List(ctx context.Context, minScore *float64, recommendedOnly bool) ([]Applicant, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Applicant, 0, len(all))
	for _, a := range all {
		if minScore != nil && (!a.Screened() || a.ScreeningResult.OverallScore < *minScore) {
			continue
		}
		if recommendedOnly && (!a.Screened() || !a.ScreeningResult.RecommendedForInterview) {
			continue
		}
		out = append(out, a)
	}

	SortByScore(out)
	AttachRanks(out)
	return out, nil
}

// Update applies a partial metadata update.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (Applicant, error) {
	return s.Repo.Update(ctx, id, patch)
}

// Delete removes an applicant and, best effort, its stored files.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Store.DeletePrefix(ctx, objectPrefix(id)); err != nil {
		telemetry.Warn("applicants.delete.cleanup_failed", map[string]any{
			"applicant_id": id,
			"error":        err.Error(),
		})
	}
	return nil
}

func (s *Service) validateFile(file UploadFile) error {
	if len(file.Data) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrInvalidInput, file.Kind)
	}
	if s.MaxUploadBytes > 0 && int64(len(file.Data)) > s.MaxUploadBytes {
		return fmt.Errorf("%w: %s", ErrFileTooLarge, file.Kind)
	}
	if !extract.IsPDF(file.Data) {
		return fmt.Errorf("%w: %s", ErrNotPDF, file.Kind)
	}
	if _, err := util.SanitizeFileName(file.OriginalFilename); err != nil {
		return fmt.Errorf("%w: %s filename", ErrInvalidInput, file.Kind)
	}
	return nil
}

func (s *Service) storeFile(ctx context.Context, applicantID int64, file UploadFile) (Document, error) {
	storageKey := fmt.Sprintf("%s%s_%s.pdf", objectPrefix(applicantID), file.Kind, uuid.NewString())
	size, err := s.Store.Save(ctx, storageKey, "application/pdf", bytes.NewReader(file.Data))
	if err != nil {
		return Document{}, err
	}

	// Extraction failure is not fatal; the oracle just sees less text.
	text, err := extract.Text(ctx, file.Data)
	if err != nil {
		telemetry.Warn("applicants.extract_failed", map[string]any{
			"applicant_id": applicantID,
			"document":     file.Kind,
			"error":        err.Error(),
		})
		text = ""
	}

	name, err := util.SanitizeFileName(file.OriginalFilename)
	if err != nil {
		name = file.Kind + ".pdf"
	}

	return s.Repo.AddDocument(ctx, Document{
		ApplicantID:      applicantID,
		DocumentType:     file.Kind,
		StorageKey:       storageKey,
		OriginalFilename: name,
		ExtractedText:    text,
		Checksum:         util.HashBytes(file.Data),
		FileSizeBytes:    size,
	})
}

func objectPrefix(applicantID int64) string {
	return fmt.Sprintf("applicant_%d/", applicantID)
}
