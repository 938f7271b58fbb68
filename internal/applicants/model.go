package applicants

import (
	"time"

	"screener-backend/internal/screening"
)

// Document kinds accepted on upload.
const (
	DocTypeResume      = "resume"
	DocTypeCoverLetter = "cover_letter"
	DocTypeTranscript  = "transcript"
	DocTypeCombined    = "combined"
)

// Applicant is one person under evaluation, with their uploaded documents
// and at most one screening result. ScreeningResult is nil until screening
// completes; screening always completes with a result, possibly degraded.
type Applicant struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	Source          string            `json:"source"`
	PositionApplied string            `json:"position_applied"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Documents       []Document        `json:"documents"`
	ScreeningResult *screening.Result `json:"screening_result"`
}

// Document is one uploaded file. Immutable once created; owned exclusively
// by its applicant.
type Document struct {
	ID               int64     `json:"id"`
	ApplicantID      int64     `json:"applicant_id"`
	DocumentType     string    `json:"document_type"`
	StorageKey       string    `json:"storage_key"`
	OriginalFilename string    `json:"original_filename"`
	ExtractedText    string    `json:"extracted_text,omitempty"`
	Checksum         string    `json:"checksum,omitempty"`
	FileSizeBytes    int64     `json:"file_size_bytes"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

// Screened reports whether a screening result is attached.
func (a Applicant) Screened() bool {
	return a.ScreeningResult != nil
}
