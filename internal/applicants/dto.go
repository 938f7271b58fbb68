package applicants

// UploadResponse is returned after a successful upload. ScreeningStarted is
// true whenever screening ran, including when it ended in the fallback
// result.
type UploadResponse struct {
	Message           string `json:"message"`
	ApplicantID       int64  `json:"applicant_id"`
	DocumentsUploaded int    `json:"documents_uploaded"`
	ScreeningStarted  bool   `json:"screening_started"`
}

// ListResponse wraps an applicant listing.
type ListResponse struct {
	TotalCount int         `json:"total_count"`
	Applicants []Applicant `json:"applicants"`
}
