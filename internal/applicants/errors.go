package applicants

import "errors"

var (
	ErrNotFound     = errors.New("applicant not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrNoDocuments  = errors.New("at least one document is required")
	ErrNotPDF       = errors.New("file is not a valid PDF")
	ErrFileTooLarge = errors.New("file exceeds the size limit")
)
