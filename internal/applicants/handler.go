package applicants

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"screener-backend/internal/shared/server/middleware"
	"screener-backend/internal/shared/server/respond"
	"screener-backend/internal/shared/telemetry"
)

// Multipart field names accepted on upload, one per document kind.
var uploadFields = []struct {
	field string
	kind  string
}{
	{"resume", DocTypeResume},
	{"cover_letter", DocTypeCoverLetter},
	{"transcript", DocTypeTranscript},
}

// Handler wires HTTP handlers to the applicants service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches applicant routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/applicants/upload", h.upload)
	rg.GET("/applicants", h.list)
	rg.GET("/applicants/:id", h.get)
	rg.PATCH("/applicants/:id", h.update)
	rg.DELETE("/applicants/:id", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart form expected", nil)
		return
	}

	in := UploadInput{
		Name:            formValue(form, "name"),
		Email:           formValue(form, "email"),
		Phone:           formValue(form, "phone"),
		Source:          formValue(form, "source"),
		PositionApplied: formValue(form, "position_applied"),
	}
	for _, spec := range uploadFields {
		headers := form.File[spec.field]
		if len(headers) == 0 {
			continue
		}
		data, err := readUpload(headers[0])
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "could not read "+spec.field, nil)
			return
		}
		in.Files = append(in.Files, UploadFile{
			Kind:             spec.kind,
			OriginalFilename: headers[0].Filename,
			Data:             data,
		})
	}

	applicant, err := h.Svc.Upload(c.Request.Context(), middleware.RequestIDFromContext(c), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoDocuments):
			respond.Error(c, http.StatusBadRequest, "validation_error", "at least one of resume, cover_letter, transcript is required", nil)
		case errors.Is(err, ErrNotPDF):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrFileTooLarge):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process upload", nil)
		}
		return
	}

	telemetry.Info("applicants.uploaded", map[string]any{
		"request_id":   middleware.RequestIDFromContext(c),
		"applicant_id": applicant.ID,
		"documents":    len(applicant.Documents),
	})
	if applicant.Screened() {
		c.Set("applicantId", applicant.ID)
		c.Set("screeningScore", applicant.ScreeningResult.OverallScore)
	}

	respond.OK(c, UploadResponse{
		Message:           "Applicant processed",
		ApplicantID:       applicant.ID,
		DocumentsUploaded: len(applicant.Documents),
		ScreeningStarted:  applicant.Screened(),
	})
}

func (h *Handler) list(c *gin.Context) {
	var minScore *float64
	if v := c.Query("min_score"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "min_score must be a number", nil)
			return
		}
		minScore = &parsed
	}
	recommendedOnly := c.Query("recommended_only") == "true"

	applicants, err := h.Svc.List(c.Request.Context(), minScore, recommendedOnly)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applicants", nil)
		return
	}

	respond.OK(c, ListResponse{
		TotalCount: len(applicants),
		Applicants: applicants,
	})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	applicant, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "applicant not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load applicant", nil)
		return
	}
	respond.OK(c, applicant)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	applicant, err := h.Svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "applicant not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update applicant", nil)
		return
	}
	respond.OK(c, applicant)
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "applicant not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete applicant", nil)
		return
	}
	respond.OK(c, gin.H{"message": "Applicant deleted"})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid applicant id", nil)
		return 0, false
	}
	return id, true
}

func formValue(form *multipart.Form, key string) string {
	values := form.Value[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
