package applicants

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"screener-backend/internal/llm"
	"screener-backend/internal/screening"
)

type memoryObjectStore struct {
	objects map[string][]byte
}

func newMemoryObjectStore() *memoryObjectStore {
	return &memoryObjectStore{objects: make(map[string][]byte)}
}

func (s *memoryObjectStore) Save(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.objects[storageKey] = data
	return int64(len(data)), nil
}

func (s *memoryObjectStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	data, ok := s.objects[storageKey]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memoryObjectStore) DeletePrefix(ctx context.Context, prefix string) error {
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			delete(s.objects, key)
		}
	}
	return nil
}

type stubLLM struct {
	raw string
	err error
}

func (s stubLLM) Screen(ctx context.Context, input llm.Input) (json.RawMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(s.raw), nil
}

func newTestService(client llm.Client) (*Service, *memoryObjectStore) {
	store := newMemoryObjectStore()
	svc := &Service{
		Repo:           NewMemoryRepo(),
		Store:          store,
		Screener:       &screening.Screener{LLM: client, Model: "gpt-4o"},
		MaxUploadBytes: 1 << 20,
	}
	return svc, store
}

func pdfBytes() []byte {
	return []byte("%PDF-1.4 not a real document")
}

func TestUploadRejectsEmptyFileSet(t *testing.T) {
	svc, _ := newTestService(stubLLM{raw: `{}`})
	_, err := svc.Upload(context.Background(), "req", UploadInput{Name: "Ada"})
	if !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("err = %v, want ErrNoDocuments", err)
	}

	list, _ := svc.Repo.List(context.Background())
	if len(list) != 0 {
		t.Fatal("rejected upload must not create records")
	}
}

func TestUploadRejectsNonPDFBeforeAnyMutation(t *testing.T) {
	svc, store := newTestService(stubLLM{raw: `{}`})
	_, err := svc.Upload(context.Background(), "req", UploadInput{
		Files: []UploadFile{
			{Kind: DocTypeResume, OriginalFilename: "resume.pdf", Data: pdfBytes()},
			{Kind: DocTypeCoverLetter, OriginalFilename: "letter.pdf", Data: []byte("plain text")},
		},
	})
	if !errors.Is(err, ErrNotPDF) {
		t.Fatalf("err = %v, want ErrNotPDF", err)
	}

	list, _ := svc.Repo.List(context.Background())
	if len(list) != 0 {
		t.Fatal("no applicant may exist after validation failure")
	}
	if len(store.objects) != 0 {
		t.Fatal("no object may be stored after validation failure")
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc, _ := newTestService(stubLLM{raw: `{}`})
	svc.MaxUploadBytes = 8
	_, err := svc.Upload(context.Background(), "req", UploadInput{
		Files: []UploadFile{{Kind: DocTypeResume, OriginalFilename: "r.pdf", Data: pdfBytes()}},
	})
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("err = %v, want ErrFileTooLarge", err)
	}
}

func TestUploadScreensAndStores(t *testing.T) {
	svc, store := newTestService(stubLLM{raw: `{
		"overall_score": 82,
		"resume_score": 80,
		"strengths": ["solid experience"],
		"recommended_for_interview": true,
		"confidence_level": "high"
	}`})

	applicant, err := svc.Upload(context.Background(), "req", UploadInput{
		Name:            "Ada",
		PositionApplied: "engineer",
		Files: []UploadFile{
			{Kind: DocTypeResume, OriginalFilename: "resume.pdf", Data: pdfBytes()},
			{Kind: DocTypeTranscript, OriginalFilename: "transcript.pdf", Data: pdfBytes()},
		},
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if applicant.ID != 1 {
		t.Fatalf("id = %d, want 1", applicant.ID)
	}
	if applicant.Source != "handshake" {
		t.Fatalf("source = %q, want default handshake", applicant.Source)
	}
	if len(applicant.Documents) != 2 {
		t.Fatalf("documents = %d, want 2", len(applicant.Documents))
	}
	if !applicant.Screened() {
		t.Fatal("expected screening result")
	}
	if applicant.ScreeningResult.OverallScore != 82 {
		t.Fatalf("overall = %v", applicant.ScreeningResult.OverallScore)
	}
	if len(store.objects) != 2 {
		t.Fatalf("stored objects = %d, want 2", len(store.objects))
	}
	for _, doc := range applicant.Documents {
		if doc.Checksum == "" {
			t.Fatalf("document %s missing checksum", doc.DocumentType)
		}
		if !strings.HasPrefix(doc.StorageKey, "applicant_1/") {
			t.Fatalf("storage key %q outside applicant prefix", doc.StorageKey)
		}
	}

	fetched, err := svc.Get(context.Background(), applicant.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.ID != applicant.ID || !fetched.Screened() {
		t.Fatal("fetched record must match and carry the result")
	}
}

func TestUploadOracleFailureStillSucceeds(t *testing.T) {
	svc, _ := newTestService(stubLLM{err: errors.New("model unavailable")})

	applicant, err := svc.Upload(context.Background(), "req", UploadInput{
		Files: []UploadFile{{Kind: DocTypeResume, OriginalFilename: "r.pdf", Data: pdfBytes()}},
	})
	if err != nil {
		t.Fatalf("upload must not fail on oracle error: %v", err)
	}
	if !applicant.Screened() {
		t.Fatal("fallback result must still attach")
	}
	if applicant.ScreeningResult.OverallScore != 30 {
		t.Fatalf("overall = %v, want fallback 30", applicant.ScreeningResult.OverallScore)
	}
	if applicant.ScreeningResult.RecommendedForInterview {
		t.Fatal("fallback must not recommend")
	}
	if applicant.ScreeningResult.ConfidenceLevel != screening.ConfidenceLow {
		t.Fatalf("confidence = %q, want low", applicant.ScreeningResult.ConfidenceLevel)
	}
}

func TestListFiltersAndRanks(t *testing.T) {
	svc, _ := newTestService(stubLLM{raw: `{}`})
	ctx := context.Background()
	repo := svc.Repo

	scores := []struct {
		score       float64
		recommended bool
	}{
		{60, false},
		{90, true},
		{75, true},
	}
	for _, s := range scores {
		a, _ := repo.Create(ctx, Applicant{})
		if err := repo.SetScreeningResult(ctx, a.ID, screening.Result{
			OverallScore:            s.score,
			RecommendedForInterview: s.recommended,
		}); err != nil {
			t.Fatalf("set result: %v", err)
		}
	}
	// One pending applicant, should sort last and carry no rank.
	if _, err := repo.Create(ctx, Applicant{}); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := svc.List(ctx, nil, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("len = %d, want 4", len(list))
	}
	wantOrder := []float64{90, 75, 60}
	for i, want := range wantOrder {
		got := list[i].ScreeningResult.OverallScore
		if got != want {
			t.Fatalf("position %d score = %v, want %v", i, got, want)
		}
		if list[i].ScreeningResult.Rank == nil || *list[i].ScreeningResult.Rank != i+1 {
			t.Fatalf("position %d rank = %v, want %d", i, list[i].ScreeningResult.Rank, i+1)
		}
	}
	if list[3].Screened() {
		t.Fatal("pending applicant must sort last")
	}
	if p := list[0].ScreeningResult.Percentile; p == nil || *p < 66 {
		t.Fatalf("top percentile = %v", p)
	}

	minScore := 70.0
	filtered, err := svc.List(ctx, &minScore, false)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("min_score filter len = %d, want 2", len(filtered))
	}

	recommended, err := svc.List(ctx, nil, true)
	if err != nil {
		t.Fatalf("list recommended: %v", err)
	}
	if len(recommended) != 2 {
		t.Fatalf("recommended filter len = %d, want 2", len(recommended))
	}
}

func TestDeleteRemovesStoredObjects(t *testing.T) {
	svc, store := newTestService(stubLLM{raw: `{}`})
	ctx := context.Background()

	applicant, err := svc.Upload(ctx, "req", UploadInput{
		Files: []UploadFile{{Kind: DocTypeResume, OriginalFilename: "r.pdf", Data: pdfBytes()}},
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(store.objects) != 1 {
		t.Fatalf("stored objects = %d, want 1", len(store.objects))
	}

	if err := svc.Delete(ctx, applicant.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.objects) != 0 {
		t.Fatal("stored objects must be removed with the applicant")
	}
	if err := svc.Delete(ctx, applicant.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete = %v, want ErrNotFound", err)
	}
}
