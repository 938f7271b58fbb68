package extract

import (
	"context"
	"strings"
	"testing"
)

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{name: "valid header", data: []byte("%PDF-1.7\nrest"), want: true},
		{name: "header only", data: []byte("%PDF-"), want: true},
		{name: "empty", data: nil, want: false},
		{name: "truncated header", data: []byte("%PDF"), want: false},
		{name: "wrong magic", data: []byte("PK\x03\x04"), want: false},
		{name: "leading whitespace", data: []byte(" %PDF-1.4"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPDF(tt.data); got != tt.want {
				t.Fatalf("IsPDF(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestTextRejectsNonPDF(t *testing.T) {
	if _, err := Text(context.Background(), []byte("hello world")); err == nil {
		t.Fatal("expected error for non-pdf payload")
	}
}

func TestTextRejectsMalformedPDF(t *testing.T) {
	// Header passes the sniff test but the body is garbage.
	_, err := Text(context.Background(), []byte("%PDF-1.4\nnot a real pdf body"))
	if err == nil {
		t.Fatal("expected error for malformed pdf body")
	}
	if strings.Contains(err.Error(), "not a pdf payload") {
		t.Fatalf("expected body parse error, got sniff error: %v", err)
	}
}
