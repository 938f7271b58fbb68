package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

var pdfMagic = []byte("%PDF-")

// IsPDF reports whether data begins with the PDF header signature.
// It is a sniff test only; the rest of the file may still be malformed.
func IsPDF(data []byte) bool {
	return len(data) >= len(pdfMagic) && bytes.Equal(data[:len(pdfMagic)], pdfMagic)
}

// Text extracts plain text from an in-memory PDF payload.
// Library used: github.com/ledongthuc/pdf.
func Text(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !IsPDF(data) {
		return "", fmt.Errorf("not a pdf payload")
	}

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf open: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
