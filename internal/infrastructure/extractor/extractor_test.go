package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/contractlens/legal-intel/internal/core/domain"
)

func minimalDocx(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	xml := `<?xml version="1.0"?><w:document xmlns:w="ns"><w:body><w:p><w:r><w:t>` +
		text + `</w:t></w:r></w:p></w:body></w:document>`
	if _, err := f.Write([]byte(xml)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractDispatchesDocxByExtension(t *testing.T) {
	e := New()

	text, err := e.Extract(context.Background(), "Contract.DOCX", minimalDocx(t, "lease agreement"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "lease agreement" {
		t.Fatalf("text = %q", text)
	}
}

func TestExtractRejectsUnknownExtension(t *testing.T) {
	e := New()

	_, err := e.Extract(context.Background(), "notes.txt", []byte("plain text"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}
