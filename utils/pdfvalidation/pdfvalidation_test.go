package pdfvalidation

import (
	"bytes"
	"strings"
	"testing"
)

func TestValidatePDFBytesRejectsMissingHeader(t *testing.T) {
	result, err := ValidatePDFBytes([]byte("not a pdf at all"), UploadLimits)
	if err != nil {
		t.Fatalf("ValidatePDFBytes: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result for non-PDF content")
	}
	if result.Error != "Invalid PDF file: missing PDF header" {
		t.Errorf("Error = %q", result.Error)
	}
}

func TestValidatePDFBytesRejectsOversize(t *testing.T) {
	limits := PDFLimits{MaxFileSizeMB: 1, MaxPages: 10, DocumentTypeName: "test document"}
	content := make([]byte, 2*1024*1024)
	copy(content, []byte("%PDF-1.4"))

	result, err := ValidatePDFBytes(content, limits)
	if err != nil {
		t.Fatalf("ValidatePDFBytes: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result for oversized content")
	}
	if !strings.Contains(result.Error, "exceeds maximum allowed size of 1MB") {
		t.Errorf("Error = %q", result.Error)
	}
	if result.FileSize != int64(len(content)) {
		t.Errorf("FileSize = %d, want %d", result.FileSize, len(content))
	}
}

func TestValidatePDFBytesRejectsUnparseable(t *testing.T) {
	content := []byte("%PDF-1.4\ngarbage with no xref table")

	result, err := ValidatePDFBytes(content, UploadLimits)
	if err != nil {
		t.Fatalf("ValidatePDFBytes: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result for unparseable PDF")
	}
	if !strings.HasPrefix(result.Error, "Failed to read PDF:") {
		t.Errorf("Error = %q", result.Error)
	}
}

func TestSanitizePDFTrimsTrailingGarbage(t *testing.T) {
	content := []byte("%PDF-1.4\nbody\n%%EOF\n<!-- injected html -->")
	cleaned := sanitizePDF(content)

	if !bytes.HasSuffix(cleaned, []byte("%%EOF\n")) {
		t.Errorf("cleaned = %q, want trailing %%%%EOF marker", cleaned)
	}
	if bytes.Contains(cleaned, []byte("injected")) {
		t.Error("trailing garbage survived sanitization")
	}
}

func TestSanitizePDFLeavesCleanContentAlone(t *testing.T) {
	content := []byte("%PDF-1.4\nbody\n%%EOF")
	if got := sanitizePDF(content); !bytes.Equal(got, content) {
		t.Errorf("sanitizePDF changed clean content: %q", got)
	}
}
