package model

import (
	"testing"

	apperrors "github.com/ragportal/portal-ui/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		want        string
		wantErr     string
	}{
		{name: "pdf", filename: "a.pdf", contentType: "application/pdf", want: "application/pdf"},
		{name: "text with charset", filename: "notes.txt", contentType: "text/plain; charset=utf-8", want: "text/plain"},
		{name: "docx", filename: "r.docx", contentType: docxContentType, want: docxContentType},
		{name: "octet stream markdown", filename: "README.md", contentType: "application/octet-stream", want: "text/markdown"},
		{name: "missing type csv", filename: "data.CSV", contentType: "", want: "text/csv"},
		{name: "image rejected", filename: "cat.png", contentType: "image/png", wantErr: "Unsupported file type"},
		{name: "unknown extension", filename: "bin.exe", contentType: "application/octet-stream", wantErr: "Unsupported file type"},
		{name: "no file", filename: " ", contentType: "text/plain", wantErr: "Please choose a file to upload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateUpload(tt.filename, tt.contentType)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, apperrors.IsValidation(err))
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateSourceURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr string
	}{
		{name: "https", raw: " https://docs.example.com/guide ", want: "https://docs.example.com/guide"},
		{name: "localhost", raw: "http://localhost:3000/page", want: "http://localhost:3000/page"},
		{name: "intranet host", raw: "http://wiki/page", want: "http://wiki/page"},
		{name: "ip", raw: "http://10.0.0.5/doc", want: "http://10.0.0.5/doc"},
		{name: "empty", raw: "   ", wantErr: "URL cannot be empty"},
		{name: "ftp", raw: "ftp://example.com/x", wantErr: "URL must start with http or https"},
		{name: "http prefix but bad scheme", raw: "httpx://example.com", wantErr: "URL must start with http or https"},
		{name: "public suffix only", raw: "https://co.uk/", wantErr: "URL must point to a valid domain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateSourceURL(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, "url", apperrors.GetField(err))
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocument_DisplayNameAndTone(t *testing.T) {
	orig := "Quarterly Report.pdf"
	d := Document{Filename: "abc123.pdf", OriginalFilename: &orig, Status: "INGESTED"}
	assert.Equal(t, orig, d.DisplayName())
	assert.Equal(t, "success", d.StatusTone())

	d = Document{Filename: "abc123.pdf", Status: "ingesting"}
	assert.Equal(t, "abc123.pdf", d.DisplayName())
	assert.Equal(t, "warning", d.StatusTone())

	assert.Equal(t, "error", Document{Status: "failed"}.StatusTone())
	assert.Equal(t, "neutral", Document{Status: "uploaded"}.StatusTone())
}

func TestDocumentPage_TotalPages(t *testing.T) {
	assert.Equal(t, 3, DocumentPage{Total: 21, Limit: 10}.TotalPages())
	assert.Equal(t, 1, DocumentPage{Total: 0, Limit: 10}.TotalPages())
	assert.Equal(t, 2, DocumentPage{Total: 20, Limit: 10}.TotalPages())
}
