package model

import (
	"mime"
	"net"
	"net/url"
	"path"
	"strings"

	apperrors "github.com/ragportal/portal-ui/internal/errors"
	"golang.org/x/net/publicsuffix"
)

// Document is an uploaded file or URL registered with the backend for ingestion.
// Timestamps are kept as the backend's ISO strings; they are display-only.
type Document struct {
	ID               int64   `json:"id"`
	Filename         string  `json:"filename"`
	OriginalFilename *string `json:"original_filename,omitempty"`
	Status           string  `json:"status"`
	SizeBytes        *int64  `json:"size_bytes,omitempty"`
	CreatedAt        string  `json:"created_at,omitempty"`
	UpdatedAt        string  `json:"updated_at,omitempty"`
}

// DisplayName prefers the name the file was uploaded under.
func (d Document) DisplayName() string {
	if d.OriginalFilename != nil && strings.TrimSpace(*d.OriginalFilename) != "" {
		return *d.OriginalFilename
	}
	return d.Filename
}

// StatusTone buckets a free-form backend status for display.
func (d Document) StatusTone() string {
	s := strings.ToLower(d.Status)
	switch {
	case strings.Contains(s, "fail"):
		return "error"
	case strings.Contains(s, "ingested"), strings.Contains(s, "ready"):
		return "success"
	case strings.Contains(s, "ingest"):
		return "warning"
	default:
		return "neutral"
	}
}

// DocumentPage is one page of the tenant's documents. Page is 1-based.
type DocumentPage struct {
	Items []Document `json:"items"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}

// TotalPages returns the number of pages at the current limit.
func (p DocumentPage) TotalPages() int {
	if p.Limit <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// UploadURLRequest registers a remote page as a document.
type UploadURLRequest struct {
	URL string `json:"url"`
}

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

//nolint:gochecknoglobals // static read-only allow-list
var uploadContentTypes = map[string]string{
	"application/pdf":  ".pdf",
	"text/plain":       ".txt",
	"text/markdown":    ".md",
	docxContentType:    ".docx",
	"text/csv":         ".csv",
	"application/json": ".json",
	"text/html":        ".html",
}

// ValidateUpload checks a file against the upload allow-list and returns the
// normalized content type to forward. When the browser sent no useful type the
// file extension decides.
func ValidateUpload(filename, contentType string) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", apperrors.ValidationField("file", "Please choose a file to upload")
	}

	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if _, ok := uploadContentTypes[mediaType]; ok {
			return mediaType, nil
		}
		if mediaType != "application/octet-stream" {
			return "", apperrors.ValidationField("file", "Unsupported file type")
		}
	}

	ext := strings.ToLower(path.Ext(filename))
	for ct, allowedExt := range uploadContentTypes {
		if ext == allowedExt || (ext == ".markdown" && allowedExt == ".md") || (ext == ".htm" && allowedExt == ".html") {
			return ct, nil
		}
	}
	return "", apperrors.ValidationField("file", "Unsupported file type")
}

// ValidateSourceURL checks a URL before it is registered as a document and
// returns it trimmed. The host must be an IP, localhost, or a registrable domain.
func ValidateSourceURL(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", apperrors.ValidationField("url", "URL cannot be empty")
	}
	if !strings.HasPrefix(strings.ToLower(v), "http") {
		return "", apperrors.ValidationField("url", "URL must start with http or https")
	}

	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return "", apperrors.ValidationField("url", "URL must start with http or https")
	}

	// Single-label hosts (localhost, intranet names) and IPs skip the suffix check.
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if !strings.Contains(host, ".") || net.ParseIP(host) != nil {
		return v, nil
	}
	if _, err := publicsuffix.EffectiveTLDPlusOne(host); err != nil {
		return "", apperrors.ValidationField("url", "URL must point to a valid domain")
	}
	return v, nil
}
