package backend

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"github.com/ragportal/portal-ui/internal/domain/model"
	apperrors "github.com/ragportal/portal-ui/internal/errors"
	"github.com/ragportal/portal-ui/internal/ports"
)

// ListDocuments fetches one page of documents. page is 1-based (GET /documents).
func (c *Client) ListDocuments(ctx context.Context, page, limit int) (model.DocumentPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var out model.DocumentPage
	if err := c.do(ctx, request{Method: http.MethodGet, Path: "/documents", Query: q}, &out); err != nil {
		return model.DocumentPage{}, err
	}
	return out, nil
}

// UploadDocument streams a file as multipart field "file" (POST /documents/upload).
func (c *Client) UploadDocument(ctx context.Context, in ports.UploadInput) (model.Document, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, in.Filename))
		if in.ContentType != "" {
			h.Set("Content-Type", in.ContentType)
		}
		part, err := mw.CreatePart(h)
		if err == nil {
			_, err = io.Copy(part, in.Body)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	var out model.Document
	err := c.do(ctx, request{
		Method:      http.MethodPost,
		Path:        "/documents/upload",
		Body:        pr,
		ContentType: mw.FormDataContentType(),
	}, &out)
	// Unblock the writer goroutine if the request ended before the body was consumed.
	_ = pr.CloseWithError(io.ErrClosedPipe)
	if err != nil {
		return model.Document{}, err
	}
	return out, nil
}

// UploadURL registers a remote page as a document (POST /documents/upload-url).
func (c *Client) UploadURL(ctx context.Context, rawURL string) (model.Document, error) {
	var out model.Document
	if err := c.doJSON(ctx, http.MethodPost, "/documents/upload-url", model.UploadURLRequest{URL: rawURL}, &out); err != nil {
		return model.Document{}, err
	}
	return out, nil
}

// IngestDocument triggers ingestion (POST /documents/{id}/ingest).
func (c *Client) IngestDocument(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.ValidationField("id", "invalid document id")
	}
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/documents/%d/ingest", id), nil, nil)
}
