package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ragportal/portal-ui/internal/backend"
	"github.com/ragportal/portal-ui/internal/domain/model"
	"github.com/ragportal/portal-ui/internal/http/uiutil"
	"github.com/ragportal/portal-ui/internal/ports"
)

const (
	documentsTableTarget = "documents-table"

	errMsgLoadDocuments = "Failed to load documents"
	errMsgUpload        = "Failed to upload document"
	errMsgUploadURL     = "Failed to upload URL"
	errMsgIngest        = "Failed to ingest document"
)

//nolint:gochecknoglobals // static page metadata
var documentsMeta = PageMeta{Title: "Documents - RAG Portal", PageTitle: "Documents", CurrentPage: PageDocuments}

// Documents lists the tenant's documents, one 1-based page at a time. A
// request targeting the table gets only the table back.
// GET /app/documents.
func (h *UIHandlers) Documents(w http.ResponseWriter, r *http.Request) {
	p := getPageParams(r.URL.Query(), 1)

	fetch := func(ctx context.Context, data map[string]any) error {
		data["UploadLimit"] = uiutil.FormatBytes(h.UploadMaxBytes)
		data["RefreshURL"] = buildPageURL(DocumentsPath, r.URL.Query(), p)
		page, err := api(r).ListDocuments(ctx, p.Page, p.PageSize)
		if err != nil {
			data["ErrorMessage"] = errMsgLoadDocuments
			return fmt.Errorf("list documents: %w", err)
		}
		data["Documents"] = page.Items
		data["TotalPages"] = page.TotalPages()
		data["Pagination"] = buildPagination(r, DocumentsPath, p, len(page.Items), page.Total)
		return nil
	}

	if HXTarget(r) == documentsTableTarget {
		data := basePageData(r, documentsMeta)
		if err := fetch(r.Context(), data); err != nil {
			h.logger().WarnContext(r.Context(), "document list refresh failed", "error", err)
			HTMX(w).Toast(errMsgLoadDocuments, ToastError)
			markPageError(data)
		}
		h.renderFragment(w, r, documentsTableTarget, data)
		return
	}

	h.Page(w, r, PageSpec{Meta: documentsMeta, Fetch: fetch})
}

// UploadDocument forwards a file from the upload form.
// POST /app/documents/upload.
func (h *UIHandlers) UploadDocument(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		h.finishAction(w, r, actionResult{Message: uploadFormError(err), Kind: ToastError, Redirect: DocumentsPath})
		return
	}
	defer file.Close()

	contentType, err := model.ValidateUpload(header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		h.finishAction(w, r, actionResult{Message: userMessage(err, errMsgUpload), Kind: ToastError, Redirect: DocumentsPath})
		return
	}

	doc, err := api(r).UploadDocument(r.Context(), ports.UploadInput{
		Filename:    header.Filename,
		ContentType: contentType,
		Body:        file,
	})
	if err != nil {
		h.logger().WarnContext(r.Context(), "document upload failed", "filename", header.Filename, "error", err)
		h.finishAction(w, r, actionResult{Message: backend.UserMessage(err, errMsgUpload), Kind: ToastError, Redirect: DocumentsPath})
		return
	}

	h.logger().InfoContext(r.Context(), "document uploaded", "document_id", doc.ID, "content_type", contentType)
	h.finishAction(w, r, actionResult{
		Message:  "Document uploaded",
		Kind:     ToastSuccess,
		Event:    EventDocumentsChanged,
		Redirect: DocumentsPath,
	})
}

// UploadURL registers a web page as a document.
// POST /app/documents/upload-url.
func (h *UIHandlers) UploadURL(w http.ResponseWriter, r *http.Request) {
	rawURL, err := model.ValidateSourceURL(r.PostFormValue("url"))
	if err != nil {
		h.finishAction(w, r, actionResult{Message: userMessage(err, errMsgUploadURL), Kind: ToastError, Redirect: DocumentsPath})
		return
	}

	if _, err := api(r).UploadURL(r.Context(), rawURL); err != nil {
		h.logger().WarnContext(r.Context(), "url upload failed", "error", err)
		h.finishAction(w, r, actionResult{Message: backend.UserMessage(err, errMsgUploadURL), Kind: ToastError, Redirect: DocumentsPath})
		return
	}

	h.finishAction(w, r, actionResult{
		Message:  "URL added",
		Kind:     ToastSuccess,
		Event:    EventDocumentsChanged,
		Redirect: DocumentsPath,
	})
}

// IngestDocument starts ingestion of a document.
// POST /app/documents/{id}/ingest.
func (h *UIHandlers) IngestDocument(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.finishAction(w, r, actionResult{Message: errMsgIngest, Kind: ToastError, Redirect: DocumentsPath})
		return
	}

	if err := api(r).IngestDocument(r.Context(), id); err != nil {
		h.logger().WarnContext(r.Context(), "document ingest failed", "document_id", id, "error", err)
		h.finishAction(w, r, actionResult{Message: errMsgIngest, Kind: ToastError, Redirect: DocumentsPath})
		return
	}

	h.finishAction(w, r, actionResult{
		Message:  "Ingestion started / completed",
		Kind:     ToastSuccess,
		Event:    EventDocumentsChanged,
		Redirect: DocumentsPath,
	})
}

// uploadFormError explains why the multipart form yielded no file.
func uploadFormError(err error) string {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return "File is too large (limit " + uiutil.FormatBytes(tooLarge.Limit) + ")"
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return "Please choose a file to upload"
	default:
		return errMsgUpload
	}
}
