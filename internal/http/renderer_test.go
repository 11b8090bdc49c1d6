package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/ragportal/portal-ui/internal/domain/model"
	"github.com/ragportal/portal-ui/internal/http/ui/viewmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_DefineEveryScreenAndFragment(t *testing.T) {
	tr := RequireTemplateRenderer(t)

	names := []string{"layout", "content", documentsTableTarget, usersTableTarget, "chat-exchange", "password-form", "pager"}
	for _, name := range ContentTemplateMap() {
		names = append(names, name)
	}
	for _, name := range names {
		assert.True(t, tr.Has(name), "template %q is not defined", name)
	}
}

func TestContentTemplateFor_FallsBackToChat(t *testing.T) {
	assert.Equal(t, "documents-content", ContentTemplateFor(PageDocuments))
	assert.Equal(t, "chat-content", ContentTemplateFor("nope"))
}

func TestNewTemplateRenderer_Errors(t *testing.T) {
	_, err := NewTemplateRenderer(TemplateRendererConfig{})
	require.Error(t, err)

	broken := fstest.MapFS{"layout.tmpl": {Data: []byte(`{{define "layout"}}{{.Missing`)}}
	_, err = NewTemplateRenderer(TemplateRendererConfig{TemplateFS: broken, Logger: discardLogger()})
	require.Error(t, err)
}

func TestRenderFull_AdminLayout(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	bs, _ := scopeFor(&adminIdentity)
	bs.Session.Initialize(context.Background())

	r := httptest.NewRequest(http.MethodGet, ProfilePath, nil)
	r = r.WithContext(WithBrowserSession(r.Context(), bs))
	data := basePageData(r, profileMeta)
	data["CSRFToken"] = testCSRF

	rec := httptest.NewRecorder()
	require.NoError(t, tr.RenderFull(rec, r, data))

	body := rec.Body.String()
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, ContainsAll(body, []string{
		`<meta name="csrf-token" content="test-csrf-token">`,
		`<title>Profile - RAG Portal</title>`,
		`id="header-title"`,
		`href="/app/users"`,
		`admin@acme.test`,
		`id="password-form"`,
		`id="toasts"`,
	}), body)
}

func TestRenderFull_MemberHasNoUsersLink(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	bs, _ := scopeFor(&memberIdentity)
	bs.Session.Initialize(context.Background())

	r := httptest.NewRequest(http.MethodGet, HomePath, nil)
	r = r.WithContext(WithBrowserSession(r.Context(), bs))

	rec := httptest.NewRecorder()
	require.NoError(t, tr.RenderFull(rec, r, basePageData(r, chatMeta)))

	body := rec.Body.String()
	assert.Contains(t, body, `href="/app/chat"`)
	assert.NotContains(t, body, `href="/app/users"`)
	assert.Contains(t, body, `id="transcript"`)
}

func TestRenderFragment_DocumentsTable(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	size := int64(2048)
	original := "Handbook.pdf"

	data := map[string]any{
		"CSRFToken":  testCSRF,
		"RefreshURL": "/app/documents?page=1&page_size=10",
		"Documents": []model.Document{
			{ID: 4, Filename: "a1b2.pdf", OriginalFilename: &original, Status: "ingested", SizeBytes: &size},
			{ID: 5, Filename: "notes.txt", Status: "uploaded"},
		},
		"Pagination": viewmodel.Pagination{Page: 1, PageSize: 10, StartIndex: 1, EndIndex: 2, TotalCount: 2},
		"Errors":     map[string]string{},
	}

	rec := httptest.NewRecorder()
	require.NoError(t, tr.RenderFragment(rec, documentsTableTarget, data, ""))

	body := rec.Body.String()
	assert.True(t, ContainsAll(body, []string{
		`id="documents-table"`,
		`hx-trigger="documents:changed from:body"`,
		`Handbook.pdf`,
		`notes.txt`,
		`2.0 KB`,
		`/app/documents/4/ingest`,
		`1–2 of 2`,
	}), body)
	assert.NotContains(t, body, "Previous")
}

func TestRenderFragment_ChatExchange(t *testing.T) {
	tr := RequireTemplateRenderer(t)

	ex := chatExchange{
		Question: model.ChatMessage{Role: model.ChatRoleUser, Content: "What is <b>RAG</b>?"},
		Answer:   &model.ChatMessage{Role: model.ChatRoleAssistant, Content: "Retrieval.", SourceCount: 2},
	}
	rec := httptest.NewRecorder()
	require.NoError(t, tr.RenderFragment(rec, "chat-exchange", ex, ""))

	body := rec.Body.String()
	assert.Contains(t, body, "What is &lt;b&gt;RAG&lt;/b&gt;?")
	assert.Contains(t, body, "Retrieval.")
	assert.Contains(t, body, "Based on 2 sources")

	rec = httptest.NewRecorder()
	require.NoError(t, tr.RenderFragment(rec, "chat-exchange", chatExchange{Question: ex.Question}, ""))
	assert.NotContains(t, rec.Body.String(), "message-assistant")
}

func TestRenderFragment_UnknownTemplate(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	rec := httptest.NewRecorder()
	assert.Error(t, tr.RenderFragment(rec, "nope", nil, ""))
	assert.Empty(t, rec.Body.String(), "nothing is written on failure")
}
