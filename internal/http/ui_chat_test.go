package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/ragportal/portal-ui/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestChat_RendersEmptyTranscript(t *testing.T) {
	env := newTestEnv(t, &memberIdentity)

	rec := env.get(HomePath)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ContainsAll(rec.Body.String(), []string{
		`id="transcript"`, `id="chat-empty"`, `hx-post="/app/chat/query"`, `name="query"`,
	}))
}

func TestChat_HTMXNavigationReturnsContentOnly(t *testing.T) {
	env := newTestEnv(t, &memberIdentity)

	rec := env.get(HomePath, asHTMX("main"))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Chat - RAG Portal</title>")
	assert.Contains(t, body, `hx-swap-oob="outerHTML"`)
	assert.Contains(t, body, `id="transcript"`)
	assert.NotContains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, decodeTrigger(t, rec.Header()), "nav:activate")
}

func TestChatQuery_AppendsExchange(t *testing.T) {
	env := newTestEnv(t, &memberIdentity)
	env.API.EXPECT().Ask(gomock.Any(), model.ChatQuery{Query: "What is our leave policy?"}).
		Return(model.ChatAnswer{
			Answer:  "25 days per year.",
			Sources: []json.RawMessage{json.RawMessage(`{"doc":1}`), json.RawMessage(`{"doc":2}`)},
		}, nil)

	rec := env.post(HomePath+"/query", url.Values{"query": {"  What is our leave policy?  "}}, asHTMX("transcript"))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, ContainsAll(body, []string{
		"message-user", "What is our leave policy?",
		"message-assistant", "25 days per year.", "Based on 2 sources",
	}), body)
	assert.NotContains(t, body, "<!DOCTYPE html>")
}

func TestChatQuery_BlankQuestionDoesNothing(t *testing.T) {
	env := newTestEnv(t, &memberIdentity)

	rec := env.post(HomePath+"/query", url.Values{"query": {"   "}}, asHTMX("transcript"))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.post(HomePath+"/query", url.Values{"query": {""}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, HomePath, rec.Header().Get("Location"))
}

func TestChatQuery_FailureKeepsQuestionAndToasts(t *testing.T) {
	env := newTestEnv(t, &memberIdentity)
	env.API.EXPECT().Ask(gomock.Any(), gomock.Any()).Return(model.ChatAnswer{}, errors.New("backend down"))

	rec := env.post(HomePath+"/query", url.Values{"query": {"Hello?"}}, asHTMX("transcript"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello?")
	assert.NotContains(t, rec.Body.String(), "message-assistant")
	events := decodeTrigger(t, rec.Header())
	assert.Equal(t, map[string]any{"message": errMsgChatFailed, "type": "error"}, events["showToast"])
}

func TestChatQuery_WithoutJavaScriptRendersPage(t *testing.T) {
	env := newTestEnv(t, &memberIdentity)
	env.API.EXPECT().Ask(gomock.Any(), gomock.Any()).Return(model.ChatAnswer{Answer: "Yes."}, nil)

	rec := env.post(HomePath+"/query", url.Values{"query": {"Is it ready?"}, "csrf_token": {testCSRF}}, withoutCSRFHeader())

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "Is it ready?")
	assert.Contains(t, body, "Yes.")
	assert.NotContains(t, body, `id="chat-empty"`)
}

func TestChat_AnonymousRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get(HomePath)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))
}
