package httpx

import (
	"net/http"

	"github.com/ragportal/portal-ui/internal/domain/model"
)

const errMsgChatFailed = "Failed to get an answer"

//nolint:gochecknoglobals // static page metadata
var chatMeta = PageMeta{Title: "Chat - RAG Portal", PageTitle: "Chat", CurrentPage: PageChat}

// chatExchange is one question and, when the backend answered, its reply.
type chatExchange struct {
	Question model.ChatMessage
	Answer   *model.ChatMessage
}

// Chat renders the conversation screen. The transcript lives in the page.
// GET /app/chat.
func (h *UIHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{Meta: chatMeta})
}

// ChatQuery asks the backend a question and appends the exchange to the transcript.
// POST /app/chat/query.
func (h *UIHandlers) ChatQuery(w http.ResponseWriter, r *http.Request) {
	q, err := model.NewChatQuery(r.PostFormValue("query"))
	if err != nil {
		if IsHTMX(r) {
			HTMX(w).NoContent()
			return
		}
		http.Redirect(w, r, HomePath, http.StatusSeeOther)
		return
	}

	ex := chatExchange{Question: model.ChatMessage{Role: model.ChatRoleUser, Content: q.Query}}

	answer, err := api(r).Ask(r.Context(), q)
	if err != nil {
		h.logger().WarnContext(r.Context(), "chat query failed", "error", err)
		HTMX(w).Toast(errMsgChatFailed, ToastError)
	} else {
		ex.Answer = &model.ChatMessage{
			Role:        model.ChatRoleAssistant,
			Content:     answer.Answer,
			SourceCount: len(answer.Sources),
		}
	}

	if IsHTMX(r) {
		h.renderFragment(w, r, "chat-exchange", ex)
		return
	}

	data := basePageData(r, chatMeta)
	data["Exchanges"] = []chatExchange{ex}
	if err != nil {
		data["Error"] = true
		data["ErrorMessage"] = errMsgChatFailed
	}
	h.renderPage(w, r, data)
}
