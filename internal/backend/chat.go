package backend

import (
	"context"
	"net/http"

	"github.com/ragportal/portal-ui/internal/domain/model"
)

// Ask sends a question to the retrieval pipeline (POST /chat/query).
func (c *Client) Ask(ctx context.Context, q model.ChatQuery) (model.ChatAnswer, error) {
	var out model.ChatAnswer
	if err := c.doJSON(ctx, http.MethodPost, "/chat/query", q, &out); err != nil {
		return model.ChatAnswer{}, err
	}
	return out, nil
}
