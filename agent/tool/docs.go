package tool

import (
	"context"
	"fmt"
	"strconv"
	"time"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
	statex "github.com/surrogate-labs/surrogate-agent/agent/state"
)

// DocsHandler drafts text documents.
type DocsHandler struct {
	store statex.Store
	now   func() time.Time
}

var _ contractx.Handler = (*DocsHandler)(nil)

func NewDocsHandler(store statex.Store, now func() time.Time) *DocsHandler {
	return &DocsHandler{store: store, now: now}
}

func (h *DocsHandler) Execute(ctx context.Context, command string, params map[string]any) (contractx.AgentResult, error) {
	switch command {
	case "create_doc":
		return h.createDoc(ctx, params)
	default:
		return unknownCommand("doc"), nil
	}
}

func (h *DocsHandler) createDoc(ctx context.Context, params map[string]any) (contractx.AgentResult, error) {
	content := stringParam(params, "content")
	if content == "" {
		return failure("No content provided for document."), nil
	}

	title := stringParam(params, "title")
	if title == "" {
		title = "Untitled Draft"
	}

	now := h.now()
	doc := statex.TextDocument{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Title:     title,
		Content:   content,
		CreatedAt: now.UTC(),
	}
	if err := h.store.AddDocument(ctx, doc); err != nil {
		return contractx.AgentResult{}, err
	}

	return contractx.AgentResult{
		Success: true,
		Message: fmt.Sprintf("Document %q created successfully.", doc.Title),
		Data:    doc,
		Kind:    contractx.PayloadDoc,
	}, nil
}
