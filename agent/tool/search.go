package tool

import (
	"context"
	"fmt"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
)

// SearchResult is the fixed-shape placeholder result set. Real retrieval
// is an external collaborator in a full deployment; this handler only
// shapes what rendering expects and therefore never fails.
type SearchResult struct {
	Query   string             `json:"query"`
	Results []SearchResultItem `json:"results"`
}

type SearchResultItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
}

type SearchHandler struct{}

var _ contractx.Handler = (*SearchHandler)(nil)

func NewSearchHandler() *SearchHandler {
	return &SearchHandler{}
}

// Execute ignores the command name: every Search invocation produces the
// same placeholder shape keyed off the query.
func (h *SearchHandler) Execute(ctx context.Context, command string, params map[string]any) (contractx.AgentResult, error) {
	query := stringParam(params, "query")
	if query == "" {
		query = "Unknown"
	}

	result := SearchResult{
		Query: query,
		Results: []SearchResultItem{
			{
				Title:   fmt.Sprintf("%s - Wikipedia", query),
				Snippet: "Detailed information about the topic found on the free encyclopedia...",
				Source:  "wikipedia.org",
			},
			{
				Title:   fmt.Sprintf("Latest News: %s", query),
				Snippet: "Breaking news and updates regarding your search query...",
				Source:  "news.google.com",
			},
			{
				Title:   fmt.Sprintf("Images for %s", query),
				Snippet: "View high resolution images...",
				Source:  "images.google.com",
			},
		},
	}

	return contractx.AgentResult{
		Success: true,
		Message: fmt.Sprintf("Here is what I found for %q.", query),
		Data:    result,
		Kind:    contractx.PayloadSearchResult,
	}, nil
}
