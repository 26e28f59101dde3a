package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

type catalogEntry struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	RankingRule string  `json:"ranking_rule"`
	Description *string `json:"description,omitempty"`
}

func (h *handlers) exerciseCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	exercises, err := h.ds.Exercises(ctx)
	if err != nil {
		return nil, err
	}

	catalog := make([]catalogEntry, 0, len(exercises))
	for _, e := range exercises {
		catalog = append(catalog, catalogEntry{
			ID:          e.ID,
			Name:        e.Name,
			Kind:        e.Kind(),
			RankingRule: e.RankingRule(),
			Description: e.Description,
		})
	}

	data, err := json.Marshal(catalog)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
