package pipeline

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/mpataki/figgen/internal/gateway"
	"github.com/mpataki/figgen/internal/models"
	"github.com/mpataki/figgen/internal/prompt"
	"github.com/mpataki/figgen/internal/reference"
)

// Retriever picks the reference examples most relevant to the target. The
// ranking itself is delegated to the model; the retriever enforces the
// contract on whatever comes back.
type Retriever struct {
	client gateway.Client
	logger *zap.Logger
}

func NewRetriever(client gateway.Client, logger *zap.Logger) *Retriever {
	return &Retriever{client: client, logger: logger}
}

type selectionResponse struct {
	SelectedIDs []string `json:"selected_ids"`
}

// Select returns at most cap examples from pool, in the model's priority
// order. A pool that already fits under cap is returned unchanged with no
// model call. A malformed response falls back to the first cap candidates.
func (r *Retriever) Select(ctx context.Context, req models.Request, pool []reference.Example, cap int) ([]reference.Example, error) {
	if len(pool) == 0 {
		r.logger.Warn("no reference candidates available")
		return nil, nil
	}
	if len(pool) <= cap {
		return pool, nil
	}

	response, err := r.client.GenerateText(ctx, gateway.TextRequest{
		Prompt:      prompt.Retrieval(req, pool, cap),
		Temperature: 0.3,
		MaxTokens:   4096,
		JSON:        true,
	})
	if err != nil {
		return nil, err
	}

	var sel selectionResponse
	if jsonErr := json.Unmarshal([]byte(response), &sel); jsonErr != nil || sel.SelectedIDs == nil {
		r.logger.Warn("failed to parse retriever response, falling back to first candidates",
			zap.Error(jsonErr))
		return pool[:cap], nil
	}

	byID := make(map[string]reference.Example, len(pool))
	for _, ex := range pool {
		byID[ex.ID] = ex
	}

	// Unknown ids are dropped silently; response order is priority order.
	selected := make([]reference.Example, 0, cap)
	for _, id := range sel.SelectedIDs {
		if ex, ok := byID[id]; ok {
			selected = append(selected, ex)
		}
		if len(selected) == cap {
			break
		}
	}

	r.logger.Info("selected reference examples",
		zap.Int("pool", len(pool)),
		zap.Int("selected", len(selected)))
	return selected, nil
}
