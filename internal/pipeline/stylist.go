package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mpataki/figgen/internal/gateway"
	"github.com/mpataki/figgen/internal/models"
	"github.com/mpataki/figgen/internal/prompt"
)

// Stylist refines a description against the mode's aesthetic guideline
// corpus. Content preservation is a contract on the prompt: the stylist may
// enrich visual detail but the components, connections, and data values must
// survive unchanged.
type Stylist struct {
	client gateway.Client
	logger *zap.Logger
}

func NewStylist(client gateway.Client, logger *zap.Logger) *Stylist {
	return &Stylist{client: client, logger: logger}
}

func (s *Stylist) Style(ctx context.Context, req models.Request, description string) (string, error) {
	s.logger.Info("refining description", zap.String("mode", string(req.Mode)))

	refined, err := s.client.GenerateText(ctx, gateway.TextRequest{
		Prompt:      prompt.Styling(req, description),
		Temperature: 0.5,
		MaxTokens:   4096,
	})
	if err != nil {
		return "", fmt.Errorf("failed to style description: %w", err)
	}
	if refined == "" {
		return "", fmt.Errorf("stylist produced an empty description")
	}

	return refined, nil
}
