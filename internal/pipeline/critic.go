package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mpataki/figgen/internal/gateway"
	"github.com/mpataki/figgen/internal/models"
	"github.com/mpataki/figgen/internal/prompt"
)

// Critic judges a rendered artifact against the target and the description
// that produced it. A response the critic cannot parse counts as "no issues":
// the loop terminates rather than spinning on malformed output.
type Critic struct {
	client gateway.Client
	logger *zap.Logger
}

func NewCritic(client gateway.Client, logger *zap.Logger) *Critic {
	return &Critic{client: client, logger: logger}
}

type critiqueResponse struct {
	CriticSuggestions  []string `json:"critic_suggestions"`
	RevisedDescription *string  `json:"revised_description"`
}

func (c *Critic) Review(ctx context.Context, req models.Request, artifactPath, description string) (models.Critique, error) {
	artifact, err := os.ReadFile(artifactPath)
	if err != nil {
		return models.Critique{}, fmt.Errorf("failed to read artifact: %w", err)
	}

	c.logger.Info("evaluating artifact", zap.String("path", artifactPath))

	response, err := c.client.GenerateText(ctx, gateway.TextRequest{
		Prompt:      prompt.Critique(req, description),
		Images:      []gateway.Image{{MIME: "image/png", Data: artifact}},
		Temperature: 0.3,
		MaxTokens:   4096,
		JSON:        true,
	})
	if err != nil {
		return models.Critique{}, fmt.Errorf("critique call failed: %w", err)
	}

	var parsed critiqueResponse
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		c.logger.Warn("failed to parse critic response, treating as no issues", zap.Error(err))
		return models.Critique{}, nil
	}

	critique := models.Critique{Suggestions: parsed.CriticSuggestions}
	if parsed.RevisedDescription != nil {
		critique.RevisedDescription = *parsed.RevisedDescription
	}

	if critique.NeedsRevision() {
		c.logger.Info("critic raised issues", zap.Int("suggestions", len(critique.Suggestions)))
	} else {
		c.logger.Info("artifact passed critique")
	}

	return critique, nil
}
