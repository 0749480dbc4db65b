package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mpataki/figgen/internal/gateway"
	"github.com/mpataki/figgen/internal/models"
	"github.com/mpataki/figgen/internal/prompt"
	"github.com/mpataki/figgen/internal/reference"
)

// Planner synthesizes the first detailed description from the target and the
// selected examples. With no examples it still plans zero-shot.
type Planner struct {
	client gateway.Client
	logger *zap.Logger
}

func NewPlanner(client gateway.Client, logger *zap.Logger) *Planner {
	return &Planner{client: client, logger: logger}
}

func (p *Planner) Plan(ctx context.Context, req models.Request, examples []reference.Example) (string, error) {
	hasImage, images := p.loadExampleImages(ctx, examples)

	p.logger.Info("generating description",
		zap.Int("examples", len(examples)),
		zap.Int("reference_images", len(images)))

	description, err := p.client.GenerateText(ctx, gateway.TextRequest{
		Prompt:      prompt.Planning(req, examples, hasImage),
		Images:      images,
		Temperature: 0.7,
		MaxTokens:   4096,
	})
	if err != nil {
		return "", fmt.Errorf("failed to plan description: %w", err)
	}
	if description == "" {
		return "", fmt.Errorf("planner produced an empty description")
	}

	return description, nil
}

// loadExampleImages reads reference images concurrently. An unreadable file
// only costs its example the image attachment; attachment order follows
// example order so the prompt's positional references line up.
func (p *Planner) loadExampleImages(ctx context.Context, examples []reference.Example) ([]bool, []gateway.Image) {
	hasImage := make([]bool, len(examples))
	loaded := make([][]byte, len(examples))

	var mu sync.Mutex
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(4)

	for i, ex := range examples {
		if ex.ImagePath == "" {
			continue
		}
		eg.Go(func() error {
			data, err := os.ReadFile(ex.ImagePath)
			if err != nil {
				p.logger.Warn("failed to load reference image",
					zap.String("path", ex.ImagePath),
					zap.Error(err))
				return nil
			}
			mu.Lock()
			loaded[i] = data
			mu.Unlock()
			return nil
		})
	}
	eg.Wait()

	var images []gateway.Image
	for i, data := range loaded {
		if data != nil {
			hasImage[i] = true
			images = append(images, gateway.Image{MIME: "image/png", Data: data})
		}
	}
	return hasImage, images
}
