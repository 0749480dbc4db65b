package render

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mpataki/figgen/internal/gateway"
	"github.com/mpataki/figgen/internal/prompt"
)

// Diagram renders via direct image synthesis. A missing image payload or an
// exhausted retry budget is a hard failure for the iteration.
type Diagram struct {
	client gateway.Client
	width  int
	height int
	logger *zap.Logger
}

func NewDiagram(client gateway.Client, width, height int, logger *zap.Logger) *Diagram {
	return &Diagram{
		client: client,
		width:  width,
		height: height,
		logger: logger,
	}
}

func (d *Diagram) Render(ctx context.Context, description, outPath string) error {
	req := gateway.ImageRequest{
		Prompt: prompt.DiagramRender(description),
		Aspect: gateway.AspectForDims(d.width, d.height),
		Size:   gateway.SizeForDims(d.width, d.height),
	}

	d.logger.Info("generating diagram",
		zap.String("aspect", string(req.Aspect)),
		zap.String("size", string(req.Size)))

	data, err := d.client.GenerateImage(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to generate diagram: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	d.logger.Info("diagram saved", zap.String("path", outPath), zap.Int("bytes", len(data)))
	return nil
}
