package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Renderer turns one description into exactly one artifact file at outPath.
// Implementations never read artifacts from earlier iterations.
type Renderer interface {
	Render(ctx context.Context, description, outPath string) error
}

// Placeholder dimensions used when plot code execution fails. The critic sees
// the blank canvas and reacts on the next pass.
const (
	placeholderWidth  = 1024
	placeholderHeight = 768
)

func writePlaceholder(outPath string) error {
	img := image.NewRGBA(image.Rect(0, 0, placeholderWidth, placeholderHeight))
	white := color.RGBA{255, 255, 255, 255}
	for y := 0; y < placeholderHeight; y++ {
		for x := 0; x < placeholderWidth; x++ {
			img.Set(x, y, white)
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create placeholder: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode placeholder: %w", err)
	}
	return nil
}
