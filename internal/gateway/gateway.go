package gateway

import (
	"context"
	"errors"
)

// Aspect and SizeClass are the discretized buckets the image service accepts.
// Requested pixel dimensions are quantized into these, never passed through.
type Aspect string

const (
	Aspect16x9 Aspect = "16:9"
	Aspect3x2  Aspect = "3:2"
	Aspect1x1  Aspect = "1:1"
	Aspect2x3  Aspect = "2:3"
	Aspect9x16 Aspect = "9:16"
)

type SizeClass string

const (
	Size1K SizeClass = "1K"
	Size2K SizeClass = "2K"
	Size4K SizeClass = "4K"
)

var ErrNoImage = errors.New("no image in model response")

type Image struct {
	MIME string
	Data []byte
}

type TextRequest struct {
	Prompt      string
	Images      []Image
	Temperature float32
	MaxTokens   int32
	JSON        bool
}

type ImageRequest struct {
	Prompt string
	Aspect Aspect
	Size   SizeClass
}

// Client is the single model handle the pipeline calls through. It is
// constructed once in cmd and injected; tests substitute fakes.
type Client interface {
	GenerateText(ctx context.Context, req TextRequest) (string, error)
	GenerateImage(ctx context.Context, req ImageRequest) ([]byte, error)
}

func AspectForDims(width, height int) Aspect {
	if width <= 0 || height <= 0 {
		return Aspect1x1
	}
	ratio := float64(width) / float64(height)
	switch {
	case ratio > 1.5:
		return Aspect16x9
	case ratio > 1.2:
		return Aspect3x2
	case ratio < 0.67:
		return Aspect9x16
	case ratio < 0.83:
		return Aspect2x3
	default:
		return Aspect1x1
	}
}

func SizeForDims(width, height int) SizeClass {
	longest := max(width, height)
	switch {
	case longest <= 1024:
		return Size1K
	case longest <= 2048:
		return Size2K
	default:
		return Size4K
	}
}
