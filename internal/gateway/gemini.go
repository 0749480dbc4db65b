package gateway

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Gemini serves both call classes: text/vision through the VLM model and
// image synthesis through the image model.
type Gemini struct {
	client     *genai.Client
	textModel  string
	imageModel string
	logger     *zap.Logger
}

func NewGemini(ctx context.Context, apiKey, textModel, imageModel string, logger *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required (set GEMINI_API_KEY)")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{
		client:     client,
		textModel:  textModel,
		imageModel: imageModel,
		logger:     logger,
	}, nil
}

func (g *Gemini) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	for _, img := range req.Images {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: img.MIME, Data: img.Data},
		})
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: req.MaxTokens,
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}

	var text string
	err := textRetry.do(ctx, g.logger, "generate_text", func() error {
		resp, err := g.client.Models.GenerateContent(ctx, g.textModel, contents, cfg)
		if err != nil {
			return err
		}
		text = resp.Text()
		if text == "" {
			return fmt.Errorf("empty response from model")
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}

	return text, nil
}

func (g *Gemini) GenerateImage(ctx context.Context, req ImageRequest) ([]byte, error) {
	contents := []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
		ImageConfig: &genai.ImageConfig{
			AspectRatio: string(req.Aspect),
			ImageSize:   string(req.Size),
		},
	}

	var data []byte
	err := imageRetry.do(ctx, g.logger, "generate_image", func() error {
		resp, err := g.client.Models.GenerateContent(ctx, g.imageModel, contents, cfg)
		if err != nil {
			return err
		}
		data = firstImagePart(resp)
		if data == nil {
			return ErrNoImage
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	return data, nil
}

func firstImagePart(resp *genai.GenerateContentResponse) []byte {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}
