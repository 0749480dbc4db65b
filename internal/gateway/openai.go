package gateway

import (
	"context"
	"encoding/base64"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"
)

// OpenAI is the alternate text-only provider. It covers every text and
// vision call; image synthesis is not offered and always reports ErrNoImage.
type OpenAI struct {
	client openai.Client
	model  string
	logger *zap.Logger
}

func NewOpenAI(apiKey, baseURL, model string, logger *zap.Logger) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required (set OPENAI_API_KEY)")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAI{
		client: openai.NewClient(opts...),
		model:  model,
		logger: logger,
	}, nil
}

func (o *OpenAI) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	var msg openai.ChatCompletionMessageParamUnion
	if len(req.Images) == 0 {
		msg = openai.UserMessage(req.Prompt)
	} else {
		parts := []openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(req.Prompt),
		}
		for _, img := range req.Images {
			url := fmt.Sprintf("data:%s;base64,%s", img.MIME, base64.StdEncoding.EncodeToString(img.Data))
			parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: url}))
		}
		msg = openai.UserMessage(parts)
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{msg},
		Temperature: openai.Float(float64(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.JSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	var text string
	err := textRetry.do(ctx, o.logger, "generate_text", func() error {
		resp, err := o.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			return fmt.Errorf("empty response from model")
		}
		text = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}

	return text, nil
}

func (o *OpenAI) GenerateImage(ctx context.Context, req ImageRequest) ([]byte, error) {
	return nil, ErrNoImage
}
