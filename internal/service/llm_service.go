package service

import (
	"context"
	"fmt"
	"strings"

	"claimcheck/pkg/config"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiService wraps the Gemini client for both text understanding (claim
// field extraction) and vision understanding (image-match scoring). Calls are
// blocking; no timeout or retry policy is applied here.
type GeminiService struct {
	client      *genai.Client
	model       *genai.GenerativeModel
	visionModel *genai.GenerativeModel
	logger      *zap.Logger
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(0.2)

	visionModel := client.GenerativeModel(cfg.VisionModel)
	visionModel.SetTemperature(0.2)

	logger.Info("Gemini client initialized",
		zap.String("model", cfg.Model),
		zap.String("vision_model", cfg.VisionModel),
	)

	return &GeminiService{
		client:      client,
		model:       model,
		visionModel: visionModel,
		logger:      logger,
	}, nil
}

// GenerateText submits a text prompt and returns the model's reply.
func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	reply := responseText(resp)
	if reply == "" {
		return "", fmt.Errorf("no response from model")
	}

	s.logger.Debug("Text generation completed", zap.Int("reply_length", len(reply)))
	return reply, nil
}

// GenerateVision submits an image plus a text instruction and returns the
// model's reply.
func (s *GeminiService) GenerateVision(ctx context.Context, mimeType string, image []byte, prompt string) (string, error) {
	resp, err := s.visionModel.GenerateContent(ctx,
		genai.ImageData(imageFormat(mimeType), image),
		genai.Text(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate vision content: %w", err)
	}

	reply := responseText(resp)
	if reply == "" {
		return "", fmt.Errorf("no response from vision model")
	}

	s.logger.Debug("Vision generation completed", zap.Int("reply_length", len(reply)))
	return reply, nil
}

func (s *GeminiService) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String())
}

// imageFormat maps a mime type to the format label the Gemini SDK expects.
func imageFormat(mimeType string) string {
	format := strings.ToLower(strings.TrimPrefix(mimeType, "image/"))
	switch format {
	case "jpg", "":
		return "jpeg"
	default:
		return format
	}
}
