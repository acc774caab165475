package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/ladle-cloud/ladle/internal/domain"
	"github.com/ladle-cloud/ladle/internal/metrics"
)

// ImageGenerator produces hero images via the OpenAI-compatible image API.
// The provider hosts the result; only the returned URL is persisted.
type ImageGenerator struct {
	client *openai.Client
	model  string
	size   string
	logger *zap.Logger
}

// ImageConfig holds the image provider settings.
type ImageConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Size    string
	Logger  *zap.Logger
}

// NewImageGenerator creates an OpenAI-compatible image provider.
func NewImageGenerator(cfg *ImageConfig) *ImageGenerator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &ImageGenerator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		size:   cfg.Size,
		logger: cfg.Logger,
	}
}

// Generate implements domain.ImageGenerator.
func (g *ImageGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ImageRequest{
		Prompt:         prompt,
		Model:          g.model,
		Size:           g.size,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	}

	start := time.Now()
	resp, err := g.client.CreateImage(ctx, req)

	if err != nil {
		metrics.ImageRequestsTotal.WithLabelValues(g.model, "error").Inc()
		return "", parseAPIError("image", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		metrics.ImageRequestsTotal.WithLabelValues(g.model, "error").Inc()
		return "", fmt.Errorf("empty image response: %w", domain.ErrUpstream)
	}

	metrics.ImageRequestsTotal.WithLabelValues(g.model, "success").Inc()
	g.logger.Debug("Generated hero image",
		zap.String("model", g.model),
		zap.Duration("duration", time.Since(start)),
	)
	return resp.Data[0].URL, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (g *ImageGenerator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}
