package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiConfig wires Gemini access.
type GeminiConfig struct {
	APIKey          string
	Model           string
	MaxOutputTokens int
	UseVertex       bool
	Project         string
	Location        string
	// BaseURL overrides the API endpoint; used by tests.
	BaseURL string
}

const (
	defaultGeminiModel     = "gemini-2.0-flash"
	defaultGeminiMaxTokens = 1024
)

// clientConfig maps cfg onto the genai client settings. Values are taken as
// given; environment lookups belong to the config package. On Vertex AI the
// client resolves Application Default Credentials itself.
func (cfg GeminiConfig) clientConfig() (*genai.ClientConfig, error) {
	cc := &genai.ClientConfig{}
	switch {
	case cfg.UseVertex && strings.TrimSpace(cfg.Project) == "":
		return nil, errors.New("vertex project id missing")
	case cfg.UseVertex && strings.TrimSpace(cfg.Location) == "":
		return nil, errors.New("vertex location missing")
	case cfg.UseVertex:
		cc.Backend = genai.BackendVertexAI
		cc.Project = strings.TrimSpace(cfg.Project)
		cc.Location = strings.TrimSpace(cfg.Location)
	case strings.TrimSpace(cfg.APIKey) == "":
		return nil, errors.New("gemini api key missing")
	default:
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = strings.TrimSpace(cfg.APIKey)
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	return cc, nil
}

// GeminiGenerator sends the whole prompt as a single user turn to Gemini.
type GeminiGenerator struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

// NewGeminiGenerator returns a Generator backed by the Gemini API or Vertex AI.
// It fails without credentials; callers fall back to UnavailableGenerator.
func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	clientCfg, err := cfg.clientConfig()
	if err != nil {
		return nil, err
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}

	gen := &GeminiGenerator{client: client, model: defaultGeminiModel, maxTokens: defaultGeminiMaxTokens}
	if model := strings.TrimSpace(cfg.Model); model != "" {
		gen.model = model
	}
	if cfg.MaxOutputTokens > 0 {
		gen.maxTokens = int32(cfg.MaxOutputTokens)
	}
	return gen, nil
}

// Generate implements Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: g.maxTokens,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &GenerationError{Reason: FailureTimeout, Err: err}
		}
		return "", &GenerationError{Reason: FailureRequest, Err: err}
	}
	output := strings.TrimSpace(resp.Text())
	if output == "" {
		return "", &GenerationError{Reason: FailureEmptyResponse, Err: errors.New("gemini returned empty response")}
	}
	return output, nil
}
