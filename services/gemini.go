package services

import (
	"context"
	"errors"
	"strings"

	"promptcoach/config"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// ModelClient is the capability the analyzer needs from the upstream model.
// It is injected once at startup and substituted with a fake in tests.
type ModelClient interface {
	IsConfigured() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

var modelClient ModelClient

// InitAnalysisService initializes the Gemini-backed model client using the
// API key from the config.
func InitAnalysisService(cfg *config.Config) {
	client, err := newGeminiClient(cfg.Gemini.ApiKey)
	if err != nil {
		panic("Failed to initialize Gemini client: " + err.Error())
	}
	modelClient = client
}

// SetModelClient replaces the model client. Used by tests.
func SetModelClient(mc ModelClient) {
	modelClient = mc
}

// ModelConfigured reports whether a model credential is available. The check
// happens per-request rather than at startup so the server can come up
// without a key and report the misconfiguration to callers.
func ModelConfigured() bool {
	return modelClient != nil && modelClient.IsConfigured()
}

type geminiClient struct {
	client *genai.Client
	model  string
}

func newGeminiClient(apiKey string) (*geminiClient, error) {
	if apiKey == "" {
		return &geminiClient{}, nil
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &geminiClient{client: client, model: defaultGeminiModel}, nil
}

func (g *geminiClient) IsConfigured() bool {
	return g.client != nil
}

func (g *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", errors.New("gemini client not initialized")
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// cleanModelOutput strips the markdown code fence Gemini often wraps JSON in.
func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
