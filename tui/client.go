package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"promptcoach/models"
)

// Client calls the analysis server.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// Analyze posts the prompt to the server and returns the critique. Non-2xx
// responses are turned into errors carrying the server's message when one is
// present.
func (c *Client) Analyze(ctx context.Context, prompt string) (models.Analysis, error) {
	payload, err := json.Marshal(models.AnalyzeRequest{Prompt: prompt})
	if err != nil {
		return models.Analysis{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze", bytes.NewReader(payload))
	if err != nil {
		return models.Analysis{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Analysis{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Analysis{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return models.Analysis{}, errors.New(apiErr.Error)
		}
		return models.Analysis{}, fmt.Errorf("analysis failed (status %d)", resp.StatusCode)
	}

	var analysis models.Analysis
	if err := json.Unmarshal(body, &analysis); err != nil {
		return models.Analysis{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return analysis, nil
}
