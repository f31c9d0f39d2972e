package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"promptcoach/models"
)

// UpstreamError means the model answered, but with output that violates the
// analysis contract. Raw carries the cleaned model text for diagnostics.
type UpstreamError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

const rubricInstruction = `Act as a prompt engineering coach and grade the user's prompt against five criteria. Be strict but fair.

Criteria:
1. context: does the prompt establish background and role?
2. goal: is the desired outcome stated clearly?
3. format: is the expected output format specified?
4. constraints: are limits, tone or scope constraints given?
5. examples: are examples or references provided?

For each criterion give a score from 0 to 100, a level ("missing", "weak", "ok" or "strong") and one sentence of feedback. Also give an overall score from 0 to 100 with a short overall label, a list of concrete suggestions, and an improved version of the prompt. The improved prompt must preserve the user's intent while upgrading clarity, structure and explicitness.

Required Output Format (JSON):
{
  "overallScore": 0,
  "overallLabel": "text",
  "criteria": [
    {"id": "context", "label": "Context", "score": 0, "level": "missing", "feedback": "text"},
    {"id": "goal", "label": "Goal", "score": 0, "level": "missing", "feedback": "text"},
    {"id": "format", "label": "Format", "score": 0, "level": "missing", "feedback": "text"},
    {"id": "constraints", "label": "Constraints", "score": 0, "level": "missing", "feedback": "text"},
    {"id": "examples", "label": "Examples", "score": 0, "level": "missing", "feedback": "text"}
  ],
  "suggestions": ["text"],
  "improvedPrompt": "text"
}

Provide ONLY the JSON output without additional text or markdown formatting.

User's prompt:
%s`

// AnalyzePrompt sends the user's prompt to the model with the grading rubric
// and returns the validated critique. A transport failure is returned as-is;
// contract violations come back as *UpstreamError.
func AnalyzePrompt(ctx context.Context, prompt string) (models.Analysis, error) {
	if modelClient == nil || !modelClient.IsConfigured() {
		return models.Analysis{}, errors.New("model client not initialized")
	}

	raw, err := modelClient.Generate(ctx, fmt.Sprintf(rubricInstruction, prompt))
	if err != nil {
		return models.Analysis{}, fmt.Errorf("failed to analyze prompt: %w", err)
	}

	cleaned := cleanModelOutput(raw)

	var analysis models.Analysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return models.Analysis{}, &UpstreamError{
			Reason: "model returned invalid JSON",
			Raw:    cleaned,
			Err:    err,
		}
	}

	if err := validateAnalysis(&analysis); err != nil {
		return models.Analysis{}, &UpstreamError{
			Reason: "model returned malformed analysis",
			Raw:    cleaned,
			Err:    err,
		}
	}

	return analysis, nil
}

// validateAnalysis enforces the analysis contract: all five criterion ids
// exactly once, known levels, scores within 0..100 (clamped rather than
// rejected). The upstream criteria order is preserved.
func validateAnalysis(analysis *models.Analysis) error {
	if len(analysis.Criteria) != len(models.CriterionIDs) {
		return fmt.Errorf("expected %d criteria, got %d", len(models.CriterionIDs), len(analysis.Criteria))
	}

	seen := map[string]bool{}
	for i := range analysis.Criteria {
		criterion := &analysis.Criteria[i]
		if !validCriterionID(criterion.ID) {
			return fmt.Errorf("unknown criterion id %q", criterion.ID)
		}
		if seen[criterion.ID] {
			return fmt.Errorf("duplicate criterion id %q", criterion.ID)
		}
		seen[criterion.ID] = true
		if !validLevel(criterion.Level) {
			return fmt.Errorf("unknown level %q for criterion %q", criterion.Level, criterion.ID)
		}
		criterion.Score = clampScore(criterion.Score)
	}

	analysis.OverallScore = clampScore(analysis.OverallScore)
	if analysis.Suggestions == nil {
		analysis.Suggestions = []string{}
	}
	return nil
}

func validCriterionID(id string) bool {
	for _, known := range models.CriterionIDs {
		if id == known {
			return true
		}
	}
	return false
}

func validLevel(level string) bool {
	for _, known := range models.Levels {
		if level == known {
			return true
		}
	}
	return false
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
