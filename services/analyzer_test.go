package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeModel struct {
	configured bool
	output     string
	err        error
	lastPrompt string
}

func (f *fakeModel) IsConfigured() bool {
	return f.configured
}

func (f *fakeModel) Generate(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.output, f.err
}

const validAnalysisJSON = `{
	"overallScore": 42,
	"overallLabel": "Needs work",
	"criteria": [
		{"id": "context", "label": "Context", "score": 30, "level": "weak", "feedback": "No background given."},
		{"id": "goal", "label": "Goal", "score": 55, "level": "ok", "feedback": "Goal is implied."},
		{"id": "format", "label": "Format", "score": 10, "level": "missing", "feedback": "No output format."},
		{"id": "constraints", "label": "Constraints", "score": 40, "level": "weak", "feedback": "No limits stated."},
		{"id": "examples", "label": "Examples", "score": 75, "level": "strong", "feedback": "Good example."}
	],
	"suggestions": ["Add context"],
	"improvedPrompt": "You are ...; Context: ...; Goal: ..."
}`

func TestAnalyzePromptPassThrough(t *testing.T) {
	SetModelClient(&fakeModel{configured: true, output: validAnalysisJSON})
	defer SetModelClient(nil)

	analysis, err := AnalyzePrompt(context.Background(), "Write something.")
	if err != nil {
		t.Fatalf("AnalyzePrompt failed: %v", err)
	}

	if analysis.OverallScore != 42 {
		t.Errorf("Expected overall score 42, got %d", analysis.OverallScore)
	}
	if analysis.OverallLabel != "Needs work" {
		t.Errorf("Expected overall label 'Needs work', got %q", analysis.OverallLabel)
	}
	if len(analysis.Criteria) != 5 {
		t.Fatalf("Expected 5 criteria, got %d", len(analysis.Criteria))
	}
	// Upstream criteria order must survive validation untouched.
	wantOrder := []string{"context", "goal", "format", "constraints", "examples"}
	for i, want := range wantOrder {
		if analysis.Criteria[i].ID != want {
			t.Errorf("Criterion %d: expected id %q, got %q", i, want, analysis.Criteria[i].ID)
		}
	}
	if len(analysis.Suggestions) != 1 || analysis.Suggestions[0] != "Add context" {
		t.Errorf("Unexpected suggestions: %v", analysis.Suggestions)
	}
	if analysis.ImprovedPrompt != "You are ...; Context: ...; Goal: ..." {
		t.Errorf("Unexpected improved prompt: %q", analysis.ImprovedPrompt)
	}
}

func TestAnalyzePromptIncludesUserPrompt(t *testing.T) {
	fake := &fakeModel{configured: true, output: validAnalysisJSON}
	SetModelClient(fake)
	defer SetModelClient(nil)

	if _, err := AnalyzePrompt(context.Background(), "Summarize this article."); err != nil {
		t.Fatalf("AnalyzePrompt failed: %v", err)
	}
	if !strings.Contains(fake.lastPrompt, "Summarize this article.") {
		t.Error("Model invocation does not contain the user's prompt")
	}
	if !strings.Contains(fake.lastPrompt, "constraints") {
		t.Error("Model invocation does not contain the rubric")
	}
}

func TestAnalyzePromptStripsCodeFence(t *testing.T) {
	fenced := "```json\n" + validAnalysisJSON + "\n```"
	SetModelClient(&fakeModel{configured: true, output: fenced})
	defer SetModelClient(nil)

	analysis, err := AnalyzePrompt(context.Background(), "Write something.")
	if err != nil {
		t.Fatalf("AnalyzePrompt failed on fenced output: %v", err)
	}
	if analysis.OverallScore != 42 {
		t.Errorf("Expected overall score 42, got %d", analysis.OverallScore)
	}
}

func TestAnalyzePromptInvalidJSON(t *testing.T) {
	SetModelClient(&fakeModel{configured: true, output: "```\nSorry, I cannot help with that.\n```"})
	defer SetModelClient(nil)

	_, err := AnalyzePrompt(context.Background(), "Write something.")
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if upstream.Raw != "Sorry, I cannot help with that." {
		t.Errorf("Expected raw cleaned text preserved, got %q", upstream.Raw)
	}
}

func TestAnalyzePromptMissingCriterion(t *testing.T) {
	output := `{
		"overallScore": 50, "overallLabel": "Fair",
		"criteria": [
			{"id": "context", "label": "Context", "score": 50, "level": "ok", "feedback": ""},
			{"id": "goal", "label": "Goal", "score": 50, "level": "ok", "feedback": ""},
			{"id": "format", "label": "Format", "score": 50, "level": "ok", "feedback": ""},
			{"id": "constraints", "label": "Constraints", "score": 50, "level": "ok", "feedback": ""}
		],
		"suggestions": [], "improvedPrompt": "x"
	}`
	SetModelClient(&fakeModel{configured: true, output: output})
	defer SetModelClient(nil)

	_, err := AnalyzePrompt(context.Background(), "Write something.")
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("Expected UpstreamError for missing criterion, got %v", err)
	}
}

func TestAnalyzePromptDuplicateCriterion(t *testing.T) {
	output := strings.Replace(validAnalysisJSON, `"id": "goal"`, `"id": "context"`, 1)
	SetModelClient(&fakeModel{configured: true, output: output})
	defer SetModelClient(nil)

	_, err := AnalyzePrompt(context.Background(), "Write something.")
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("Expected UpstreamError for duplicate criterion, got %v", err)
	}
}

func TestAnalyzePromptUnknownLevel(t *testing.T) {
	output := strings.Replace(validAnalysisJSON, `"level": "strong"`, `"level": "excellent"`, 1)
	SetModelClient(&fakeModel{configured: true, output: output})
	defer SetModelClient(nil)

	_, err := AnalyzePrompt(context.Background(), "Write something.")
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("Expected UpstreamError for unknown level, got %v", err)
	}
}

func TestAnalyzePromptClampsScores(t *testing.T) {
	output := strings.Replace(validAnalysisJSON, `"overallScore": 42`, `"overallScore": 150`, 1)
	output = strings.Replace(output, `"score": 30`, `"score": -10`, 1)
	SetModelClient(&fakeModel{configured: true, output: output})
	defer SetModelClient(nil)

	analysis, err := AnalyzePrompt(context.Background(), "Write something.")
	if err != nil {
		t.Fatalf("AnalyzePrompt failed: %v", err)
	}
	if analysis.OverallScore != 100 {
		t.Errorf("Expected overall score clamped to 100, got %d", analysis.OverallScore)
	}
	if analysis.Criteria[0].Score != 0 {
		t.Errorf("Expected criterion score clamped to 0, got %d", analysis.Criteria[0].Score)
	}
}

func TestAnalyzePromptNormalizesNilSuggestions(t *testing.T) {
	output := strings.Replace(validAnalysisJSON, `"suggestions": ["Add context"],`, ``, 1)
	SetModelClient(&fakeModel{configured: true, output: output})
	defer SetModelClient(nil)

	analysis, err := AnalyzePrompt(context.Background(), "Write something.")
	if err != nil {
		t.Fatalf("AnalyzePrompt failed: %v", err)
	}
	if analysis.Suggestions == nil {
		t.Error("Expected suggestions normalized to an empty slice, got nil")
	}
}

func TestAnalyzePromptTransportError(t *testing.T) {
	SetModelClient(&fakeModel{configured: true, err: errors.New("quota exceeded")})
	defer SetModelClient(nil)

	_, err := AnalyzePrompt(context.Background(), "Write something.")
	if err == nil {
		t.Fatal("Expected an error for a failed invocation")
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		t.Error("Transport failure must not be reported as an upstream contract error")
	}
}

func TestCleanModelOutput(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, c := range cases {
		if got := cleanModelOutput(c.in); got != c.want {
			t.Errorf("cleanModelOutput(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
