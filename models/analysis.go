package models

// CriterionIDs lists the five rubric dimensions a prompt is graded on, in
// display order.
var CriterionIDs = []string{"context", "goal", "format", "constraints", "examples"}

// Levels are the qualitative buckets a criterion score maps to.
var Levels = []string{"missing", "weak", "ok", "strong"}

// AnalyzeRequest is the payload sent by the client to grade a prompt.
type AnalyzeRequest struct {
	Prompt string `json:"prompt"`
}

// CriterionScore is one graded rubric dimension of an analysis.
type CriterionScore struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Score    int    `json:"score"`
	Level    string `json:"level"`
	Feedback string `json:"feedback"`
}

// Analysis is the structured critique returned by the model.
type Analysis struct {
	OverallScore   int              `json:"overallScore"`
	OverallLabel   string           `json:"overallLabel"`
	Criteria       []CriterionScore `json:"criteria"`
	Suggestions    []string         `json:"suggestions"`
	ImprovedPrompt string           `json:"improvedPrompt"`
}

// PlaceholderAnalysis returns the zero-valued critique shown before any
// analysis has run: all five criteria at score 0, level "missing".
func PlaceholderAnalysis() Analysis {
	criteria := make([]CriterionScore, 0, len(CriterionIDs))
	for _, id := range CriterionIDs {
		criteria = append(criteria, CriterionScore{
			ID:    id,
			Label: criterionLabels[id],
			Level: "missing",
		})
	}
	return Analysis{
		OverallLabel: "Not analyzed",
		Criteria:     criteria,
		Suggestions:  []string{},
	}
}

var criterionLabels = map[string]string{
	"context":     "Context",
	"goal":        "Goal",
	"format":      "Format",
	"constraints": "Constraints",
	"examples":    "Examples",
}
