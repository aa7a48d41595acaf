package analysis

import (
	"strings"
	"testing"

	"resumeforge/pkg/utils"
)

func TestParseAndRepairCompleteResponse(t *testing.T) {
	content := `{
		"score": 85,
		"strengths": ["clear impact metrics"],
		"weaknesses": ["no summary section"],
		"recommendations": ["add a summary"],
		"formattingFeedback": "clean layout",
		"overallAssessment": "strong candidate"
	}`

	result, err := ParseAndRepair(content, nil)
	if err != nil {
		t.Fatalf("ParseAndRepair failed: %v", err)
	}

	if result.Score != 85 {
		t.Errorf("Score = %d, want 85", result.Score)
	}
	if len(result.Strengths) != 1 || result.Strengths[0] != "clear impact metrics" {
		t.Errorf("Strengths = %v", result.Strengths)
	}
	if result.OverallAssessment != "strong candidate" {
		t.Errorf("OverallAssessment = %q", result.OverallAssessment)
	}
}

func TestParseAndRepairBackfillsMissingFields(t *testing.T) {
	result, err := ParseAndRepair(`{"score": 60, "strengths": ["good experience"]}`, nil)
	if err != nil {
		t.Fatalf("ParseAndRepair failed: %v", err)
	}

	if result.Score != 60 {
		t.Errorf("present score must be preserved, got %d", result.Score)
	}
	if len(result.Weaknesses) != 1 || result.Weaknesses[0] != "No weaknesses provided in analysis" {
		t.Errorf("Weaknesses = %v, want sentinel default", result.Weaknesses)
	}
	if len(result.Recommendations) != 1 || result.Recommendations[0] != "No recommendations provided in analysis" {
		t.Errorf("Recommendations = %v, want sentinel default", result.Recommendations)
	}
}

func TestParseAndRepairDefaultScore(t *testing.T) {
	result, err := ParseAndRepair(`{"strengths": [], "weaknesses": [], "recommendations": []}`, nil)
	if err != nil {
		t.Fatalf("ParseAndRepair failed: %v", err)
	}
	if result.Score != DefaultScore {
		t.Errorf("Score = %d, want default %d", result.Score, DefaultScore)
	}
	// Present-but-empty lists are the model's answer, not a gap to repair.
	if len(result.Strengths) != 0 {
		t.Errorf("empty strengths list was replaced: %v", result.Strengths)
	}
}

func TestParseAndRepairWrongTypeIsRepaired(t *testing.T) {
	result, err := ParseAndRepair(`{"score": "eighty", "strengths": "not a list"}`, nil)
	if err != nil {
		t.Fatalf("ParseAndRepair failed: %v", err)
	}
	if result.Score != DefaultScore {
		t.Errorf("non-numeric score should fall back to default, got %d", result.Score)
	}
	if len(result.Strengths) != 1 || !strings.Contains(result.Strengths[0], "No strengths provided") {
		t.Errorf("Strengths = %v, want sentinel default", result.Strengths)
	}
}

func TestParseAndRepairRejectsUnparseableContent(t *testing.T) {
	_, err := ParseAndRepair("I think this resume is pretty good overall!", nil)
	if err == nil {
		t.Fatal("expected error for non-JSON content")
	}
	if !utils.IsMalformedResponseError(err) {
		t.Errorf("expected MalformedResponseError, got %v", err)
	}
}

func TestParseAndRepairStripsCodeFences(t *testing.T) {
	fenced := "```json\n{\"score\": 90, \"strengths\": [\"a\"], \"weaknesses\": [\"b\"], \"recommendations\": [\"c\"]}\n```"

	result, err := ParseAndRepair(fenced, nil)
	if err != nil {
		t.Fatalf("ParseAndRepair failed on fenced JSON: %v", err)
	}
	if result.Score != 90 {
		t.Errorf("Score = %d, want 90", result.Score)
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"  ```json\n{\"a\":1}\n```  ", "{\"a\":1}"},
	}

	for _, tt := range tests {
		if got := stripCodeFences(tt.in); got != tt.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
