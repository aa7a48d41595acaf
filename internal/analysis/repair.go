package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumeforge/internal/logging"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// DefaultScore replaces a score the completion service failed to supply.
const DefaultScore = 70

// ParseAndRepair turns raw completion content into the fixed analysis
// schema. Unparseable content fails with MalformedResponseError - no partial
// object is fabricated from syntax errors. Parseable content with missing
// required fields is repaired with deterministic defaults, and every repair
// is logged.
func ParseAndRepair(content string, logger logging.Logger) (*models.AnalysisResult, error) {
	cleaned := stripCodeFences(content)

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, utils.NewMalformedResponseError(
			fmt.Sprintf("analysis response is not valid JSON: %v", err), err)
	}

	return RepairStructured(payload, logger), nil
}

// RepairStructured backfills missing required fields on an already-parsed
// analysis payload. The returned result always carries every required field.
func RepairStructured(payload map[string]interface{}, logger logging.Logger) *models.AnalysisResult {
	result := &models.AnalysisResult{}
	var repaired []string

	if score, ok := asInt(payload["score"]); ok {
		result.Score = score
	} else {
		result.Score = DefaultScore
		repaired = append(repaired, "score")
	}

	result.Strengths = repairList(payload, "strengths", &repaired)
	result.Weaknesses = repairList(payload, "weaknesses", &repaired)
	result.Recommendations = repairList(payload, "recommendations", &repaired)

	if s, ok := payload["formattingFeedback"].(string); ok {
		result.FormattingFeedback = s
	}
	if s, ok := payload["overallAssessment"].(string); ok {
		result.OverallAssessment = s
	}

	if len(repaired) > 0 && logger != nil {
		logger.Warn("Backfilled missing fields in analysis response", map[string]interface{}{
			"missing_fields": strings.Join(repaired, ","),
		})
	}

	return result
}

// repairList returns the string list under key, or the sentinel default when
// the field is absent or not a list of strings.
func repairList(payload map[string]interface{}, key string, repaired *[]string) []string {
	if list, ok := asStringSlice(payload[key]); ok {
		return list
	}
	*repaired = append(*repaired, key)
	return []string{fmt.Sprintf("No %s provided in analysis", key)}
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

func asStringSlice(v interface{}) ([]string, bool) {
	raw, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// stripCodeFences removes a surrounding markdown code block, which chat
// completion services frequently wrap JSON output in despite instructions.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
