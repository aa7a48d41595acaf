package normalizer

import (
	"strings"
	"testing"

	"resumeforge/pkg/utils"
)

func TestNormalizeRejectsEmptyInput(t *testing.T) {
	_, err := Normalize(Input{}, "")
	if err == nil {
		t.Fatal("expected error when neither document nor structured data is provided")
	}
	if !utils.IsInvalidInputError(err) {
		t.Errorf("expected InvalidInputError, got %v", err)
	}
}

func TestNormalizeStructured(t *testing.T) {
	text, err := Normalize(Input{Structured: map[string]interface{}{
		"name":  "Jane Doe",
		"email": "jane@example.com",
	}}, "")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if !strings.Contains(text, "name: Jane Doe") {
		t.Errorf("missing name line: %q", text)
	}
}

func TestRenderStructuredSortedKeys(t *testing.T) {
	out := RenderStructured(map[string]interface{}{
		"zeta":  "last",
		"alpha": "first",
		"mid":   "middle",
	})

	want := "alpha: first\nmid: middle\nzeta: last"
	if out != want {
		t.Errorf("RenderStructured() = %q, want %q", out, want)
	}
}

func TestRenderStructuredDeterministic(t *testing.T) {
	data := map[string]interface{}{
		"contact": map[string]interface{}{
			"name":  "Jane Doe",
			"email": "jane@example.com",
		},
		"skills": []interface{}{"Go", "SQL"},
	}

	first := RenderStructured(data)
	for i := 0; i < 20; i++ {
		if got := RenderStructured(data); got != first {
			t.Fatalf("rendering is not deterministic: %q vs %q", got, first)
		}
	}
}

func TestRenderStructuredNested(t *testing.T) {
	out := RenderStructured(map[string]interface{}{
		"experience": []interface{}{
			map[string]interface{}{
				"company": "Acme",
				"title":   "Engineer",
			},
		},
		"skills": []interface{}{"Go", "Kubernetes"},
	})

	if !strings.Contains(out, "experience:") {
		t.Errorf("missing experience header: %q", out)
	}
	if !strings.Contains(out, "company: Acme") {
		t.Errorf("missing nested company field: %q", out)
	}
	if !strings.Contains(out, "- Go") {
		t.Errorf("missing list item: %q", out)
	}
	// Sorted: company before title inside the entry
	if strings.Index(out, "company: Acme") > strings.Index(out, "title: Engineer") {
		t.Errorf("nested keys not sorted: %q", out)
	}
}

func TestRenderStructuredSkipsEmptyValues(t *testing.T) {
	out := RenderStructured(map[string]interface{}{
		"name":    "Jane",
		"empty":   map[string]interface{}{},
		"nothing": nil,
		"none":    []interface{}{},
	})

	if strings.Contains(out, "empty") || strings.Contains(out, "nothing") || strings.Contains(out, "none") {
		t.Errorf("empty values should be omitted: %q", out)
	}
}
