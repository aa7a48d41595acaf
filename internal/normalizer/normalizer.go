package normalizer

import (
	"fmt"
	"mime/multipart"
	"sort"
	"strings"

	"resumeforge/internal/extractor"
	"resumeforge/pkg/utils"
)

// Input carries the two accepted shapes of an analysis request. When both
// are present the uploaded document is authoritative and the structured data
// is ignored.
type Input struct {
	Document   *multipart.FileHeader
	Structured map[string]interface{}
}

// Normalize produces the single text payload the analysis pipeline runs
// over, or an InvalidInputError when the request carries neither shape.
func Normalize(in Input, tempDir string) (string, error) {
	if in.Document != nil {
		return extractor.ExtractUpload(in.Document, tempDir)
	}
	if len(in.Structured) > 0 {
		return RenderStructured(in.Structured), nil
	}
	return "", utils.NewInvalidInputError("no resume file or resume data provided")
}

// RenderStructured serializes an arbitrary structured object into a
// human-readable text block. Keys are emitted in sorted order at every
// nesting level so identical inputs always render identically.
func RenderStructured(data map[string]interface{}) string {
	var b strings.Builder
	renderMap(&b, data, 0)
	return strings.TrimRight(b.String(), "\n")
}

func renderMap(b *strings.Builder, m map[string]interface{}, depth int) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		renderValue(b, k, m[k], depth)
	}
}

func renderValue(b *strings.Builder, key string, value interface{}, depth int) {
	indent := strings.Repeat("  ", depth)

	switch v := value.(type) {
	case map[string]interface{}:
		if len(v) == 0 {
			return
		}
		fmt.Fprintf(b, "%s%s:\n", indent, key)
		renderMap(b, v, depth+1)
	case []interface{}:
		if len(v) == 0 {
			return
		}
		fmt.Fprintf(b, "%s%s:\n", indent, key)
		for _, item := range v {
			switch it := item.(type) {
			case map[string]interface{}:
				fmt.Fprintf(b, "%s-\n", strings.Repeat("  ", depth+1))
				renderMap(b, it, depth+2)
			default:
				fmt.Fprintf(b, "%s- %v\n", strings.Repeat("  ", depth+1), it)
			}
		}
	case nil:
		return
	default:
		fmt.Fprintf(b, "%s%s: %v\n", indent, key, v)
	}
}
