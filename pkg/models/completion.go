package models

// CompletionOptions tunes a single completion request. Structured analyses
// use a low temperature to minimize schema variance; free-form prose uses a
// higher one. JSONMode asks the provider for a strict-JSON output format
// where the service supports it.
type CompletionOptions struct {
	Temperature float32
	MaxTokens   int
	JSONMode    bool
}
