package llm

import (
	"context"

	"resumeforge/pkg/models"
)

// Completer is the narrow interface handlers depend on, so tests can
// substitute a fake completion service.
type Completer interface {
	Complete(ctx context.Context, prompt models.PromptPair, opts models.CompletionOptions) (string, error)
}

// Provider defines the interface for completion-service providers
type Provider interface {
	Completer

	// IsHealthy checks if the provider is healthy and available
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the provider
	GetProviderName() string
}
