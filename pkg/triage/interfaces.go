package triage

import (
	"context"

	"github.com/FrenchMajesty/ticket-triage/pkg/types"
)

// RemoteAnalyzer produces a Result by consulting a language model
type RemoteAnalyzer interface {
	Analyze(ctx context.Context, text string, apiKey string, model string) (*types.Result, error)
}

// Options are the per-call inputs to Analyze. Nothing here is read from ambient state.
type Options struct {
	Strategy types.Strategy

	// APIKey is the caller's credential, only used by the remote strategy
	APIKey string

	// Model overrides Config.Model for this call
	Model string
}
