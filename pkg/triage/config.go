package triage

import (
	"log/slog"
	"net/http"

	"github.com/FrenchMajesty/ticket-triage/pkg/adapters"
)

// Config holds configuration for the Analyzer
type Config struct {
	// Remote performs LLM-backed triage. If nil, uses the default (OpenAI responses endpoint).
	Remote RemoteAnalyzer

	// Model is used when a call does not name one. If empty, uses adapters.DefaultModel.
	Model string

	// BaseURL overrides the OpenAI API root, e.g. for a compatible proxy
	BaseURL string

	// HTTPClient is used by the default remote analyzer. If nil, uses http.DefaultClient.
	HTTPClient *http.Client

	// DumpRequests writes every remote exchange under debug_llm_requests/
	DumpRequests bool

	// Logger receives structured logs. If nil, uses slog.Default().
	Logger *slog.Logger
}

// applyDefaults fills in default values for unset config fields
func (c *Config) applyDefaults() {
	if c.Model == "" {
		c.Model = adapters.DefaultModel
	}

	if c.Logger == nil {
		c.Logger = slog.Default()
	}

	if c.Remote == nil {
		c.Remote = adapters.NewLLMAnalyzer(adapters.LLMAnalyzerOptions{
			BaseURL:      c.BaseURL,
			HTTPClient:   c.HTTPClient,
			DefaultModel: c.Model,
			DumpRequests: c.DumpRequests,
			Logger:       c.Logger,
		})
	}
}
