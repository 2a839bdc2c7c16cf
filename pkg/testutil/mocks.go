package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/FrenchMajesty/ticket-triage/pkg/adapters/openai"
	"github.com/FrenchMajesty/ticket-triage/pkg/types"
)

// MockLanguageModelClient is a mock implementation of openai.LanguageModelClient for testing
type MockLanguageModelClient struct {
	CreateResponseFunc func(ctx context.Context, req openai.ResponseRequest) (json.RawMessage, error)

	mu          sync.Mutex
	CallCount   int
	LastRequest openai.ResponseRequest
	BaseURL     string
}

func (m *MockLanguageModelClient) CreateResponse(ctx context.Context, req openai.ResponseRequest) (json.RawMessage, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastRequest = req
	m.mu.Unlock()

	if m.CreateResponseFunc != nil {
		return m.CreateResponseFunc(ctx, req)
	}

	// Default: an empty envelope, which the analyzer treats as unparseable
	return json.RawMessage(`{}`), nil
}

func (m *MockLanguageModelClient) SetBaseURL(baseUrl string) {
	m.mu.Lock()
	m.BaseURL = baseUrl
	m.mu.Unlock()
}

// MockRemoteAnalyzer is a mock implementation of triage.RemoteAnalyzer for testing
type MockRemoteAnalyzer struct {
	AnalyzeFunc func(ctx context.Context, text string, apiKey string, model string) (*types.Result, error)

	mu         sync.Mutex
	CallCount  int
	LastText   string
	LastAPIKey string
	LastModel  string
}

func (m *MockRemoteAnalyzer) Analyze(ctx context.Context, text string, apiKey string, model string) (*types.Result, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastText = text
	m.LastAPIKey = apiKey
	m.LastModel = model
	m.mu.Unlock()

	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, text, apiKey, model)
	}

	// Default: a fixed mid-tier verdict
	return &types.Result{
		Severity:   types.SeverityMedium,
		Urgency:    "Respond within 4 hours",
		Emoji:      "🧯",
		FirstReply: "Thanks.\n\nMore details?\n\nUpdate soon.",
		Notes:      "mock",
		Panic:      40,
		Source:     types.StrategyRemote,
	}, nil
}

// Calls returns the number of Analyze calls so far
func (m *MockRemoteAnalyzer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}
