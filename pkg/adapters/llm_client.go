package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/FrenchMajesty/ticket-triage/pkg/adapters/openai"
	"github.com/FrenchMajesty/ticket-triage/pkg/types"
	"github.com/FrenchMajesty/ticket-triage/pkg/urgency"
	"github.com/google/uuid"
)

// LLMAnalyzer triages tickets by asking a language model for a schema-constrained verdict
type LLMAnalyzer struct {
	newClient    func(apiKey string) openai.LanguageModelClient
	systemPrompt string
	model        string
	logger       *slog.Logger
}

// LLMAnalyzerOptions configures NewLLMAnalyzer. Zero values fall back to defaults.
type LLMAnalyzerOptions struct {
	BaseURL      string
	HTTPClient   *http.Client
	DefaultModel string
	SystemPrompt string
	DumpRequests bool
	Logger       *slog.Logger
}

const DefaultModel = "gpt-4.1-mini"

const defaultSystemPrompt = `You are a senior support triage assistant. Classify incoming support tickets with calm, practical judgment.
Return ONLY valid JSON matching the schema. No markdown. No extra keys.`

const userPromptTemplate = `Ticket:
%s

Rules:
- Severity is about impact + risk (security/data loss/outage/VIP).
- urgency_minutes is the time until first meaningful response is needed.
- first_reply must be short, professional, and include 1-2 targeted questions + a realistic next update time.
- emoji should match the situation (one emoji).
- panic is 0..100.`

// NewLLMAnalyzer creates an analyzer that talks to the OpenAI responses endpoint.
// A fresh client is built per call so the credential is never shared between calls.
func NewLLMAnalyzer(opts LLMAnalyzerOptions) *LLMAnalyzer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	instance := LLMAnalyzer{
		systemPrompt: defaultSystemPrompt,
		model:        DefaultModel,
		logger:       logger,
	}

	if opts.SystemPrompt != "" {
		instance.systemPrompt = opts.SystemPrompt
	}

	if opts.DefaultModel != "" {
		instance.model = opts.DefaultModel
	}

	instance.newClient = func(apiKey string) openai.LanguageModelClient {
		client := openai.NewClient(apiKey)
		client.DumpRequests = opts.DumpRequests
		client.Logger = logger
		if opts.HTTPClient != nil {
			client.HTTPClient = opts.HTTPClient
		}
		if opts.BaseURL != "" {
			client.SetBaseURL(strings.TrimRight(opts.BaseURL, "/"))
		}
		return client
	}

	return &instance
}

// Analyze sends text to the model and normalizes its verdict into a Result.
// Nothing is retried here.
func (a *LLMAnalyzer) Analyze(ctx context.Context, text string, apiKey string, model string) (*types.Result, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, types.ErrMissingCredential
	}

	if model == "" {
		model = a.model
	}

	log := a.logger.With("request_id", uuid.New().String(), "model", model)
	log.Debug("requesting remote triage", "ticket_len", len(text))

	start := time.Now()
	body, err := a.newClient(apiKey).CreateResponse(ctx, a.buildRequest(text, model))
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			log.Warn("remote triage rejected", "status", apiErr.StatusCode, "duration", time.Since(start))
			return nil, types.NewTransportError(apiErr.StatusCode, apiErr.RawBody)
		}
		return nil, fmt.Errorf("failed to get LLM response: %w", err)
	}

	output, shape := extractOutputText(body)
	log.Debug("received model output", "shape", shape, "output_len", len(output), "duration", time.Since(start))

	obj, err := decodeVerdict(output)
	if err != nil {
		log.Warn("model output was not a triage object", "shape", shape, "error", err)
		return nil, err
	}

	sev := types.Severity(obj.Get("severity").String())
	if !sev.Valid() {
		log.Warn("model returned unknown severity", "severity", sev)
	}

	return &types.Result{
		Severity:   sev,
		Urgency:    urgency.FormatDays(roundToInt(obj.Get("urgency_minutes").Float())),
		Emoji:      obj.Get("emoji").String(),
		FirstReply: obj.Get("first_reply").String(),
		Notes:      obj.Get("notes").String(),
		Panic:      types.ClampPanic(roundToInt(obj.Get("panic").Float())),
		Source:     types.StrategyRemote,
	}, nil
}

func (a *LLMAnalyzer) buildRequest(text string, model string) openai.ResponseRequest {
	return openai.ResponseRequest{
		Model: model,
		Input: []openai.InputMessage{
			{
				Role:    openai.MessageRoleSystem,
				Content: a.systemPrompt,
			},
			{
				Role:    openai.MessageRoleUser,
				Content: fmt.Sprintf(userPromptTemplate, text),
			},
		},
		ResponseFormat: &openai.ResponseFormat{
			Type:       openai.ResponseFormatJSONSchema,
			JsonSchema: TriageSchema(),
		},
	}
}

// TriageSchema is the strict output constraint sent with every request
func TriageSchema() *openai.JsonSchemaObject {
	noExtra := false
	enum := make([]string, len(types.Severities))
	for i, s := range types.Severities {
		enum[i] = string(s)
	}

	return &openai.JsonSchemaObject{
		Name:   "ticket_triage",
		Strict: true,
		Schema: openai.JsonSchemaDefinition{
			Type:                 openai.JsonSchemaTypeObject,
			AdditionalProperties: &noExtra,
			Properties: map[string]openai.JsonSchemaDefinition{
				"severity":        {Type: openai.JsonSchemaTypeString, Enum: enum},
				"urgency_minutes": {Type: openai.JsonSchemaTypeInteger, Minimum: intPtr(urgency.MinMinutes), Maximum: intPtr(urgency.MaxMinutes)},
				"emoji":           {Type: openai.JsonSchemaTypeString},
				"first_reply":     {Type: openai.JsonSchemaTypeString},
				"notes":           {Type: openai.JsonSchemaTypeString},
				"panic":           {Type: openai.JsonSchemaTypeInteger, Minimum: intPtr(0), Maximum: intPtr(100)},
			},
			Required: []string{"severity", "urgency_minutes", "emoji", "first_reply", "notes", "panic"},
		},
	}
}

func intPtr(n int) *int {
	return &n
}
