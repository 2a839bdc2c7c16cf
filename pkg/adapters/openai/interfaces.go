package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// OpenAIClient is a minimal client for the OpenAI Responses API
type OpenAIClient struct {
	APIKey       string
	DumpRequests bool
	BaseURL      string
	HTTPClient   *http.Client
	Logger       *slog.Logger
}

type LanguageModelClient interface {
	// CreateResponse sends one request and returns the raw response body on a 2xx status
	CreateResponse(ctx context.Context, req ResponseRequest) (json.RawMessage, error)
	SetBaseURL(baseUrl string)
}

// ResponseRequest is the request body for the responses endpoint
type ResponseRequest struct {
	Model          string          `json:"model"`
	Input          []InputMessage  `json:"input"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type MessageRole string

const (
	MessageRoleUser   MessageRole = "user"
	MessageRoleSystem MessageRole = "system"
)

type InputMessage struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

type ResponseFormat struct {
	Type       string            `json:"type,omitempty"`
	JsonSchema *JsonSchemaObject `json:"json_schema,omitempty"`
}

const ResponseFormatJSONSchema = "json_schema"

type JsonSchemaObject struct {
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Strict      bool                 `json:"strict,omitempty"`
	Schema      JsonSchemaDefinition `json:"schema"`
}

type JsonSchemaType string

const (
	JsonSchemaTypeObject  JsonSchemaType = "object"
	JsonSchemaTypeString  JsonSchemaType = "string"
	JsonSchemaTypeInteger JsonSchemaType = "integer"
)

type JsonSchemaDefinition struct {
	Type                 JsonSchemaType                  `json:"type,omitempty"`
	Description          string                          `json:"description,omitempty"`
	Properties           map[string]JsonSchemaDefinition `json:"properties,omitempty"`
	Required             []string                        `json:"required,omitempty"`
	AdditionalProperties *bool                           `json:"additionalProperties,omitempty"`
	Enum                 []string                        `json:"enum,omitempty"`
	Minimum              *int                            `json:"minimum,omitempty"`
	Maximum              *int                            `json:"maximum,omitempty"`
}

// APIError is returned for any non-2xx response and keeps the raw body for diagnostics
type APIError struct {
	StatusCode int             `json:"status_code"`
	RawBody    json.RawMessage `json:"raw_body,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openai responses API error %d", e.StatusCode)
}
