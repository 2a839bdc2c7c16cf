package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

const openaiBaseURL = "https://api.openai.com/v1"

// Creates a new OpenAIClient
func NewClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		APIKey:     apiKey,
		HTTPClient: http.DefaultClient,
		BaseURL:    openaiBaseURL,
		Logger:     slog.Default(),
	}
}

var _ LanguageModelClient = (*OpenAIClient)(nil)

// CreateResponse posts req to the responses endpoint. It makes exactly one attempt;
// retrying is left to the caller.
func (c *OpenAIClient) CreateResponse(ctx context.Context, req ResponseRequest) (json.RawMessage, error) {
	url := c.BaseURL + "/responses"

	statusCode, bodyBytes, err := c.doRequest(ctx, url, req)
	if c.DumpRequests && bodyBytes != nil {
		c.saveResponseToFile(req, bodyBytes, statusCode)
	}
	if err != nil {
		return nil, err
	}

	return json.RawMessage(bodyBytes), nil
}

// Sets the base URL for the OpenAI client
func (c *OpenAIClient) SetBaseURL(baseUrl string) {
	c.BaseURL = baseUrl
}

func (c *OpenAIClient) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
