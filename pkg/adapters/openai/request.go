package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/sjson"
)

// DumpDir is where request/response pairs are written when DumpRequests is set
var DumpDir = "debug_llm_requests"

// doRequest runs a single POST and returns the status code and body.
// A non-2xx status yields an *APIError alongside the body.
func (c *OpenAIClient) doRequest(ctx context.Context, url string, requestBody any) (int, []byte, error) {
	body, err := json.Marshal(requestBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal responses request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to reach openai: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read responses body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, bodyBytes, &APIError{
			StatusCode: resp.StatusCode,
			RawBody:    json.RawMessage(bodyBytes),
		}
	}

	return resp.StatusCode, bodyBytes, nil
}

// saveResponseToFile saves the request/response to a file for debugging purposes.
// Headers are not recorded, so the API key never reaches disk.
func (c *OpenAIClient) saveResponseToFile(req ResponseRequest, bodyBytes []byte, statusCode int) {
	path, err := writeDump(DumpDir, req, bodyBytes, statusCode)
	if err != nil {
		c.logger().Warn("failed to dump openai exchange", "error", err)
		return
	}
	c.logger().Debug("dumped openai exchange", "path", path)
}

func writeDump(dir string, req ResponseRequest, bodyBytes []byte, statusCode int) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	random := uuid.New().String()[:8]
	filename := fmt.Sprintf("openai_req_%s_%s.json", timestamp, random)

	modelDir := filepath.Join(dir, filepath.Base(req.Model))
	if err := os.MkdirAll(modelDir, 0755); err != nil {
		return "", fmt.Errorf("error creating directory %s: %w", modelDir, err)
	}

	doc, err := sjson.SetBytes([]byte(`{}`), "request", req)
	if err != nil {
		return "", fmt.Errorf("error encoding request: %w", err)
	}

	// The body may not be JSON at all; keep it as a string in that case
	if json.Valid(bodyBytes) {
		doc, err = sjson.SetRawBytes(doc, "response", bodyBytes)
	} else {
		doc, err = sjson.SetBytes(doc, "response", string(bodyBytes))
	}
	if err != nil {
		return "", fmt.Errorf("error encoding response: %w", err)
	}

	doc, err = sjson.SetBytes(doc, "status", statusCode)
	if err != nil {
		return "", fmt.Errorf("error encoding status: %w", err)
	}

	path := filepath.Join(modelDir, filename)
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return "", fmt.Errorf("error writing to file %s: %w", path, err)
	}
	return path, nil
}
