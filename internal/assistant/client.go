package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/existflow/gridplan/internal/logger"
)

// APIKeyEnv names the environment variable holding the assistant API key.
const APIKeyEnv = "GRIDPLAN_ASSISTANT_KEY"

// Client posts planner snapshots to an OpenAI-compatible chat endpoint.
type Client struct {
	url        string
	model      string
	httpClient *http.Client
}

// NewClient builds a client for the configured endpoint. An empty URL
// means the assistant is disabled.
func NewClient(url, model string) *Client {
	return &Client{
		url:        url,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Enabled reports whether an endpoint is configured.
func (c *Client) Enabled() bool {
	return c.url != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Ask sends the snapshot context and a question, returning the answer as
// markdown text.
func (c *Client) Ask(snapshot Snapshot, question string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("assistant not configured, set assistant_url in config")
	}

	body, _ := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a planning assistant. Answer using only this planner state:\n\n" + snapshot.Describe()},
			{Role: "user", Content: question},
		},
	})

	req, err := http.NewRequest(http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if key := os.Getenv(APIKeyEnv); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	logger.Debug("Assistant request", logger.F("url", c.url), logger.F("model", c.model))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Assistant request failed", logger.F("error", err))
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		logger.Error("Assistant request rejected",
			logger.F("status", resp.StatusCode),
			logger.F("response", string(respBody)))
		return "", fmt.Errorf("assistant error: %s", string(respBody))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("assistant returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}
