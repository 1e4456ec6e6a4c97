package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

type voiceSessionRequest struct {
	AgentID          string            `json:"agent_id"`
	DynamicVariables map[string]string `json:"dynamic_variables"`
}

type voiceSessionResponse struct {
	ConversationID string `json:"conversation_id"`
}

// HTTPVoiceClient starts sessions on a hosted conversational voice agent.
type HTTPVoiceClient struct {
	Endpoint   string
	APIKey     string
	AgentID    string
	HTTPClient *http.Client
}

func NewHTTPVoiceClient(endpoint, apiKey, agentID string, timeout time.Duration) *HTTPVoiceClient {
	return &HTTPVoiceClient{
		Endpoint:   endpoint,
		APIKey:     apiKey,
		AgentID:    agentID,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPVoiceClient) StartSession(ctx context.Context, variables map[string]string) (string, error) {
	if c.Endpoint == "" || c.APIKey == "" || c.AgentID == "" {
		return "", errors.New("voice agent is not configured")
	}

	body, err := json.Marshal(voiceSessionRequest{AgentID: c.AgentID, DynamicVariables: variables})
	if err != nil {
		return "", fmt.Errorf("failed to serialize request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("voice API returned status %d: %s", resp.StatusCode, string(payload))
	}

	var out voiceSessionResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return "", fmt.Errorf("failed to decode API response: %w", err)
	}
	if out.ConversationID == "" {
		return "", errors.New("voice API returned no conversation id")
	}
	return out.ConversationID, nil
}
