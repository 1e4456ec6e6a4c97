package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lawease/models"
)

// EmailClient delivers one transactional email.
type EmailClient interface {
	Send(ctx context.Context, email models.Email) error
}

// HTTPEmailClient posts emails to a Resend-compatible JSON API.
type HTTPEmailClient struct {
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
}

func NewHTTPEmailClient(endpoint, apiKey string, timeout time.Duration) *HTTPEmailClient {
	return &HTTPEmailClient{
		Endpoint:   endpoint,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (c *HTTPEmailClient) Send(ctx context.Context, email models.Email) error {
	if c.APIKey == "" {
		return fmt.Errorf("email api key is not configured")
	}
	body, err := json.Marshal(sendEmailRequest{
		From:    email.From,
		To:      []string{email.To},
		Subject: email.Subject,
		HTML:    email.HTML,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("email api returned %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}
