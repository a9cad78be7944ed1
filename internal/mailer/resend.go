// Package mailer sends confirmation email through the Resend REST API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the Resend transactional email API.
type Client struct {
	APIKey  string
	From    string
	BaseURL string
	HTTP    *http.Client
}

// New creates a Resend client sending from the given address.
func New(apiKey, from string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		APIKey:  apiKey,
		From:    from,
		BaseURL: "https://api.resend.com",
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

// SendConfirmation emails the registration confirmation to a new attendee.
// Callers treat failure as non-fatal: the record is already persisted.
func (c *Client) SendConfirmation(ctx context.Context, to, name, university string) error {
	html := fmt.Sprintf(`
        <h1>Welcome, %s!</h1>
        <p>You have successfully registered for the event.</p>
        <p><strong>University:</strong> %s</p>
        <p>We will see you there!</p>
      `, name, university)
	return c.send(ctx, to, "Registration Confirmed!", html)
}

func (c *Client) send(ctx context.Context, to, subject, html string) error {
	payload, err := json.Marshal(sendRequest{
		From:    c.From,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("mailer: encode request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("mailer: create request failed: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mailer: send failed (%d): %s", resp.StatusCode, string(body))
	}

	var out sendResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("mailer: decode response failed: %w", err)
	}
	return nil
}
