// Package mail sends transactional email through the SendGrid v3 API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const sendGridURL = "https://api.sendgrid.com/v3/mail/send"

// Sender delivers a plain-text email. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, toEmail, subject, body string) error
}

// SendGridClient implements Sender against the SendGrid v3 REST API.
// An empty API key produces a disabled client that drops mail silently, so
// local setups work without credentials.
type SendGridClient struct {
	apiKey     string
	fromEmail  string
	httpClient *http.Client
}

func NewSendGridClient(apiKey, fromEmail string) *SendGridClient {
	if apiKey == "" {
		log.Println("[SendGrid] No API key configured, email delivery disabled")
	}
	return &SendGridClient{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// sendGridPayload is the v3 mail/send request body.
type sendGridPayload struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

type personalization struct {
	To []emailAddress `json:"to"`
}

type emailAddress struct {
	Email string `json:"email"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Send posts one message. SendGrid answers 202 on acceptance; anything else
// is an error for the caller to log.
func (c *SendGridClient) Send(ctx context.Context, toEmail, subject, body string) error {
	if c.apiKey == "" {
		return nil
	}

	payload := sendGridPayload{
		Personalizations: []personalization{{To: []emailAddress{{Email: toEmail}}}},
		From:             emailAddress{Email: c.fromEmail},
		Subject:          subject,
		Content:          []content{{Type: "text/plain", Value: body}},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendGridURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("sendgrid api error: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	log.Printf("[SendGrid] Sent: to=%s subject=%q", toEmail, subject)
	return nil
}
