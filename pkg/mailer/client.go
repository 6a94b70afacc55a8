// Package mailer sends transactional email through an HTTP relay that speaks
// the MailChannels /tx/v1/send JSON format. Uses raw HTTP calls (no SDK).
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint is the MailChannels transactional send API.
const DefaultEndpoint = "https://api.mailchannels.net/tx/v1/send"

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 1024

// Address is a mailbox with an optional display name.
type Address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Personalization addresses one delivery and its DKIM signing domain.
type Personalization struct {
	To           []Address `json:"to"`
	DKIMDomain   string    `json:"dkim_domain,omitempty"`
	DKIMSelector string    `json:"dkim_selector,omitempty"`
}

// Content is one MIME part of the message body.
type Content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Message is the relay request body.
type Message struct {
	Personalizations []Personalization `json:"personalizations"`
	From             Address           `json:"from"`
	ReplyTo          *Address          `json:"reply_to,omitempty"`
	Subject          string            `json:"subject"`
	Content          []Content         `json:"content"`
}

// Client sends a Message.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// HTTPClient posts messages to a relay endpoint.
type HTTPClient struct {
	Endpoint   string
	APIKey     string // sent as X-Api-Key when set
	httpClient *http.Client
}

// NewClient creates an HTTPClient for endpoint. An empty endpoint uses DefaultEndpoint.
func NewClient(endpoint, apiKey string) *HTTPClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &HTTPClient{
		Endpoint:   endpoint,
		APIKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Client = (*HTTPClient)(nil)

// ErrNoRecipient is returned when a message has nowhere to go.
var ErrNoRecipient = errors.New("mailer: message has no recipient")

// StatusError is returned for non-2xx relay responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("mailer: relay responded %d: %s", e.StatusCode, e.Body)
}

// Send posts msg to the relay. Any non-2xx response is a *StatusError.
func (c *HTTPClient) Send(ctx context.Context, msg Message) error {
	if len(msg.Personalizations) == 0 || len(msg.Personalizations[0].To) == 0 {
		return ErrNoRecipient
	}

	jsonBody, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("X-Api-Key", c.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
