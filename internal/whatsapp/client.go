package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL    = "https://graph.facebook.com"
	defaultAPIVersion = "v18.0"
)

// Config addresses the Cloud API send-message endpoint for one business phone number.
type Config struct {
	BaseURL       string
	APIVersion    string
	PhoneNumberID string
	Token         string
}

// Client sends text messages through the WhatsApp Cloud API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// NewClient creates a Cloud API client. httpClient may be nil.
func NewClient(httpClient *http.Client, cfg Config) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	version := strings.Trim(strings.TrimSpace(cfg.APIVersion), "/")
	if version == "" {
		version = defaultAPIVersion
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   fmt.Sprintf("%s/%s/%s/messages", base, version, strings.TrimSpace(cfg.PhoneNumberID)),
		token:      strings.TrimSpace(cfg.Token),
	}
}

type textBody struct {
	Body string `json:"body"`
}

type sendRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

// SendText delivers body to the WhatsApp number to. It returns the HTTP status
// of the Cloud API response (0 when no response arrived); any non-2xx status is
// reported as an error. There are no retries.
func (c *Client) SendText(ctx context.Context, to, body string) (int, error) {
	if strings.TrimSpace(to) == "" {
		return 0, fmt.Errorf("recipient is required")
	}
	payload, err := json.Marshal(sendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             textBody{Body: body},
	})
	if err != nil {
		return 0, fmt.Errorf("marshal whatsapp payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, fmt.Errorf("whatsapp api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
