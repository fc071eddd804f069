// Package telegram sends messages through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// DefaultAPIURL is the public Bot API host
const DefaultAPIURL = "https://api.telegram.org"

// APIError is returned when the Bot API answers with a non-200 status
type APIError struct {
	StatusCode  int
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("Telegram API error: %d: %s", e.StatusCode, e.Description)
	}
	return fmt.Sprintf("Telegram API error: %d", e.StatusCode)
}

// Client is a minimal Bot API client. It only knows sendMessage.
type Client struct {
	token      string
	apiURL     string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithAPIURL points the client at another Bot API host, e.g. a test server
func WithAPIURL(apiURL string) Option {
	return func(c *Client) {
		if apiURL != "" {
			c.apiURL = strings.TrimSuffix(apiURL, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates a Client for the given bot token
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:      token,
		apiURL:     DefaultAPIURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// SendMessage posts text to chatID with HTML parse mode. It makes exactly one request.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: tgbotapi.ModeHTML,
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return redactURLError(err)
	}
	defer resp.Body.Close()

	var apiResp tgbotapi.APIResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&apiResp)

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Description = apiResp.Description
		}
		return apiErr
	}

	if decodeErr == nil && !apiResp.Ok {
		return &APIError{StatusCode: resp.StatusCode, Description: apiResp.Description}
	}

	return nil
}

func (c *Client) methodURL(method string) string {
	return c.apiURL + "/bot" + c.token + "/" + method
}

// redactURLError drops the request URL from transport errors; it embeds the bot token.
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("request to Telegram failed: %w", urlErr.Err)
	}
	return err
}
