// ABOUTME: HTTP client for the speech/text generation endpoint
// ABOUTME: Sends one multipart form POST and parses the JSON answer
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
)

// DefaultURL is the generation endpoint used when none is configured
const DefaultURL = "https://ml-demo.earkick.com/web-chat/audio/audio_generate"

// ErrInvalidResponse is returned when the response body is not valid JSON
var ErrInvalidResponse = errors.New("invalid response body")

// DefaultHeaders are sent with every request. Accept-Encoding is left to
// the transport so gzip bodies are decompressed transparently.
var DefaultHeaders = map[string]string{
	"Accept":             "*/*",
	"Accept-Language":    "en-US,en;q=0.9,hi;q=0.8",
	"DNT":                "1",
	"Origin":             "https://earkick.com",
	"Referer":            "https://earkick.com/",
	"Sec-CH-UA":          `"Google Chrome";v="131", "Chromium";v="131", "Not_A Brand";v="24"`,
	"Sec-CH-UA-Mobile":   "?0",
	"Sec-CH-UA-Platform": `"Windows"`,
	"Sec-Fetch-Dest":     "empty",
	"Sec-Fetch-Mode":     "cors",
	"Sec-Fetch-Site":     "same-site",
	"User-Agent":         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
}

// Message is one entry of the conversation history
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Form holds the multipart fields of a generation request
type Form struct {
	AppID    string
	Language string
	TTSVoice string
	UseVoice bool
	Messages []Message
}

// Response is the decoded JSON answer
type Response struct {
	Messages []Message `json:"messages"`
	Audio    string    `json:"audio"`
}

// StatusError reports a non-2xx answer
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed: HTTP %d", e.StatusCode)
}

// Config holds client settings
type Config struct {
	URL           string
	Authorization string
	Headers       map[string]string // replaces DefaultHeaders when non-nil
	HTTPClient    *http.Client
}

// Client sends generation requests
type Client struct {
	url           string
	authorization string
	headers       map[string]string
	http          *http.Client
}

// New creates a client
func New(config Config) *Client {
	if config.URL == "" {
		config.URL = DefaultURL
	}
	if config.Headers == nil {
		config.Headers = DefaultHeaders
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{}
	}

	return &Client{
		url:           config.URL,
		authorization: config.Authorization,
		headers:       config.Headers,
		http:          config.HTTPClient,
	}
}

// Send posts the form and returns the parsed response
func (c *Client) Send(ctx context.Context, form Form) (*Response, error) {
	body, contentType, err := encodeForm(form)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if c.authorization != "" {
		req.Header.Set("Authorization", c.authorization)
	}
	req.Header.Set("Content-Type", contentType)

	log.Printf("Sending POST request to %s", c.url)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Request failed with HTTP %d: %s", resp.StatusCode, data)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		log.Printf("Failed to parse JSON response: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	log.Printf("Request successful (%d bytes)", len(data))
	return &out, nil
}

func encodeForm(form Form) (io.Reader, string, error) {
	messages := form.Messages
	if messages == nil {
		messages = []Message{}
	}
	encoded, err := json.Marshal(messages)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode messages: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := []struct{ name, value string }{
		{"app_id", form.AppID},
		{"language", form.Language},
		{"tts_voice", form.TTSVoice},
		{"voice", strconv.FormatBool(form.UseVoice)},
		{"messages", string(encoded)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", f.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
