package ideogram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.ideogram.ai/api/v1"

// DefaultStyle is applied when the caller picks no style.
const DefaultStyle = "natural"

// Client talks to the hosted Ideogram image-generation API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates an Ideogram client with an explicit API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point at a local server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type generateResponse struct {
	ImageURL string `json:"image_url"`
	Message  string `json:"message"`
}

type stylesResponse struct {
	Styles  []string `json:"styles"`
	Message string   `json:"message"`
}

// GenerateImage requests a 1024x1024 image for the prompt and returns the
// hosted image URL.
func (c *Client) GenerateImage(ctx context.Context, prompt, style string) (string, error) {
	if style == "" {
		style = DefaultStyle
	}

	body, err := json.Marshal(generateRequest{
		Prompt: prompt,
		Style:  style,
		Width:  1024,
		Height: 1024,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling image API: %w", err)
	}
	defer resp.Body.Close()

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding image API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := out.Message
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("image generation failed: %s", msg)
	}
	if out.ImageURL == "" {
		return "", fmt.Errorf("image API returned no image url")
	}
	return out.ImageURL, nil
}

// ListStyles returns the style names the API currently offers.
func (c *Client) ListStyles(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/styles", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling styles API: %w", err)
	}
	defer resp.Body.Close()

	var out stylesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding styles response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := out.Message
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("listing styles failed: %s", msg)
	}
	return out.Styles, nil
}
