// Package openai implements the chat and vision-OCR capabilities against an
// OpenAI-compatible chat completions endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"claimlens/internal/config"
	"claimlens/internal/domain"
	"claimlens/internal/port"
)

const ocrInstruction = "Extract all text from the document exactly as written. Do NOT summarize, translate, or omit anything."

// Client implements port.ChatModel and port.VisionOCR.
type Client struct {
	baseURL     string
	apiKey      string
	chatModel   string
	visionModel string
	client      *http.Client
}

// NewClient creates a client from LLM config.
func NewClient(cfg *config.LLMConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 90 * time.Second
	}
	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = "gpt-4o-mini"
	}
	visionModel := cfg.VisionModel
	if visionModel == "" {
		visionModel = chatModel
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		chatModel:   chatModel,
		visionModel: visionModel,
		client:      &http.Client{Timeout: timeout},
	}
}

// Generate sends a plain chat completion and returns the assistant text.
// Transport failures and empty replies map to domain.ErrLLMUnavailable.
func (c *Client) Generate(ctx context.Context, messages []port.ChatMessage) (string, error) {
	content := make([]map[string]interface{}, 0, len(messages))
	for _, m := range messages {
		content = append(content, map[string]interface{}{
			"role":    m.Role,
			"content": m.Content,
		})
	}

	text, err := c.complete(ctx, c.chatModel, content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty completion", domain.ErrLLMUnavailable)
	}
	return text, nil
}

// RecognizeImage runs vision OCR over raw image bytes.
func (c *Client) RecognizeImage(ctx context.Context, imageBytes []byte, contentType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(imageBytes))
	messages := []map[string]interface{}{
		{"role": "system", "content": ocrInstruction},
		{
			"role": "user",
			"content": []map[string]interface{}{
				{"type": "text", "text": "Extract all text:"},
				{"type": "image_url", "image_url": map[string]interface{}{"url": dataURL}},
			},
		},
	}

	text, err := c.complete(ctx, c.visionModel, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrOCRUnavailable, err)
	}
	return text, nil
}

// RecognizePDFPage runs vision OCR over a single page of a PDF by attaching
// the file and targeting the page in the prompt.
func (c *Client) RecognizePDFPage(ctx context.Context, pdfBytes []byte, page int) (string, error) {
	dataURL := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdfBytes)
	messages := []map[string]interface{}{
		{"role": "system", "content": ocrInstruction},
		{
			"role": "user",
			"content": []map[string]interface{}{
				{"type": "text", "text": fmt.Sprintf("Extract all text from page %d only:", page)},
				{"type": "file", "file": map[string]interface{}{
					"filename":  "bill.pdf",
					"file_data": dataURL,
				}},
			},
		},
	}

	text, err := c.complete(ctx, c.visionModel, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrOCRUnavailable, err)
	}
	return text, nil
}

func (c *Client) complete(ctx context.Context, model string, messages interface{}) (string, error) {
	reqBody := map[string]interface{}{
		"model":    model,
		"messages": messages,
		"stream":   false,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completions API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completions API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty choices in response")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
