// Package suggest proposes habit and task titles from free text via an
// OpenAI-compatible chat endpoint. Strictly best-effort: an unconfigured or
// failing client yields an empty list, never an error the board depends on.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxTitles = 10

type Client struct {
	url    string
	apiKey string
	model  string
	client *http.Client
	log    *zap.Logger
}

func NewClient(url, apiKey, model string, logger *zap.Logger) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    logger,
	}
}

// Configured reports whether the helper can make calls at all.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.url != ""
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Titles asks the model for a short list of actionable habit/task titles.
// Every failure path returns an empty slice after logging a warning.
func (c *Client) Titles(ctx context.Context, text string) []string {
	if !c.Configured() || strings.TrimSpace(text) == "" {
		return nil
	}

	prompt := "Propose up to " + fmt.Sprint(maxTitles) +
		" short habit or task titles, one per line, no numbering, based on: " + text

	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		c.log.Warn("suggest_encode_failed", zap.Error(err))
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		c.log.Warn("suggest_request_failed", zap.Error(err))
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("suggest_call_failed", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		c.log.Warn("suggest_bad_response",
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		return nil
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Choices) == 0 {
		c.log.Warn("suggest_decode_failed", zap.Error(err))
		return nil
	}

	return ParseTitles(parsed.Choices[0].Message.Content)
}

// ParseTitles splits model output into clean titles: one per line, bullets
// and numbering stripped, blanks dropped, capped at maxTitles.
func ParseTitles(content string) []string {
	var titles []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*0123456789.) ")
		line = strings.Trim(line, `"`)
		if line == "" {
			continue
		}
		titles = append(titles, line)
		if len(titles) == maxTitles {
			break
		}
	}
	return titles
}
