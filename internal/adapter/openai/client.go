// Package openai implements port.NarrativeClient against any
// OpenAI-compatible chat-completions API. Every failure mode — transport
// error, non-2xx status, malformed or empty response — surfaces as an
// error so the usecase falls back to the rule-based summary.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"adlytics/internal/config/configs"
	"adlytics/internal/core/domain"
)

// Client calls the narrative service. The API key arrives via the
// configuration value, never ambient process state.
type Client struct {
	cfg    configs.Narrative
	httpc  *http.Client
	logger *slog.Logger
}

// New creates a client with the configured request timeout.
func New(cfg configs.Narrative, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		httpc:  &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
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

// Generate asks the service for an executive summary structured as three
// labeled sections with three bullet points each.
func (c *Client) Generate(ctx context.Context, kpis domain.KPISet, trend domain.DailyTrend) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.cfg.Model,
		Messages: []chatMessage{{Role: "user", Content: buildPrompt(kpis, trend)}},
	})
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("narrative service: non-2xx status %d body=%s", resp.StatusCode, string(b))
	}

	var parsed chatResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("narrative service: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", errors.New("narrative service: empty completion")
	}
	return parsed.Choices[0].Message.Content, nil
}

// buildPrompt projects the KPIs and trend into text the model can reason
// over, and pins the expected output structure.
func buildPrompt(kpis domain.KPISet, trend domain.DailyTrend) string {
	var b strings.Builder
	b.WriteString("You are an AdTech analytics expert.\n\n")
	b.WriteString("Generate a high-quality executive summary based on:\n\nKPIs:\n")
	fmt.Fprintf(&b, "total_impressions=%d total_clicks=%d total_cost=%.2f total_revenue=%.2f total_conversions=%d\n",
		kpis.Impressions, kpis.Clicks, kpis.Cost, kpis.Revenue, kpis.Conversions)
	fmt.Fprintf(&b, "ctr=%.4f cpc=%.4f cpm=%.4f roas=%.4f\n", kpis.CTR, kpis.CPC, kpis.CPM, kpis.ROAS)

	b.WriteString("\nDaily trend:\n")
	for _, d := range trend {
		fmt.Fprintf(&b, "%s impressions=%d clicks=%d cost=%.2f revenue=%.2f conversions=%d\n",
			d.Date.Format("2006-01-02"), d.Impressions, d.Clicks, d.Cost, d.Revenue, d.Conversions)
	}

	b.WriteString(`
Return the output in this structure:

EXECUTIVE SUMMARY:
- 3 sentence overview

KEY INSIGHTS:
- 3 bullet points

RECOMMENDATIONS:
- 3 bullet points
`)
	return b.String()
}
