package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nmercado/docledger/internal/extract"
)

// Wire structures for the generateContent endpoint.

type generateRequest struct {
	Contents         []content `json:"contents"`
	GenerationConfig genConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"` // "application/json" keeps markdown fences out, mostly
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ExtractDocument implements extract.DocumentExtractor. The document is
// attached inline as base64 together with the schema prompt; the raw response
// text is returned for the caller to sanitize and decode. One request, no
// retry: any transport or API error propagates.
func (c *Client) ExtractDocument(ctx context.Context, req extract.Request) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("gemini: missing API key")
	}

	data, err := os.ReadFile(req.FilePath)
	if err != nil {
		return "", fmt.Errorf("gemini: read file: %w", err)
	}

	c.log.Info().
		Str("req_id", rid).
		Str("model", c.cfg.Model).
		Str("mime", req.MIMEType).
		Int("file_bytes", len(data)).
		Msg("gemini.extract.start")

	payload := generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{InlineData: &inlineData{
					MIMEType: req.MIMEType,
					Data:     base64.StdEncoding.EncodeToString(data),
				}},
				{Text: req.Prompt},
			},
		}},
		GenerationConfig: genConfig{
			ResponseMIMEType: "application/json",
			Temperature:      c.cfg.Temperature,
			MaxOutputTokens:  c.cfg.MaxOutputTokens,
		},
	}

	raw, err := c.post(ctx, payload)
	if err != nil {
		c.log.Error().
			Str("req_id", rid).
			Err(err).
			Int64("elapsed_ms", time.Since(start).Milliseconds()).
			Msg("gemini.extract.http_error")
		return "", err
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("gemini: api error %d: %s", out.Error.Code, out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}

	text := out.Candidates[0].Content.Parts[0].Text
	c.log.Info().
		Str("req_id", rid).
		Int("response_bytes", len(text)).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("gemini.extract.ok")
	return text, nil
}

func (c *Client) post(ctx context.Context, body any) ([]byte, error) {
	bs, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gemini: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: http error: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warn().Err(cerr).Msg("gemini.response_body_close_error")
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini: read response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		// Surface the API error message when there is one.
		var er generateResponse
		if json.Unmarshal(raw, &er) == nil && er.Error != nil {
			return nil, fmt.Errorf("gemini: status %d: %s", resp.StatusCode, er.Error.Message)
		}
		return nil, fmt.Errorf("gemini: status %d", resp.StatusCode)
	}
	return raw, nil
}
