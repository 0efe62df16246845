// Package openai is the live explanation adapter: a bounded, schema-
// validated chat/completions call that only summarizes the engine's
// verdict. Every failure path degrades to a fixed sentinel string.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pharmakit/interaction-checker/internal/explain"
)

const systemPrompt = `You are a strict summarizer for a drug interaction dataset UI.
ABSOLUTE RULES:
- Use ONLY the JSON the user provides. Do NOT add external facts.
- Do NOT infer outcomes, safety, or risk. Do NOT provide recommendations.
- Do NOT provide dosing or management guidance.
- Only restate what is explicitly present in: interaction_message + evidence + attributes.
- If something is missing, say 'insufficient data in dataset'.

OUTPUT FORMAT:
Return JSON only: {"explanation": "..."}
End the explanation with: 'Not medical advice; confirm with a clinician/pharmacist.'

STYLE:
If style == 'clinical', write in concise clinical documentation tone.
If style == 'plain', write in clear plain-English tone.`

// Explain implements explain.Explainer. The call carries its own timeout
// and never surfaces upstream errors: anything but a clean, schema-valid,
// filter-passing response collapses to a sentinel.
func (c *Client) Explain(ctx context.Context, req explain.Request) string {
	if !explain.Summarizable(req.Interaction.Evidence.Kind) {
		return explain.NoEvidence
	}

	rid := uuid.New().String()
	start := time.Now()
	style := req.Style
	if style == "" {
		style = explain.StylePlain
	}

	c.log.Info("llm.explain.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"pair", req.Interaction.DrugPair,
		"evidence", req.Interaction.Evidence.Kind,
		"style", style,
	)

	payload := map[string]any{
		"drug_pair":           req.Interaction.DrugPair,
		"severity":            req.Interaction.Severity,
		"interaction_message": req.Interaction.Message,
		"evidence":            req.Interaction.Evidence,
		"drug1":               req.Drug1,
		"drug2":               req.Drug2,
		"style":               style,
	}

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": mustJSON(payload)},
		},
	}

	cctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	raw, err := c.post(cctx, strings.TrimRight(c.cfg.BaseURL, "/")+"/chat/completions", body)
	if err != nil {
		c.log.Error("llm.explain.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return explain.Unavailable
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil || len(cc.Choices) == 0 {
		c.log.Error("llm.explain.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return explain.Unavailable
	}
	content := []byte(strings.TrimSpace(cc.Choices[0].Message.Content))

	if err := explain.ValidateAgainstSchema(explain.ExplanationJSONSchema(), content); err != nil {
		c.log.Error("llm.explain.schema_validation_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return explain.Unavailable
	}

	var out struct {
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal(content, &out); err != nil {
		return explain.Unavailable
	}
	text := strings.TrimSpace(out.Explanation)
	if text == "" {
		return explain.Unavailable
	}

	if explain.LooksLikeAdvice(text) {
		c.log.Warn("llm.explain.blocked", "req_id", rid)
		return explain.Blocked()
	}

	c.log.Info("llm.explain.ok",
		"req_id", rid,
		"chars", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return explain.WithDisclaimer(text)
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warn("openai response body close error", "error", cerr)
		}
	}()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}

func mustJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
