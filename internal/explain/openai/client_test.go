package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmakit/interaction-checker/internal/explain"
	"github.com/pharmakit/interaction-checker/internal/interactions"
)

func stubServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":"boom"}`))
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func overlapRequest() explain.Request {
	return explain.Request{
		Interaction: interactions.Interaction{
			DrugPair: [2]string{"drug a", "drug b"},
			Message:  "Potential interaction due to shared enzymes: CYP3A4",
			Severity: interactions.SeverityMild,
			Evidence: interactions.Evidence{
				Kind:          interactions.KindMechanismOverlap,
				SharedEnzymes: []string{"CYP3A4"},
			},
		},
		Style: explain.StylePlain,
	}
}

func newTestClient(url string) *Client {
	return NewClient(Config{APIKey: "test-key", BaseURL: url, Model: "test-model"}, nil)
}

func TestExplainSuccessAppendsDisclaimer(t *testing.T) {
	srv := stubServer(t, http.StatusOK, `{"explanation":"Both entries share the CYP3A4 token in the dataset."}`)
	defer srv.Close()

	got := newTestClient(srv.URL).Explain(context.Background(), overlapRequest())
	assert.Equal(t, "Both entries share the CYP3A4 token in the dataset. "+explain.Disclaimer, got)
}

func TestExplainHTTPErrorDegrades(t *testing.T) {
	srv := stubServer(t, http.StatusInternalServerError, "")
	defer srv.Close()

	got := newTestClient(srv.URL).Explain(context.Background(), overlapRequest())
	assert.Equal(t, explain.Unavailable, got)
}

func TestExplainSchemaViolationDegrades(t *testing.T) {
	srv := stubServer(t, http.StatusOK, `{"unexpected":"shape"}`)
	defer srv.Close()

	got := newTestClient(srv.URL).Explain(context.Background(), overlapRequest())
	assert.Equal(t, explain.Unavailable, got)
}

func TestExplainAdvisoryOutputBlocked(t *testing.T) {
	srv := stubServer(t, http.StatusOK, `{"explanation":"You should stop one of these drugs."}`)
	defer srv.Close()

	got := newTestClient(srv.URL).Explain(context.Background(), overlapRequest())
	assert.Equal(t, explain.Blocked(), got)
}

func TestExplainSkipsNonSummarizableEvidence(t *testing.T) {
	// No server: the call must short-circuit before any HTTP.
	c := newTestClient("http://127.0.0.1:0")
	req := overlapRequest()
	req.Interaction.Evidence = interactions.Evidence{Kind: interactions.KindNone}

	assert.Equal(t, explain.NoEvidence, c.Explain(context.Background(), req))
}
