package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/myrjola/existyet/internal/e2etest"
	"github.com/stretchr/testify/require"
)

const competitorContent = "```json\n" + `{
  "result": {
    "problem_statement": "Pet owners struggle to find **playmates** for their pets.",
    "competitive_analysis": {
      "overview": "A few social apps target pet owners.",
      "competitors": [
        {
          "name": "Petzbe",
          "description": "Social network for pets.",
          "features": ["Photo sharing", "Pet profiles"],
          "unique_elements": "Pets are the users.",
          "url": "https://petzbe.com"
        }
      ]
    },
    "unique_selling_proposition": {"suggested_improvements": "Focus on play dates."},
    "conclusion": {"viability_summary": "Viable in urban areas.", "originality_score": 62}
  }
}` + "\n```"

// fakeLLM is an OpenAI compatible chat completion endpoint.
type fakeLLM struct {
	mu      sync.Mutex
	status  int
	content string
	calls   int
}

func (f *fakeLLM) set(status int, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.content = status, content
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeLLM) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls++
	status, content := f.status, f.content
	f.mu.Unlock()

	_, _ = io.Copy(io.Discard, r.Body)
	w.Header().Set("Content-Type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream exploded","type":"server_error"}}`))
		return
	}
	body, _ := json.Marshal(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "llama-3.1-sonar-large-128k-online",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]string{"role": "assistant", "content": content},
		}},
	})
	_, _ = w.Write(body)
}

const githubSearchBody = `{
  "total_count": 1,
  "incomplete_results": false,
  "items": [
    {
      "name": "pawpals",
      "full_name": "pawpals/pawpals",
      "html_url": "https://github.com/pawpals/pawpals",
      "description": "Play dates for dogs",
      "stargazers_count": 321,
      "language": "Go"
    }
  ]
}`

const testOperatorToken = "operator-secret"

type testEnv struct {
	llm    *fakeLLM
	server *e2etest.Server
}

// startServer boots the application against fake LLM and GitHub endpoints. overrides replace or, when empty,
// unset environment variables.
func startServer(t *testing.T, overrides map[string]string) *testEnv {
	t.Helper()
	llm := &fakeLLM{status: http.StatusOK, content: competitorContent} //nolint:exhaustruct // zero calls
	llmServer := httptest.NewServer(llm)
	t.Cleanup(llmServer.Close)

	githubServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(githubSearchBody))
	}))
	t.Cleanup(githubServer.Close)

	env := map[string]string{
		"EXISTYET_ADDR":       "localhost:0",
		"EXISTYET_SQLITE_URL": ":memory:",
		"PERPLEXITY_API_KEY":  "test-key",
		"PERPLEXITY_BASE_URL": llmServer.URL,
		"GITHUB_ACCESS_TOKEN": "test-token",
		"GITHUB_API_URL":      githubServer.URL,
		// Reading the history over HTTP requires the operator token.
		"EXISTYET_OPERATOR_TOKEN": testOperatorToken,
	}
	for key, value := range overrides {
		env[key] = value
	}
	lookupEnv := func(key string) (string, bool) {
		value, ok := env[key]
		if !ok || value == "" {
			return "", false
		}
		return value, true
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	server, err := e2etest.StartServer(ctx, io.Discard, lookupEnv, run)
	require.NoError(t, err)
	return &testEnv{llm: llm, server: server}
}

// operatorClient returns a client that authenticates as the operator.
func (env *testEnv) operatorClient(t *testing.T) *e2etest.Client {
	t.Helper()
	client, err := e2etest.NewClient(env.server.URL())
	require.NoError(t, err)
	client.SetHeader("Authorization", "Bearer "+testOperatorToken)
	return client
}
