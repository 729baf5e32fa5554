package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"testing"

	"github.com/myrjola/existyet/internal/e2etest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthyAndSecureHeaders(t *testing.T) {
	env := startServer(t, nil)
	ctx := context.Background()

	resp, err := env.server.Client().Get(ctx, "/api/healthy")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	resp, err = env.server.Client().Get(ctx, "/")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "deny", resp.Header.Get("X-Frame-Options"))

	// The script nonce changes per request and matches the policy.
	match := regexp.MustCompile(`'nonce-([a-zA-Z]+)'`).FindStringSubmatch(resp.Header.Get("Content-Security-Policy"))
	require.Len(t, match, 2)
	assert.Contains(t, string(body), `nonce="`+match[1]+`"`)
}

func TestNotFound(t *testing.T) {
	env := startServer(t, nil)

	resp, err := env.server.Client().Get(context.Background(), "/does-not-exist")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTestSheets_withoutCredentials(t *testing.T) {
	env := startServer(t, nil)

	resp, err := env.server.Client().Get(context.Background(), "/api/test-sheets")
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body testSheetsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testSheetsResponse{Success: false, Message: "Failed to add test data"}, body)
}

func TestRecentAnalyses(t *testing.T) {
	env := startServer(t, nil)
	ctx := context.Background()

	for _, idea := range []string{"first idea", "second idea"} {
		resp, _ := postAnalyze(t, env, map[string]string{"productIdea": idea})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	operator := env.operatorClient(t)
	resp, err := operator.Get(ctx, "/api/analyses?limit=1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []struct {
		ProductIdea string `json:"product_idea"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	_ = resp.Body.Close()
	require.Len(t, entries, 1)
	assert.Equal(t, "second idea", entries[0].ProductIdea)

	resp, err = operator.Get(ctx, "/api/analyses?limit=abc")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecentAnalyses_requiresOperator(t *testing.T) {
	env := startServer(t, nil)
	ctx := context.Background()

	resp, _ := postAnalyze(t, env, map[string]string{"productIdea": "a private idea"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for name, authorization := range map[string]string{
		"anonymous":     "",
		"wrong token":   "Bearer not-the-token",
		"wrong scheme":  "Basic " + testOperatorToken,
		"missing token": "Bearer ",
	} {
		t.Run(name, func(t *testing.T) {
			client, err := e2etest.NewClient(env.server.URL())
			require.NoError(t, err)
			if authorization != "" {
				client.SetHeader("Authorization", authorization)
			}
			resp, err := client.Get(ctx, "/api/analyses")
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("WWW-Authenticate"))
			assert.NotContains(t, string(body), "a private idea")
		})
	}
}

func TestRecentAnalyses_disabledWithoutOperatorToken(t *testing.T) {
	env := startServer(t, map[string]string{"EXISTYET_OPERATOR_TOKEN": ""})

	resp, _ := postAnalyze(t, env, map[string]string{"productIdea": "a private idea"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := env.server.Client().Get(context.Background(), "/api/analyses")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotContains(t, string(body), "a private idea")
}

func TestMetrics(t *testing.T) {
	env := startServer(t, nil)
	ctx := context.Background()

	resp, _ := postAnalyze(t, env, map[string]string{"productIdea": "idea"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := env.server.Client().Get(ctx, "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Contains(t, string(body), `existyet_analyses_total{mode="competitors",result="ok"} 1`)
	assert.Contains(t, string(body), `existyet_usage_log_appends_total{outcome="skipped"} 1`)
}
