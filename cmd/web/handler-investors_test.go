package main

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvestors_searchAndReset(t *testing.T) {
	env := startServer(t, nil)
	ctx := context.Background()
	client := env.server.Client()

	// Without a search the results redirect back to the form.
	doc, err := client.GetDoc(ctx, "/investors/matches")
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("form[action='/investors/match']").Length())

	doc, err = client.SubmitForm(ctx, "/investors", "/investors/match", url.Values{
		"amount":       {"$2M"},
		"stage":        {"Seed"},
		"industries":   {"AI", "Fintech"},
		"customerType": {"B2B"},
	})
	require.NoError(t, err)

	var (
		names  []string
		scores []string
	)
	doc.Find(".match").Each(func(_ int, s *goquery.Selection) {
		names = append(names, strings.TrimSpace(s.Find("h2").Text()))
		scores = append(scores, s.Find(".score-value").Text())
	})
	assert.Equal(t, []string{"Kyle Kallman", "Sarah Johnson", "Emily Wong", "Mark Williams", "Lisa Brown"}, names)
	assert.Equal(t, []string{"100", "85", "85", "70", "65"}, scores)
	assert.Equal(t, "/investors/1", doc.Find(".match h2 a").First().AttrOr("href", ""))

	// The search survives a reload.
	doc, err = client.GetDoc(ctx, "/investors/matches")
	require.NoError(t, err)
	assert.Equal(t, 5, doc.Find(".match").Length())

	// Back to Search discards it.
	doc, err = client.SubmitForm(ctx, "/investors/matches", "/investors/reset", nil)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("form[action='/investors/match']").Length())

	doc, err = client.GetDoc(ctx, "/investors/matches")
	require.NoError(t, err)
	assert.Zero(t, doc.Find(".match").Length())
	assert.Equal(t, 1, doc.Find("form[action='/investors/match']").Length())
}

func TestInvestors_invalidSearch(t *testing.T) {
	env := startServer(t, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		values  url.Values
		wantMsg string
	}{
		{
			name:    "missing industry",
			values:  url.Values{"amount": {"$2M"}, "stage": {"Seed"}, "customerType": {"B2B"}},
			wantMsg: "Please fill in all fields to find matching investors",
		},
		{
			name: "bad amount",
			values: url.Values{
				"amount": {"lots"}, "stage": {"Seed"}, "industries": {"AI"}, "customerType": {"B2B"},
			},
			wantMsg: "Amount to raise must be a positive number such as $2M or 500K",
		},
		{
			name: "unknown stage",
			values: url.Values{
				"amount": {"$2M"}, "stage": {"Series Z"}, "industries": {"AI"}, "customerType": {"B2B"},
			},
			wantMsg: "Unknown option selected",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.server.Client().PostForm(ctx, "/investors", "/investors/match", tt.values)
			require.NoError(t, err)
			defer func() {
				_ = resp.Body.Close()
			}()
			require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			doc, err := goquery.NewDocumentFromReader(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMsg, doc.Find(".form-error").Text())
			// The submitted values are kept.
			assert.Equal(t, tt.values.Get("amount"), doc.Find("input[name=amount]").AttrOr("value", ""))
		})
	}
}

func TestInvestorDetail(t *testing.T) {
	env := startServer(t, nil)
	ctx := context.Background()

	doc, err := env.server.Client().GetDoc(ctx, "/investors/2")
	require.NoError(t, err)
	assert.Contains(t, doc.Find("h1").Text(), "Sarah Johnson")
	assert.Equal(t, "Sequoia Capital", doc.Find(".company").Text())

	for _, path := range []string{"/investors/42", "/investors/abc", "/investors/0"} {
		resp, err := env.server.Client().Get(ctx, path)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}
