package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/myrjola/existyet/internal/e2etest"
	"github.com/myrjola/existyet/internal/errors"
	"github.com/myrjola/existyet/internal/logging"
)

// TestPages checks that the public pages render.
func TestPages(ctx context.Context, client *e2etest.Client) error {
	for _, path := range []string{"/", "/get-started", "/find-startups", "/investors", "/investors/1"} {
		if _, err := client.GetDoc(ctx, path); err != nil {
			return errors.Wrap(err, "get page", slog.String("path", path))
		}
	}
	return nil
}

// TestInvestorMatching runs an investor search through the session backed result page.
func TestInvestorMatching(ctx context.Context, client *e2etest.Client) error {
	doc, err := client.SubmitForm(ctx, "/investors", "/investors/match", url.Values{
		"amount":       {"$2M"},
		"stage":        {"Seed"},
		"industries":   {"AI"},
		"customerType": {"B2B"},
	})
	if err != nil {
		return errors.Wrap(err, "submit investor search")
	}
	if matches := doc.Find(".match").Length(); matches == 0 {
		return errors.New("no investor matches rendered")
	}
	if _, err = client.SubmitForm(ctx, "/investors/matches", "/investors/reset", nil); err != nil {
		return errors.Wrap(err, "reset investor search")
	}
	return nil
}

func main() {
	logger := logging.NewLogger(os.Stdout, slog.LevelDebug, false)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		baseURL  = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", baseURL))
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second) //nolint:mnd // 30 seconds
	defer cancel()

	if client, err = e2etest.NewClient(baseURL); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1) //nolint:gocritic // cancel is irrelevant on exit.
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not healthy", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestPages(ctx, client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing pages", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestInvestorMatching(ctx, client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing investor matching", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
