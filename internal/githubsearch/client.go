package githubsearch

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
	"github.com/myrjola/existyet/internal/errors"
	"github.com/myrjola/existyet/internal/models"
)

const (
	// ResultLimit is the number of repositories returned per search.
	ResultLimit = 5
	// UnknownLanguage is reported for repositories without a primary language.
	UnknownLanguage = "Not specified"
)

// Client searches public repositories. It never fails: every problem degrades to an empty result.
type Client struct {
	github *github.Client
	logger *slog.Logger
}

// NewClient creates a search client. An empty token disables searching.
//
// baseURL overrides the GitHub API endpoint and is meant for GitHub Enterprise and tests; leave it empty otherwise.
func NewClient(token string, baseURL string, logger *slog.Logger) (*Client, error) {
	logger = logger.With("source", "githubsearch")
	if strings.TrimSpace(token) == "" {
		return &Client{github: nil, logger: logger}, nil
	}
	gh := github.NewClient(nil).WithAuthToken(token)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, errors.Wrap(err, "parse base URL", slog.String("base_url", baseURL))
		}
		gh.BaseURL = u
	}
	return &Client{github: gh, logger: logger}, nil
}

// Search returns up to [ResultLimit] repositories matching query ranked by stars.
func (c *Client) Search(ctx context.Context, query string) []models.Repository {
	repos := []models.Repository{}
	if c.github == nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "GitHub access token not set, skipping repository search")
		return repos
	}

	result, _, err := c.github.Search.Repositories(ctx, query, &github.SearchOptions{ //nolint:exhaustruct // defaults
		Sort:  "stars",
		Order: "desc",
		ListOptions: github.ListOptions{
			Page:    0,
			PerPage: ResultLimit,
		},
	})
	if err != nil {
		err = errors.Wrap(err, "search repositories", slog.String("query", query))
		c.logger.LogAttrs(ctx, slog.LevelError, "repository search failed", errors.SlogError(err))
		return repos
	}

	for _, repo := range result.Repositories {
		if len(repos) == ResultLimit {
			break
		}
		repos = append(repos, toRepository(repo))
	}
	return repos
}

func toRepository(repo *github.Repository) models.Repository {
	u := repo.GetHomepage()
	if u == "" {
		u = repo.GetHTMLURL()
	}
	language := repo.GetLanguage()
	if language == "" {
		language = UnknownLanguage
	}
	return models.Repository{
		Name:        repo.GetName(),
		URL:         u,
		Description: repo.GetDescription(),
		Stars:       repo.GetStargazersCount(),
		Language:    language,
	}
}
