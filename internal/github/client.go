package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/1pedrohfreitas/changelog/internal/changelog"
	"github.com/google/go-github/v80/github"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// APIVersion is the REST API version pinned on every request
const APIVersion = "2022-11-28"

type RepositoriesService interface {
	ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error)
}

type PullRequestsService interface {
	Create(ctx context.Context, owner, repo string, pull *github.NewPullRequest) (*github.PullRequest, *github.Response, error)
}

// Client talks to the GitHub REST API for a single repository
type Client struct {
	repoService RepositoriesService
	prService   PullRequestsService
	Owner       string
	Repo        string
}

// PullRequestOptions describes a pull request to open
type PullRequestOptions struct {
	Title      string
	Body       string
	HeadBranch string
	BaseBranch string
}

// PullRequest is the created pull request
type PullRequest struct {
	Number  int    `json:"number" yaml:"number"`
	HTMLURL string `json:"htmlUrl" yaml:"htmlUrl"`
}

// APIError is returned when a GitHub call fails
type APIError struct {
	Operation  string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("github %s failed (HTTP %d): %v", e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("github %s failed: %v", e.Operation, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// apiVersionTransport pins the X-GitHub-Api-Version header
type apiVersionTransport struct {
	base http.RoundTripper
}

func (t *apiVersionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-GitHub-Api-Version", APIVersion)
	return t.base.RoundTrip(req)
}

// NewClient creates a client authenticated with token.
// apiBaseURL selects a GitHub Enterprise instance; empty means api.github.com.
func NewClient(owner, repo, token, apiBaseURL string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub token is required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: ts,
			Base:   &apiVersionTransport{base: http.DefaultTransport},
		},
	}

	client := github.NewClient(httpClient)
	if apiBaseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(apiBaseURL, apiBaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %s: %w", apiBaseURL, err)
		}
	}

	log.Debug().
		Str("owner", owner).
		Str("repo", repo).
		Str("baseURL", client.BaseURL.String()).
		Msg("Created GitHub client")

	return NewClientWithServices(client.Repositories, client.PullRequests, owner, repo), nil
}

func NewClientWithServices(repoService RepositoriesService, prService PullRequestsService, owner, repo string) *Client {
	return &Client{
		repoService: repoService,
		prService:   prService,
		Owner:       owner,
		Repo:        repo,
	}
}

// ListCommits fetches the first page of commits with the API's default page size and ordering
func (c *Client) ListCommits(ctx context.Context) ([]*changelog.Commit, error) {
	log.Debug().Str("owner", c.Owner).Str("repo", c.Repo).Msg("Listing commits")

	repoCommits, resp, err := c.repoService.ListCommits(ctx, c.Owner, c.Repo, &github.CommitsListOptions{})
	if err != nil {
		return nil, newAPIError("list commits", resp, err)
	}

	commits := make([]*changelog.Commit, 0, len(repoCommits))
	for _, rc := range repoCommits {
		commits = append(commits, &changelog.Commit{
			URL:        rc.GetHTMLURL(),
			SHA:        rc.GetSHA(),
			Message:    rc.GetCommit().GetMessage(),
			AuthorName: rc.GetCommit().GetAuthor().GetName(),
		})
	}

	log.Debug().Int("count", len(commits)).Msg("Listed commits")
	return commits, nil
}

// CreatePullRequest opens a pull request from options.HeadBranch into options.BaseBranch
func (c *Client) CreatePullRequest(ctx context.Context, options *PullRequestOptions) (*PullRequest, error) {
	log.Debug().
		Str("title", options.Title).
		Str("base", options.BaseBranch).
		Str("head", options.HeadBranch).
		Msg("Creating GitHub pull request")

	pr, resp, err := c.prService.Create(ctx, c.Owner, c.Repo, &github.NewPullRequest{
		Title: github.Ptr(options.Title),
		Body:  github.Ptr(options.Body),
		Head:  github.Ptr(options.HeadBranch),
		Base:  github.Ptr(options.BaseBranch),
	})
	if err != nil {
		return nil, newAPIError("create pull request", resp, err)
	}

	log.Debug().
		Str("url", pr.GetHTMLURL()).
		Int("number", pr.GetNumber()).
		Msg("Created pull request")

	return &PullRequest{
		Number:  pr.GetNumber(),
		HTMLURL: pr.GetHTMLURL(),
	}, nil
}

func newAPIError(operation string, resp *github.Response, err error) *APIError {
	apiErr := &APIError{Operation: operation, Err: err}
	if resp != nil && resp.Response != nil {
		apiErr.StatusCode = resp.StatusCode
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		apiErr.StatusCode = errResp.Response.StatusCode
	}
	return apiErr
}
