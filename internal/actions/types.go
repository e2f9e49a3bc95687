package actions

import (
	"context"
	"fmt"

	"github.com/1pedrohfreitas/changelog/internal/changelog"
	"github.com/1pedrohfreitas/changelog/internal/configuration"
	"github.com/1pedrohfreitas/changelog/internal/git"
	"github.com/1pedrohfreitas/changelog/internal/github"
)

// CommitSource lists the commits a changelog is built from
type CommitSource interface {
	ListCommits(ctx context.Context) ([]*changelog.Commit, error)
}

// VersionControl performs the local branch, commit and push steps of publishing
type VersionControl interface {
	CreateBranch(ctx context.Context, branchName string) error
	Commit(ctx context.Context, options *git.CommitOptions) error
	Push(ctx context.Context) error
}

// PullRequestCreator opens the pull request proposing the changelog
type PullRequestCreator interface {
	CreatePullRequest(ctx context.Context, options *github.PullRequestOptions) (*github.PullRequest, error)
}

type GenerateOptions struct {
	Config *configuration.Config
	DryRun bool
}

type GenerateResult struct {
	Document *changelog.Document
	Markdown string
	File     string
	Commits  int
	Written  bool
}

type PublishOptions struct {
	Config       *configuration.Config
	DryRun       bool
	ShowProgress bool
}

type PublishResult struct {
	Branch      string
	BaseBranch  string
	Completed   []string
	PullRequest *github.PullRequest
}

// StepError reports which publish step failed. Steps before it stay applied.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Summary is the outcome of a run, printed by OutputSummary
type Summary struct {
	Owner          string `json:"owner" yaml:"owner"`
	Repo           string `json:"repo" yaml:"repo"`
	Commits        int    `json:"commits" yaml:"commits"`
	Features       int    `json:"features" yaml:"features"`
	Configurations int    `json:"configurations" yaml:"configurations"`
	Issues         int    `json:"issues" yaml:"issues"`
	Other          int    `json:"other" yaml:"other"`
	Dropped        int    `json:"dropped" yaml:"dropped"`
	File           string `json:"file" yaml:"file"`
	Written        bool   `json:"written" yaml:"written"`
	Branch         string `json:"branch,omitempty" yaml:"branch,omitempty"`
	BaseBranch     string `json:"baseBranch,omitempty" yaml:"baseBranch,omitempty"`
	PullRequestURL string `json:"pullRequestUrl,omitempty" yaml:"pullRequestUrl,omitempty"`
	DryRun         bool   `json:"dryRun" yaml:"dryRun"`
}

// NewSummary collects the counts of a generation and, when present, the publish outcome
func NewSummary(config *configuration.Config, generated *GenerateResult, published *PublishResult, dryRun bool) *Summary {
	summary := &Summary{
		Owner:  config.Owner,
		Repo:   config.Repo,
		DryRun: dryRun,
	}

	if generated != nil {
		summary.Commits = generated.Commits
		summary.File = generated.File
		summary.Written = generated.Written
		if generated.Document != nil && generated.Document.Groups != nil {
			groups := generated.Document.Groups
			summary.Features = len(groups.Feature)
			summary.Configurations = len(groups.Configuration)
			summary.Issues = len(groups.Fix)
			summary.Other = len(groups.Other)
			summary.Dropped = groups.Dropped
		}
	}

	if published != nil {
		summary.Branch = published.Branch
		summary.BaseBranch = published.BaseBranch
		if published.PullRequest != nil {
			summary.PullRequestURL = published.PullRequest.HTMLURL
		}
	}

	return summary
}
