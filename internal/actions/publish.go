package actions

import (
	"context"
	"fmt"

	"github.com/1pedrohfreitas/changelog/internal/git"
	"github.com/1pedrohfreitas/changelog/internal/github"
	"github.com/rs/zerolog/log"
)

const (
	StepCreateBranch = "create branch"
	StepCommit       = "commit changelog"
	StepPush         = "push branch"
	StepPullRequest  = "open pull request"
)

// Publish creates the branch, commits the changelog file, pushes it and opens a pull request against the base branch.
// The first failing step aborts the rest; nothing already done is rolled back.
func Publish(ctx context.Context, vcs VersionControl, prs PullRequestCreator, options *PublishOptions) (*PublishResult, error) {
	config := options.Config
	result := &PublishResult{
		Branch:     config.Branch,
		BaseBranch: config.BaseBranch,
	}

	if config.Branch == "" {
		return nil, fmt.Errorf("no branch to publish to")
	}

	if options.DryRun {
		log.Info().
			Str("branch", config.Branch).
			Str("base", config.BaseBranch).
			Str("file", config.OutputFile).
			Msg("Dry run, would publish changelog")
		return result, nil
	}

	steps := []step{
		{
			name: StepCreateBranch,
			run: func(ctx context.Context) error {
				return vcs.CreateBranch(ctx, config.Branch)
			},
		},
		{
			name: StepCommit,
			run: func(ctx context.Context) error {
				return vcs.Commit(ctx, &git.CommitOptions{
					Message: config.PullRequest.CommitMessage,
					Files:   []string{config.OutputFile},
				})
			},
		},
		{
			name: StepPush,
			run:  vcs.Push,
		},
		{
			name: StepPullRequest,
			run: func(ctx context.Context) error {
				pr, err := prs.CreatePullRequest(ctx, &github.PullRequestOptions{
					Title:      config.PullRequest.Title,
					Body:       config.PullRequest.Body,
					HeadBranch: config.Branch,
					BaseBranch: config.BaseBranch,
				})
				if err != nil {
					return err
				}
				if pr == nil {
					return fmt.Errorf("empty pull request response")
				}
				result.PullRequest = pr
				return nil
			},
		},
	}

	completed, err := runSteps(ctx, steps, options.ShowProgress)
	result.Completed = completed
	if err != nil {
		return result, err
	}

	log.Info().
		Str("branch", config.Branch).
		Str("url", result.PullRequest.HTMLURL).
		Int("number", result.PullRequest.Number).
		Msg("Pull request created")

	return result, nil
}
