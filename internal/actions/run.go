package actions

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type RunOptions struct {
	Generate *GenerateOptions
	Publish  *PublishOptions
}

// Run generates the changelog and then publishes it. Publishing is skipped when generation fails.
func Run(ctx context.Context, source CommitSource, vcs VersionControl, prs PullRequestCreator, options *RunOptions) (*Summary, error) {
	config := options.Generate.Config

	generated, err := Generate(ctx, source, options.Generate)
	if err != nil {
		return nil, fmt.Errorf("failed to generate changelog: %w", err)
	}

	published, err := Publish(ctx, vcs, prs, options.Publish)
	summary := NewSummary(config, generated, published, options.Generate.DryRun)
	if err != nil {
		return summary, fmt.Errorf("failed to publish changelog: %w", err)
	}

	log.Info().
		Int("commits", summary.Commits).
		Str("file", summary.File).
		Str("pullRequest", summary.PullRequestURL).
		Msg("Changelog run complete")

	return summary, nil
}
