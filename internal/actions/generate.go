package actions

import (
	"context"
	"fmt"

	"github.com/1pedrohfreitas/changelog/internal/changelog"
	"github.com/rs/zerolog/log"
)

// Generate fetches the latest commits, renders the changelog and replaces the output file.
// A failed fetch returns before the file is touched. With DryRun the file is left as is.
func Generate(ctx context.Context, source CommitSource, options *GenerateOptions) (*GenerateResult, error) {
	config := options.Config
	log.Debug().Str("owner", config.Owner).Str("repo", config.Repo).Msg("Fetching commits...")

	commits, err := source.ListCommits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch commits: %w", err)
	}

	log.Info().Int("commits", len(commits)).Msg("Fetched commits")

	document := changelog.Build(commits, &changelog.Options{
		Owner:        config.Owner,
		Repo:         config.Repo,
		IncludeOther: config.IncludeOther,
	})

	result := &GenerateResult{
		Document: document,
		Markdown: document.Markdown(),
		File:     config.OutputFile,
		Commits:  len(commits),
	}

	if options.DryRun {
		log.Info().Str("file", config.OutputFile).Msg("Dry run, not writing changelog")
		return result, nil
	}

	if err := changelog.WriteFile(config.OutputFile, result.Markdown); err != nil {
		return nil, err
	}
	result.Written = true

	log.Info().Str("file", config.OutputFile).Msg("Changelog written")
	return result, nil
}
