package actions

import (
	"context"
	"io"

	"github.com/1pedrohfreitas/changelog/internal/changelog"
	"github.com/1pedrohfreitas/changelog/internal/configuration"
)

type PreviewOptions struct {
	Config *configuration.Config
	// Markdown prints the exact file content instead of the terminal rendering
	Markdown bool
	Plain    bool
}

// Preview renders the changelog to w without touching the output file
func Preview(ctx context.Context, w io.Writer, source CommitSource, options *PreviewOptions) (*GenerateResult, error) {
	result, err := Generate(ctx, source, &GenerateOptions{Config: options.Config, DryRun: true})
	if err != nil {
		return nil, err
	}

	if options.Markdown {
		if _, err := io.WriteString(w, result.Markdown); err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := changelog.FormatTerminal(result.Document, w, changelog.FormatOptions{Plain: options.Plain}); err != nil {
		return nil, err
	}
	return result, nil
}
