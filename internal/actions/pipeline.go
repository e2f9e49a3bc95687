package actions

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

type step struct {
	name string
	run  func(ctx context.Context) error
}

// runSteps runs the steps in order and stops at the first failure.
// It returns the names of the steps that completed.
func runSteps(ctx context.Context, steps []step, showProgress bool) ([]string, error) {
	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.NewOptions(len(steps),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Publishing changelog:"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		defer bar.Finish()
	}

	completed := make([]string, 0, len(steps))
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return completed, &StepError{Step: s.name, Err: err}
		}

		if bar != nil {
			bar.Describe(s.name)
		}
		log.Debug().Str("step", s.name).Msg("Running step")

		if err := s.run(ctx); err != nil {
			log.Error().Err(err).Str("step", s.name).Strs("completed", completed).Msg("Step failed")
			return completed, &StepError{Step: s.name, Err: err}
		}

		completed = append(completed, s.name)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return completed, nil
}
