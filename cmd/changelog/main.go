package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/1pedrohfreitas/changelog/internal/actions"
	"github.com/1pedrohfreitas/changelog/internal/configuration"
	"github.com/1pedrohfreitas/changelog/internal/git"
	"github.com/1pedrohfreitas/changelog/internal/github"
	"github.com/1pedrohfreitas/changelog/internal/util"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

var version = "development"

const (
	exitFailure       = 1
	exitConfigError   = 3
	defaultConfigFile = ".changelog.yml"
)

func main() {

	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{},
		Usage:   "print only the version",
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("command terminated with error")
	}
}

// newCommand builds the command tree. Repository and run flags live on the root
// and are inherited by every subcommand, so they may appear before or after the subcommand name.
func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "changelog",
		Version: version,
		Usage:   "Generate CHANGELOG.md from the latest commits and propose it in a pull request",
		Flags:   append(globalFlags(), append(repositoryFlags(), runFlags()...)...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return initCli(ctx, cmd)
		},
		Action: runCommand,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Generate the changelog, then commit, push and open a pull request",
				Action: runCommand,
			},
			{
				Name:   "generate",
				Usage:  "Fetch commits and rewrite the changelog file (--dry-run prints it instead)",
				Action: generateCommand,
			},
			{
				Name:   "publish",
				Usage:  "Commit and push the existing changelog file and open a pull request",
				Action: publishCommand,
			},
			{
				Name:  "preview",
				Usage: "Print the changelog to the terminal without writing it",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "markdown",
						Usage: "Print the raw Markdown file content",
					},
					&cli.BoolFlag{
						Name:    "no-color",
						Usage:   "Disable colors and icons",
						Sources: cli.EnvVars("NO_COLOR"),
					},
				},
				Action: previewCommand,
			},
			{
				Name:  "validate",
				Usage: "Validate the resolved configuration (--output selects table, json or yaml)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Stages to validate for: generate, publish, run",
						Value: string(configuration.ModeRun),
					},
				},
				Action: validateCommand,
			},
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "debug output",
			Sources: cli.EnvVars("CHANGELOG_VERBOSE"),
		},
		&cli.BoolFlag{
			Name:    "very-verbose",
			Aliases: []string{"vv"},
			Usage:   "trace output",
			Sources: cli.EnvVars("CHANGELOG_VERY_VERBOSE"),
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   defaultConfigFile,
			Sources: cli.EnvVars("CHANGELOG_CONFIG"),
		},
	}
}

func repositoryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "owner",
			Usage: "Repository owner [$INPUT_OWNER, $GITHUB_REPOSITORY_OWNER] (defaults to the origin remote)",
		},
		&cli.StringFlag{
			Name:  "repo",
			Usage: "Repository name [$INPUT_REPO] (defaults to the origin remote)",
		},
		&cli.StringFlag{
			Name:  "token",
			Usage: "GitHub access token [$INPUT_TOKEN, $GITHUB_TOKEN]",
		},
		&cli.StringFlag{
			Name:  "api-url",
			Usage: "GitHub Enterprise API base URL [$INPUT_API_URL]",
		},
		&cli.StringFlag{
			Name:    "output-file",
			Aliases: []string{"o"},
			Usage:   "Changelog file to rewrite",
		},
		&cli.BoolFlag{
			Name:  "include-other",
			Usage: "Render commits without a recognised prefix in an Other Changes section",
		},
		&cli.StringFlag{
			Name:  "ref",
			Usage: "Current git ref [$GITHUB_REF]; the branch is its last path segment",
		},
		&cli.StringFlag{
			Name:  "branch",
			Usage: "Branch to create (overrides the one derived from --ref)",
		},
	}
}

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "base",
			Usage: "Branch the pull request targets",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Do not write, commit, push or open a pull request",
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "Summary format: table, json, yaml",
			Value: actions.OutputFormatTable,
		},
	}
}

func initCli(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	godotenv.Load()
	util.SetCliLoggerDefaults()
	util.SetCliLogLevel(cmd)
	log.Trace().Msg("Trace logging enabled")
	log.Debug().Msg("Debug logging enabled")

	return ctx, nil
}

// resolveConfiguration merges file, environment and flags, then fills the gaps from the local checkout
func resolveConfiguration(cmd *cli.Command) (*configuration.Config, error) {
	configPath := cmd.String("config")
	config, err := configuration.LoadConfiguration(configPath, cmd.IsSet("config"))
	if err != nil {
		return nil, err
	}

	applyFlags(cmd, config)
	detectFromCheckout(config)
	configuration.ApplyDefaults(config)

	log.Debug().
		Str("owner", config.Owner).
		Str("repo", config.Repo).
		Str("branch", config.Branch).
		Str("base", config.BaseBranch).
		Str("file", config.OutputFile).
		Msg("Resolved configuration")

	return config, nil
}

// envFallbacks are read in order when a flag is not given on the command line.
// Empty variables are skipped: GitHub Actions exports INPUT_<NAME> for every declared input, set or not.
var envFallbacks = map[string][]string{
	"owner":   {"INPUT_OWNER", "GITHUB_REPOSITORY_OWNER"},
	"repo":    {"INPUT_REPO"},
	"token":   {"INPUT_TOKEN", "GITHUB_TOKEN"},
	"api-url": {"INPUT_API_URL"},
	"ref":     {"GITHUB_REF"},
}

func firstNonEmptyEnv(names []string) string {
	for _, name := range names {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}

func applyFlags(cmd *cli.Command, config *configuration.Config) {
	stringFlags := map[string]*string{
		"owner":       &config.Owner,
		"repo":        &config.Repo,
		"token":       &config.Token,
		"api-url":     &config.APIBaseURL,
		"output-file": &config.OutputFile,
		"ref":         &config.Ref,
		"branch":      &config.Branch,
		"base":        &config.BaseBranch,
	}
	for name, target := range stringFlags {
		value := cmd.String(name)
		if value == "" {
			value = firstNonEmptyEnv(envFallbacks[name])
		}
		if value != "" {
			*target = value
		}
	}

	if cmd.IsSet("include-other") {
		config.IncludeOther = cmd.Bool("include-other")
	}
}

func detectFromCheckout(config *configuration.Config) {
	if config.Owner != "" && config.Repo != "" && config.Ref != "" {
		return
	}

	info, err := git.DetectRepository("")
	if err != nil {
		log.Debug().Err(err).Msg("No local git repository to derive defaults from")
		return
	}

	if config.Ref == "" && info.Branch != "" {
		config.Ref = "refs/heads/" + info.Branch
	}

	if info.RemoteURL == "" || (config.Owner != "" && config.Repo != "") {
		return
	}

	remote, err := git.ParseRemoteURL(info.RemoteURL)
	if err != nil {
		log.Warn().Err(err).Msg("Could not derive repository from origin remote")
		return
	}
	if config.Owner == "" {
		config.Owner = remote.Owner
	}
	if config.Repo == "" {
		config.Repo = remote.Repo
	}
	if config.APIBaseURL == "" {
		config.APIBaseURL = remote.APIBaseURL
	}
}

func loadValidConfiguration(cmd *cli.Command, mode configuration.Mode) (*configuration.Config, error) {
	config, err := resolveConfiguration(cmd)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return nil, cli.Exit(fmt.Sprintf("Configuration load error: %v", err), exitConfigError)
	}

	if err := actions.RequireValid(config, mode); err != nil {
		return nil, cli.Exit(err.Error(), exitConfigError)
	}

	return config, nil
}

func newGitHubClient(config *configuration.Config) (*github.Client, error) {
	client, err := github.NewClient(config.Owner, config.Repo, config.Token, config.APIBaseURL)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("GitHub client error: %v", err), exitConfigError)
	}
	return client, nil
}

func runCommand(ctx context.Context, cmd *cli.Command) error {
	dryRun := cmd.Bool("dry-run")
	mode := configuration.ModeRun
	if dryRun {
		mode = configuration.ModeGenerate
	}

	config, err := loadValidConfiguration(cmd, mode)
	if err != nil {
		return err
	}

	client, err := newGitHubClient(config)
	if err != nil {
		return err
	}
	repo := git.NewRepository("", config.Committer)

	summary, err := actions.Run(ctx, client, repo, client, &actions.RunOptions{
		Generate: &actions.GenerateOptions{Config: config, DryRun: dryRun},
		Publish: &actions.PublishOptions{
			Config:       config,
			DryRun:       dryRun,
			ShowProgress: util.IsTerminal(os.Stderr),
		},
	})
	if summary != nil {
		if outErr := actions.OutputSummary(os.Stdout, summary, cmd.String("output")); outErr != nil {
			log.Error().Err(outErr).Msg("Failed to output summary")
		}
	}
	if err != nil {
		return commandError(err)
	}

	return nil
}

func generateCommand(ctx context.Context, cmd *cli.Command) error {
	config, err := loadValidConfiguration(cmd, configuration.ModeGenerate)
	if err != nil {
		return err
	}

	client, err := newGitHubClient(config)
	if err != nil {
		return err
	}

	dryRun := cmd.Bool("dry-run")
	result, err := actions.Generate(ctx, client, &actions.GenerateOptions{Config: config, DryRun: dryRun})
	if err != nil {
		return commandError(err)
	}

	if dryRun {
		fmt.Print(result.Markdown)
	}
	return nil
}

func publishCommand(ctx context.Context, cmd *cli.Command) error {
	config, err := loadValidConfiguration(cmd, configuration.ModePublish)
	if err != nil {
		return err
	}

	if _, err := os.Stat(config.OutputFile); err != nil {
		return cli.Exit(fmt.Sprintf("Changelog file not found, run generate first: %v", err), exitFailure)
	}

	client, err := newGitHubClient(config)
	if err != nil {
		return err
	}
	repo := git.NewRepository("", config.Committer)

	dryRun := cmd.Bool("dry-run")
	result, err := actions.Publish(ctx, repo, client, &actions.PublishOptions{
		Config:       config,
		DryRun:       dryRun,
		ShowProgress: util.IsTerminal(os.Stderr),
	})
	if result != nil {
		summary := actions.NewSummary(config, &actions.GenerateResult{File: config.OutputFile, Written: true}, result, dryRun)
		if outErr := actions.OutputSummary(os.Stdout, summary, cmd.String("output")); outErr != nil {
			log.Error().Err(outErr).Msg("Failed to output summary")
		}
	}
	if err != nil {
		return commandError(err)
	}

	return nil
}

func previewCommand(ctx context.Context, cmd *cli.Command) error {
	config, err := loadValidConfiguration(cmd, configuration.ModeGenerate)
	if err != nil {
		return err
	}

	client, err := newGitHubClient(config)
	if err != nil {
		return err
	}

	_, err = actions.Preview(ctx, os.Stdout, client, &actions.PreviewOptions{
		Config:   config,
		Markdown: cmd.Bool("markdown"),
		Plain:    cmd.Bool("no-color") || !util.IsTerminal(os.Stdout),
	})
	if err != nil {
		return commandError(err)
	}
	return nil
}

func validateCommand(ctx context.Context, cmd *cli.Command) error {
	config, err := resolveConfiguration(cmd)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return cli.Exit(fmt.Sprintf("Configuration load error: %v", err), exitConfigError)
	}

	mode := configuration.Mode(cmd.String("mode"))
	switch mode {
	case configuration.ModeGenerate, configuration.ModePublish, configuration.ModeRun:
	default:
		return cli.Exit(fmt.Sprintf("unsupported mode: %s", mode), exitConfigError)
	}

	err = actions.Validate(os.Stdout, &actions.ValidateOptions{
		Config:       config,
		Mode:         mode,
		OutputFormat: cmd.String("output"),
	})
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}
	return nil
}

// commandError maps a failed stage to an exit error, naming the publish step when there is one
func commandError(err error) error {
	var stepErr *actions.StepError
	if errors.As(err, &stepErr) {
		log.Error().Err(stepErr.Err).Str("step", stepErr.Step).Msg("Publishing stopped")
		return cli.Exit(fmt.Sprintf("Publishing stopped at %q: %v", stepErr.Step, stepErr.Err), exitFailure)
	}

	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		log.Error().Err(apiErr.Err).Str("operation", apiErr.Operation).Int("status", apiErr.StatusCode).Msg("GitHub API request failed")
	}

	return cli.Exit(err.Error(), exitFailure)
}
