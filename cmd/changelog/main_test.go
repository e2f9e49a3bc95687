package main

import (
	"context"
	"testing"

	"github.com/1pedrohfreitas/changelog/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func clearCIEnv(t *testing.T) {
	t.Helper()
	for _, names := range envFallbacks {
		for _, name := range names {
			t.Setenv(name, "")
		}
	}
}

func runWithFlags(t *testing.T, config *configuration.Config, args ...string) {
	t.Helper()
	cmd := &cli.Command{
		Name:  "changelog",
		Flags: append(repositoryFlags(), runFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyFlags(cmd, config)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"changelog"}, args...)))
}

func TestApplyFlags(t *testing.T) {
	clearCIEnv(t)

	t.Run("flags override file values", func(t *testing.T) {
		config := &configuration.Config{Owner: "from-file", Repo: "app", BaseBranch: "main"}

		runWithFlags(t, config, "--owner", "acme", "--base", "develop", "--include-other", "--ref", "refs/heads/feature/x")

		assert.Equal(t, "acme", config.Owner)
		assert.Equal(t, "app", config.Repo)
		assert.Equal(t, "develop", config.BaseBranch)
		assert.Equal(t, "refs/heads/feature/x", config.Ref)
		assert.True(t, config.IncludeOther)
	})

	t.Run("environment sources", func(t *testing.T) {
		t.Setenv("INPUT_OWNER", "ci-owner")
		t.Setenv("GITHUB_TOKEN", "ghs_ci")
		t.Setenv("GITHUB_REF", "refs/heads/release")
		config := &configuration.Config{IncludeOther: true}

		runWithFlags(t, config)

		assert.Equal(t, "ci-owner", config.Owner)
		assert.Equal(t, "ghs_ci", config.Token)
		assert.Equal(t, "refs/heads/release", config.Ref)
		assert.True(t, config.IncludeOther)
	})

	t.Run("blank action inputs fall through", func(t *testing.T) {
		t.Setenv("INPUT_OWNER", "")
		t.Setenv("INPUT_TOKEN", "")
		t.Setenv("GITHUB_REPOSITORY_OWNER", "acme")
		t.Setenv("GITHUB_TOKEN", "ghs_ci")
		config := &configuration.Config{}

		runWithFlags(t, config)

		assert.Equal(t, "acme", config.Owner)
		assert.Equal(t, "ghs_ci", config.Token)
	})

	t.Run("flag wins over environment", func(t *testing.T) {
		t.Setenv("INPUT_TOKEN", "from-input")
		config := &configuration.Config{}

		runWithFlags(t, config, "--token", "from-flag")

		assert.Equal(t, "from-flag", config.Token)
	})

	t.Run("environment wins over file", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "from-env")
		config := &configuration.Config{Token: "from-file"}

		runWithFlags(t, config)

		assert.Equal(t, "from-env", config.Token)
	})
}

func TestCommandTree_FlagPlacement(t *testing.T) {
	clearCIEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{
			name: "flags before subcommand",
			args: []string{"--owner", "acme", "--repo", "app", "generate", "--token", "t", "--dry-run"},
		},
		{
			name: "flags after subcommand",
			args: []string{"generate", "--owner", "acme", "--repo", "app", "--token", "t", "--dry-run"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var config configuration.Config
			var dryRun bool

			cmd := newCommand()
			cmd.Before = nil
			for _, sub := range cmd.Commands {
				sub.Action = func(ctx context.Context, cmd *cli.Command) error {
					applyFlags(cmd, &config)
					dryRun = cmd.Bool("dry-run")
					return nil
				}
			}

			require.NoError(t, cmd.Run(context.Background(), append([]string{"changelog"}, tt.args...)))

			assert.Equal(t, "acme", config.Owner)
			assert.Equal(t, "app", config.Repo)
			assert.Equal(t, "t", config.Token)
			assert.True(t, dryRun)
		})
	}
}

func TestCommandTree_SubcommandFlagsAreNotRedeclared(t *testing.T) {
	inherited := map[string]bool{}
	for _, flag := range append(repositoryFlags(), runFlags()...) {
		for _, name := range flag.Names() {
			inherited[name] = true
		}
	}

	for _, sub := range newCommand().Commands {
		for _, flag := range sub.Flags {
			for _, name := range flag.Names() {
				assert.False(t, inherited[name], "%s redeclares root flag %s", sub.Name, name)
			}
		}
	}
}
