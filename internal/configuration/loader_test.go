package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "changelog.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		env      map[string]string
		validate func(*testing.T, *Config)
	}{
		{
			name:    "defaults only",
			content: "includeOther: false\n",
			validate: func(t *testing.T, config *Config) {
				assert.Equal(t, DefaultBaseBranch, config.BaseBranch)
				assert.Equal(t, DefaultOutputFile, config.OutputFile)
				assert.False(t, config.IncludeOther)
				require.NotNil(t, config.Committer)
				assert.Equal(t, DefaultCommitterName, config.Committer.Name)
				assert.Equal(t, DefaultCommitterEmail, config.Committer.Email)
				require.NotNil(t, config.PullRequest)
				assert.Equal(t, DefaultPullRequestTitle, config.PullRequest.Title)
				assert.Equal(t, DefaultCommitMessage, config.PullRequest.CommitMessage)
			},
		},
		{
			name: "file overrides defaults",
			content: `owner: acme
repo: app
baseBranch: develop
outputFile: docs/CHANGELOG.md
includeOther: true
committer:
  name: Release Bot
pullRequest:
  title: Changelog refresh
`,
			validate: func(t *testing.T, config *Config) {
				assert.Equal(t, "acme", config.Owner)
				assert.Equal(t, "app", config.Repo)
				assert.Equal(t, "develop", config.BaseBranch)
				assert.Equal(t, "docs/CHANGELOG.md", config.OutputFile)
				assert.True(t, config.IncludeOther)
				assert.Equal(t, "Release Bot", config.Committer.Name)
				assert.Equal(t, DefaultCommitterEmail, config.Committer.Email)
				assert.Equal(t, "Changelog refresh", config.PullRequest.Title)
				assert.Equal(t, DefaultPullRequestBody, config.PullRequest.Body)
			},
		},
		{
			name:    "environment overrides file",
			content: "owner: acme\nrepo: app\n",
			env: map[string]string{
				"CHANGELOG_REPO":                        "other",
				"CHANGELOG_BASE_BRANCH":                 "trunk",
				"CHANGELOG_INCLUDE_OTHER":               "true",
				"CHANGELOG_PULL_REQUEST__COMMIT_MESSAGE": "chore: changelog",
			},
			validate: func(t *testing.T, config *Config) {
				assert.Equal(t, "acme", config.Owner)
				assert.Equal(t, "other", config.Repo)
				assert.Equal(t, "trunk", config.BaseBranch)
				assert.True(t, config.IncludeOther)
				assert.Equal(t, "chore: changelog", config.PullRequest.CommitMessage)
			},
		},
		{
			name:    "placeholders are substituted",
			content: "owner: acme\nrepo: app\ntoken: ${TEST_CHANGELOG_TOKEN}\n",
			env:     map[string]string{"TEST_CHANGELOG_TOKEN": "ghp_secret"},
			validate: func(t *testing.T, config *Config) {
				assert.Equal(t, "ghp_secret", config.Token)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			path := writeConfig(t, tt.content)

			config, err := LoadConfiguration(path, true)

			require.NoError(t, err)
			tt.validate(t, config)
		})
	}
}

func TestLoadConfigurationFileErrors(t *testing.T) {
	t.Run("missing required file", func(t *testing.T) {
		_, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yml"), true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to access configuration path")
	})

	t.Run("missing optional file", func(t *testing.T) {
		config, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yml"), false)
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseBranch, config.BaseBranch)
	})

	t.Run("empty path", func(t *testing.T) {
		config, err := LoadConfiguration("", false)
		require.NoError(t, err)
		assert.Equal(t, DefaultOutputFile, config.OutputFile)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := LoadConfiguration(writeConfig(t, "owner: [unterminated\n"), true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse configuration file")
	})

	t.Run("unset placeholder", func(t *testing.T) {
		_, err := LoadConfiguration(writeConfig(t, "token: ${TEST_CHANGELOG_UNSET}\n"), true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TEST_CHANGELOG_UNSET is not set")
		assert.Contains(t, err.Error(), "token: ")
	})
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"CHANGELOG_OWNER":                        "owner",
		"CHANGELOG_API_BASE_URL":                 "apiBaseUrl",
		"CHANGELOG_COMMITTER__EMAIL":             "committer.email",
		"CHANGELOG_PULL_REQUEST__COMMIT_MESSAGE": "pullRequest.commitMessage",
	}

	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestApplyDefaults(t *testing.T) {
	config := &Config{Ref: "refs/heads/feature/changelog"}

	ApplyDefaults(config)

	assert.Equal(t, "changelog", config.Branch)
	assert.Equal(t, DefaultBaseBranch, config.BaseBranch)
	assert.Equal(t, DefaultOutputFile, config.OutputFile)
	require.NotNil(t, config.Committer)
	require.NotNil(t, config.PullRequest)
	assert.Equal(t, DefaultPullRequestTitle, config.PullRequest.Title)

	config = &Config{Ref: "refs/heads/foo", Branch: "explicit"}
	ApplyDefaults(config)
	assert.Equal(t, "explicit", config.Branch)
}

func TestBranchFromRef(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"refs/heads/foo", "foo"},
		{"refs/heads/feature/foo", "foo"},
		{"refs/pull/42/merge", "merge"},
		{"main", "main"},
		{"refs/heads/foo/", "foo"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, BranchFromRef(tt.ref))
		})
	}
}
