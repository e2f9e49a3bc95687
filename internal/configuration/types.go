package configuration

import "github.com/1pedrohfreitas/changelog/internal/changelog"

const (
	DefaultBaseBranch       = "main"
	DefaultOutputFile       = changelog.DefaultFileName
	DefaultCommitMessage    = "docs: update CHANGELOG.md"
	DefaultPullRequestTitle = "Update CHANGELOG.md"
	DefaultPullRequestBody  = "Automated changelog update generated from the latest commits."
	DefaultCommitterName    = "github-actions[bot]"
	DefaultCommitterEmail   = "41898282+github-actions[bot]@users.noreply.github.com"
)

// Config is the merged configuration of a changelog run
type Config struct {
	Owner        string       `yaml:"owner" koanf:"owner"`
	Repo         string       `yaml:"repo" koanf:"repo"`
	Token        string       `yaml:"token,omitempty" koanf:"token"`
	Ref          string       `yaml:"ref,omitempty" koanf:"ref"`
	Branch       string       `yaml:"branch,omitempty" koanf:"branch"`
	BaseBranch   string       `yaml:"baseBranch" koanf:"baseBranch"`
	OutputFile   string       `yaml:"outputFile" koanf:"outputFile"`
	APIBaseURL   string       `yaml:"apiBaseUrl,omitempty" koanf:"apiBaseUrl"`
	IncludeOther bool         `yaml:"includeOther" koanf:"includeOther"`
	Committer    *Committer   `yaml:"committer,omitempty" koanf:"committer"`
	PullRequest  *PullRequest `yaml:"pullRequest,omitempty" koanf:"pullRequest"`
}

// Committer is the identity used for the changelog commit
type Committer struct {
	Name  string `yaml:"name" koanf:"name"`
	Email string `yaml:"email" koanf:"email"`
}

// PullRequest holds the fixed texts of the changelog commit and pull request
type PullRequest struct {
	Title         string `yaml:"title" koanf:"title"`
	Body          string `yaml:"body" koanf:"body"`
	CommitMessage string `yaml:"commitMessage" koanf:"commitMessage"`
}

// Mode selects which stages a configuration has to support
type Mode string

const (
	ModeGenerate Mode = "generate"
	ModePublish  Mode = "publish"
	ModeRun      Mode = "run"
)
