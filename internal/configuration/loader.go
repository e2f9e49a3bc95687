package configuration

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

// EnvPrefix is the prefix of environment variables read into the configuration.
// Nested keys use a double underscore, e.g. CHANGELOG_COMMITTER__NAME.
const EnvPrefix = "CHANGELOG_"

// Defaults returns the values used when nothing else sets them
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"baseBranch":                DefaultBaseBranch,
		"outputFile":                DefaultOutputFile,
		"includeOther":              false,
		"committer.name":            DefaultCommitterName,
		"committer.email":           DefaultCommitterEmail,
		"pullRequest.title":         DefaultPullRequestTitle,
		"pullRequest.body":          DefaultPullRequestBody,
		"pullRequest.commitMessage": DefaultCommitMessage,
	}
}

// LoadConfiguration builds the configuration from defaults, the optional YAML file at configPath
// and CHANGELOG_* environment variables, in increasing priority.
// A missing file is only an error when required is set.
// Environment and SOPS placeholders are substituted afterwards.
func LoadConfiguration(configPath string, required bool) (*Config, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			log.Debug().Str("config", configPath).Msg("Loading configuration file")
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to parse configuration file %s: %w", configPath, err)
			}
		} else if required || !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to access configuration path: %w", err)
		} else {
			log.Debug().Str("config", configPath).Msg("No configuration file found, using defaults")
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment configuration: %w", err)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	ctx := NewSubstitutionContext()
	if err := ctx.SubstituteInConfig(&config); err != nil {
		return nil, fmt.Errorf("failed to substitute variables: %w", err)
	}

	return &config, nil
}

// envKey maps CHANGELOG_PULL_REQUEST__COMMIT_MESSAGE to pullRequest.commitMessage
func envKey(name string) string {
	name = strings.ToLower(strings.TrimPrefix(name, EnvPrefix))

	segments := strings.Split(name, "__")
	for i, segment := range segments {
		segments[i] = snakeToCamel(segment)
	}
	return strings.Join(segments, ".")
}

func snakeToCamel(s string) string {
	words := strings.Split(s, "_")
	for i := 1; i < len(words); i++ {
		if words[i] == "" {
			continue
		}
		words[i] = strings.ToUpper(words[i][:1]) + words[i][1:]
	}
	return strings.Join(words, "")
}

// ApplyDefaults fills fields left empty after flags were applied
func ApplyDefaults(config *Config) {
	if config.BaseBranch == "" {
		config.BaseBranch = DefaultBaseBranch
	}
	if config.OutputFile == "" {
		config.OutputFile = DefaultOutputFile
	}
	if config.Committer == nil {
		config.Committer = &Committer{}
	}
	if config.PullRequest == nil {
		config.PullRequest = &PullRequest{}
	}
	if config.PullRequest.Title == "" {
		config.PullRequest.Title = DefaultPullRequestTitle
	}
	if config.PullRequest.Body == "" {
		config.PullRequest.Body = DefaultPullRequestBody
	}
	if config.PullRequest.CommitMessage == "" {
		config.PullRequest.CommitMessage = DefaultCommitMessage
	}
	if config.Branch == "" && config.Ref != "" {
		config.Branch = BranchFromRef(config.Ref)
	}
}

// BranchFromRef returns the final path segment of a ref, e.g. refs/heads/foo -> foo
func BranchFromRef(ref string) string {
	ref = strings.TrimRight(strings.TrimSpace(ref), "/")
	return ref[strings.LastIndex(ref, "/")+1:]
}
