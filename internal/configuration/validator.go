package configuration

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult contains the results of configuration validation
type ValidationResult struct {
	Valid  bool
	Errors []*ValidationError
}

// AddError adds a validation error to the result
func (r *ValidationResult) AddError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, &ValidationError{
		Field:   field,
		Message: message,
	})
}

// Err joins all validation errors into one, or returns nil when the configuration is valid
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	messages := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}

// ValidateConfiguration checks that the configuration carries everything the stages of mode need.
// Generation needs the repository coordinates and a token; publishing additionally needs a branch.
func ValidateConfiguration(config *Config, mode Mode) *ValidationResult {
	result := &ValidationResult{
		Valid:  true,
		Errors: make([]*ValidationError, 0),
	}

	if config == nil {
		result.AddError("config", "configuration is missing")
		return result
	}

	if strings.TrimSpace(config.Owner) == "" {
		result.AddError("owner", "repository owner cannot be empty")
	} else if strings.Contains(config.Owner, "/") {
		result.AddError("owner", fmt.Sprintf("owner must not contain '/': %s", config.Owner))
	}

	if strings.TrimSpace(config.Repo) == "" {
		result.AddError("repo", "repository name cannot be empty")
	} else if strings.Contains(config.Repo, "/") {
		result.AddError("repo", fmt.Sprintf("repository name must not contain '/': %s", config.Repo))
	}

	if strings.TrimSpace(config.Token) == "" {
		result.AddError("token", "an access token is required")
	}

	if strings.TrimSpace(config.OutputFile) == "" {
		result.AddError("outputFile", "output file cannot be empty")
	}

	if config.APIBaseURL != "" {
		if u, err := url.Parse(config.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			result.AddError("apiBaseUrl", fmt.Sprintf("invalid API base URL: %s", config.APIBaseURL))
		}
	}

	if mode == ModePublish || mode == ModeRun {
		validatePublish(config, result)
	}

	return result
}

func validatePublish(config *Config, result *ValidationResult) {
	if strings.TrimSpace(config.Branch) == "" {
		result.AddError("branch", "a branch name or ref is required to publish")
	} else if config.Branch == config.BaseBranch {
		result.AddError("branch", fmt.Sprintf("branch must differ from the base branch %s", config.BaseBranch))
	}

	if strings.TrimSpace(config.BaseBranch) == "" {
		result.AddError("baseBranch", "base branch cannot be empty")
	}

	if config.Committer != nil && config.Committer.Email != "" {
		if !looksLikeEmail(config.Committer.Email) {
			result.AddError("committer.email", fmt.Sprintf("invalid email address: %s", config.Committer.Email))
		}
	}

	if config.PullRequest == nil || strings.TrimSpace(config.PullRequest.Title) == "" {
		result.AddError("pullRequest.title", "pull request title cannot be empty")
	}
	if config.PullRequest == nil || strings.TrimSpace(config.PullRequest.CommitMessage) == "" {
		result.AddError("pullRequest.commitMessage", "commit message cannot be empty")
	}
}

// looksLikeEmail accepts the bot noreply form (e.g. 41898282+github-actions[bot]@users.noreply.github.com),
// which a strict RFC 5322 parser rejects
func looksLikeEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t\n<>")
}
