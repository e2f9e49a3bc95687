package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/1pedrohfreitas/changelog/internal/configuration"
	"github.com/rs/zerolog/log"
)

// commandRunner executes git with args in dir and returns the combined output
type commandRunner func(ctx context.Context, dir string, env []string, args ...string) ([]byte, error)

func execGit(ctx context.Context, dir string, env []string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	return cmd.CombinedOutput()
}

// NewRepository creates a new repository instance
func NewRepository(workingDirectory string, committer *configuration.Committer) *Repository {
	return &Repository{
		WorkingDirectory: workingDirectory,
		Committer:        committer,
		run:              execGit,
	}
}

// CreateBranch creates a new branch at the current HEAD and switches to it
func (r *Repository) CreateBranch(ctx context.Context, branchName string) error {
	log.Debug().Str("branch", branchName).Msg("Creating new branch")

	output, err := r.run(ctx, r.WorkingDirectory, nil, "checkout", "-b", branchName)
	if err != nil {
		return fmt.Errorf("failed to create branch %s: %w, output: %s", branchName, err, strings.TrimSpace(string(output)))
	}

	r.BranchName = branchName
	log.Debug().Str("branch", branchName).Msg("Created and checked out new branch")

	return nil
}

// Commit stages the given files and commits them
func (r *Repository) Commit(ctx context.Context, options *CommitOptions) error {
	log.Debug().
		Str("message", options.Message).
		Int("files", len(options.Files)).
		Msg("Creating commit")

	for _, file := range options.Files {
		if err := r.stageFile(ctx, file); err != nil {
			return fmt.Errorf("failed to stage file %s: %w", file, err)
		}
	}

	// identity is passed through the environment, git config stays untouched
	var env []string
	if r.Committer != nil && r.Committer.Name != "" {
		env = append(env,
			fmt.Sprintf("GIT_AUTHOR_NAME=%s", r.Committer.Name),
			fmt.Sprintf("GIT_COMMITTER_NAME=%s", r.Committer.Name),
		)
	}
	if r.Committer != nil && r.Committer.Email != "" {
		env = append(env,
			fmt.Sprintf("GIT_AUTHOR_EMAIL=%s", r.Committer.Email),
			fmt.Sprintf("GIT_COMMITTER_EMAIL=%s", r.Committer.Email),
		)
	}

	output, err := r.run(ctx, r.WorkingDirectory, env, "commit", "-m", options.Message)
	if err != nil {
		return fmt.Errorf("failed to commit: %w, output: %s", err, strings.TrimSpace(string(output)))
	}

	log.Debug().Str("message", options.Message).Msg("Created commit")

	return nil
}

func (r *Repository) stageFile(ctx context.Context, filePath string) error {
	output, err := r.run(ctx, r.WorkingDirectory, nil, "add", filePath)
	if err != nil {
		return fmt.Errorf("failed to stage file: %w, output: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Push pushes the current branch to origin and sets upstream
func (r *Repository) Push(ctx context.Context) error {
	if r.BranchName == "" {
		return fmt.Errorf("branch name is not set, cannot push")
	}

	log.Debug().Str("branch", r.BranchName).Str("remote", DefaultRemote).Msg("Pushing branch to remote")

	output, err := r.run(ctx, r.WorkingDirectory, nil, "push", "-u", DefaultRemote, r.BranchName)
	if err != nil {
		return fmt.Errorf("failed to push: %w, output: %s", err, strings.TrimSpace(string(output)))
	}

	log.Debug().Str("branch", r.BranchName).Msg("Pushed branch to remote")

	return nil
}
