package git

import "github.com/1pedrohfreitas/changelog/internal/configuration"

// DefaultRemote is the remote every branch is pushed to
const DefaultRemote = "origin"

// Repository represents a local git checkout
type Repository struct {
	WorkingDirectory string
	Committer        *configuration.Committer
	BranchName       string

	run commandRunner
}

// CommitOptions represents options for creating a commit
type CommitOptions struct {
	Message string
	Files   []string
}

// RepositoryInfo is what DetectRepository learns about a checkout
type RepositoryInfo struct {
	Root      string
	RemoteURL string
	Branch    string
}

// RemoteInfo is the GitHub location of a remote URL
type RemoteInfo struct {
	Owner      string
	Repo       string
	APIBaseURL string
}
