package actions

import (
	"context"

	"github.com/1pedrohfreitas/changelog/internal/changelog"
	"github.com/1pedrohfreitas/changelog/internal/git"
	"github.com/1pedrohfreitas/changelog/internal/github"
	"github.com/stretchr/testify/mock"
)

type MockCommitSource struct {
	mock.Mock
}

func (m *MockCommitSource) ListCommits(ctx context.Context) ([]*changelog.Commit, error) {
	args := m.Called(ctx)
	commits, _ := args.Get(0).([]*changelog.Commit)
	return commits, args.Error(1)
}

type MockVersionControl struct {
	mock.Mock
	calls []string
}

func (m *MockVersionControl) CreateBranch(ctx context.Context, branchName string) error {
	m.calls = append(m.calls, "branch")
	return m.Called(ctx, branchName).Error(0)
}

func (m *MockVersionControl) Commit(ctx context.Context, options *git.CommitOptions) error {
	m.calls = append(m.calls, "commit")
	return m.Called(ctx, options).Error(0)
}

func (m *MockVersionControl) Push(ctx context.Context) error {
	m.calls = append(m.calls, "push")
	return m.Called(ctx).Error(0)
}

type MockPullRequestCreator struct {
	mock.Mock
}

func (m *MockPullRequestCreator) CreatePullRequest(ctx context.Context, options *github.PullRequestOptions) (*github.PullRequest, error) {
	args := m.Called(ctx, options)
	pr, _ := args.Get(0).(*github.PullRequest)
	return pr, args.Error(1)
}
