package git

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog/log"
)

// DetectRepository opens the repository containing path (or the working directory when path is empty)
// and reports its root, the first URL of origin and the checked-out branch.
// RemoteURL is empty when there is no origin; Branch is empty on a detached or unborn HEAD.
func DetectRepository(path string) (*RepositoryInfo, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	log.Debug().Str("path", path).Msg("Detecting git repository")

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", path, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	info := &RepositoryInfo{Root: worktree.Filesystem.Root()}

	remote, err := repo.Remote(DefaultRemote)
	switch {
	case err == nil:
		if urls := remote.Config().URLs; len(urls) > 0 {
			info.RemoteURL = urls[0]
		}
	case errors.Is(err, git.ErrRemoteNotFound):
		log.Debug().Msg("Repository has no origin remote")
	default:
		return nil, fmt.Errorf("failed to read remote %s: %w", DefaultRemote, err)
	}

	head, err := repo.Head()
	switch {
	case err == nil:
		if head.Name().IsBranch() {
			info.Branch = head.Name().Short()
		}
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		log.Debug().Msg("Repository has no commits yet")
	default:
		return nil, fmt.Errorf("failed to read HEAD: %w", err)
	}

	log.Debug().
		Str("root", info.Root).
		Str("remoteURL", info.RemoteURL).
		Str("branch", info.Branch).
		Msg("Detected git repository")

	return info, nil
}
