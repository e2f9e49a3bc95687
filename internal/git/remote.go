package git

import (
	"fmt"
	"net/url"
	"strings"
)

const publicHost = "github.com"

// ParseRemoteURL extracts owner, repository and REST API base URL from a remote URL.
// Supported forms: https://[user[:token]@]host/owner/repo[.git], ssh://git@host/owner/repo[.git]
// and git@host:owner/repo[.git]. Hosts other than github.com are treated as GitHub Enterprise.
func ParseRemoteURL(remoteURL string) (*RemoteInfo, error) {
	host, path, err := splitRemoteURL(strings.TrimSpace(remoteURL))
	if err != nil {
		return nil, err
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("unsupported GitHub URL format: %s", remoteURL)
	}

	return &RemoteInfo{
		Owner:      parts[0],
		Repo:       parts[1],
		APIBaseURL: apiBaseURL(host),
	}, nil
}

func splitRemoteURL(remoteURL string) (host string, path string, err error) {
	if strings.HasPrefix(remoteURL, "https://") || strings.HasPrefix(remoteURL, "http://") || strings.HasPrefix(remoteURL, "ssh://") {
		u, err := url.Parse(remoteURL)
		if err != nil {
			return "", "", fmt.Errorf("unsupported GitHub URL format: %s: %w", remoteURL, err)
		}
		return u.Hostname(), u.Path, nil
	}

	// scp-like syntax: git@host:owner/repo.git
	if at := strings.Index(remoteURL, "@"); at != -1 {
		remainder := remoteURL[at+1:]
		colon := strings.Index(remainder, ":")
		if colon != -1 {
			return remainder[:colon], remainder[colon+1:], nil
		}
	}

	return "", "", fmt.Errorf("unsupported GitHub URL format: %s", remoteURL)
}

// apiBaseURL returns an empty string for github.com so the client keeps its default endpoint
func apiBaseURL(host string) string {
	if host == publicHost || host == "www."+publicHost {
		return ""
	}
	return fmt.Sprintf("https://%s/api/v3/", host)
}
