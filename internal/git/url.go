package git

import (
	"net/url"
	"regexp"
	"strings"
)

// GitHubSSHPattern matches SSH-style GitHub URLs like git@github.com:owner/repo.git
var GitHubSSHPattern = regexp.MustCompile(`^git@github\.com:(.+?)(?:\.git)?$`)

// IsSSHURL returns true if the URL is an SSH-style git URL
func IsSSHURL(repoURL string) bool {
	return strings.HasPrefix(repoURL, "git@")
}

// IsHTTPSURL returns true if the URL is an HTTPS git URL
func IsHTTPSURL(repoURL string) bool {
	return strings.HasPrefix(repoURL, "https://")
}

// SSHToHTTPS converts an SSH git URL to HTTPS format.
// For example: git@github.com:owner/repo.git -> https://github.com/owner/repo.git
// If the URL is not an SSH URL or can't be converted, returns the original URL.
func SSHToHTTPS(repoURL string) string {
	matches := GitHubSSHPattern.FindStringSubmatch(repoURL)
	if len(matches) < 2 {
		return repoURL
	}

	path := matches[1]
	if !strings.HasSuffix(path, ".git") {
		path = path + ".git"
	}

	return "https://github.com/" + path
}

// AuthenticatedCloneURL rewrites repoURL so that git can clone it with the
// given access token. SSH shorthand is normalized to HTTPS first and a .git
// suffix is ensured; the token is then embedded in the authority as
// x-access-token:<token>@host[:port]. URLs that are not HTTPS after
// normalization are returned unchanged.
//
// The token is never logged here; callers announce it to the CI harness for
// redaction before any cloning happens.
func AuthenticatedCloneURL(repoURL, token string) string {
	normalized := strings.TrimSpace(repoURL)
	if IsSSHURL(normalized) {
		normalized = SSHToHTTPS(normalized)
	}
	if IsHTTPSURL(normalized) && !strings.HasSuffix(normalized, ".git") {
		normalized = strings.TrimRight(normalized, "/") + ".git"
	}
	if !IsHTTPSURL(normalized) {
		return repoURL
	}

	parsed, err := url.Parse(normalized)
	if err != nil {
		return repoURL
	}
	parsed.User = url.UserPassword("x-access-token", token)

	return parsed.String()
}
