package git

import (
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ShallowClone clones a single branch of the repository into destinationDir,
// at depth 1 for remote URLs. The URL should already carry credentials when
// the remote needs them.
func ShallowClone(repoURL, branch, destinationDir string) error {
	cloneOptions := git.CloneOptions{
		URL:               repoURL,
		SingleBranch:      true,
		RecurseSubmodules: git.NoRecurseSubmodules,
		Progress:          nil,
	}

	// go-git's file transport cannot serve shallow fetches, so local paths
	// are cloned at full depth.
	if !isLocalPath(repoURL) {
		cloneOptions.Depth = 1
	}

	if branch != "" {
		cloneOptions.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}

	_, err := git.PlainClone(destinationDir, false, &cloneOptions)
	return err
}

func isLocalPath(repoURL string) bool {
	return !strings.Contains(repoURL, "://") && !strings.HasPrefix(repoURL, "git@")
}
