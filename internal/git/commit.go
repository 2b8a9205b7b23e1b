package git

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	// BotName and BotEmail are the fixed committer identity used for every
	// automated commit this tool makes.
	BotName  = "github-actions[bot]"
	BotEmail = "github-actions[bot]@users.noreply.github.com"

	remoteName = "origin"
)

// CommitOutcome reports what Commit did.
type CommitOutcome struct {
	Hash plumbing.Hash
	// NoChanges is true when the worktree already matched the index after
	// staging, i.e. there was nothing to commit.
	NoChanges bool
}

// Commit stages the given repo-relative paths and commits them with the bot
// identity. A clean worktree after staging is not an error: the outcome
// reports NoChanges and no commit is created.
func Commit(repoDir string, paths []string, message string) (CommitOutcome, error) {
	repo, err := git.PlainOpen(repoDir)
	if err != nil {
		return CommitOutcome{}, fmt.Errorf("opening repository %s: %w", repoDir, err)
	}

	if err := configureBotIdentity(repo); err != nil {
		return CommitOutcome{}, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return CommitOutcome{}, err
	}

	for _, path := range paths {
		if _, err := worktree.Add(path); err != nil {
			return CommitOutcome{}, fmt.Errorf("staging %s: %w", path, err)
		}
	}

	status, err := worktree.Status()
	if err != nil {
		return CommitOutcome{}, err
	}
	if status.IsClean() {
		return CommitOutcome{NoChanges: true}, nil
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  BotName,
			Email: BotEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		if errors.Is(err, git.ErrEmptyCommit) {
			return CommitOutcome{NoChanges: true}, nil
		}
		return CommitOutcome{}, err
	}

	return CommitOutcome{Hash: hash}, nil
}

// configureBotIdentity pins the local repo config to the bot identity before
// anything is staged, mirroring `git config user.name/user.email`.
func configureBotIdentity(repo *git.Repository) error {
	cfg, err := repo.Config()
	if err != nil {
		return err
	}
	cfg.User.Name = BotName
	cfg.User.Email = BotEmail
	return repo.SetConfig(cfg)
}

// Push pushes the branch to the origin remote. An already up-to-date remote
// counts as success.
func Push(repoDir, branch string) error {
	repo, err := git.PlainOpen(repoDir)
	if err != nil {
		return fmt.Errorf("opening repository %s: %w", repoDir, err)
	}

	refSpec := config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
	err = repo.Push(&git.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []config.RefSpec{refSpec},
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("pushing %s to %s: %w", branch, remoteName, err)
	}
	return nil
}
