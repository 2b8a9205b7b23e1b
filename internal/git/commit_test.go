package git

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/require"
)

func initTestRepo(t *testing.T) (string, *gogit.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInitWithOptions(dir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{DefaultBranch: plumbing.Main},
		Bare:        false,
	})
	require.NoError(t, err)
	return dir, repo
}

func TestCommitStagesAndCommitsWithBotIdentity(t *testing.T) {
	dir, repo := initTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), []byte("kind: Application\n"), 0o644))

	outcome, err := Commit(dir, []string{"app.yaml"}, "chore(helm): update demo to 1.2.3")
	require.NoError(t, err)
	require.False(t, outcome.NoChanges)
	require.False(t, outcome.Hash.IsZero())

	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	require.Equal(t, "chore(helm): update demo to 1.2.3", commit.Message)
	require.Equal(t, BotName, commit.Author.Name)
	require.Equal(t, BotEmail, commit.Author.Email)
}

func TestCommitReportsNoChangesOnCleanWorktree(t *testing.T) {
	dir, _ := initTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), []byte("kind: Application\n"), 0o644))

	first, err := Commit(dir, []string{"app.yaml"}, "initial")
	require.NoError(t, err)
	require.False(t, first.NoChanges)

	second, err := Commit(dir, []string{"app.yaml"}, "again")
	require.NoError(t, err)
	require.True(t, second.NoChanges)
}

func TestPushUpdatesOriginBranch(t *testing.T) {
	bareDir := t.TempDir()
	_, err := gogit.PlainInitWithOptions(bareDir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{DefaultBranch: plumbing.Main},
		Bare:        true,
	})
	require.NoError(t, err)

	dir, repo := initTestRepo(t)
	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{bareDir},
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), []byte("kind: Application\n"), 0o644))
	outcome, err := Commit(dir, []string{"app.yaml"}, "initial")
	require.NoError(t, err)

	require.NoError(t, Push(dir, "main"))

	bare, err := gogit.PlainOpen(bareDir)
	require.NoError(t, err)
	ref, err := bare.Reference(plumbing.Main, true)
	require.NoError(t, err)
	require.Equal(t, outcome.Hash, ref.Hash())

	// A second push with nothing new must still succeed.
	require.NoError(t, Push(dir, "main"))
}
