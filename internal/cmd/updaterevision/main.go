package updaterevision

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/ValoriaTechnologia/ArgoHelmDeploy/internal/config"
	"github.com/ValoriaTechnologia/ArgoHelmDeploy/internal/git"
	"github.com/ValoriaTechnologia/ArgoHelmDeploy/internal/logging"
	"github.com/ValoriaTechnologia/ArgoHelmDeploy/internal/manifest"
	"github.com/ValoriaTechnologia/ArgoHelmDeploy/internal/pkgindex"
)

// target is one manifest scheduled for rewrite. All targets are resolved and
// updated in memory before any file is written, so a resolution failure in
// one environment aborts the run without touching the others.
type target struct {
	manifest *manifest.Manifest
	relPath  string
}

// Run performs one end-to-end update: clone, resolve the package, rewrite
// the targetRevision pin(s), commit, push. A package name missing from the
// index is a successful no-op; everything else that goes wrong is fatal.
func Run(settings config.Settings) error {
	if _, err := semver.NewVersion(settings.Version); err != nil {
		logging.Log.Warnf("Version %q is not valid semver; pinning it anyway.", settings.Version)
	}

	workdir, err := os.MkdirTemp("", "argocd-helm-")
	if err != nil {
		return gitErr("creating working directory", err)
	}
	logging.Log.Debugf("Working directory: %s", workdir)

	authURL := git.AuthenticatedCloneURL(settings.RepoURL, settings.Token)

	fmt.Println("Cloning repository...")
	if err := git.ShallowClone(authURL, settings.Branch, workdir); err != nil {
		return gitErr("cloning repository", err)
	}

	index, err := pkgindex.Load(filepath.Join(workdir, settings.PackageFilePath))
	if err != nil {
		return dataErr(err)
	}

	pkg, found := index.Find(settings.PackageName)
	if !found {
		fmt.Printf("Package %q not found in %s; nothing to do.\n", settings.PackageName, settings.PackageFilePath)
		return nil
	}

	pkgPath := pkg.Path
	if pkgPath == "" {
		pkgPath = "./"
	}

	environments, err := targetEnvironments(settings, pkgPath)
	if err != nil {
		return err
	}

	targets, err := resolveTargets(workdir, pkgPath, environments, settings)
	if err != nil {
		return err
	}

	for _, t := range targets {
		if err := t.manifest.Save(); err != nil {
			return dataErr(err)
		}
		fmt.Printf("Updated targetRevision to %s in %s\n", settings.Version, t.relPath)
	}

	if settings.DryRun {
		fmt.Println("Dry run: skipping commit and push.")
		return nil
	}

	relPaths := make([]string, 0, len(targets))
	for _, t := range targets {
		relPaths = append(relPaths, t.relPath)
	}

	outcome, err := git.Commit(workdir, relPaths, commitMessage(settings, environments))
	if err != nil {
		return gitErr("committing changes", err)
	}
	if outcome.NoChanges {
		fmt.Println("No changes to commit (targetRevision already set to this version).")
		return nil
	}
	logging.Log.Debugf("Committed %s", outcome.Hash)

	if err := git.Push(workdir, settings.Branch); err != nil {
		return gitErr("pushing changes", err)
	}
	fmt.Println("Pushed changes successfully.")
	return nil
}

// targetEnvironments works out which environment names the run fans out
// over. A single empty entry means "no environment context".
func targetEnvironments(settings config.Settings, pkgPath string) ([]string, error) {
	if settings.MultiEnv {
		if !pkgindex.HasPlaceholder(pkgPath) {
			return nil, resolveErr(fmt.Errorf("multi-environment mode requires a %q placeholder in package path %q", pkgindex.PlaceholderToken, pkgPath))
		}
		environments, err := pkgindex.SplitEnvironments(settings.Environments)
		if err != nil {
			return nil, configErr("%v", err)
		}
		return environments, nil
	}
	return []string{settings.Environment}, nil
}

// resolveTargets locates and updates every manifest in memory. Nothing is
// written here.
func resolveTargets(workdir, pkgPath string, environments []string, settings config.Settings) ([]target, error) {
	targets := make([]target, 0, len(environments))
	for _, environment := range environments {
		relPath, err := pkgindex.ResolvePath(pkgPath, environment)
		if err != nil {
			return nil, resolveErr(err)
		}

		m, err := manifest.Resolve(workdir, relPath, settings.ChartName, settings.AllowDirScan)
		if err != nil {
			return nil, resolveErr(err)
		}
		if err := m.UpdateTargetRevision(settings.Version, settings.ChartName); err != nil {
			return nil, resolveErr(err)
		}

		rel, err := filepath.Rel(workdir, m.Path)
		if err != nil {
			return nil, resolveErr(err)
		}
		targets = append(targets, target{manifest: m, relPath: rel})
	}
	return targets, nil
}

func commitMessage(settings config.Settings, environments []string) string {
	message := fmt.Sprintf("chore(helm): update %s to %s", settings.PackageName, settings.Version)
	if settings.MultiEnv {
		message += fmt.Sprintf(" (envs: %s)", strings.Join(environments, ","))
	}
	return message
}
