package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("REPO_URL", "https://github.com/org/repo.git")
	t.Setenv("TOKEN", "secret")
	t.Setenv("PACKAGE_FILE_PATH", "packages.yaml")
	t.Setenv("PACKAGE_NAME", "mypkg")
	t.Setenv("VERSION", "2.0.0")
}

func TestLoadFromPlainEnvironment(t *testing.T) {
	setRequiredEnv(t)

	settings, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://github.com/org/repo.git", settings.RepoURL)
	require.Equal(t, "secret", settings.Token)
	require.Equal(t, "packages.yaml", settings.PackageFilePath)
	require.Equal(t, "mypkg", settings.PackageName)
	require.Equal(t, "2.0.0", settings.Version)
	require.Equal(t, "main", settings.Branch)
	require.False(t, settings.MultiEnv)
	require.False(t, settings.DryRun)
}

func TestLoadInputPrefixTakesPrecedence(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("INPUT_VERSION", "3.0.0")
	t.Setenv("INPUT_BRANCH", "release")

	settings, err := Load()
	require.NoError(t, err)
	require.Equal(t, "3.0.0", settings.Version)
	require.Equal(t, "release", settings.Branch)
}

func TestLoadTrimsWhitespace(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VERSION", "  2.0.0  ")
	t.Setenv("CHART_NAME", " mychart ")

	settings, err := Load()
	require.NoError(t, err)
	require.Equal(t, "2.0.0", settings.Version)
	require.Equal(t, "mychart", settings.ChartName)
}

func TestLoadMissingRequiredInputs(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REPO_URL", "")
	t.Setenv("VERSION", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "REPO_URL")
	require.Contains(t, err.Error(), "VERSION")
	require.NotContains(t, err.Error(), "TOKEN")
}

func TestLoadOptionalFlags(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MULTI_ENV", "true")
	t.Setenv("ENVIRONMENTS", "dev,prod")
	t.Setenv("ALLOW_DIR_SCAN", "1")
	t.Setenv("DRY_RUN", "true")

	settings, err := Load()
	require.NoError(t, err)
	require.True(t, settings.MultiEnv)
	require.Equal(t, "dev,prod", settings.Environments)
	require.True(t, settings.AllowDirScan)
	require.True(t, settings.DryRun)
}

func TestAnnounceSecret(t *testing.T) {
	var buf bytes.Buffer
	AnnounceSecret(&buf, "hunter2")
	require.Equal(t, "::add-mask::hunter2\n", buf.String())

	buf.Reset()
	AnnounceSecret(&buf, "")
	require.Empty(t, buf.String())
}
