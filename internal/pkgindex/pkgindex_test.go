package pkgindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeIndex(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "packages.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesPackages(t *testing.T) {
	path := writeIndex(t, `packages:
  - name: first
    path: apps/first.yaml
  - name: second
    path: envs/$/second.yaml
`)

	index, err := Load(path)
	require.NoError(t, err)
	require.Len(t, index.Packages, 2)

	pkg, found := index.Find("second")
	require.True(t, found)
	require.Equal(t, "envs/$/second.yaml", pkg.Path)

	_, found = index.Find("missing")
	require.False(t, found)
}

func TestLoadRejectsMissingPackagesList(t *testing.T) {
	path := writeIndex(t, "something: else\n")
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "packages")
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestResolvePath(t *testing.T) {
	testCases := []struct {
		name        string
		template    string
		environment string
		want        string
		wantErr     bool
	}{
		{name: "no placeholder", template: "apps/app.yaml", environment: "", want: "apps/app.yaml"},
		{name: "no placeholder with environment", template: "apps/app.yaml", environment: "dev", want: "apps/app.yaml"},
		{name: "placeholder substituted", template: "envs/$/app.yaml", environment: "prod", want: "envs/prod/app.yaml"},
		{name: "placeholder without environment", template: "envs/$/app.yaml", environment: "", wantErr: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := ResolvePath(testCase.template, testCase.environment)
			if testCase.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, testCase.want, got)
		})
	}
}

func TestSplitEnvironments(t *testing.T) {
	environments, err := SplitEnvironments(" dev, ,prod ")
	require.NoError(t, err)
	require.Equal(t, []string{"dev", "prod"}, environments)

	_, err = SplitEnvironments(" , ")
	require.Error(t, err)

	_, err = SplitEnvironments("")
	require.Error(t, err)
}
