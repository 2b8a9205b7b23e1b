package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds everything a single update run needs. Every field comes
// from the environment: the plain name (e.g. REPO_URL) or the CI harness
// form (INPUT_REPO_URL), with the INPUT_ form taking precedence.
type Settings struct {
	RepoURL         string
	Token           string
	PackageFilePath string
	PackageName     string
	Version         string
	ChartName       string
	Branch          string
	Environment     string
	MultiEnv        bool
	Environments    string
	AllowDirScan    bool
	DryRun          bool
}

// envBindings maps viper keys to the environment variables that may supply
// them, highest precedence first.
var envBindings = map[string][]string{
	"repo_url":          {"INPUT_REPO_URL", "REPO_URL"},
	"token":             {"INPUT_TOKEN", "TOKEN"},
	"package_file_path": {"INPUT_PACKAGE_FILE_PATH", "PACKAGE_FILE_PATH"},
	"package_name":      {"INPUT_PACKAGE_NAME", "PACKAGE_NAME"},
	"version":           {"INPUT_VERSION", "VERSION"},
	"chart_name":        {"INPUT_CHART_NAME", "CHART_NAME"},
	"branch":            {"INPUT_BRANCH", "BRANCH"},
	"environment":       {"INPUT_ENVIRONMENT", "ENVIRONMENT"},
	"multi_env":         {"INPUT_MULTI_ENV", "MULTI_ENV"},
	"environments":      {"INPUT_ENVIRONMENTS", "ENVIRONMENTS"},
	"allow_dir_scan":    {"INPUT_ALLOW_DIR_SCAN", "ALLOW_DIR_SCAN"},
	"dry_run":           {"INPUT_DRY_RUN", "DRY_RUN"},
}

// Load reads the run settings from the environment and validates that every
// required value is present. It has no side effects beyond reading env vars,
// so a failure here happens before anything touches the network or disk.
func Load() (Settings, error) {
	v := viper.New()
	for key, names := range envBindings {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return Settings{}, fmt.Errorf("binding %s: %w", key, err)
		}
	}
	v.SetDefault("branch", "main")

	settings := Settings{
		RepoURL:         strings.TrimSpace(v.GetString("repo_url")),
		Token:           strings.TrimSpace(v.GetString("token")),
		PackageFilePath: strings.TrimSpace(v.GetString("package_file_path")),
		PackageName:     strings.TrimSpace(v.GetString("package_name")),
		Version:         strings.TrimSpace(v.GetString("version")),
		ChartName:       strings.TrimSpace(v.GetString("chart_name")),
		Branch:          strings.TrimSpace(v.GetString("branch")),
		Environment:     strings.TrimSpace(v.GetString("environment")),
		MultiEnv:        v.GetBool("multi_env"),
		Environments:    v.GetString("environments"),
		AllowDirScan:    v.GetBool("allow_dir_scan"),
		DryRun:          v.GetBool("dry_run"),
	}
	if settings.Branch == "" {
		settings.Branch = "main"
	}

	missing := settings.missingRequired()
	if len(missing) > 0 {
		return Settings{}, fmt.Errorf("required inputs missing: %s", strings.Join(missing, ", "))
	}
	return settings, nil
}

func (s Settings) missingRequired() []string {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"REPO_URL", s.RepoURL},
		{"TOKEN", s.Token},
		{"PACKAGE_FILE_PATH", s.PackageFilePath},
		{"PACKAGE_NAME", s.PackageName},
		{"VERSION", s.Version},
	}
	for _, item := range required {
		if item.value == "" {
			missing = append(missing, item.name)
		}
	}
	return missing
}

// AnnounceSecret emits the CI harness mask directive for the token. It must
// be the first thing written to stdout once the token is known so the
// harness redacts it from every later line.
func AnnounceSecret(w io.Writer, token string) {
	if token == "" {
		return
	}
	fmt.Fprintf(w, "::add-mask::%s\n", token)
}
