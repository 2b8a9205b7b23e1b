package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolve finds the Application manifest for a repo-relative package path.
// A regular file is parsed strictly. A directory triggers a scan only when
// allowDirScan is set; otherwise it is an error, matching the file-only
// resolution contract.
func Resolve(workdir, relPath, chartName string, allowDirScan bool) (*Manifest, error) {
	fullPath := filepath.Join(workdir, relPath)

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("path does not exist: %s", fullPath)
	}
	if info.Mode().IsRegular() {
		return Load(fullPath)
	}
	if info.IsDir() {
		if !allowDirScan {
			return nil, fmt.Errorf("path %s is a directory; expected an Application manifest file", fullPath)
		}
		return FindInDir(fullPath, chartName)
	}
	return nil, fmt.Errorf("path %s is neither a file nor a directory", fullPath)
}

// FindInDir scans the immediate children of a directory for Application
// manifests. Unparseable files are skipped rather than fatal. With a chart
// name the scan keeps only manifests referencing that chart. The first
// match in directory order wins.
func FindInDir(dirPath, chartName string) (*Manifest, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dirPath, err)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		path := filepath.Join(dirPath, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		m, err := Parse(path, data)
		if err != nil {
			continue
		}
		if !m.IsApplication() {
			continue
		}
		if chartName != "" && !m.ReferencesChart(chartName) {
			continue
		}
		return m, nil
	}

	if chartName != "" {
		return nil, fmt.Errorf("no Argo CD Application with chart %q found in directory %s", chartName, dirPath)
	}
	return nil, fmt.Errorf("no Argo CD Application found in directory %s", dirPath)
}
