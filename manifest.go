package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// PackageManifest is the parsed package.json of the analyzed project.
type PackageManifest struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Workspaces       interface{}       `json:"workspaces"` // []string or { packages: []string }
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
}

// LoadPackageManifest reads and parses package.json at dir. A missing file is
// not an error, it yields an empty manifest so analysis still runs.
func LoadPackageManifest(dir string) (*PackageManifest, error) {
	pkgJsonPath := filepath.Join(DenormalizePathForOS(dir), "package.json")
	content, err := os.ReadFile(pkgJsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &PackageManifest{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", pkgJsonPath, err)
	}

	var manifest PackageManifest
	if err := json.Unmarshal(jsonc.ToJSON(content), &manifest); err != nil {
		return nil, fmt.Errorf("parse %s: %w", pkgJsonPath, err)
	}
	return &manifest, nil
}

// InstalledPackages returns the set of package names declared by the manifest.
// devDependencies are included when includeDev is set, peerDependencies always
// count since node resolves them from the host install.
func (m *PackageManifest) InstalledPackages(includeDev bool) map[string]bool {
	packages := map[string]bool{}
	for dep := range m.Dependencies {
		packages[dep] = true
	}
	for dep := range m.PeerDependencies {
		packages[dep] = true
	}
	if includeDev {
		for dep := range m.DevDependencies {
			packages[dep] = true
		}
	}
	return packages
}

// non-semver range protocols that declare a valid dependency source
var rangeProtocols = []string{"workspace:", "file:", "link:", "npm:", "git:", "git+", "github:", "http:", "https:", "portal:", "patch:"}

// ValidateDeclaredRanges checks every declared version range parses as a
// semver constraint and returns a warning line per malformed entry.
// Protocol-prefixed ranges and dist-tags like `latest` are skipped.
func (m *PackageManifest) ValidateDeclaredRanges() []string {
	var warnings []string
	validate := func(section string, deps map[string]string) {
		for name, rng := range deps {
			if rng == "" || rng == "*" || rng == "latest" || rng == "next" {
				continue
			}
			skip := false
			for _, proto := range rangeProtocols {
				if strings.HasPrefix(rng, proto) {
					skip = true
					break
				}
			}
			if skip {
				continue
			}
			if _, err := semver.NewConstraint(rng); err != nil {
				warnings = append(warnings, fmt.Sprintf("%s.%s has unparseable version range %q", section, name, rng))
			}
		}
	}
	validate("dependencies", m.Dependencies)
	validate("devDependencies", m.DevDependencies)
	validate("peerDependencies", m.PeerDependencies)
	return warnings
}

// PackageNameOf extracts the package name from a bare specifier, keeping the
// scope segment for `@scope/name/subpath` requests.
func PackageNameOf(specifier string) string {
	parts := strings.SplitN(specifier, "/", 3)
	if strings.HasPrefix(specifier, "@") {
		if len(parts) < 2 {
			return specifier
		}
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// workspacePatterns collects workspace glob patterns from the manifest's
// workspaces field, falling back to pnpm-workspace.yaml beside it.
func workspacePatterns(manifest *PackageManifest, dir string) []string {
	var patterns []string
	if list, ok := manifest.Workspaces.([]interface{}); ok {
		for _, v := range list {
			if s, ok := v.(string); ok {
				patterns = append(patterns, s)
			}
		}
	} else if obj, ok := manifest.Workspaces.(map[string]interface{}); ok {
		if packages, ok := obj["packages"].([]interface{}); ok {
			for _, v := range packages {
				if s, ok := v.(string); ok {
					patterns = append(patterns, s)
				}
			}
		}
	}

	if len(patterns) == 0 {
		pnpmWorkspacePath := filepath.Join(DenormalizePathForOS(dir), "pnpm-workspace.yaml")
		if content, err := os.ReadFile(pnpmWorkspacePath); err == nil {
			var pnpmWorkspace struct {
				Packages []string `yaml:"packages"`
			}
			if err := yaml.Unmarshal(content, &pnpmWorkspace); err == nil {
				patterns = append(patterns, pnpmWorkspace.Packages...)
			}
		}
	}
	return patterns
}

// FindWorkspacePackageNames expands the workspace patterns and returns the
// names of all member packages. Workspace members resolve like installed
// packages even without a node_modules entry.
func FindWorkspacePackageNames(manifest *PackageManifest, dir string) map[string]bool {
	names := map[string]bool{}
	for _, pattern := range workspacePatterns(manifest, dir) {
		if strings.HasPrefix(pattern, "!") {
			continue
		}
		var memberDirs []string
		switch {
		case strings.HasSuffix(pattern, "/*") || pattern == "*":
			base := filepath.Join(DenormalizePathForOS(dir), strings.TrimSuffix(pattern, "/*"))
			if pattern == "*" {
				base = DenormalizePathForOS(dir)
			}
			entries, err := os.ReadDir(base)
			if err != nil {
				continue
			}
			for _, entry := range entries {
				if entry.IsDir() {
					memberDirs = append(memberDirs, filepath.Join(base, entry.Name()))
				}
			}
		case strings.HasSuffix(pattern, "/**"):
			base := filepath.Join(DenormalizePathForOS(dir), strings.TrimSuffix(pattern, "/**"))
			collectPackageDirs(base, &memberDirs)
		default:
			memberDirs = append(memberDirs, filepath.Join(DenormalizePathForOS(dir), pattern))
		}

		for _, memberDir := range memberDirs {
			content, err := os.ReadFile(filepath.Join(memberDir, "package.json"))
			if err != nil {
				continue
			}
			var member struct {
				Name string `json:"name"`
			}
			if err := json.Unmarshal(jsonc.ToJSON(content), &member); err == nil && member.Name != "" {
				names[member.Name] = true
			}
		}
	}
	return names
}

// collectPackageDirs walks base recursively, stopping a branch at the first
// directory holding a package.json.
func collectPackageDirs(base string, out *[]string) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && entry.Name() == "package.json" {
			*out = append(*out, base)
			return
		}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			name := entry.Name()
			if name == ".git" || name == "node_modules" {
				continue
			}
			collectPackageDirs(filepath.Join(base, name), out)
		}
	}
}
