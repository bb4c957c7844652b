package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	"github.com/tidwall/jsonc"
)

type ResolutionState uint8

const (
	Resolved ResolutionState = iota
	FileNotFound
	ModuleNotInstalled
	Excluded
	Unresolvable
)

func (s ResolutionState) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case FileNotFound:
		return "file-not-found"
	case ModuleNotInstalled:
		return "module-not-installed"
	case Excluded:
		return "excluded"
	default:
		return "unresolvable"
	}
}

// Resolution is the outcome of resolving one specifier.
type Resolution struct {
	State        ResolutionState
	ResolvedPath string // internal-form absolute path for resolved file targets
	PackageName  string // set for bare specifiers
	AttemptedDir string // directory probed for relative targets, drives suggestions
}

// Extension probe order for extensionless relative imports. TS sources win
// over JS so `./util` beside util.ts and util.js reports the TS file.
var resolveExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".json", ".mjs", ".cjs"}

type pathAlias struct {
	prefix   string // alias key with trailing `*` stripped
	target   string // target with trailing `*` stripped, relative to root
	wildcard bool
}

// PathResolver classifies import specifiers against the filesystem, the
// installed package set and tsconfig path aliases.
type PathResolver struct {
	root      string // project root, internal form
	installed map[string]bool
	excluded  []glob.Glob
	aliases   []pathAlias

	mu        sync.RWMutex
	statCache map[string]bool
}

func NewPathResolver(root string, installed map[string]bool, excludedPatterns []string) *PathResolver {
	resolver := &PathResolver{
		root:      NormalizePathForInternal(filepath.Clean(root)),
		installed: installed,
		statCache: map[string]bool{},
	}
	for _, pattern := range excludedPatterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			logWarning("invalid excluded pattern %q: %v", pattern, err)
			continue
		}
		resolver.excluded = append(resolver.excluded, g)
	}
	resolver.loadTsConfigAliases()
	return resolver
}

// loadTsConfigAliases reads compilerOptions.paths from tsconfig.json at the
// project root. Only the first target of each alias is used. Longer alias
// prefixes match first.
func (r *PathResolver) loadTsConfigAliases() {
	tsconfigPath := filepath.Join(DenormalizePathForOS(r.root), "tsconfig.json")
	content, err := os.ReadFile(tsconfigPath)
	if err != nil {
		return
	}

	var tsconfig struct {
		CompilerOptions struct {
			BaseURL string              `json:"baseUrl"`
			Paths   map[string][]string `json:"paths"`
		} `json:"compilerOptions"`
	}
	if err := json.Unmarshal(jsonc.ToJSON(content), &tsconfig); err != nil {
		logWarning("failed to parse %s: %v", tsconfigPath, err)
		return
	}

	base := tsconfig.CompilerOptions.BaseURL
	for key, targets := range tsconfig.CompilerOptions.Paths {
		if len(targets) == 0 {
			continue
		}
		target := targets[0]
		if base != "" {
			target = strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(target, "./")
		}
		r.aliases = append(r.aliases, pathAlias{
			prefix:   strings.TrimSuffix(key, "*"),
			target:   strings.TrimSuffix(target, "*"),
			wildcard: strings.HasSuffix(key, "*"),
		})
	}
	sort.Slice(r.aliases, func(i, j int) bool {
		return len(r.aliases[i].prefix) > len(r.aliases[j].prefix)
	})
}

func (r *PathResolver) fileExists(osPath string) bool {
	r.mu.RLock()
	exists, cached := r.statCache[osPath]
	r.mu.RUnlock()
	if cached {
		return exists
	}

	info, err := os.Stat(osPath)
	exists = err == nil && !info.IsDir()

	r.mu.Lock()
	r.statCache[osPath] = exists
	r.mu.Unlock()
	return exists
}

func isRelativeSpecifier(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") ||
		strings.HasPrefix(specifier, "/")
}

// resolveFileTarget probes candidate files for an extensionless or explicit
// path target. Returns the resolved internal path or "".
func (r *PathResolver) resolveFileTarget(osPath string) string {
	if r.fileExists(osPath) {
		return NormalizePathForInternal(osPath)
	}
	if filepath.Ext(osPath) != "" {
		// explicit extension present, still probe TS source for a JS
		// specifier since tsc emits `./util.js` for util.ts
		ext := filepath.Ext(osPath)
		if ext == ".js" || ext == ".jsx" || ext == ".mjs" || ext == ".cjs" {
			stripped := strings.TrimSuffix(osPath, ext)
			for _, candidate := range []string{stripped + ".ts", stripped + ".tsx"} {
				if r.fileExists(candidate) {
					return NormalizePathForInternal(candidate)
				}
			}
		}
		return ""
	}
	for _, ext := range resolveExtensions {
		if r.fileExists(osPath + ext) {
			return NormalizePathForInternal(osPath + ext)
		}
	}
	for _, ext := range resolveExtensions {
		candidate := filepath.Join(osPath, "index"+ext)
		if r.fileExists(candidate) {
			return NormalizePathForInternal(candidate)
		}
	}
	return ""
}

func (r *PathResolver) matchAlias(specifier string) (string, bool) {
	for _, alias := range r.aliases {
		if alias.wildcard {
			if strings.HasPrefix(specifier, alias.prefix) {
				rest := strings.TrimPrefix(specifier, alias.prefix)
				return filepath.Join(DenormalizePathForOS(r.root), alias.target, rest), true
			}
		} else if specifier == alias.prefix {
			return filepath.Join(DenormalizePathForOS(r.root), alias.target), true
		}
	}
	return "", false
}

func (r *PathResolver) isExcluded(packageName string) bool {
	for _, g := range r.excluded {
		if g.Match(packageName) {
			return true
		}
	}
	return false
}

// Resolve classifies the specifier of an import found in importerPath.
// Relative targets probe the filesystem with the extension order, bare
// targets check builtins, aliases, exclusions and the installed set.
func (r *PathResolver) Resolve(specifier string, importerPath string) Resolution {
	if strings.TrimSpace(specifier) == "" {
		return Resolution{State: Unresolvable}
	}

	if isRelativeSpecifier(specifier) {
		importerDir := filepath.Dir(DenormalizePathForOS(importerPath))
		target := filepath.Join(importerDir, DenormalizePathForOS(specifier))
		if resolved := r.resolveFileTarget(target); resolved != "" {
			return Resolution{State: Resolved, ResolvedPath: resolved, AttemptedDir: NormalizePathForInternal(filepath.Dir(target))}
		}
		return Resolution{State: FileNotFound, AttemptedDir: NormalizePathForInternal(filepath.Dir(target))}
	}

	if IsNodeBuiltinModule(specifier) {
		return Resolution{State: Resolved, PackageName: strings.TrimPrefix(specifier, "node:")}
	}

	if target, ok := r.matchAlias(specifier); ok {
		if resolved := r.resolveFileTarget(target); resolved != "" {
			return Resolution{State: Resolved, ResolvedPath: resolved, AttemptedDir: NormalizePathForInternal(filepath.Dir(target))}
		}
		return Resolution{State: FileNotFound, AttemptedDir: NormalizePathForInternal(filepath.Dir(target))}
	}

	packageName := PackageNameOf(specifier)
	if packageName == "" || strings.HasPrefix(packageName, ".") {
		return Resolution{State: Unresolvable, PackageName: packageName}
	}

	if r.isExcluded(packageName) {
		return Resolution{State: Excluded, PackageName: packageName}
	}

	if r.installed[packageName] {
		return Resolution{State: Resolved, PackageName: packageName}
	}

	return Resolution{State: ModuleNotInstalled, PackageName: packageName}
}
