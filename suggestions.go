package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const (
	suggestionMinScore = 0.4
	suggestionLimit    = 3
)

// Suggestion is one candidate replacement for a broken relative import.
type Suggestion struct {
	Specifier string  `json:"specifier"`
	Score     float64 `json:"score"`
}

// dirListing splits a directory's contents: only files are suggestion
// candidates, directories just widen the searched neighborhood.
type dirListing struct {
	files []string
	dirs  []string
}

// DirIndex lists directory contents once per directory so every broken
// import in that directory shares the listing.
type DirIndex struct {
	mu      sync.Mutex
	entries map[string]dirListing
}

func NewDirIndex() *DirIndex {
	return &DirIndex{entries: map[string]dirListing{}}
}

// list returns the source files and subdirectories directly under dir.
func (d *DirIndex) list(dir string) dirListing {
	d.mu.Lock()
	cached, ok := d.entries[dir]
	d.mu.Unlock()
	if ok {
		return cached
	}

	var listing dirListing
	dirEntries, err := os.ReadDir(DenormalizePathForOS(dir))
	if err == nil {
		for _, entry := range dirEntries {
			name := entry.Name()
			if entry.IsDir() {
				if name == "node_modules" || strings.HasPrefix(name, ".") {
					continue
				}
				listing.dirs = append(listing.dirs, name)
				continue
			}
			if isAnalyzableFile(name) {
				listing.files = append(listing.files, name)
			}
		}
	}

	d.mu.Lock()
	d.entries[dir] = listing
	d.mu.Unlock()
	return listing
}

func isAnalyzableFile(name string) bool {
	for _, ext := range resolveExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// lcsLength computes the longest common subsequence length of two strings.
func lcsLength(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// similarity is a normalized LCS ratio in [0, 1], case insensitive.
func similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if len(a)+len(b) == 0 {
		return 0
	}
	return 2 * float64(lcsLength(a, b)) / float64(len(a)+len(b))
}

func stripKnownExtension(name string) string {
	for _, ext := range resolveExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

type suggestionCandidate struct {
	specifier string
	score     float64
}

// SuggestAlternatives proposes up to three existing paths similar to a
// broken relative specifier. Candidates come from the directory the import
// pointed at, its parent and its immediate subdirectories.
func SuggestAlternatives(index *DirIndex, specifier string, attemptedDir string) []Suggestion {
	wanted := stripKnownExtension(filepath.Base(DenormalizePathForOS(specifier)))
	if wanted == "" || wanted == "." {
		return nil
	}

	type candidateDir struct {
		dir    string
		prefix string // specifier prefix producing a valid relative import
	}

	specDir := "./"
	if idx := strings.LastIndex(specifier, "/"); idx >= 0 {
		specDir = specifier[:idx+1]
	}

	dirs := []candidateDir{{dir: attemptedDir, prefix: specDir}}

	parent := NormalizePathForInternal(filepath.Dir(DenormalizePathForOS(attemptedDir)))
	if parent != attemptedDir {
		parentPrefix := specDir + "../"
		dirs = append(dirs, candidateDir{dir: parent, prefix: parentPrefix})
	}
	for _, name := range index.list(attemptedDir).dirs {
		sub := attemptedDir + "/" + name
		dirs = append(dirs, candidateDir{dir: sub, prefix: specDir + name + "/"})
	}

	seen := map[string]bool{}
	var candidates []suggestionCandidate
	for _, cd := range dirs {
		for _, name := range index.list(cd.dir).files {
			base := stripKnownExtension(name)
			if base == "" {
				continue
			}
			score := similarity(wanted, base)
			if score < suggestionMinScore {
				continue
			}
			suggested := cd.prefix + base
			if !strings.HasPrefix(suggested, ".") && !strings.HasPrefix(suggested, "/") {
				suggested = "./" + suggested
			}
			if seen[suggested] {
				continue
			}
			seen[suggested] = true
			candidates = append(candidates, suggestionCandidate{specifier: suggested, score: score})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if len(candidates[i].specifier) != len(candidates[j].specifier) {
			return len(candidates[i].specifier) < len(candidates[j].specifier)
		}
		return candidates[i].specifier < candidates[j].specifier
	})

	if len(candidates) > suggestionLimit {
		candidates = candidates[:suggestionLimit]
	}
	suggestions := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		suggestions = append(suggestions, Suggestion{Specifier: c.specifier, Score: c.score})
	}
	return suggestions
}
