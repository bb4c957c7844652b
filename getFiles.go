package main

import (
	"os"
	"path/filepath"
	"strings"
)

var allowedExts = map[string]struct{}{
	".ts":  {},
	".tsx": {},
	".js":  {},
	".jsx": {},
	".cjs": {},
	".mjs": {},
}

func hasCorrectExtension(name string) bool {
	_, ok := allowedExts[filepath.Ext(name)]
	return ok
}

func parseGitIgnore(fileContent string, dirPath string) []GlobMatcher {
	lines := strings.Split(fileContent, "\n")

	sanitizedLines := []string{}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) > 0 && !strings.HasPrefix(trimmed, "#") {
			sanitizedLines = append(sanitizedLines, line)
		}
	}

	return CreateGlobMatchers(sanitizedLines, dirPath)
}

// FindAndProcessGitIgnoreFilesUpToRepoRoot collects gitignore matchers from
// dirPath up to the nearest directory holding .git.
func FindAndProcessGitIgnoreFilesUpToRepoRoot(dirPath string) []GlobMatcher {
	return findAndProcessGitIgnoreFilesUpToRepoRoot(dirPath, []GlobMatcher{})
}

func findAndProcessGitIgnoreFilesUpToRepoRoot(dirPath string, globMatchers []GlobMatcher) []GlobMatcher {
	gitignoreFile, gitignoreError := os.ReadFile(filepath.Join(dirPath, ".gitignore"))
	if gitignoreError == nil {
		globMatchers = append(globMatchers, parseGitIgnore(string(gitignoreFile), dirPath)...)
	}

	gitDir, gitDirReadErr := os.Stat(filepath.Join(dirPath, ".git"))
	if gitDirReadErr == nil && gitDir.IsDir() {
		return globMatchers
	}

	parent := filepath.Dir(filepath.Clean(dirPath))
	if parent == filepath.Clean(dirPath) {
		return globMatchers
	}

	return findAndProcessGitIgnoreFilesUpToRepoRoot(StandardiseDirPath(parent), globMatchers)
}

// GetFiles walks directory recursively and appends every analyzable source
// file not hidden by a gitignore matcher. Nested .gitignore files extend the
// matcher set for their subtree.
func GetFiles(directory string, existingFiles []string, parentGlobMatchers []GlobMatcher) []string {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return existingFiles
	}

	for _, entry := range entries {
		entryName := entry.Name()
		entryFilePath := filepath.Join(directory, entryName)

		if entry.IsDir() {
			if entryName == "node_modules" || entryName == ".git" {
				continue
			}
			if !MatchesAnyGlobMatcher(entryFilePath, parentGlobMatchers) {
				gitignoreFile, gitignoreError := os.ReadFile(filepath.Join(entryFilePath, ".gitignore"))

				ignoreGlobs := parentGlobMatchers
				if gitignoreError == nil {
					nested := parseGitIgnore(string(gitignoreFile), entryFilePath)
					if len(nested) > 0 {
						ignoreGlobs = append(parentGlobMatchers, nested...)
					}
				}

				existingFiles = GetFiles(entryFilePath, existingFiles, ignoreGlobs)
			}
			continue
		}

		if hasCorrectExtension(entryName) && !MatchesAnyGlobMatcher(entryFilePath, parentGlobMatchers) {
			existingFiles = append(existingFiles, NormalizePathForInternal(entryFilePath))
		}
	}

	return existingFiles
}
