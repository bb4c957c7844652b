package main

import (
	"strings"

	"github.com/gobwas/glob"
)

type GlobMatcher struct {
	globPattern                        glob.Glob
	inputString                        string
	shouldMatchAnyFileOrDirWithPattern bool
	patternRoot                        string
}

// CreateGlobMatchers compiles gitignore-style patterns rooted at patternsRoot.
// Plain names without `/` or `*` match any file or directory with that exact
// name, like .gitignore does.
func CreateGlobMatchers(patterns []string, patternsRoot string) []GlobMatcher {
	globMatchers := []GlobMatcher{}
	patternRootNorm := NormalizePathForInternal(patternsRoot)
	if patternRootNorm != "" && !strings.HasSuffix(patternRootNorm, "/") {
		patternRootNorm = patternRootNorm + "/"
	}

	for _, pattern := range patterns {
		shouldMatchAnyFileOrDirWithPattern := !strings.Contains(pattern, "/") && !strings.Contains(pattern, "*")

		if strings.HasSuffix(pattern, "/") && !strings.Contains(pattern, "*") {
			// gitignore entry with `/` suffix matches the directory recursively
			pattern = "**" + pattern + "**"
		}

		patternNorm := NormalizeGlobPattern(pattern)

		globMatchers = append(globMatchers, GlobMatcher{
			globPattern:                        glob.MustCompile(patternNorm),
			inputString:                        patternNorm,
			patternRoot:                        patternRootNorm,
			shouldMatchAnyFileOrDirWithPattern: shouldMatchAnyFileOrDirWithPattern,
		})

		// The glob library does not let `**/` match zero directories, so
		// `**/*.log` misses `file.log` at the root. Add the bare pattern to
		// cover that case.
		if strings.HasPrefix(patternNorm, "**/") {
			additionalPattern := strings.Replace(patternNorm, "**/", "", 1)
			globMatchers = append(globMatchers, GlobMatcher{
				globPattern: glob.MustCompile(additionalPattern),
				inputString: additionalPattern,
				patternRoot: patternRootNorm,
			})
		}
	}
	return globMatchers
}

func MatchesAnyGlobMatcher(filePath string, matchers []GlobMatcher) bool {
	for _, matcher := range matchers {
		fileInternal := NormalizePathForInternal(filePath)
		fileWithoutPrefix := strings.TrimPrefix(fileInternal, matcher.patternRoot)
		if matcher.globPattern.Match(fileWithoutPrefix) {
			return true
		}
		if matcher.shouldMatchAnyFileOrDirWithPattern {
			if strings.HasSuffix(fileWithoutPrefix, "/"+matcher.inputString) {
				return true
			}
			if strings.Contains(fileWithoutPrefix, "/"+matcher.inputString+"/") || strings.HasPrefix(fileWithoutPrefix, matcher.inputString+"/") {
				return true
			}
		}
	}
	return false
}
