package main

import (
	"testing"
)

func suggestionSpecifiers(suggestions []Suggestion) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, s.Specifier)
	}
	return out
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func TestLcsLength(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "abc", 0},
		{"abc", "abc", 3},
		{"new-thing", "new-thingy", 9},
		{"abc", "xyz", 0},
		{"helpers", "helper", 6},
	}
	for _, c := range cases {
		if got := lcsLength(c.a, c.b); got != c.want {
			t.Errorf("lcsLength(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestSimilarityCaseInsensitive(t *testing.T) {
	if similarity("Helper", "helper") != 1.0 {
		t.Errorf("similarity should ignore case")
	}
}

func TestSuggestRenamedFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixtureFiles(t, tmpDir, map[string]string{
		"src/app.ts":       ``,
		"src/new-thing.ts": ``,
	})

	index := NewDirIndex()
	suggestions := SuggestAlternatives(index, "./new-thingy", NormalizePathForInternal(tmpDir+"/src"))

	specs := suggestionSpecifiers(suggestions)
	if !containsString(specs, "./new-thing") {
		t.Errorf("expected ./new-thing in suggestions, got %v", specs)
	}
}

func TestSuggestionsDropWeakMatches(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixtureFiles(t, tmpDir, map[string]string{
		"src/app.ts":       ``,
		"src/unrelated.ts": ``,
	})

	index := NewDirIndex()
	suggestions := SuggestAlternatives(index, "./zzqx", NormalizePathForInternal(tmpDir+"/src"))

	if len(suggestions) != 0 {
		t.Errorf("no candidate is close enough, got %v", suggestionSpecifiers(suggestions))
	}
}

func TestSuggestionsCappedAtThree(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixtureFiles(t, tmpDir, map[string]string{
		"src/app.ts":     ``,
		"src/helper.ts":  ``,
		"src/helpers.ts": ``,
		"src/helped.ts":  ``,
		"src/helping.ts": ``,
		"src/helpful.ts": ``,
	})

	index := NewDirIndex()
	suggestions := SuggestAlternatives(index, "./helper", NormalizePathForInternal(tmpDir+"/src"))

	if len(suggestions) > 3 {
		t.Errorf("suggestions must be capped at 3, got %d", len(suggestions))
	}
	if len(suggestions) == 0 || suggestions[0].Specifier != "./helper" {
		t.Errorf("exact-name candidate should rank first, got %v", suggestionSpecifiers(suggestions))
	}
}

func TestSuggestionsOrderedByScore(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixtureFiles(t, tmpDir, map[string]string{
		"src/app.ts":      ``,
		"src/helpers.ts":  ``,
		"src/helpline.ts": ``,
	})

	index := NewDirIndex()
	suggestions := SuggestAlternatives(index, "./helper", NormalizePathForInternal(tmpDir+"/src"))

	for i := 1; i < len(suggestions); i++ {
		if suggestions[i].Score > suggestions[i-1].Score {
			t.Errorf("suggestions out of order: %v", suggestions)
		}
	}
}

func TestSuggestFromSubdirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixtureFiles(t, tmpDir, map[string]string{
		"src/app.ts":          ``,
		"src/utils/format.ts": ``,
	})

	index := NewDirIndex()
	suggestions := SuggestAlternatives(index, "./format", NormalizePathForInternal(tmpDir+"/src"))

	specs := suggestionSpecifiers(suggestions)
	if !containsString(specs, "./utils/format") {
		t.Errorf("expected ./utils/format from subdirectory scan, got %v", specs)
	}
}

func TestSuggestionsSkipDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixtureFiles(t, tmpDir, map[string]string{
		"src/app.ts":              ``,
		"src/old-thing/notes.txt": ``,
		"src/new-thing.ts":        ``,
	})

	index := NewDirIndex()
	suggestions := SuggestAlternatives(index, "./old-thing", NormalizePathForInternal(tmpDir+"/src"))

	specs := suggestionSpecifiers(suggestions)
	if containsString(specs, "./old-thing") {
		t.Errorf("a bare directory must not be suggested, least of all the specifier that just failed: %v", specs)
	}
	if !containsString(specs, "./new-thing") {
		t.Errorf("expected ./new-thing in suggestions, got %v", specs)
	}
}

func TestSuggestionsRepairMultiSegmentSpecifierInPlace(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixtureFiles(t, tmpDir, map[string]string{
		"src/app.ts":                 ``,
		"src/deep/nested/missing.ts": ``,
	})

	index := NewDirIndex()
	suggestions := SuggestAlternatives(index, "./deep/nested/missin", NormalizePathForInternal(tmpDir+"/src/deep/nested"))

	specs := suggestionSpecifiers(suggestions)
	if !containsString(specs, "./deep/nested/missing") {
		t.Errorf("expected the filename repaired under its own path, got %v", specs)
	}
}

func TestSuggestionsStripExtensions(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixtureFiles(t, tmpDir, map[string]string{
		"src/app.ts":    ``,
		"src/widget.ts": ``,
	})

	index := NewDirIndex()
	suggestions := SuggestAlternatives(index, "./widgets", NormalizePathForInternal(tmpDir+"/src"))

	for _, s := range suggestions {
		if len(s.Specifier) > 3 && s.Specifier[len(s.Specifier)-3:] == ".ts" {
			t.Errorf("suggestion should not carry an extension: %s", s.Specifier)
		}
	}
}
