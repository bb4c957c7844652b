package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyChangesToContent(t *testing.T) {
	content := []byte("aaa bbb ccc")
	changes := []Change{
		{Start: 8, End: 11},
		{Start: 0, End: 4},
	}

	got := string(applyChangesToContent(content, changes))

	if got != "bbb " {
		t.Errorf("expected 'bbb ', got %q", got)
	}
}

func TestApplyChangesSkipsOverlapping(t *testing.T) {
	content := []byte("abcdef")
	changes := []Change{
		{Start: 0, End: 4, Text: "X"},
		{Start: 2, End: 6, Text: "Y"},
	}

	got := string(applyChangesToContent(content, changes))

	if got != "Xef" {
		t.Errorf("overlapping change should be dropped, got %q", got)
	}
}

func TestFixFileRemovesUnusedImports(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixtureFiles(t, tmpDir, map[string]string{
		"package.json": `{"dependencies": {"lodash": "^4.17.0"}}`,
		"src/used.ts":  "export const helper = 1\n",
		"src/app.ts": `import { helper } from './used'
import { unusedThing } from './used'

console.log(helper)
`,
	})

	analyzer := newTestAnalyzer(t, tmpDir, nil)
	target := NormalizePathForInternal(filepath.Join(tmpDir, "src", "app.ts"))

	removed, err := analyzer.FixFile(target)
	if err != nil {
		t.Fatalf("fix failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed statement, got %d", removed)
	}

	fixed, err := os.ReadFile(filepath.Join(tmpDir, "src", "app.ts"))
	if err != nil {
		t.Fatalf("failed to read fixed file: %v", err)
	}
	want := `import { helper } from './used'

console.log(helper)
`
	if string(fixed) != want {
		t.Errorf("unexpected file content after fix:\n%s", fixed)
	}
}

func TestFixFileKeepsPartiallyUnusedImports(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixtureFiles(t, tmpDir, map[string]string{
		"package.json": `{}`,
		"src/lib.ts":   "export const a = 1\nexport const b = 2\n",
		"src/app.ts": `import { a, b } from './lib'

console.log(a)
`,
	})

	analyzer := newTestAnalyzer(t, tmpDir, nil)
	target := NormalizePathForInternal(filepath.Join(tmpDir, "src", "app.ts"))

	removed, err := analyzer.FixFile(target)
	if err != nil {
		t.Fatalf("fix failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("partially unused statement must not be removed, got %d removals", removed)
	}
}

func TestFixFileIsIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixtureFiles(t, tmpDir, map[string]string{
		"package.json": `{}`,
		"src/lib.ts":   "export const a = 1\n",
		"src/app.ts":   "import { a } from './lib'\n\nexport const nothing = 1\n",
	})

	analyzer := newTestAnalyzer(t, tmpDir, nil)
	target := NormalizePathForInternal(filepath.Join(tmpDir, "src", "app.ts"))

	first, err := analyzer.FixFile(target)
	if err != nil {
		t.Fatalf("first fix failed: %v", err)
	}
	if first != 1 {
		t.Fatalf("expected 1 removal on first run, got %d", first)
	}

	second, err := analyzer.FixFile(target)
	if err != nil {
		t.Fatalf("second fix failed: %v", err)
	}
	if second != 0 {
		t.Errorf("second run should change nothing, got %d removals", second)
	}
}

func TestFixFileSkipsExcludedPackages(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixtureFiles(t, tmpDir, map[string]string{
		"package.json": `{"dependencies": {"react": "^18.0.0"}}`,
		"src/app.ts":   "import React from 'react'\n\nexport const nothing = 1\n",
	})

	analyzer := newTestAnalyzer(t, tmpDir, nil)
	target := NormalizePathForInternal(filepath.Join(tmpDir, "src", "app.ts"))

	removed, err := analyzer.FixFile(target)
	if err != nil {
		t.Fatalf("fix failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("excluded package imports must be left alone, got %d removals", removed)
	}
}
