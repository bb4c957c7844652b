package main

import (
	"os"
	"sort"
)

// Change is a text replacement, Start and End are byte offsets in the
// original file content.
type Change struct {
	Start int
	End   int
	Text  string
}

func applyChangesToContent(content []byte, changes []Change) []byte {
	if len(changes) == 0 {
		return content
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Start < changes[j].Start
	})

	var result []byte
	cursor := 0
	for _, c := range changes {
		if c.Start < cursor || c.End > len(content) {
			continue
		}
		result = append(result, content[cursor:c.Start]...)
		result = append(result, c.Text...)
		cursor = c.End
	}
	result = append(result, content[cursor:]...)
	return result
}

// unusedImportChanges builds removals for fully unused import statements,
// eating the trailing newline so no blank line is left behind.
func unusedImportChanges(code []byte, records []ImportRecord, usage []UsageResult, resolutions []Resolution) []Change {
	var changes []Change
	for i, rec := range records {
		if i >= len(usage) || !usage[i].FullyUnused() {
			continue
		}
		if i < len(resolutions) && resolutions[i].State == Excluded {
			continue
		}
		end := rec.end
		for end < len(code) && (code[end] == ' ' || code[end] == '\t') {
			end++
		}
		if end < len(code) && code[end] == '\n' {
			end++
		}
		changes = append(changes, Change{Start: rec.start, End: end})
	}
	return changes
}

// FixFile removes fully unused import statements from the file in place and
// returns how many statements were removed.
func (a *Analyzer) FixFile(filePath string) (int, error) {
	osPath := DenormalizePathForOS(filePath)
	code, err := os.ReadFile(osPath)
	if err != nil {
		return 0, err
	}

	records := ParseImports(code, filePath)
	if len(records) == 0 {
		return 0, nil
	}

	resolutions := make([]Resolution, len(records))
	for i, rec := range records {
		resolutions[i] = a.resolver.Resolve(rec.Specifier, filePath)
	}
	usage := DetectUsage(code, records)

	changes := unusedImportChanges(code, records, usage, resolutions)
	if len(changes) == 0 {
		return 0, nil
	}

	if err := os.WriteFile(osPath, applyChangesToContent(code, changes), 0644); err != nil {
		return 0, err
	}
	return len(changes), nil
}
