package main

import (
	"fmt"
	"sort"
)

type FindingKind uint8

const (
	UnusedImportFinding FindingKind = iota
	PartiallyUnusedImportFinding
	FileNotFoundFinding
	MissingPackageFinding
)

func (k FindingKind) String() string {
	switch k {
	case UnusedImportFinding:
		return "unused-import"
	case PartiallyUnusedImportFinding:
		return "partially-unused-import"
	case FileNotFoundFinding:
		return "file-not-found"
	default:
		return "missing-package"
	}
}

func (k FindingKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Finding is one actionable problem on one import statement.
type Finding struct {
	Kind        FindingKind  `json:"kind"`
	Line        int          `json:"line"`
	Statement   string       `json:"statement"`
	Specifier   string       `json:"specifier"`
	UnusedNames []string     `json:"unusedNames,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
	InstallHint string       `json:"installHint,omitempty"`
}

type FileReport struct {
	FilePath     string    `json:"filePath"`
	TotalImports int       `json:"totalImports"`
	Findings     []Finding `json:"findings"`
	// set when the file could not be read, analysis of other files continues
	Err string `json:"error,omitempty"`
}

func (r FileReport) HasFindings() bool {
	return len(r.Findings) > 0
}

type Summary struct {
	FilesAnalyzed     int    `json:"filesAnalyzed"`
	FilesWithFindings int    `json:"filesWithFindings"`
	TotalImports      int    `json:"totalImports"`
	UnusedImports     int    `json:"unusedImports"`
	BrokenImports     int    `json:"brokenImports"`
	MissingPackages   int    `json:"missingPackages"`
	RemovableLines    int    `json:"removableLines"`
	Severity          string `json:"severity"`
}

type ProjectReport struct {
	Files    []FileReport `json:"files"`
	Warnings []string     `json:"warnings,omitempty"`
	Summary  Summary      `json:"summary"`
}

func (p *ProjectReport) HasFindings() bool {
	for _, file := range p.Files {
		if file.HasFindings() {
			return true
		}
	}
	return false
}

// MissingPackageNames returns the distinct packages behind missing-package
// findings, sorted, for the install hint at the end of the report.
func (p *ProjectReport) MissingPackageNames() []string {
	set := map[string]bool{}
	for _, file := range p.Files {
		for _, finding := range file.Findings {
			if finding.Kind == MissingPackageFinding && finding.InstallHint != "" {
				set[finding.InstallHint] = true
			}
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// buildFileFindings merges usage and resolution outcomes for one file into
// findings. A statement can produce both an unused and a broken finding.
func buildFileFindings(records []ImportRecord, usage []UsageResult, resolutions []Resolution, index *DirIndex) []Finding {
	var findings []Finding
	for i, rec := range records {
		res := resolutions[i]

		switch res.State {
		case FileNotFound:
			findings = append(findings, Finding{
				Kind:        FileNotFoundFinding,
				Line:        rec.Line,
				Statement:   rec.Statement,
				Specifier:   rec.Specifier,
				Suggestions: SuggestAlternatives(index, rec.Specifier, res.AttemptedDir),
			})
		case ModuleNotInstalled:
			findings = append(findings, Finding{
				Kind:        MissingPackageFinding,
				Line:        rec.Line,
				Statement:   rec.Statement,
				Specifier:   rec.Specifier,
				InstallHint: res.PackageName,
			})
		}

		if res.State == Excluded {
			continue
		}

		if i < len(usage) && usage[i].AnyUnused() {
			kind := PartiallyUnusedImportFinding
			if usage[i].FullyUnused() {
				kind = UnusedImportFinding
			}
			findings = append(findings, Finding{
				Kind:        kind,
				Line:        rec.Line,
				Statement:   rec.Statement,
				Specifier:   rec.Specifier,
				UnusedNames: usage[i].UnusedNames(rec),
			})
		}
	}
	return findings
}

// SeverityLevels maps finding totals to a reported severity. A level applies
// when the total reaches its threshold, highest match wins.
type SeverityLevels struct {
	Warning int `json:"warning"`
	Error   int `json:"error"`
}

func DefaultSeverityLevels() SeverityLevels {
	return SeverityLevels{Warning: 1, Error: 10}
}

func (s SeverityLevels) Classify(totalFindings int) string {
	switch {
	case s.Error > 0 && totalFindings >= s.Error:
		return "error"
	case s.Warning > 0 && totalFindings >= s.Warning:
		return "warning"
	default:
		return "none"
	}
}

// AggregateReport computes the summary over per-file reports. Files keep the
// order they were analyzed in.
func AggregateReport(files []FileReport, warnings []string, levels SeverityLevels) *ProjectReport {
	report := &ProjectReport{Files: files, Warnings: warnings}
	summary := &report.Summary
	summary.FilesAnalyzed = len(files)

	total := 0
	for _, file := range files {
		summary.TotalImports += file.TotalImports
		if file.HasFindings() {
			summary.FilesWithFindings++
		}
		for _, finding := range file.Findings {
			total++
			switch finding.Kind {
			case UnusedImportFinding:
				summary.UnusedImports++
				summary.RemovableLines++
			case PartiallyUnusedImportFinding:
				summary.UnusedImports++
			case FileNotFoundFinding:
				summary.BrokenImports++
			case MissingPackageFinding:
				summary.BrokenImports++
				summary.MissingPackages++
			}
		}
	}
	summary.Severity = levels.Classify(total)
	return report
}

// SavingsNote renders the removable code estimate shown under the summary.
func (s Summary) SavingsNote() string {
	if s.RemovableLines == 0 {
		return ""
	}
	return fmt.Sprintf("~%d lines of code", s.RemovableLines)
}
