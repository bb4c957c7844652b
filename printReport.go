package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	filePathColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	unusedColor    = color.New(color.FgYellow).SprintFunc()
	brokenColor    = color.New(color.FgRed).SprintFunc()
	hintColor      = color.New(color.FgGreen).SprintFunc()
	dimColor       = color.New(color.Faint).SprintFunc()
	severityColors = map[string]func(a ...interface{}) string{
		"error":   color.New(color.FgRed, color.Bold).SprintFunc(),
		"warning": color.New(color.FgYellow, color.Bold).SprintFunc(),
		"none":    color.New(color.FgGreen).SprintFunc(),
	}
)

func relativeToCwd(filePath string, cwd string) string {
	cleaned := strings.Replace(filePath, cwd, "", 1)
	return strings.TrimPrefix(cleaned, "/")
}

func describeFinding(finding Finding) string {
	switch finding.Kind {
	case UnusedImportFinding:
		return unusedColor(fmt.Sprintf("unused import '%s'", strings.Join(finding.UnusedNames, ", ")))
	case PartiallyUnusedImportFinding:
		return unusedColor(fmt.Sprintf("unused binding%s '%s'", plural(len(finding.UnusedNames)), strings.Join(finding.UnusedNames, ", ")))
	case FileNotFoundFinding:
		return brokenColor(fmt.Sprintf("cannot resolve '%s'", finding.Specifier))
	default:
		return brokenColor(fmt.Sprintf("package '%s' is not installed", finding.InstallHint))
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// PrintReport renders the human-readable report, findings grouped by file
// followed by a summary and actionable hints.
func PrintReport(w io.Writer, report *ProjectReport, cwd string) {
	cwdInternal := NormalizePathForInternal(cwd)

	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "%s %s\n", unusedColor("warning:"), warning)
	}
	if len(report.Warnings) > 0 {
		fmt.Fprintln(w)
	}

	for _, file := range report.Files {
		if !file.HasFindings() && file.Err == "" {
			continue
		}

		fmt.Fprintln(w, filePathColor(relativeToCwd(file.FilePath, cwdInternal)))

		if file.Err != "" {
			fmt.Fprintf(w, "  %s\n\n", brokenColor("could not analyze: "+file.Err))
			continue
		}

		for _, finding := range file.Findings {
			fmt.Fprintf(w, "  %s %s\n", dimColor(fmt.Sprintf("%d:", finding.Line)), describeFinding(finding))
			fmt.Fprintf(w, "     %s\n", dimColor(firstLine(finding.Statement)))
			if len(finding.Suggestions) > 0 {
				alternatives := make([]string, 0, len(finding.Suggestions))
				for _, s := range finding.Suggestions {
					alternatives = append(alternatives, fmt.Sprintf("'%s'", s.Specifier))
				}
				fmt.Fprintf(w, "     %s %s\n", hintColor("did you mean:"), strings.Join(alternatives, ", "))
			}
		}
		fmt.Fprintln(w)
	}

	summary := report.Summary
	fmt.Fprintf(w, "Analyzed %d file%s, %d with problems\n", summary.FilesAnalyzed, plural(summary.FilesAnalyzed), summary.FilesWithFindings)
	if summary.UnusedImports > 0 {
		line := fmt.Sprintf("  %d unused import%s", summary.UnusedImports, plural(summary.UnusedImports))
		if note := summary.SavingsNote(); note != "" {
			line += dimColor(" (removable: " + note + ")")
		}
		fmt.Fprintln(w, line)
	}
	if summary.BrokenImports > 0 {
		fmt.Fprintf(w, "  %d broken import%s\n", summary.BrokenImports, plural(summary.BrokenImports))
	}

	if missing := report.MissingPackageNames(); len(missing) > 0 {
		fmt.Fprintf(w, "\n%s npm install %s\n", hintColor("Run:"), strings.Join(missing, " "))
	}

	severityColor, ok := severityColors[summary.Severity]
	if !ok {
		severityColor = fmt.Sprint
	}
	fmt.Fprintf(w, "\nSeverity: %s\n", severityColor(summary.Severity))
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx] + " ..."
	}
	return text
}

// PrintReportJSON emits the report as indented JSON with file paths made
// relative to cwd.
func PrintReportJSON(w io.Writer, report *ProjectReport, cwd string) error {
	cwdInternal := NormalizePathForInternal(cwd)

	out := *report
	out.Files = make([]FileReport, len(report.Files))
	for i, file := range report.Files {
		out.Files[i] = file
		out.Files[i].FilePath = relativeToCwd(file.FilePath, cwdInternal)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&out)
}
