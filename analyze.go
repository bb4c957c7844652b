package main

import (
	"os"
	"runtime"
	"sync"
)

// Analyzer wires discovery, parsing, usage detection and resolution into one
// pass over a project.
type Analyzer struct {
	cwd      string
	config   *ImportsConfig
	manifest *PackageManifest
	resolver *PathResolver
	dirIndex *DirIndex
	warnings []string
}

func NewAnalyzer(cwd string, config *ImportsConfig) (*Analyzer, error) {
	cwd = NormalizePathForInternal(cwd)

	manifest, err := LoadPackageManifest(cwd)
	if err != nil {
		return nil, err
	}

	installed := manifest.InstalledPackages(*config.CheckDevDependencies)
	for name := range FindWorkspacePackageNames(manifest, cwd) {
		installed[name] = true
	}

	return &Analyzer{
		cwd:      cwd,
		config:   config,
		manifest: manifest,
		resolver: NewPathResolver(cwd, installed, config.ExcludedPatterns),
		dirIndex: NewDirIndex(),
		warnings: manifest.ValidateDeclaredRanges(),
	}, nil
}

// DiscoverFiles walks the project for analyzable sources, honoring gitignore
// files from cwd up to the repository root.
func (a *Analyzer) DiscoverFiles() []string {
	matchers := FindAndProcessGitIgnoreFilesUpToRepoRoot(StandardiseDirPath(DenormalizePathForOS(a.cwd)))
	return GetFiles(DenormalizePathForOS(a.cwd), []string{}, matchers)
}

// AnalyzeFile runs the full per-file pipeline. Read errors are reported in
// the FileReport so one unreadable file does not abort the run.
func (a *Analyzer) AnalyzeFile(filePath string) FileReport {
	report := FileReport{FilePath: filePath}

	code, err := os.ReadFile(DenormalizePathForOS(filePath))
	if err != nil {
		report.Err = err.Error()
		return report
	}

	records := ParseImports(code, filePath)
	report.TotalImports = len(records)
	if len(records) == 0 {
		return report
	}

	resolutions := make([]Resolution, len(records))
	for i, rec := range records {
		resolutions[i] = a.resolver.Resolve(rec.Specifier, filePath)
	}

	usage := DetectUsage(code, records)
	report.Findings = buildFileFindings(records, usage, resolutions, a.dirIndex)
	return report
}

// Run analyzes files and aggregates the project report. File order in the
// report matches the input order regardless of worker scheduling.
func (a *Analyzer) Run(files []string, sequential bool) *ProjectReport {
	reports := make([]FileReport, len(files))

	if sequential || len(files) < a.config.ParallelThreshold {
		for i, filePath := range files {
			reports[i] = a.AnalyzeFile(filePath)
		}
	} else {
		workers := runtime.GOMAXPROCS(0) * 2
		sem := make(chan struct{}, workers)
		var wg sync.WaitGroup

		for i, filePath := range files {
			wg.Add(1)
			sem <- struct{}{}
			go func(idx int, path string) {
				defer wg.Done()
				reports[idx] = a.AnalyzeFile(path)
				<-sem
			}(i, filePath)
		}
		wg.Wait()
	}

	return AggregateReport(reports, a.warnings, *a.config.SeverityLevels)
}
