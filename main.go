package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var Version = "0.1.0"

// exit code when the analysis finds problems, distinct from usage errors
const exitCodeFindings = 2

var (
	currentDir, _ = os.Getwd()
	rootCmd       = &cobra.Command{
		Use:   "import-sniff",
		Short: "Find unused and broken imports in JavaScript/TypeScript projects",
		Long: `Scans a JavaScript or TypeScript project for import statements that are
never used and imports that point at missing files or uninstalled packages,
with fix suggestions for close matches.`,
		Version: Version,
	}
)

var docsCmd = &cobra.Command{
	Use:   "doc-gen",
	Short: "Generate CLI documentation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := doc.GenMarkdownTree(rootCmd, "./docs"); err != nil {
			log.Fatal(err)
		}
		return nil
	},
}

var (
	checkCwd        string
	checkConfigPath string
	checkJSON       bool
	checkQuiet      bool
	checkSequential bool
	checkFix        bool
	checkNoExitCode bool
)

var checkCmd = &cobra.Command{
	Use:     "check",
	Short:   "Analyze project imports and report problems",
	Example: "import-sniff check --cwd ./packages/app",
	RunE: func(cmd *cobra.Command, args []string) error {
		quietMode = checkQuiet
		cwd := ResolveAbsoluteCwd(checkCwd)

		configPath := checkConfigPath
		explicitConfig := configPath != ""
		if !explicitConfig {
			configPath = cwd
		}
		config, err := LoadImportsConfig(configPath, explicitConfig)
		if err != nil {
			return err
		}

		analyzer, err := NewAnalyzer(cwd, config)
		if err != nil {
			return err
		}

		files := analyzer.DiscoverFiles()
		report := analyzer.Run(files, checkSequential)

		if checkFix || config.AutoFix {
			for _, file := range report.Files {
				hasRemovable := false
				for _, finding := range file.Findings {
					if finding.Kind == UnusedImportFinding {
						hasRemovable = true
						break
					}
				}
				if !hasRemovable {
					continue
				}
				if _, err := analyzer.FixFile(file.FilePath); err != nil {
					logWarning("could not fix %s: %v", file.FilePath, err)
				}
			}
		}

		if checkJSON {
			if err := PrintReportJSON(cmd.OutOrStdout(), report, cwd); err != nil {
				return err
			}
		} else {
			PrintReport(cmd.OutOrStdout(), report, cwd)
		}

		if report.HasFindings() && !checkNoExitCode {
			os.Exit(exitCodeFindings)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkCwd, "cwd", "c", currentDir,
		"Working directory for the command")
	checkCmd.Flags().StringVar(&checkConfigPath, "config", "",
		"Path to config file (default: ./import-sniff.config.json)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false,
		"Emit the report as JSON")
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false,
		"Suppress warnings")
	checkCmd.Flags().BoolVar(&checkSequential, "sequential", false,
		"Analyze files one by one even for large projects")
	checkCmd.Flags().BoolVar(&checkFix, "fix", false,
		"Remove fully unused import statements from source files")
	checkCmd.Flags().BoolVar(&checkNoExitCode, "zero-exit-code", false,
		"Use this flag to always return zero exit code")

	rootCmd.AddCommand(checkCmd, docsCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
