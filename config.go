package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/tidwall/jsonc"
)

var configFileName = "import-sniff.config.json"

type ImportsConfig struct {
	// Packages that may appear in imports without a usage or install check,
	// matched by glob against the package name.
	ExcludedPatterns []string `json:"excluded_patterns"`
	// Counts devDependencies as installed.
	CheckDevDependencies *bool `json:"check_dev_dependencies"`
	// Rewrites files by removing fully unused import statements.
	AutoFix bool `json:"auto_fix"`
	// Minimum file count before the worker pool kicks in.
	ParallelThreshold int             `json:"parallel_threshold"`
	SeverityLevels    *SeverityLevels `json:"severity_levels"`
}

func DefaultImportsConfig() *ImportsConfig {
	checkDev := true
	levels := DefaultSeverityLevels()
	return &ImportsConfig{
		ExcludedPatterns:     []string{"react", "@types/*"},
		CheckDevDependencies: &checkDev,
		AutoFix:              false,
		ParallelThreshold:    50,
		SeverityLevels:       &levels,
	}
}

// LoadImportsConfig reads the config file at configPath, or the default file
// name inside it when configPath is a directory. A missing default config is
// not an error, defaults apply. Unset fields fall back to defaults.
func LoadImportsConfig(configPath string, explicit bool) (*ImportsConfig, error) {
	defaults := DefaultImportsConfig()

	fileInfo, err := os.Stat(configPath)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return defaults, nil
		}
		return nil, err
	}

	actualPath := configPath
	if fileInfo.IsDir() {
		actualPath = filepath.Join(configPath, configFileName)
		if _, err := os.Stat(actualPath); os.IsNotExist(err) {
			return defaults, nil
		}
	}

	content, err := os.ReadFile(actualPath)
	if err != nil {
		return nil, err
	}

	var config ImportsConfig
	if err := json.Unmarshal(jsonc.ToJSON(content), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", actualPath, err)
	}

	if config.ExcludedPatterns == nil {
		config.ExcludedPatterns = defaults.ExcludedPatterns
	}
	for i, pattern := range config.ExcludedPatterns {
		if _, err := glob.Compile(pattern); err != nil {
			return nil, fmt.Errorf("excluded_patterns[%d]: invalid pattern '%s': %w", i, pattern, err)
		}
	}
	if config.CheckDevDependencies == nil {
		config.CheckDevDependencies = defaults.CheckDevDependencies
	}
	if config.ParallelThreshold <= 0 {
		config.ParallelThreshold = defaults.ParallelThreshold
	}
	if config.SeverityLevels == nil {
		config.SeverityLevels = defaults.SeverityLevels
	}

	return &config, nil
}
