package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var osSeparator = string(os.PathSeparator)

// NormalizePathForInternal converts an OS path into the canonical internal
// form with forward slashes. Analysis and reports always use internal paths,
// os.* calls get the denormalized form back.
func NormalizePathForInternal(p string) string {
	if runtime.GOOS != "windows" {
		return p
	}
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(filepath.Clean(p))
	if len(s) > 1 && strings.HasSuffix(s, "/") {
		s = strings.TrimRight(s, "/")
	}
	return s
}

// DenormalizePathForOS converts an internal forward-slash path back to the
// OS-native representation.
func DenormalizePathForOS(internal string) string {
	if runtime.GOOS != "windows" {
		return internal
	}
	if internal == "" {
		return ""
	}
	return filepath.FromSlash(internal)
}

// NormalizeGlobPattern normalizes glob pattern separators to forward slashes.
func NormalizeGlobPattern(pattern string) string {
	if runtime.GOOS != "windows" {
		return pattern
	}
	if pattern == "" {
		return ""
	}
	return strings.ReplaceAll(pattern, "\\\\", "/")
}

func StandardiseDirPath(dir string) string {
	if strings.HasSuffix(dir, osSeparator) {
		return dir
	}
	return dir + osSeparator
}

func ResolveAbsoluteCwd(cwd string) string {
	if filepath.IsAbs(cwd) {
		return StandardiseDirPath(cwd)
	}
	binaryExecDir, _ := os.Getwd()
	return StandardiseDirPath(filepath.Join(binaryExecDir, cwd))
}
