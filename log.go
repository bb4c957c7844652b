package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var warnLabel = color.New(color.FgYellow, color.Bold).SprintFunc()

// quietMode suppresses warnings, set by the --quiet flag.
var quietMode = false

func logWarning(format string, args ...interface{}) {
	if quietMode {
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", warnLabel("warning:"), fmt.Sprintf(format, args...))
}
