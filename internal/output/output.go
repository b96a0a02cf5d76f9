// Package output prints dashboard snapshots for the CLI.
package output

import (
	"os"
)

// Format represents an output format.
type Format int

// Output formats. The zero value means table.
const (
	FormatAuto Format = iota
	FormatJSON
	FormatTable
	FormatCompact
)

// EnvOutput selects a format when no flag does.
const EnvOutput = "WEIGHTBOARD_OUTPUT"

// Detect picks the format from flags, then EnvOutput, then table.
// --json beats --compact beats --table.
func Detect(jsonFlag, tableFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case compactFlag:
		return FormatCompact
	case tableFlag:
		return FormatTable
	}
	return formatFromEnv(os.Getenv(EnvOutput))
}

func formatFromEnv(v string) Format {
	switch v {
	case "json":
		return FormatJSON
	case "compact", "oneline":
		return FormatCompact
	default:
		return FormatTable
	}
}
