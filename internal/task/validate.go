package task

import (
	"strings"

	"github.com/twiced-technology-gmbh/weightboard/internal/clierr"
)

// ParseID converts a command-line argument into an ID.
func ParseID(input string) (ID, error) {
	if strings.TrimSpace(input) == "" {
		return ID{}, ValidateTaskID(input)
	}
	return NewID(input), nil
}

// ValidateTaskID returns a CLIError for invalid task ID input.
func ValidateTaskID(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", input).
		WithDetails(map[string]any{"input": input})
}

// NotFound returns a CLIError for an ID missing from the latest snapshot.
func NotFound(id ID) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task %s not found", id).
		WithDetails(map[string]any{"id": id.String()})
}
