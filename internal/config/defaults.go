// Package config handles dashboard client configuration.
package config

const (
	// DefaultDir is the default config directory name.
	DefaultDir = "weightboard"
	// DefaultBaseURL is the store address used when nothing is configured.
	DefaultBaseURL = "http://localhost:8000"
	// DefaultAPIPath is the path prefix of the store's endpoints.
	DefaultAPIPath = "/api"
	// DefaultLogFile is the TUI log file, relative to the config directory.
	DefaultLogFile = "weightboard.log"
	// DefaultRefreshInterval is how often the TUI repaints the last snapshot.
	DefaultRefreshInterval = "1m"

	// ConfigFileName is the name of the config file within the config directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 3

	// EnvBaseURL overrides api.base_url when set.
	EnvBaseURL = "WEIGHTBOARD_URL"
)

// DefaultDateColors are the ANSI 256 colors of the due-date pills.
var DefaultDateColors = DateColors{
	Today:    "203", // red
	Tomorrow: "214", // orange
	Week:     "75",  // blue
}
