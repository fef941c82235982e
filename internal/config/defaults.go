// Package config provides configuration loading and defaults for repodash.
package config

import "time"

// DefaultRoot is the directory whose immediate children are scanned.
const DefaultRoot = "~/dev"

// DefaultExclude lists directory names never treated as projects.
var DefaultExclude = []string{"_projects_dashboard", "node_modules", ".venv", "__pycache__", ".git"}

// DefaultConfigDir is the default location for repodash configuration.
const DefaultConfigDir = "~/.config/repodash"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultWorkers is the number of projects scanned concurrently.
const DefaultWorkers = 4

// DefaultGitTimeout bounds each git query.
const DefaultGitTimeout = 5 * time.Second

// DefaultRules names the rule generation used by derive and report.
const DefaultRules = "v3"

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}

// Environment variables that override the file configuration.
const (
	EnvRoot    = "DEV_ROOT"
	EnvExclude = "EXCLUDE_DIRS"
)
