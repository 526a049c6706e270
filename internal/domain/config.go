package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ConfigKey defines a configuration key with its metadata.
type ConfigKey struct {
	Name        string
	Default     string
	Description string
	Section     string   // Section for grouping in `cli config` output
	Hidden      bool     // Hidden keys are not shown in config list
	HideIfEmpty bool     // Only show in config list if explicitly set
	Values      []string // Accepted values; empty accepts anything
	Numeric     bool     // Value must be a non-negative integer
}

var boolValues = []string{"true", "false"}

// Validate checks value against the key's accepted values.
func (k ConfigKey) Validate(value string) error {
	if len(k.Values) > 0 && !slices.Contains(k.Values, value) {
		return fmt.Errorf("invalid value %q for '%s' (expected %s)", value, k.Name, strings.Join(k.Values, ", "))
	}
	if k.Numeric {
		if n, err := strconv.Atoi(value); err != nil || n < 0 {
			return fmt.Errorf("invalid value %q for '%s' (expected a non-negative number)", value, k.Name)
		}
	}
	return nil
}

// ConfigKeys defines all available configuration keys.
// Order determines display order in `cli config`.
var ConfigKeys = []ConfigKey{
	// Display
	{
		Name:        "color",
		Default:     "auto",
		Description: "Colored output: auto, always, never",
		Section:     "Display",
		Values:      []string{"auto", "always", "never"},
	},
	{
		Name:        "theme",
		Default:     "default",
		Description: "Color theme: default, mono, contrast (-dark/-light to pin)",
		Section:     "Display",
	},
	{
		Name:        "pager",
		Default:     "less -FRSX",
		Description: "Pager command for help output (\"cat\" disables paging)",
		Section:     "Display",
	},
	{
		Name:        "display_date",
		Default:     "Jan 02",
		Description: "Date format: dd/mm/yyyy, mm/dd/yyyy, yyyy-mm-dd, or Go format",
		Section:     "Display",
	},
	{
		Name:        "display_time",
		Default:     "24h",
		Description: "Time format: 12h, 24h",
		Section:     "Display",
		Values:      []string{"12h", "24h"},
	},
	// Logging
	{
		Name:        "enable_log",
		Default:     "true",
		Description: "Enable logging to file (true/false)",
		Section:     "Logging",
		Values:      boolValues,
	},
	{
		Name:        "log_level",
		Default:     "warn",
		Description: "Minimum log level: debug, info, warn, error",
		Section:     "Logging",
		Values:      []string{"debug", "info", "warn", "error"},
	},
	// History
	{
		Name:        "history",
		Default:     "true",
		Description: "Record every command run (true/false)",
		Section:     "History",
		Values:      boolValues,
	},
	{
		Name:        "history_limit",
		Default:     "20",
		Description: "Entries shown by `cli history` when --limit is not given",
		Section:     "History",
		Numeric:     true,
	},
	// Color overrides
	{
		Name:        "color_success",
		Description: "Override success color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_warning",
		Description: "Override warning color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_error",
		Description: "Override error color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_info",
		Description: "Override info color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_muted",
		Description: "Override muted color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_header",
		Description: "Override header color from current theme (ANSI 0-255 or \"bold\")",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
}

// LookupConfigKey returns the key definition for name.
func LookupConfigKey(name string) (ConfigKey, bool) {
	for _, k := range ConfigKeys {
		if k.Name == name {
			return k, true
		}
	}
	return ConfigKey{}, false
}
