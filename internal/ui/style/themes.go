package style

import (
	"os"
	"slices"
	"strings"

	"github.com/muesli/termenv"
)

// ColorConfig holds all configurable colors for the UI.
// Values can be ANSI color numbers (0-255) or "bold" for bold styling.
type ColorConfig struct {
	Success string
	Warning string
	Error   string
	Info    string
	Muted   string
	Header  string
}

// BaseThemeNames lists available theme bases (auto-detects dark/light).
var BaseThemeNames = []string{
	"default",
	"mono",
	"contrast",
}

// Themes contains the built-in color themes.
// Dark themes use bright colors, light themes use dark ones.
var Themes = map[string]ColorConfig{
	"default-dark": {
		Success: "10",
		Warning: "11",
		Error:   "9",
		Info:    "14",
		Muted:   "245",
		Header:  "bold",
	},
	"default-light": {
		Success: "28",
		Warning: "130",
		Error:   "124",
		Info:    "27",
		Muted:   "240",
		Header:  "bold",
	},
	"mono-dark": {
		Success: "252",
		Warning: "250",
		Error:   "255",
		Info:    "255",
		Muted:   "243",
		Header:  "bold",
	},
	"mono-light": {
		Success: "236",
		Warning: "238",
		Error:   "232",
		Info:    "232",
		Muted:   "245",
		Header:  "bold",
	},
	"contrast-dark": {
		Success: "46",
		Warning: "226",
		Error:   "196",
		Info:    "51",
		Muted:   "250",
		Header:  "bold",
	},
	"contrast-light": {
		Success: "22",
		Warning: "94",
		Error:   "88",
		Info:    "18",
		Muted:   "238",
		Header:  "bold",
	},
}

// ThemeNames returns the base names followed by every pinned variant.
func ThemeNames() []string {
	names := slices.Clone(BaseThemeNames)
	for _, base := range BaseThemeNames {
		names = append(names, base+"-dark", base+"-light")
	}
	return names
}

// colorConfigKeys maps config key names to ColorConfig field names.
var colorConfigKeys = map[string]string{
	"color_success": "Success",
	"color_warning": "Warning",
	"color_error":   "Error",
	"color_info":    "Info",
	"color_muted":   "Muted",
	"color_header":  "Header",
}

var termenvDark = termenv.HasDarkBackground

// darkBackground is replaced in tests.
var darkBackground = termenvDark

// ResolveThemeName takes a theme name and returns the full theme name.
// If the name doesn't have a -dark/-light suffix, it appends one based
// on terminal background detection.
func ResolveThemeName(name string) string {
	if strings.HasSuffix(name, "-dark") || strings.HasSuffix(name, "-light") {
		return name
	}

	if darkBackground() {
		return name + "-dark"
	}
	return name + "-light"
}

// LoadColorConfig builds a ColorConfig from the given configuration map.
// Resolution priority:
//  1. Environment variable (CLIKIT_COLOR_*)
//  2. Config file value (color_*)
//  3. Theme value (CLIKIT_THEME, then the "theme" key)
//  4. Default theme for the detected background
func LoadColorConfig(cfg map[string]string) ColorConfig {
	themeName := "default"
	if envTheme := os.Getenv("CLIKIT_THEME"); envTheme != "" {
		themeName = envTheme
	} else if cfgTheme := cfg["theme"]; cfgTheme != "" {
		themeName = cfgTheme
	}

	result, ok := Themes[ResolveThemeName(themeName)]
	if !ok {
		result = Themes["default-dark"]
	}

	for configKey, fieldName := range colorConfigKeys {
		if envVal := os.Getenv("CLIKIT_" + strings.ToUpper(configKey)); envVal != "" {
			setColorField(&result, fieldName, envVal)
			continue
		}

		if cfgVal := cfg[configKey]; cfgVal != "" {
			setColorField(&result, fieldName, cfgVal)
		}
	}

	return result
}

// setColorField sets a field on ColorConfig by name.
func setColorField(c *ColorConfig, field, value string) {
	switch field {
	case "Success":
		c.Success = value
	case "Warning":
		c.Warning = value
	case "Error":
		c.Error = value
	case "Info":
		c.Info = value
	case "Muted":
		c.Muted = value
	case "Header":
		c.Header = value
	}
}
