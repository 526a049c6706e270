package config

import "github.com/footprint-tools/clikit/internal/domain"

// Defaults holds the value used for every known key missing from the file.
var Defaults = func() map[string]string {
	m := make(map[string]string, len(domain.ConfigKeys))
	for _, k := range domain.ConfigKeys {
		m[k.Name] = k.Default
	}
	return m
}()

// Get returns the value for a config key.
// It checks the config file first, then falls back to the default.
// Returns the value and whether it was found (in file or defaults).
func Get(key string) (string, bool) {
	cfg, err := load()
	if err == nil {
		if value, exists := cfg[key]; exists {
			return value, true
		}
	}

	value, ok := Defaults[key]
	return value, ok
}

// GetAll returns all config values (user overrides merged with defaults).
// A missing or unreadable file yields the defaults alone.
func GetAll() (map[string]string, error) {
	result := make(map[string]string, len(Defaults))
	for key, value := range Defaults {
		result[key] = value
	}

	cfg, err := load()
	if err != nil {
		return result, nil
	}

	for key, value := range cfg {
		result[key] = value
	}

	return result, nil
}

func load() (map[string]string, error) {
	lines, err := ReadLines()
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}
