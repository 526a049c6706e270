package config

import "strings"

// Set replaces key's value in lines, keeping any inline comment, or appends
// a new key=value line. It reports whether the key already existed.
func Set(lines []string, key, value string) ([]string, bool) {
	entry := key + "=" + formatValue(value)

	for i, line := range lines {
		lineKey, rest, ok := splitEntry(line)
		if !ok || lineKey != key {
			continue
		}

		if comment := inlineComment(rest); comment != "" {
			lines[i] = entry + " " + comment
		} else {
			lines[i] = entry
		}
		return lines, true
	}

	return append(lines, entry), false
}

// Unset drops every line assigning key. It reports whether one was removed.
func Unset(lines []string, key string) ([]string, bool) {
	out := make([]string, 0, len(lines))
	removed := false

	for _, line := range lines {
		if lineKey, _, ok := splitEntry(line); ok && lineKey == key {
			removed = true
			continue
		}
		out = append(out, line)
	}

	return out, removed
}

func splitEntry(line string) (key, rest string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}
	key, rest, ok = strings.Cut(trimmed, "=")
	return strings.TrimSpace(key), rest, ok
}

func inlineComment(rest string) string {
	value := strings.TrimSpace(rest)

	if strings.HasPrefix(value, `"`) {
		if end := strings.Index(value[1:], `"`); end >= 0 {
			tail := strings.TrimSpace(value[end+2:])
			if strings.HasPrefix(tail, "#") {
				return tail
			}
			return ""
		}
	}

	if idx := commentIndex(value); idx >= 0 {
		return value[idx:]
	}
	return ""
}
