package actions

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/footprint-tools/clikit/internal/dispatchers"
)

const defaultLogLimit = 50

// logLinePattern matches "[2026-01-02 15:04:05] LEVEL [invocation]: message";
// the invocation tag is optional.
var logLinePattern = regexp.MustCompile(`^\[([^\]]+)\]\s+(DEBUG|INFO|WARN|ERROR)(?:\s+\[([^\]]+)\])?:\s?(.*)$`)

type logEntry struct {
	Timestamp  string `json:"timestamp,omitempty"`
	Level      string `json:"level,omitempty"`
	Invocation string `json:"invocation,omitempty"`
	Message    string `json:"message"`
}

func showLogs(in *dispatchers.Input, deps Deps) error {
	if in.Flag("clear") {
		if err := os.WriteFile(deps.LogPath, nil, 0600); err != nil {
			return fmt.Errorf("clear log file: %w", err)
		}
		_, _ = deps.Output.Println(deps.Styler.Success("Log file cleared"))
		return nil
	}

	limit, err := in.IntOption("limit", defaultLogLimit)
	if err != nil {
		return err
	}
	if limit <= 0 {
		limit = defaultLogLimit
	}

	content, err := os.ReadFile(deps.LogPath)
	if errors.Is(err, os.ErrNotExist) {
		content, err = nil, nil
	}
	if err != nil {
		return fmt.Errorf("read log file: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(content) == 0 {
		lines = nil
	}
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	if in.Flag("json") {
		entries := make([]logEntry, 0, len(lines))
		for _, line := range lines {
			entries = append(entries, parseLogLine(line))
		}
		return printJSON(deps.Output, entries)
	}

	if len(lines) == 0 {
		_, _ = deps.Output.Println(deps.Styler.Muted("Log file is empty: " + deps.LogPath))
		return nil
	}

	for _, line := range lines {
		_, _ = deps.Output.Println(colorizeLogLine(line, deps))
	}
	return nil
}

func parseLogLine(line string) logEntry {
	m := logLinePattern.FindStringSubmatch(line)
	if m == nil {
		return logEntry{Message: line}
	}
	return logEntry{Timestamp: m[1], Level: m[2], Invocation: m[3], Message: m[4]}
}

func colorizeLogLine(line string, deps Deps) string {
	switch parseLogLine(line).Level {
	case "ERROR":
		return deps.Styler.Error(line)
	case "WARN":
		return deps.Styler.Warning(line)
	case "INFO":
		return deps.Styler.Info(line)
	case "DEBUG":
		return deps.Styler.Muted(line)
	default:
		return line
	}
}
