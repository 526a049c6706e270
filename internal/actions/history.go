package actions

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/footprint-tools/clikit/internal/dispatchers"
	"github.com/footprint-tools/clikit/internal/domain"
	"github.com/footprint-tools/clikit/internal/format"
)

const defaultHistoryLimit = 20

var errHistoryUnavailable = errors.New("history database is unavailable (see 'cli logs')")

type historyEntry struct {
	ID         string    `json:"id"`
	Command    string    `json:"command"`
	Argv       []string  `json:"argv"`
	ExitCode   int       `json:"exit_code"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
}

func showHistory(in *dispatchers.Input, deps Deps) error {
	if deps.History == nil {
		return errHistoryUnavailable
	}

	if in.Flag("clear") {
		n, err := deps.History.Clear()
		if err != nil {
			return err
		}
		_, _ = deps.Output.Println(deps.Styler.Success(fmt.Sprintf("Removed %d %s", n, plural(n, "entry", "entries"))))
		return nil
	}

	limit, err := in.IntOption("limit", configInt(deps.Config, "history_limit", defaultHistoryLimit))
	if err != nil {
		return err
	}
	if limit < 0 {
		return fmt.Errorf("option '--limit' must not be negative, got %d", limit)
	}

	entries, err := deps.History.Recent(limit)
	if err != nil {
		return err
	}

	if in.Flag("json") {
		out := make([]historyEntry, 0, len(entries))
		for _, inv := range entries {
			out = append(out, historyEntry{
				ID:         inv.ID,
				Command:    inv.Command,
				Argv:       inv.Argv,
				ExitCode:   inv.ExitCode,
				StartedAt:  inv.StartedAt,
				DurationMS: inv.Duration.Milliseconds(),
			})
		}
		return printJSON(deps.Output, out)
	}

	if len(entries) == 0 {
		_, _ = deps.Output.Println(deps.Styler.Muted("No commands recorded yet"))
		return nil
	}

	deps.Output.Pager(renderHistory(entries, deps))
	return nil
}

func renderHistory(entries []domain.Invocation, deps Deps) string {
	var get format.Getter
	if deps.Config != nil {
		get = deps.Config.Get
	}
	f := format.New(get)

	var b strings.Builder
	for _, inv := range entries {
		code := fmt.Sprintf("%3d", inv.ExitCode)
		if inv.ExitCode == 0 {
			code = deps.Styler.Success(code)
		} else {
			code = deps.Styler.Error(code)
		}

		fmt.Fprintf(&b, "%s  %s  %7s  %s\n",
			deps.Styler.Muted(f.DateTime(inv.StartedAt.Local())),
			code,
			format.Duration(inv.Duration),
			commandLine(inv.Argv),
		)
	}
	return b.String()
}

// commandLine joins argv, quoting the words a shell would split.
func commandLine(argv []string) string {
	words := make([]string, len(argv))
	for i, w := range argv {
		if w == "" || strings.ContainsAny(w, " \t\n\"'") {
			w = strconv.Quote(w)
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}

func configInt(cfg domain.ConfigProvider, key string, def int) int {
	if cfg == nil {
		return def
	}
	v, ok := cfg.Get(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return def
	}
	return n
}

func printJSON(out domain.OutputWriter, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = out.Println(string(data))
	return err
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
