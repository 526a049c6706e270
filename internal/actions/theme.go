package actions

import (
	"fmt"
	"slices"
	"strings"

	"github.com/footprint-tools/clikit/internal/dispatchers"
	"github.com/footprint-tools/clikit/internal/ui/style"
)

func theme(in *dispatchers.Input, deps Deps) error {
	name, ok := in.Argument("name")
	if !ok {
		return listThemes(deps)
	}

	if !slices.Contains(style.ThemeNames(), name) {
		return fmt.Errorf("unknown theme '%s' (available: %s)", name, strings.Join(style.BaseThemeNames, ", "))
	}
	if err := deps.Config.Set("theme", name); err != nil {
		return err
	}
	_, _ = deps.Output.Printf("theme set to %s\n", deps.Styler.Success(name))
	return nil
}

func listThemes(deps Deps) error {
	current, _ := deps.Config.Get("theme")
	if current == "" {
		current = "default"
	}

	var b strings.Builder
	b.WriteString("Available themes (* = current)\n\n")
	for _, name := range style.ThemeNames() {
		marker := "  "
		if name == current {
			marker = deps.Styler.Success("* ")
		}
		fmt.Fprintf(&b, "%s%-16s%s\n", marker, name, themePreview(name, deps))
	}
	b.WriteString("\nUse 'cli theme <name>' to change it.\n")

	_, err := deps.Output.Printf("%s", b.String())
	return err
}

// themePreview renders one sample word per semantic color of the theme.
func themePreview(name string, deps Deps) string {
	words := []string{"success", "warning", "error", "info", "muted"}
	if !deps.Styler.Enabled() {
		return strings.Join(words, " ")
	}

	c := style.Themes[style.ResolveThemeName(name)]
	for i, color := range []string{c.Success, c.Warning, c.Error, c.Info, c.Muted} {
		words[i] = style.Lip(color).Render(words[i])
	}
	return strings.Join(words, " ")
}
