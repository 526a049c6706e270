package signature

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const restToken = "..."

var (
	tokenPattern    = regexp.MustCompile(`\{[^}]*\}|\.\.\.|[^\s{}]+`)
	optionPattern   = regexp.MustCompile(`^--([A-Za-z][A-Za-z0-9-]*)(=?)(.*)$`)
	argumentPattern = regexp.MustCompile(`^([A-Za-z]\w*)(\??)(.*)$`)
)

// reservedOptions are handled by the matcher before option lookup, so a
// declared option with one of these names could never be reached.
var reservedOptions = map[string]bool{
	"help": true,
}

// Error is returned when a signature string is malformed.
type Error struct {
	Source  string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid signature %q: %s", e.Source, e.Message)
}

var _ error = (*Error)(nil)

// Compile parses a signature string into a Signature.
func Compile(source string) (*Signature, error) {
	fail := func(format string, args ...any) (*Signature, error) {
		return nil, &Error{Source: source, Message: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(source) == "" {
		return fail("signature is empty")
	}
	if strings.Count(source, "{") != strings.Count(source, "}") {
		return fail("unbalanced braces")
	}

	tokens := tokenPattern.FindAllString(source, -1)
	if len(tokens) == 0 {
		return fail("signature is empty")
	}

	name := tokens[0]
	if strings.HasPrefix(name, "{") || name == restToken {
		return fail("signature must start with a command name")
	}

	sig := &Signature{Source: source, Name: name}
	seenOptional := false

	for _, tok := range tokens[1:] {
		switch {
		case tok == restToken:
			sig.AcceptsRest = true

		case strings.HasPrefix(tok, "{"):
			content := strings.TrimSpace(tok[1 : len(tok)-1])
			if strings.HasPrefix(content, "--") {
				opt, err := parseOption(content)
				if err != nil {
					return fail("%s", err)
				}
				sig.Options = append(sig.Options, opt)
				continue
			}

			arg, err := parseArgument(content)
			if err != nil {
				return fail("%s", err)
			}
			if arg.Required && seenOptional {
				return fail("required argument '%s' cannot follow an optional argument", arg.Name)
			}
			if !arg.Required {
				seenOptional = true
			}
			sig.Arguments = append(sig.Arguments, arg)

		default:
			return fail("unexpected word '%s' after command name (command names are a single word)", tok)
		}
	}

	if dup := duplicateArgument(sig.Arguments); dup != "" {
		return fail("duplicate argument '%s'", dup)
	}
	if dup := duplicateOption(sig.Options); dup != "" {
		return fail("duplicate option '--%s'", dup)
	}
	dropSharedShortFlags(sig.Options)

	return sig, nil
}

// MustCompile is like Compile but panics on error. Intended for
// signatures that are fixed at build time.
func MustCompile(source string) *Signature {
	sig, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return sig
}

func parseOption(content string) (OptionSpec, error) {
	m := optionPattern.FindStringSubmatch(content)
	if m == nil {
		return OptionSpec{}, fmt.Errorf("invalid option '{%s}'", content)
	}

	declared := m[1]
	desc, ok := description(m[3], m[2] == "=")
	if !ok {
		return OptionSpec{}, fmt.Errorf("invalid option '{%s}'", content)
	}
	if err := checkSegments(declared); err != nil {
		return OptionSpec{}, err
	}

	long := strings.ToLower(declared)
	if reservedOptions[long] {
		return OptionSpec{}, fmt.Errorf("option '--%s' is reserved", long)
	}

	return OptionSpec{
		Long:         long,
		Short:        shortFlag(declared),
		AcceptsValue: m[2] == "=",
		Description:  desc,
	}, nil
}

func parseArgument(content string) (ArgumentSpec, error) {
	m := argumentPattern.FindStringSubmatch(content)
	if m == nil {
		return ArgumentSpec{}, fmt.Errorf("invalid argument '{%s}'", content)
	}
	desc, ok := description(m[3], m[2] == "?")
	if !ok {
		return ArgumentSpec{}, fmt.Errorf("invalid argument '{%s}'", content)
	}
	return ArgumentSpec{
		Name:        m[1],
		Required:    m[2] != "?",
		Description: desc,
	}, nil
}

// description extracts the free text after a name. Directly after the
// name it must be separated by whitespace or a colon; after a trailing
// "=" or "?" marker it may follow immediately.
func description(rest string, marked bool) (string, bool) {
	if rest == "" {
		return "", true
	}
	trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)
	if !marked && trimmed == rest && !strings.HasPrefix(rest, ":") {
		return "", false
	}
	trimmed = strings.TrimPrefix(trimmed, ":")
	return strings.TrimSpace(trimmed), true
}

// checkSegments rejects uppercase letters anywhere but the first position
// of a hyphen-separated segment.
func checkSegments(declared string) error {
	for _, seg := range strings.Split(declared, "-") {
		for i, r := range seg {
			if i > 0 && unicode.IsUpper(r) {
				return fmt.Errorf("option '--%s': uppercase letters are only allowed at start of segment", declared)
			}
		}
	}
	return nil
}

// shortFlag derives the alias from the uppercase segment initials.
func shortFlag(declared string) string {
	var b strings.Builder
	for _, seg := range strings.Split(declared, "-") {
		if seg == "" {
			continue
		}
		r := rune(seg[0])
		if unicode.IsUpper(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "-" + b.String()
}

// dropSharedShortFlags keeps a derived alias on the first option that
// declares it and clears it on later ones.
func dropSharedShortFlags(opts []OptionSpec) {
	taken := make(map[string]bool, len(opts))
	for i := range opts {
		short := opts[i].Short
		if short == "" {
			continue
		}
		if taken[short] {
			opts[i].Short = ""
			continue
		}
		taken[short] = true
	}
}

func duplicateArgument(args []ArgumentSpec) string {
	seen := make(map[string]bool, len(args))
	for _, a := range args {
		if seen[a.Name] {
			return a.Name
		}
		seen[a.Name] = true
	}
	return ""
}

func duplicateOption(opts []OptionSpec) string {
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		key := strings.ToLower(o.Long)
		if seen[key] {
			return key
		}
		seen[key] = true
	}
	return ""
}
