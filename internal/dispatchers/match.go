package dispatchers

import (
	"errors"
	"strings"

	"github.com/footprint-tools/clikit/internal/signature"
	"github.com/footprint-tools/clikit/internal/usage"
)

// ErrHelpRequested is returned by Match when --help or -h appears before
// the end-of-options marker.
var ErrHelpRequested = errors.New("help requested")

// OptionValue is the bound state of one option. A present flag has
// HasValue false.
type OptionValue struct {
	Value    string
	HasValue bool
}

// Bound is the result of matching tokens against a signature. Options are
// keyed by their canonical long form ("--output").
type Bound struct {
	Args    map[string]string
	Options map[string]OptionValue
	Rest    []string
}

// Argument returns the value bound to a positional argument.
func (b *Bound) Argument(name string) (string, bool) {
	v, ok := b.Args[name]
	return v, ok
}

// OptionArgs renders a bound option back into argv form: ["--name=value"]
// for a value, ["--name"] for a flag, and nothing when absent.
func (b *Bound) OptionArgs(name string) []string {
	key := optionKey(name)
	v, ok := b.Options[key]
	if !ok {
		return nil
	}
	if v.HasValue {
		return []string{key + "=" + v.Value}
	}
	return []string{key}
}

func optionKey(name string) string {
	return "--" + signature.NormalizeOption(name)
}

func isHelpFlag(tok string) bool {
	return tok == "--help" || tok == "-h"
}

// Match binds tokens to sig. Tokens are read left to right: "--" turns
// every later token positional, long options may carry "=value" or take
// the next token when it does not start with "-", short flags match
// exactly and always take the next token when they expect a value.
// Anything the signature does not declare is kept in Rest when the
// signature accepts it and is an error otherwise.
func Match(tokens []string, sig *signature.Signature) (*Bound, error) {
	b := &Bound{
		Args:    make(map[string]string),
		Options: make(map[string]OptionValue),
		Rest:    []string{},
	}

	stopped := false
	next := 0

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if !stopped {
			if tok == "--" {
				stopped = true
				continue
			}
			if isHelpFlag(tok) {
				return nil, ErrHelpRequested
			}

			if strings.HasPrefix(tok, "--") {
				name, value, hasValue := strings.Cut(tok[2:], "=")
				opt, ok := sig.Option(name)
				if !ok {
					if sig.AcceptsRest {
						b.Rest = append(b.Rest, tok)
						continue
					}
					return nil, usage.UnknownOption("--" + name)
				}

				if !opt.AcceptsValue {
					if hasValue {
						return nil, usage.UnexpectedValue(opt.Flag())
					}
					b.Options[opt.Flag()] = OptionValue{}
					continue
				}

				if !hasValue {
					if i+1 >= len(tokens) || strings.HasPrefix(tokens[i+1], "-") {
						return nil, usage.MissingValue(opt.Flag())
					}
					i++
					value = tokens[i]
				}
				b.Options[opt.Flag()] = OptionValue{Value: value, HasValue: true}
				continue
			}

			if len(tok) > 1 && tok[0] == '-' {
				opt, ok := sig.Short(tok)
				if !ok {
					if sig.AcceptsRest {
						b.Rest = append(b.Rest, tok)
						continue
					}
					return nil, usage.UnknownOption(tok)
				}

				if !opt.AcceptsValue {
					b.Options[opt.Flag()] = OptionValue{}
					continue
				}

				if i+1 >= len(tokens) {
					return nil, usage.MissingValue(tok)
				}
				i++
				b.Options[opt.Flag()] = OptionValue{Value: tokens[i], HasValue: true}
				continue
			}
		}

		if next < len(sig.Arguments) {
			b.Args[sig.Arguments[next].Name] = tok
			next++
			continue
		}
		if sig.AcceptsRest {
			b.Rest = append(b.Rest, tok)
			continue
		}
		return nil, usage.UnexpectedArgument(tok)
	}

	for _, arg := range sig.Arguments {
		if !arg.Required {
			continue
		}
		if _, ok := b.Args[arg.Name]; !ok {
			return nil, usage.MissingArgument(arg.Name)
		}
	}

	return b, nil
}

// Match binds tokens to the command's signature. Usage errors carry the
// command's qualified name and usage line.
func (c *Command) Match(tokens []string) (*Bound, error) {
	b, err := Match(tokens, c.Signature)
	if err != nil {
		var uerr *usage.Error
		if errors.As(err, &uerr) {
			return nil, uerr.WithCommand(c.QualifiedName(), UsageLine(c))
		}
		return nil, err
	}
	return b, nil
}
