// Package signature compiles declarative command signatures such as
//
//	build {target} {env? : Target environment} {--Dry-run} {--output= Output dir} ...
//
// into a typed schema used by the argv matcher and the help renderer.
package signature

import "strings"

// Signature is the compiled form of a signature string.
type Signature struct {
	Source      string
	Name        string
	Arguments   []ArgumentSpec
	Options     []OptionSpec
	AcceptsRest bool
}

// ArgumentSpec describes one positional argument.
type ArgumentSpec struct {
	Name        string
	Required    bool
	Description string
}

// OptionSpec describes one named option. Long is stored lowercased and
// without the leading dashes; Short is either empty or a single-dash alias
// derived from the declared capitalization (e.g. "-FB" for "--Foo-Bar").
type OptionSpec struct {
	Long         string
	Short        string
	AcceptsValue bool
	Description  string
}

// Flag returns the option as it is addressed on the command line.
func (o OptionSpec) Flag() string {
	return "--" + o.Long
}

// Argument returns the argument spec with the given name.
func (s *Signature) Argument(name string) (ArgumentSpec, bool) {
	for _, a := range s.Arguments {
		if a.Name == name {
			return a, true
		}
	}
	return ArgumentSpec{}, false
}

// Option returns the option with the given long name. The name may be
// given with or without the leading "--" and is matched case-insensitively.
func (s *Signature) Option(name string) (OptionSpec, bool) {
	name = NormalizeOption(name)
	for _, o := range s.Options {
		if o.Long == name {
			return o, true
		}
	}
	return OptionSpec{}, false
}

// Short returns the option whose short alias is exactly flag. Compile
// leaves an alias only on the first option that derives it.
func (s *Signature) Short(flag string) (OptionSpec, bool) {
	for _, o := range s.Options {
		if o.Short != "" && o.Short == flag {
			return o, true
		}
	}
	return OptionSpec{}, false
}

// NormalizeOption lowercases an option name and strips one leading "--".
func NormalizeOption(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, "--"))
}
