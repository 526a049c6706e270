// Package proc expands action parts into argv and runs subprocesses.
package proc

import "strings"

// Part is one element of a subprocess action. The set of parts is closed:
// Literal, Template, Group, Rest, Arg and Opt.
type Part interface {
	isPart()
}

// Literal is a single argv element.
type Literal string

// Template is a previously built sequence of parts, usually from Words.
type Template []Part

// Group is a nested sequence of parts that is flattened in place.
type Group []Part

// Arg expands to the value bound to the named argument, or to nothing if
// the argument was not given.
type Arg string

// Opt re-emits the named option as "--name" or "--name=value", or nothing
// if it was not given.
type Opt string

type restPart struct{}

// Rest expands to the matched rest tokens, in order.
var Rest Part = restPart{}

func (Literal) isPart()  {}
func (Template) isPart() {}
func (Group) isPart()    {}
func (Arg) isPart()      {}
func (Opt) isPart()      {}
func (restPart) isPart() {}

// Bindings supplies matched values to Expand.
type Bindings interface {
	Argument(name string) (string, bool)
	OptionArgs(name string) []string
	Rest() []string
}

// Words splits a command line on whitespace into a Template, turning
// placeholder words into parts (see Placeholder).
func Words(line string) Template {
	fields := strings.Fields(line)
	t := make(Template, 0, len(fields))
	for _, f := range fields {
		t = append(t, Placeholder(f))
	}
	return t
}

// Literals wraps plain strings as Literal parts.
func Literals(values ...string) Group {
	g := make(Group, 0, len(values))
	for _, v := range values {
		g = append(g, Literal(v))
	}
	return g
}

// Placeholder classifies one word: "..." is Rest, "{--name}" is Opt,
// "{name}" is Arg and anything else is a Literal.
func Placeholder(word string) Part {
	if word == "..." {
		return Rest
	}
	if len(word) > 2 && word[0] == '{' && word[len(word)-1] == '}' {
		inner := strings.TrimSpace(word[1 : len(word)-1])
		if strings.HasPrefix(inner, "--") && len(inner) > 2 {
			return Opt(inner[2:])
		}
		if inner != "" && !strings.ContainsAny(inner, " \t") {
			return Arg(inner)
		}
	}
	return Literal(word)
}

// Expand flattens parts depth-first into a single argv. The first element
// is the executable. b may be nil, in which case Rest, Arg and Opt expand
// to nothing.
func Expand(parts []Part, b Bindings) []string {
	var out []string
	expandInto(&out, parts, b)
	return out
}

func expandInto(out *[]string, parts []Part, b Bindings) {
	for _, p := range parts {
		switch v := p.(type) {
		case Literal:
			*out = append(*out, string(v))
		case Template:
			expandInto(out, v, b)
		case Group:
			expandInto(out, v, b)
		case restPart:
			if b != nil {
				*out = append(*out, b.Rest()...)
			}
		case Arg:
			if b == nil {
				continue
			}
			if val, ok := b.Argument(string(v)); ok {
				*out = append(*out, val)
			}
		case Opt:
			if b != nil {
				*out = append(*out, b.OptionArgs(string(v))...)
			}
		}
	}
}
