package dispatchers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/footprint-tools/clikit/internal/log"
	"github.com/footprint-tools/clikit/internal/proc"
	"github.com/footprint-tools/clikit/internal/signature"
)

// ReservedPrefix is the namespace that holds the framework's own commands.
// Host configuration can never create it.
const ReservedPrefix = "cli"

var reservedPrefixes = map[string]bool{
	ReservedPrefix: true,
}

var prefixPattern = regexp.MustCompile(`^[A-Za-z][\w-]*$`)

var (
	ErrDuplicateCommand   = errors.New("duplicate command")
	ErrDuplicateNamespace = errors.New("duplicate namespace")
	ErrReservedName       = errors.New("reserved name")
	ErrInvalidName        = errors.New("invalid name")
	ErrNameCollision      = errors.New("name collision")
	ErrRegistryFrozen     = errors.New("registry is frozen")
)

// Callback is the function form of a command action. It runs after the
// input has been matched; returning Exit(code) ends the process with code.
type Callback func(ctx context.Context, in *Input) error

// ActionKind tags which field of an Action is in use.
type ActionKind int

const (
	ActionUnset ActionKind = iota
	ActionSubprocess
	ActionCallback
)

func (k ActionKind) String() string {
	switch k {
	case ActionSubprocess:
		return "subprocess"
	case ActionCallback:
		return "callback"
	default:
		return "unset"
	}
}

// Action is what a command does once its input has been matched.
type Action struct {
	Kind     ActionKind
	Parts    []proc.Part
	Callback Callback
}

// Command is a registered command. Its signature never changes after
// registration; description and action are set through CommandBuilder.
type Command struct {
	Signature   *signature.Signature
	Description string
	Namespace   *Namespace
	Action      Action
}

// Name returns the command name from its signature.
func (c *Command) Name() string {
	return c.Signature.Name
}

// QualifiedName returns the name as typed by users, e.g. "db migrate".
func (c *Command) QualifiedName() string {
	if c.Namespace == nil || c.Namespace.IsDefault() {
		return c.Name()
	}
	return c.Namespace.Prefix + " " + c.Name()
}

// Namespace groups commands under a shared prefix. The default namespace
// has an empty prefix.
type Namespace struct {
	Prefix      string
	Description string

	reserved bool
	registry *Registry
	commands map[string]*Command
}

// IsDefault reports whether n is the registry's unnamed namespace.
func (n *Namespace) IsDefault() bool {
	return n.Prefix == ""
}

// Reserved reports whether n is the framework's reserved namespace.
func (n *Namespace) Reserved() bool {
	return n.reserved
}

// Title is the heading used for n in global help.
func (n *Namespace) Title() string {
	if n.Description != "" {
		return n.Description
	}
	return n.Prefix
}

// Register compiles source and adds the command to n.
func (n *Namespace) Register(source string) (*CommandBuilder, error) {
	if n.registry.frozen {
		return nil, fmt.Errorf("register %q: %w", source, ErrRegistryFrozen)
	}

	sig, err := signature.Compile(source)
	if err != nil {
		return nil, err
	}

	if _, exists := n.commands[sig.Name]; exists {
		if n.IsDefault() {
			return nil, fmt.Errorf("%w: command '%s' is already registered", ErrDuplicateCommand, sig.Name)
		}
		return nil, fmt.Errorf("%w: command '%s' is already registered in '%s'", ErrDuplicateCommand, sig.Name, n.Prefix)
	}

	if n.IsDefault() {
		if _, taken := n.registry.namespaces[sig.Name]; taken {
			return nil, fmt.Errorf("%w: command '%s' has the same name as a namespace", ErrNameCollision, sig.Name)
		}
	}

	cmd := &Command{Signature: sig, Namespace: n}
	n.commands[sig.Name] = cmd
	log.Debug("registry: registered %q", cmd.QualifiedName())

	return &CommandBuilder{cmd: cmd}, nil
}

// Lookup returns the command registered under name.
func (n *Namespace) Lookup(name string) (*Command, bool) {
	cmd, ok := n.commands[name]
	return cmd, ok
}

// Commands returns the namespace's commands sorted by name.
func (n *Namespace) Commands() []*Command {
	cmds := make([]*Command, 0, len(n.commands))
	for _, c := range n.commands {
		cmds = append(cmds, c)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	return cmds
}

// Names returns the sorted command names of n.
func (n *Namespace) Names() []string {
	names := make([]string, 0, len(n.commands))
	for name := range n.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry holds every command of one program run. It is populated during
// configuration and frozen before dispatch.
type Registry struct {
	Program string

	root       *Namespace
	namespaces map[string]*Namespace
	frozen     bool
}

// NewRegistry creates an empty registry. program is used in help output.
func NewRegistry(program string) *Registry {
	r := &Registry{
		Program:    program,
		namespaces: make(map[string]*Namespace),
	}
	r.root = &Namespace{registry: r, commands: make(map[string]*Command)}
	return r
}

// Register adds a command to the default namespace.
func (r *Registry) Register(source string) (*CommandBuilder, error) {
	return r.root.Register(source)
}

// CreateNamespace adds a namespace. Reserved prefixes are rejected, as is a
// prefix already used by a namespace or a default-namespace command.
func (r *Registry) CreateNamespace(prefix, description string) (*Namespace, error) {
	if reservedPrefixes[prefix] {
		return nil, fmt.Errorf("%w: '%s' cannot be used as a namespace prefix", ErrReservedName, prefix)
	}
	return r.createNamespace(prefix, description, false)
}

// ReservedNamespace returns the framework namespace, creating it on first use.
func (r *Registry) ReservedNamespace() (*Namespace, error) {
	if ns, ok := r.namespaces[ReservedPrefix]; ok {
		return ns, nil
	}
	return r.createNamespace(ReservedPrefix, "Built-in commands", true)
}

func (r *Registry) createNamespace(prefix, description string, reserved bool) (*Namespace, error) {
	if r.frozen {
		return nil, fmt.Errorf("create namespace %q: %w", prefix, ErrRegistryFrozen)
	}
	if !prefixPattern.MatchString(prefix) {
		return nil, fmt.Errorf("%w: namespace prefix %q must be a single identifier", ErrInvalidName, prefix)
	}
	if _, exists := r.namespaces[prefix]; exists {
		return nil, fmt.Errorf("%w: namespace '%s' already exists", ErrDuplicateNamespace, prefix)
	}
	if _, taken := r.root.commands[prefix]; taken {
		return nil, fmt.Errorf("%w: namespace '%s' has the same name as a command", ErrNameCollision, prefix)
	}

	ns := &Namespace{
		Prefix:      prefix,
		Description: description,
		reserved:    reserved,
		registry:    r,
		commands:    make(map[string]*Command),
	}
	r.namespaces[prefix] = ns
	log.Debug("registry: created namespace %q", prefix)
	return ns, nil
}

// Default returns the unnamed namespace.
func (r *Registry) Default() *Namespace {
	return r.root
}

// Namespace returns the namespace registered under prefix.
func (r *Registry) Namespace(prefix string) (*Namespace, bool) {
	ns, ok := r.namespaces[prefix]
	return ns, ok
}

// Namespaces returns all named namespaces sorted by prefix, with reserved
// namespaces last.
func (r *Registry) Namespaces() []*Namespace {
	out := make([]*Namespace, 0, len(r.namespaces))
	for _, ns := range r.namespaces {
		out = append(out, ns)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].reserved != out[j].reserved {
			return !out[i].reserved
		}
		return out[i].Prefix < out[j].Prefix
	})
	return out
}

// Lookup returns a default-namespace command.
func (r *Registry) Lookup(name string) (*Command, bool) {
	return r.root.Lookup(name)
}

// Commands returns the default-namespace commands sorted by name.
func (r *Registry) Commands() []*Command {
	return r.root.Commands()
}

// All returns every command: namespaced ones in Namespaces() order,
// followed by the default namespace.
func (r *Registry) All() []*Command {
	var all []*Command
	for _, ns := range r.Namespaces() {
		all = append(all, ns.Commands()...)
	}
	return append(all, r.root.Commands()...)
}

// Names returns every first-level name a user can type: default-namespace
// commands and namespace prefixes.
func (r *Registry) Names() []string {
	names := r.root.Names()
	for prefix := range r.namespaces {
		names = append(names, prefix)
	}
	sort.Strings(names)
	return names
}

// Freeze makes the registry read-only. Dispatch freezes it before matching.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// CommandBuilder configures a just-registered command.
type CommandBuilder struct {
	cmd *Command
}

// Command returns the command being built.
func (b *CommandBuilder) Command() *Command {
	return b.cmd
}

// SetDescription sets the text shown in help output.
func (b *CommandBuilder) SetDescription(description string) *CommandBuilder {
	if b.mutable() {
		b.cmd.Description = description
	}
	return b
}

// SetSubprocessAction makes the command spawn the expanded parts.
// A later call to either action setter replaces this one.
func (b *CommandBuilder) SetSubprocessAction(parts ...proc.Part) *CommandBuilder {
	if b.mutable() {
		b.replaceAction(Action{Kind: ActionSubprocess, Parts: parts})
	}
	return b
}

// SetCallbackAction makes the command call fn.
// A later call to either action setter replaces this one. A nil fn leaves
// the command without an action.
func (b *CommandBuilder) SetCallbackAction(fn Callback) *CommandBuilder {
	if !b.mutable() {
		return b
	}
	if fn == nil {
		b.replaceAction(Action{})
		return b
	}
	b.replaceAction(Action{Kind: ActionCallback, Callback: fn})
	return b
}

func (b *CommandBuilder) replaceAction(a Action) {
	if b.cmd.Action.Kind != ActionUnset {
		log.Debug("registry: %q action replaced (%s -> %s)", b.cmd.QualifiedName(), b.cmd.Action.Kind, a.Kind)
	}
	b.cmd.Action = a
}

func (b *CommandBuilder) mutable() bool {
	if b.cmd.Namespace != nil && b.cmd.Namespace.registry.frozen {
		log.Warn("registry: ignoring change to %q after dispatch started", b.cmd.QualifiedName())
		return false
	}
	return true
}
