package commands

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps command names and aliases to commands and renders the
// command summary for help output. Aliases are kept apart from primary
// names so the summary can group them on one line.
type Registry struct {
	mu      sync.RWMutex
	primary map[string]Command
	alias   map[string]string // alias -> primary name
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		primary: make(map[string]Command),
		alias:   make(map[string]string),
	}
}

// Register adds a command to the registry.
// Returns an error if the name or any alias is already registered.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if r.taken(name) {
		return fmt.Errorf("command already registered: %s", name)
	}
	for _, a := range c.Aliases() {
		if r.taken(a) {
			return fmt.Errorf("command alias already registered: %s", a)
		}
	}

	r.primary[name] = c
	for _, a := range c.Aliases() {
		r.alias[a] = name
	}
	return nil
}

func (r *Registry) taken(name string) bool {
	if _, ok := r.primary[name]; ok {
		return true
	}
	_, ok := r.alias[name]
	return ok
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if cmd, ok := r.primary[name]; ok {
		return cmd, true
	}
	if primary, ok := r.alias[name]; ok {
		return r.primary[primary], true
	}
	return nil, false
}

// Commands returns all registered commands sorted by primary name.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.primary))
	for name := range r.primary {
		names = append(names, name)
	}
	sort.Strings(names)

	cmds := make([]Command, len(names))
	for i, name := range names {
		cmds[i] = r.primary[name]
	}
	return cmds
}

// Summary renders one line per command: primary name with aliases, a
// marker on commands that need a session, and the synopsis.
func (r *Registry) Summary() string {
	var b strings.Builder
	for _, cmd := range r.Commands() {
		names := cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			names += ", " + strings.Join(aliases, ", ")
		}
		marker := " "
		if cmd.NeedsSession() {
			marker = "*"
		}
		fmt.Fprintf(&b, "  %s %-16s %s\n", marker, names, cmd.Synopsis())
	}
	return b.String()
}

// DefaultRegistry is the global command registry.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
