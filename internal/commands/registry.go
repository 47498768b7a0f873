package commands

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrDuplicateCommand is returned when a name or alias is already taken.
var ErrDuplicateCommand = errors.New("duplicate command")

// Registry maps command names and aliases to commands. Aliases resolve to
// the primary name, so a command is stored once.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Command
	aliases map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Command),
		aliases: make(map[string]string),
	}
}

// Register adds c under its name and aliases. Nothing is registered when
// any of them collides with an existing name or alias, or with each other.
func (r *Registry) Register(c Command) error {
	name := c.Name()
	if name == "" {
		return errors.New("command has no name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	taken := func(word string) bool {
		_, isName := r.byName[word]
		_, isAlias := r.aliases[word]
		return isName || isAlias
	}
	if taken(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, name)
	}
	seen := map[string]bool{name: true}
	for _, alias := range c.Aliases() {
		if taken(alias) || seen[alias] {
			return fmt.Errorf("%w: alias %s of %s", ErrDuplicateCommand, alias, name)
		}
		seen[alias] = true
	}

	r.byName[name] = c
	for _, alias := range c.Aliases() {
		r.aliases[alias] = name
	}
	return nil
}

// Find resolves a command line word to its command.
func (r *Registry) Find(word string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name, ok := r.aliases[word]; ok {
		word = name
	}
	c, ok := r.byName[word]
	return c, ok
}

// All returns every command once, sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Command, len(names))
	for i, name := range names {
		out[i] = r.byName[name]
	}
	return out
}

// DefaultRegistry holds the commands registered by this package.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a collision.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
