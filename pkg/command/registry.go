package command

import (
	"sort"
	"sync"
)

// Registry maps command names to commands. Registration is
// last-write-wins by name; lookups are read-mostly and safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register inserts a command, replacing any previous entry with the
// same name.
func (r *Registry) Register(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.Name] = cmd
}

// Get returns the command registered under exactly name.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Find returns the first command whose name or alias matches input
// case-insensitively. Iteration order is not stable, so overlapping
// aliases across commands should be avoided.
func (r *Registry) Find(input string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, cmd := range r.commands {
		if cmd.Matches(input) {
			return cmd, true
		}
	}
	return Command{}, false
}

// All returns the registered commands sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}
