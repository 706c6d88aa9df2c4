package bot

import (
	"fmt"
	"sync"
)

// Registry holds commands by unique name and remembers registration order.
type Registry struct {
	mu     sync.RWMutex
	order  []*Command
	byName map[string]*Command
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Command)}
}

// Register adds a command. Names are unique; a second registration fails.
func (r *Registry) Register(name, description string, args []Arg, cb Callback) (*Command, error) {
	if name == "" {
		return nil, fmt.Errorf("register command: empty name")
	}
	if cb == nil {
		return nil, fmt.Errorf("register command %q: nil callback", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateCommand, name)
	}

	cmd := &Command{
		Name:        name,
		Description: description,
		Args:        append([]Arg(nil), args...),
		Callback:    cb,
	}
	r.byName[name] = cmd
	r.order = append(r.order, cmd)
	return cmd, nil
}

// Get looks up a command by name.
func (r *Registry) Get(name string) (*Command, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return cmd, nil
}

// List returns the commands in registration order.
func (r *Registry) List() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Command(nil), r.order...)
}
