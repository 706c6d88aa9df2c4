package bot

import (
	"context"
	"strings"
)

// Arg describes one positional argument of a command. Required only affects help output.
type Arg struct {
	Name        string
	Description string
	Required    bool
}

// Args are the positional values parsed from a command invocation.
type Args []string

// Get returns the i-th argument, or "" when fewer were given.
func (a Args) Get(i int) string {
	if i < 0 || i >= len(a) {
		return ""
	}
	return a[i]
}

// Callback runs a command. Extra arguments are ignored by convention and missing
// ones read as "" through Args.Get.
type Callback func(ctx context.Context, args Args) error

// Command is a named action users trigger with the bot prefix.
type Command struct {
	Name        string
	Description string
	Args        []Arg
	Callback    Callback
}

func (c *Command) String() string {
	return c.Name
}

// Usage renders "<prefix><name> <required> (optional)".
func (c *Command) Usage(prefix string) string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, prefix+c.Name)
	for _, arg := range c.Args {
		if arg.Required {
			parts = append(parts, "<"+arg.Name+">")
		} else {
			parts = append(parts, "("+arg.Name+")")
		}
	}
	return strings.Join(parts, " ")
}

// Run invokes the callback with args as given; required arguments are not enforced.
func (c *Command) Run(ctx context.Context, args Args) error {
	return c.Callback(ctx, args)
}
