// Package command implements the registry that maps command names and
// aliases to handlers.
package command

import (
	"strings"

	"github.com/tinyland-inc/carikbot/pkg/message"
)

// Handler executes a command against the originating message and
// returns the reply text.
type Handler func(msg message.Message) (string, error)

// Error reports a command handler failure.
type Error struct {
	Name string
	Err  error
}

func (e *Error) Error() string {
	return "command " + e.Name + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Command is a registry entry. Commands are registered once at startup
// and owned by the registry.
type Command struct {
	Name        string
	Description string
	Usage       string
	Aliases     []string
	Permissions []string
	Handler     Handler
}

// New creates a command with the given unique name.
func New(name string) Command {
	return Command{Name: name}
}

// WithDescription sets the description shown in help listings.
func (c Command) WithDescription(desc string) Command {
	c.Description = desc
	return c
}

// WithUsage sets the usage line shown in detailed help.
func (c Command) WithUsage(usage string) Command {
	c.Usage = usage
	return c
}

// WithAliases sets the alternative names the command answers to.
func (c Command) WithAliases(aliases ...string) Command {
	c.Aliases = aliases
	return c
}

// WithPermission appends a permission tag.
func (c Command) WithPermission(permission string) Command {
	c.Permissions = append(c.Permissions, permission)
	return c
}

// WithHandler sets the handler function.
func (c Command) WithHandler(h Handler) Command {
	c.Handler = h
	return c
}

// Matches reports whether input equals the command name or any alias,
// case-insensitively.
func (c Command) Matches(input string) bool {
	if strings.EqualFold(c.Name, input) {
		return true
	}
	for _, a := range c.Aliases {
		if strings.EqualFold(a, input) {
			return true
		}
	}
	return false
}
