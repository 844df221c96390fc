package command

import (
	"fmt"
	"strings"

	"github.com/tinyland-inc/carikbot/pkg/message"
)

// RegisterDefaults registers the built-in help and version commands.
func RegisterDefaults(r *Registry, botName, version string) {
	r.Register(New("help").
		WithDescription("Show help message").
		WithUsage("/help [command]").
		WithAliases("h").
		WithHandler(func(msg message.Message) (string, error) {
			if cmd, ok := msg.Content.(message.Command); ok && len(cmd.Args) > 0 {
				return HelpFor(r, cmd.Args[0]), nil
			}
			return HelpText(r), nil
		}))

	r.Register(New("version").
		WithDescription("Show bot version").
		WithAliases("v").
		WithHandler(func(message.Message) (string, error) {
			return fmt.Sprintf("%s v%s", botName, version), nil
		}))
}

// HelpText lists every registered command with its description.
func HelpText(r *Registry) string {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, cmd := range r.All() {
		fmt.Fprintf(&b, "  /%s - %s\n", cmd.Name, cmd.Description)
	}
	return b.String()
}

// HelpFor returns detailed help for one command, resolved through the
// same case-insensitive matching as dispatch.
func HelpFor(r *Registry, name string) string {
	cmd, ok := r.Find(name)
	if !ok {
		return fmt.Sprintf("Command /%s not found", name)
	}

	help := fmt.Sprintf("/%s - %s", cmd.Name, cmd.Description)
	if cmd.Usage != "" {
		help += "\nUsage: " + cmd.Usage
	}
	if len(cmd.Aliases) > 0 {
		help += "\nAliases: " + strings.Join(cmd.Aliases, ", ")
	}
	return help
}
