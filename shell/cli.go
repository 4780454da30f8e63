// Package shell implements rmlines' command-line surface: one Command
// per subcommand, an optional interactive mode on top, and the shared
// Context they run against.
package shell

import (
	"fmt"
	"sort"

	"github.com/platinummonkey/rmlines/config"
)

// Command is one CLI subcommand.
type Command struct {
	Name string
	Help string
	Func func(ctx *Context, args []string) error
}

// Context holds state shared across a single CLI invocation.
type Context struct {
	Config *config.Config
}

// NewContext builds a Context from the resolved config defaults.
func NewContext() (*Context, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &Context{Config: cfg}, nil
}

// commandTable returns every registered command, keyed by name.
func commandTable(ctx *Context) map[string]Command {
	commands := make(map[string]Command)
	registerCommand(commands, parseCommand(ctx))
	registerCommand(commands, convertCommand(ctx))
	registerCommand(commands, scanCommand(ctx))
	registerCommand(commands, streamCommand(ctx))
	registerCommand(commands, verifyCommand(ctx))
	registerCommand(commands, versionCommand(ctx))
	return commands
}

func registerCommand(commands map[string]Command, cmd Command) {
	commands[cmd.Name] = cmd
}

// RunCLI dispatches a single non-interactive invocation: args[0] is the
// subcommand name, the rest are that subcommand's own arguments.
func RunCLI(ctx *Context, args []string) error {
	commands := commandTable(ctx)

	if len(args) == 0 {
		printUsage(commands)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		return fmt.Errorf("unknown command: %s\n\nRun 'rmlines' with no arguments for usage", cmdName)
	}

	return cmd.Func(ctx, args[1:])
}

func printUsage(commands map[string]Command) {
	fmt.Println("rmlines - reMarkable notebook conversion CLI")
	fmt.Println("\nUsage: rmlines <command> [options]")
	fmt.Println("\nAvailable commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := commands[name]
		fmt.Printf("  %-10s %s\n", name, cmd.Help)
	}

	fmt.Println("\nFor command-specific help, use: rmlines <command> -h")
}
