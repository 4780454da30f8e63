package shell

import (
	"fmt"

	"github.com/ogier/pflag"

	"github.com/platinummonkey/rmlines/notebookfs"
)

func scanCommand(ctx *Context) Command {
	return Command{
		Name: "scan",
		Help: "list notebooks found under a xochitl data directory",
		Func: func(ctx *Context, args []string) error {
			flagSet := pflag.NewFlagSet("scan", pflag.ContinueOnError)
			if err := flagSet.Parse(args); err != nil {
				return err
			}

			rest := flagSet.Args()
			if len(rest) == 0 {
				return fmt.Errorf("usage: rmlines scan <xochitl-root>")
			}

			notebooks, err := notebookfs.Scan(rest[0])
			if err != nil {
				return fmt.Errorf("failed to scan %s: %w", rest[0], err)
			}

			for _, nb := range notebooks.Notebooks {
				fmt.Printf("%-40s %4d page(s)\n", nb.Name, len(nb.Pages))
			}
			fmt.Printf("\n%d notebook(s) found\n", len(notebooks.Notebooks))
			return nil
		},
	}
}
