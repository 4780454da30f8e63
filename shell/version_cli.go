package shell

import (
	"fmt"
)

// Version is the rmlines release version, set at build time via
// -ldflags "-X github.com/platinummonkey/rmlines/shell.Version=...".
var Version = "dev"

func versionCommand(ctx *Context) Command {
	return Command{
		Name: "version",
		Help: "show rmlines version",
		Func: func(ctx *Context, args []string) error {
			fmt.Println("rmlines version:", Version)
			return nil
		},
	}
}
