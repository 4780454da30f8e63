package shell

import (
	"github.com/abiosoft/ishell"
)

// RunInteractive starts an interactive shell exposing every registered
// Command, mirroring the teacher's original ishell-based mode.
func RunInteractive(ctx *Context) {
	sh := ishell.New()
	sh.Println("rmlines interactive shell — type 'help' for commands")

	for name, cmd := range commandTable(ctx) {
		name, cmd := name, cmd
		sh.AddCmd(&ishell.Cmd{
			Name: name,
			Help: cmd.Help,
			Func: func(c *ishell.Context) {
				if err := cmd.Func(ctx, c.Args); err != nil {
					c.Err(err)
				}
			},
		})
	}

	sh.Run()
}
