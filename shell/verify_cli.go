package shell

import (
	"fmt"

	"github.com/ogier/pflag"

	"github.com/platinummonkey/rmlines/rmconvert"
)

func verifyCommand(ctx *Context) Command {
	return Command{
		Name: "verify",
		Help: "read back a produced PDF with a second engine and report page geometry",
		Func: func(ctx *Context, args []string) error {
			flagSet := pflag.NewFlagSet("verify", pflag.ContinueOnError)
			if err := flagSet.Parse(args); err != nil {
				return err
			}

			rest := flagSet.Args()
			if len(rest) == 0 {
				return fmt.Errorf("usage: rmlines verify <file.pdf>")
			}

			report, err := rmconvert.VerifyPDF(rest[0])
			if err != nil {
				return fmt.Errorf("failed to verify %s: %w", rest[0], err)
			}

			fmt.Printf("%s: %d page(s)\n", report.Path, len(report.Pages))
			for _, p := range report.Pages {
				fmt.Printf("  page %d: %.1f x %.1f pt\n", p.Number, p.WidthPoints, p.HeightPoints)
			}
			return nil
		},
	}
}
