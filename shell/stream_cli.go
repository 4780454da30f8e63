package shell

import (
	"fmt"

	"github.com/ogier/pflag"

	"github.com/platinummonkey/rmlines/device"
)

func streamCommand(ctx *Context) Command {
	return Command{
		Name: "stream",
		Help: "stream the tablet's live framebuffer, or grab a single frame",
		Func: func(ctx *Context, args []string) error {
			flagSet := pflag.NewFlagSet("stream", pflag.ContinueOnError)
			addr := flagSet.String("addr", ":8080", "address to serve the live view on")
			diagnostics := flagSet.Bool("diagnostics", false, "overlay frame latency/error diagnostics")
			grab := flagSet.String("grab", "", "grab a single frame to this file instead of streaming")

			if err := flagSet.Parse(args); err != nil {
				return err
			}

			rem := device.Open()
			streamer := device.NewStreamer(rem)

			if *grab != "" {
				if err := streamer.GrabFrame(*grab); err != nil {
					return fmt.Errorf("failed to grab frame: %w", err)
				}
				fmt.Printf("saved frame to %s\n", *grab)
				return nil
			}

			return streamer.Serve(*addr, *diagnostics)
		},
	}
}
