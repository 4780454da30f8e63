package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ogier/pflag"

	"github.com/platinummonkey/rmlines/encoding/rm"
	"github.com/platinummonkey/rmlines/model"
)

func parseCommand(ctx *Context) Command {
	return Command{
		Name: "parse",
		Help: "decode a single .rm page and print a summary",
		Func: func(ctx *Context, args []string) error {
			flagSet := pflag.NewFlagSet("parse", pflag.ContinueOnError)
			if err := flagSet.Parse(args); err != nil {
				return err
			}

			rest := flagSet.Args()
			if len(rest) == 0 {
				return fmt.Errorf("usage: rmlines parse <file.rm>")
			}
			path := rest[0]

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			id := strings.TrimSuffix(filepath.Base(path), ".rm")
			page, err := rm.Parse(id, data)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", path, err)
			}

			fmt.Println(summarizePage(*page))
			return nil
		},
	}
}

func summarizePage(page model.Page) string {
	lines, points := 0, 0
	brushCounts := make(map[model.BrushType]int)
	for _, layer := range page.Layers {
		lines += len(layer.Lines)
		for _, line := range layer.Lines {
			points += len(line.Points)
			brushCounts[line.BrushType]++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Page %s (%s): %d layer(s), %d line(s), %d point(s)\n",
		page.ID, page.Version, len(page.Layers), lines, points)
	for brush, count := range brushCounts {
		fmt.Fprintf(&b, "  %s: %d line(s)\n", brush, count)
	}
	return strings.TrimRight(b.String(), "\n")
}
