package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/contfrac/internal/series"
)

func familiesCmd() *cli.Command {
	return &cli.Command{
		Name:  "families",
		Usage: "List the built-in coefficient families",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			for _, f := range series.Families() {
				args := "-"
				if len(f.Args) > 0 {
					args = strings.Join(f.Args, ", ")
				}
				fmt.Printf("  %-8s args: %-10s %s\n", f.Name, args, f.Description)
			}
			return nil
		},
	}
}
