package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/timmy/dogo/internal/app"
	"github.com/timmy/dogo/internal/domain"
	"github.com/timmy/dogo/internal/gallery"
	"github.com/timmy/dogo/internal/logger"
)

func init() {
	rootCmd.AddCommand(browseCmd)
}

const browseHelp = "n: next  p: previous  r: random  c: current  x: reset  s: state  q: quit"

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse images interactively",
	Long:  "Reads one command per line from stdin.\n" + browseHelp,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fetcher, err := app.NewFetcher(&cfg.Fetcher)
		if err != nil {
			return err
		}

		ctx := logger.SetComponent(cmd.Context(), "cli")
		ctx = logger.WithField(ctx, logger.FieldCommand, "browse")
		return runBrowse(ctx, fetcher, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// runBrowse drives the fetcher from line commands until q, EOF or cancellation.
// Failed commands are reported and the loop continues.
func runBrowse(ctx context.Context, fetcher *gallery.Fetcher, in io.Reader, out io.Writer) error {
	fetcher.SetObserver(func(index int) {
		fmt.Fprintf(out, "cursor -> %d\n", index)
	})
	defer fetcher.SetObserver(nil)

	fmt.Fprintln(out, browseHelp)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		var (
			img *domain.Image
			err error
		)
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "next":
			img, err = fetcher.Next(ctx)
		case "p", "prev", "previous":
			img, err = fetcher.Previous(ctx)
		case "r", "random":
			img, err = fetcher.Random(ctx)
		case "c", "current":
			img, err = fetcher.Current(ctx)
		case "x", "reset":
			fetcher.Reset()
			continue
		case "s", "state":
			snap := fetcher.Snapshot()
			fmt.Fprintf(out, "cursor %d of %d\n", snap.Cursor, snap.Len())
			for i, ref := range snap.References {
				marker := " "
				if i == snap.Cursor {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %3d  %s\n", marker, i, ref)
			}
			continue
		case "q", "quit", "exit":
			return nil
		case "":
			continue
		default:
			fmt.Fprintln(out, browseHelp)
			continue
		}

		if err != nil {
			logger.FromContext(ctx).WithError(err).Debug("Browse command failed")
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "[%d] %s  %s\n", img.Index, img.Reference, describe(img))
	}
}
