package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/timmy/dogo/internal/app"
	"github.com/timmy/dogo/internal/domain"
	"github.com/timmy/dogo/internal/gallery"
	"github.com/timmy/dogo/internal/imageinfo"
	"github.com/timmy/dogo/internal/logger"
	"github.com/timmy/dogo/internal/service"
)

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("out", "", "directory to write the images to")
	batchCmd.Flags().Bool("archive", false, "archive every image into object storage")
}

var batchCmd = &cobra.Command{
	Use:   "batch <count>",
	Short: "Fetch several random images concurrently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", domain.ErrInvalidCount, args[0])
		}
		outDir, _ := cmd.Flags().GetString("out")
		archiveFlag, _ := cmd.Flags().GetBool("archive")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fetcher, err := app.NewFetcher(&cfg.Fetcher)
		if err != nil {
			return err
		}

		ctx := logger.SetComponent(cmd.Context(), "cli")
		ctx = logger.WithField(ctx, logger.FieldCommand, "batch")

		var archive *service.ArchiveService
		if archiveFlag {
			var closeDB func() error
			archive, closeDB, err = app.NewArchive(ctx, cfg, logger.FromContext(ctx))
			if err != nil {
				return err
			}
			defer closeDB()
		}

		return runBatch(ctx, fetcher, count, outDir, archive, cmd.OutOrStdout())
	},
}

// runBatch fetches count images and reports one line per image.
func runBatch(ctx context.Context, fetcher *gallery.Fetcher, count int, outDir string, archive *service.ArchiveService, out io.Writer) error {
	start := time.Now()

	images, err := fetcher.Batch(ctx, count)
	if err != nil {
		return err
	}

	logger.With(logger.Fields{logger.FieldSource: fetcher.Source().GetSourceID()}).
		WithCount(len(images)).
		WithDuration(start).
		Info(ctx, "Batch fetched")

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	for _, img := range images {
		line := fmt.Sprintf("%3d  %s  %s", img.Index, img.Reference, describe(img))

		if outDir != "" {
			target := filepath.Join(outDir, fileName(img))
			if err := os.WriteFile(target, img.Data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}
			line += "  -> " + target
		}

		if archive != nil {
			record, err := archive.Archive(ctx, img)
			if err != nil {
				return fmt.Errorf("archive %s: %w", img.Reference, err)
			}
			line += "  archived " + record.StorageKey
		}

		fmt.Fprintln(out, line)
	}
	return nil
}

// fileName keeps the reference's base name, prefixed with the gallery index so
// duplicate references do not overwrite each other.
func fileName(img *domain.Image) string {
	base := "image"
	if location, err := domain.ParseReference(img.Reference); err == nil {
		if b := path.Base(location.Path); b != "/" && b != "." {
			base = b
		}
	}
	if filepath.Ext(base) == "" {
		base += "." + imageinfo.Extension(img.Format)
	}
	return fmt.Sprintf("%03d-%s", img.Index, base)
}

func describe(img *domain.Image) string {
	if img.Width > 0 && img.Height > 0 {
		return fmt.Sprintf("%s %dx%d %d bytes", img.Format, img.Width, img.Height, img.Size)
	}
	return fmt.Sprintf("%d bytes", img.Size)
}
