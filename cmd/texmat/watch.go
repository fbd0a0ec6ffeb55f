package main

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/woozymasta/texmat/internal/watch"
	"go.uber.org/zap"
)

var watchOpts applyFlags

var watchCmd = &cobra.Command{
	Use:   "watch [folder]",
	Short: "Re-apply a folder to its material whenever its images change",
	Long: `Applies the folder once, then watches it and re-applies after every
settled burst of created, written, removed or renamed images. The library is
saved after each apply that changed the material. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]
		if watchOpts.material == "" {
			watchOpts.material = filepath.Base(folder)
		}
		watchOpts.dryRun = false

		run := func(ctx context.Context) {
			h, err := loadLibrary()
			if err != nil {
				logger.Error("load library", zap.Error(err))
				return
			}
			rep, err := applyFolder(ctx, cmd, h, folder, &watchOpts)
			if err != nil {
				logger.Error("apply failed", zap.String("folder", folder), zap.Error(err))
				return
			}
			if rep.Unchanged {
				return
			}
			if err := saveLibrary(h); err != nil {
				logger.Error("save failed", zap.Error(err))
				return
			}
			logger.Info("material updated",
				zap.String("material", rep.Material),
				zap.Int("applied", len(rep.Result.Applied)),
				zap.Int("skipped", len(rep.Result.Skipped)))
		}

		w, err := watch.New(folder, watch.Options{
			Logger:     logger,
			Extensions: cfg.Scan.Extensions,
			Debounce:   cfg.GetDebounce(),
		}, func(ctx context.Context, paths []string) {
			logger.Debug("folder changed", zap.Strings("files", paths))
			run(ctx)
		})
		if err != nil {
			return err
		}

		run(cmd.Context())
		logger.Info("watching", zap.String("folder", folder), zap.String("material", watchOpts.material))

		if err := w.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		return nil
	},
}

func init() {
	watchOpts.register(watchCmd)
	rootCmd.AddCommand(watchCmd)
}
