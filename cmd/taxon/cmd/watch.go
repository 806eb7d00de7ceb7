package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/silver-fir/taxon/internal/config"
	"github.com/silver-fir/taxon/internal/engine"
	"github.com/silver-fir/taxon/internal/logging"
	"github.com/silver-fir/taxon/internal/source"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the taxonomy file and detect titles read from stdin",
	Long: `Reads item titles line by line from stdin and prints the best category
for each. The taxonomy file is watched for changes and re-ingested on the
fly, so edits take effect without restarting.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cfg := config.Load()
		logging.Init(jsonOutput, logging.ParseLevel(cfg.Log.Level))

		if cfg.Source.URL != "" {
			return fail(errors.New("watch requires a file source, set TAXON_SOURCE_FILE"))
		}
		src := source.NewFile(cfg.Source.File)
		det := engine.New(src)

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := det.Load(ctx); err != nil {
			return fail(err)
		}

		go func() {
			err := src.Watch(ctx, func() {
				if err := det.Refresh(ctx); err != nil {
					slog.Error("refresh failed", "error", err)
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("watch stopped", "error", err)
			}
		}()

		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			title := sc.Text()
			if title == "" {
				continue
			}
			match, err := det.DetectCategory(title)
			if err != nil {
				if errors.Is(err, engine.ErrNoMatch) {
					fmt.Println("no match")
					continue
				}
				return fail(err)
			}
			if err := printBest(match); err != nil {
				return err
			}
		}
		return sc.Err()
	},
}
