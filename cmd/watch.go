package cmd

import (
	"context"
	"os"
	"time"

	"github.com/bep/debounce"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	pollInterval time.Duration
	settle       time.Duration
)

func init() {
	watchCmd.Flags().DurationVar(&pollInterval, "poll", 250*time.Millisecond, "how often to check the file")
	watchCmd.Flags().DurationVar(&settle, "settle", 500*time.Millisecond, "quiet time after the last change before re-laying out")
	addRangeFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <score.json|file.mid>",
	Short: "Reports on a score every time it changes",
	Long:  `Watches a score file and prints a fresh report once a burst of edits settles.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		rerun := func() {
			if err := report(path, cmd.OutOrStdout()); err != nil {
				log.WithError(err).WithField("path", path).Error("could not lay out")
			}
		}
		rerun()
		return watchFile(cmd.Context(), path, pollInterval, settle, rerun)
	},
}

// watchFile polls path's modification time and calls onChange once changes
// have been quiet for settle. It returns when ctx is done.
func watchFile(ctx context.Context, path string, interval, settle time.Duration, onChange func()) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var last time.Time
	if info, err := os.Stat(path); err == nil {
		last = info.ModTime()
	}

	debounced := debounce.New(settle)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			info, err := os.Stat(path)
			if err != nil {
				log.WithError(err).Debug("could not stat watched file")
				continue
			}
			if !info.ModTime().Equal(last) {
				last = info.ModTime()
				debounced(onChange)
			}
		}
	}
}
