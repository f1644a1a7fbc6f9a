package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/scorelayout/score"
	"github.com/spf13/cobra"
)

func init() {
	addRangeFlags(reportCmd)
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <score.json|file.mid>",
	Short: "Creates a report",
	Long:  `Lays out a score and prints one summary line per measure.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(args[0], cmd.OutOrStdout())
	},
}

func report(path string, w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, cfg, err := loadScore(path, cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(w, score.Report(score.Layout(s, cfg)))
	return nil
}
