package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/scorelayout/chord"
	"github.com/jsphweid/scorelayout/duration"
	"github.com/jsphweid/scorelayout/model"
	"github.com/spf13/cobra"
)

func init() {
	addRangeFlags(inspectCmd)
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <score.json|file.mid>",
	Short: "Inspects a score",
	Long:  `Prints every event of a score (or a converted MIDI file) with its start quant.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0], cmd.OutOrStdout())
	},
}

func describe(e model.Event) string {
	d := e.Duration
	if e.Dotted {
		d += "."
	}
	if e.Tuplet != nil {
		d += fmt.Sprintf(" (%d:%d)", e.Tuplet.Actual(), e.Tuplet.Normal())
	}
	if e.IsRest() {
		return "rest " + d
	}
	return chord.CreateChordKey(e.Notes) + " " + d
}

func inspect(path string, w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, _, err := loadScore(path, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "title: %v\nkey: %v\n", s.Title, s.KeySignature)
	for i, staff := range s.Staves {
		fmt.Fprintf(w, "staff %d (%v)\n", i, staff.Clef)
		for j, m := range staff.Measures {
			starts, total := duration.Offsets(m.Events)
			var parts []string
			for k, e := range m.Events {
				parts = append(parts, fmt.Sprintf("%d:%v", starts[k], describe(e)))
			}
			fmt.Fprintf(w, "  measure %d [%d quants]: %v\n", j+1, total, strings.Join(parts, ", "))
		}
	}
	return nil
}
