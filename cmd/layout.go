package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/jsphweid/scorelayout/score"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var outPath string

func init() {
	layoutCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the layout here instead of stdout")
	addRangeFlags(layoutCmd)
	rootCmd.AddCommand(layoutCmd)
}

var layoutCmd = &cobra.Command{
	Use:   "layout <score.json|file.mid>",
	Short: "Lays out a score",
	Long:  `Lays out a JSON score or a MIDI file and writes the layout as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var w io.Writer = cmd.OutOrStdout()
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return errors.Wrap(err, "creating output")
			}
			defer f.Close()
			w = f
		}
		return layout(args[0], w)
	},
}

func layout(path string, w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, cfg, err := loadScore(path, cfg)
	if err != nil {
		return err
	}

	res := score.Layout(s, cfg)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return errors.Wrap(err, "writing layout")
	}
	log.WithField("path", path).Debug("wrote layout")
	return nil
}
