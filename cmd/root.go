package cmd

import (
	"path/filepath"
	"strings"

	"github.com/jsphweid/scorelayout/config"
	"github.com/jsphweid/scorelayout/constants"
	"github.com/jsphweid/scorelayout/midi"
	"github.com/jsphweid/scorelayout/model"
	"github.com/jsphweid/scorelayout/score"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	from       int
	measures   int
)

var rootCmd = &cobra.Command{
	Use:   "scorelayout",
	Short: "Lays out music scores",
	Long: `Lays out music scores: note positions, hit zones, beams, tuplet brackets
and accidentals for every measure of every staff.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML layout config (default $SCORELAYOUT_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = constants.GetConfigPath()
	}
	return config.Load(path)
}

func isMidi(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".mid" || ext == ".midi"
}

// addRangeFlags adds --from and --measures, which cut a MIDI file before it is
// converted.
func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&from, "from", 0, "first measure of a MIDI file to use, counting from 0")
	cmd.Flags().IntVar(&measures, "measures", 0, "number of measures of a MIDI file to use, 0 for all")
}

// loadScore reads a JSON score or converts a MIDI file. A MIDI time
// signature overrides the configured measure length.
func loadScore(path string, cfg config.Config) (model.Score, config.Config, error) {
	if !isMidi(path) {
		s, err := score.Read(path)
		return s, cfg, err
	}

	smf, err := midi.ReadMidiFile(path)
	if err != nil {
		return model.Score{}, cfg, err
	}
	if q, ok := midi.QuantsPerMeasure(smf); ok {
		log.WithField("quants_per_measure", q).Debug("using time signature from midi file")
		cfg.QuantsPerMeasure = q
	}
	if from > 0 || measures > 0 {
		bar := midi.MeasureTicks(smf, cfg.QuantsPerMeasure)
		end := int64(1<<62)
		if measures > 0 {
			end = int64(from+measures) * bar
		}
		smf = midi.Excerpt(smf, int64(from)*bar, end)
	}
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s, err := midi.ToScore(smf, title, cfg)
	return s, cfg, err
}
