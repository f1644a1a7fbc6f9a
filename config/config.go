// Package config holds the layout parameters every calculator takes as an
// explicit argument. A Config is a plain value: copy it to vary it.
package config

import (
	"os"

	"github.com/jsphweid/scorelayout/constants"
	"github.com/jsphweid/scorelayout/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	QuantsPerMeasure    int     `yaml:"quants_per_measure" json:"quants_per_measure"`
	MeasurePaddingLeft  float64 `yaml:"measure_padding_left" json:"measure_padding_left"`
	MeasurePaddingRight float64 `yaml:"measure_padding_right" json:"measure_padding_right"`

	// SpacingUnit is multiplied by a duration factor to give a note's base width
	SpacingUnit           float64            `yaml:"spacing_unit" json:"spacing_unit"`
	DurationFactors       map[string]float64 `yaml:"duration_factors" json:"duration_factors"`
	DefaultDurationFactor float64            `yaml:"default_duration_factor" json:"default_duration_factor"`

	HitZoneRadius           float64 `yaml:"hit_zone_radius" json:"hit_zone_radius"`
	AccidentalSpacing       float64 `yaml:"accidental_spacing" json:"accidental_spacing"`
	SecondSpacing           float64 `yaml:"second_spacing" json:"second_spacing"`
	SecondAccidentalSpacing float64 `yaml:"second_accidental_spacing" json:"second_accidental_spacing"`
	DottedSpacing           float64 `yaml:"dotted_spacing" json:"dotted_spacing"`
	LookaheadPaddingFactor  float64 `yaml:"lookahead_padding_factor" json:"lookahead_padding_factor"`

	StaffLineSpacing float64 `yaml:"staff_line_spacing" json:"staff_line_spacing"`
	NoteheadWidth    float64 `yaml:"notehead_width" json:"notehead_width"`

	StemLengths       map[string]float64 `yaml:"stem_lengths" json:"stem_lengths"`
	DefaultStemLength float64            `yaml:"default_stem_length" json:"default_stem_length"`
	MaxBeamSlope      float64            `yaml:"max_beam_slope" json:"max_beam_slope"`
	MinStemLength     float64            `yaml:"min_stem_length" json:"min_stem_length"`
	// 0 means a quarter of the measure
	BeamBeatQuants int `yaml:"beam_beat_quants" json:"beam_beat_quants"`

	TupletBracketOffset float64 `yaml:"tuplet_bracket_offset" json:"tuplet_bracket_offset"`
	MagnetThreshold     int     `yaml:"magnet_threshold" json:"magnet_threshold"`
}

func Default() Config {
	return Config{
		QuantsPerMeasure:    constants.QuantsPerWholeNote,
		MeasurePaddingLeft:  20,
		MeasurePaddingRight: 20,
		SpacingUnit:         10,
		DurationFactors: map[string]float64{
			model.Whole:        8,
			model.Half:         5.6,
			model.Quarter:      4,
			model.Eighth:       2.8,
			model.Sixteenth:    2,
			model.ThirtySecond: 1.6,
			model.SixtyFourth:  1.4,
		},
		DefaultDurationFactor:   4,
		HitZoneRadius:           12,
		AccidentalSpacing:       12,
		SecondSpacing:           10,
		SecondAccidentalSpacing: 6,
		DottedSpacing:           6,
		LookaheadPaddingFactor:  0.5,
		StaffLineSpacing:        10,
		NoteheadWidth:           12,
		StemLengths: map[string]float64{
			model.ThirtySecond: 40,
			model.SixtyFourth:  45,
		},
		DefaultStemLength:   35,
		MaxBeamSlope:        1.0,
		MinStemLength:       25,
		TupletBracketOffset: 10,
		MagnetThreshold:     constants.MagnetThreshold,
	}
}

// DurationFactor falls back to DefaultDurationFactor for unknown labels.
func (c Config) DurationFactor(d model.Duration) float64 {
	if f, ok := c.DurationFactors[d]; ok {
		return f
	}
	return c.DefaultDurationFactor
}

func (c Config) StemLength(d model.Duration) float64 {
	if l, ok := c.StemLengths[d]; ok {
		return l
	}
	return c.DefaultStemLength
}

// NoteWidth is the base horizontal space of a note of the given duration.
func (c Config) NoteWidth(d model.Duration, dotted bool) float64 {
	w := c.SpacingUnit * c.DurationFactor(d)
	if dotted {
		w += c.DottedSpacing
	}
	return w
}

func (c Config) BeatQuants() int {
	if c.BeamBeatQuants > 0 {
		return c.BeamBeatQuants
	}
	return c.QuantsPerMeasure / 4
}

func (c Config) Validate() error {
	if c.QuantsPerMeasure <= 0 {
		return errors.Errorf("quants_per_measure must be positive, have %v", c.QuantsPerMeasure)
	}
	if c.SpacingUnit <= 0 {
		return errors.Errorf("spacing_unit must be positive, have %v", c.SpacingUnit)
	}
	if c.MaxBeamSlope < 0 {
		return errors.Errorf("max_beam_slope cannot be negative, have %v", c.MaxBeamSlope)
	}
	if c.MinStemLength < 0 {
		return errors.Errorf("min_stem_length cannot be negative, have %v", c.MinStemLength)
	}
	return nil
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	dat, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "could not read config %v", path)
	}
	return Parse(dat)
}

func Parse(dat []byte) (Config, error) {
	cfg := Default()
	var overrides Config
	if err := yaml.Unmarshal(dat, &overrides); err != nil {
		return cfg, errors.Wrap(err, "could not parse config")
	}
	cfg = merge(cfg, overrides)
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// merge copies every non-zero field of o onto base
func merge(base Config, o Config) Config {
	setInt := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	setFloat := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	setInt(&base.QuantsPerMeasure, o.QuantsPerMeasure)
	setInt(&base.BeamBeatQuants, o.BeamBeatQuants)
	setInt(&base.MagnetThreshold, o.MagnetThreshold)
	setFloat(&base.MeasurePaddingLeft, o.MeasurePaddingLeft)
	setFloat(&base.MeasurePaddingRight, o.MeasurePaddingRight)
	setFloat(&base.SpacingUnit, o.SpacingUnit)
	setFloat(&base.DefaultDurationFactor, o.DefaultDurationFactor)
	setFloat(&base.HitZoneRadius, o.HitZoneRadius)
	setFloat(&base.AccidentalSpacing, o.AccidentalSpacing)
	setFloat(&base.SecondSpacing, o.SecondSpacing)
	setFloat(&base.SecondAccidentalSpacing, o.SecondAccidentalSpacing)
	setFloat(&base.DottedSpacing, o.DottedSpacing)
	setFloat(&base.LookaheadPaddingFactor, o.LookaheadPaddingFactor)
	setFloat(&base.StaffLineSpacing, o.StaffLineSpacing)
	setFloat(&base.NoteheadWidth, o.NoteheadWidth)
	setFloat(&base.DefaultStemLength, o.DefaultStemLength)
	setFloat(&base.MaxBeamSlope, o.MaxBeamSlope)
	setFloat(&base.MinStemLength, o.MinStemLength)
	setFloat(&base.TupletBracketOffset, o.TupletBracketOffset)

	// maps are copied so the defaults are never shared with the result
	base.DurationFactors = mergeMap(base.DurationFactors, o.DurationFactors)
	base.StemLengths = mergeMap(base.StemLengths, o.StemLengths)
	return base
}

func mergeMap(base, o map[string]float64) map[string]float64 {
	res := make(map[string]float64, len(base)+len(o))
	for k, v := range base {
		res[k] = v
	}
	for k, v := range o {
		res[k] = v
	}
	return res
}
