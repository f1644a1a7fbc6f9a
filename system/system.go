// Package system aligns the measures at one index across every staff of a
// system so that simultaneous events share an x position.
package system

import (
	"math"

	"github.com/jsphweid/scorelayout/chord"
	"github.com/jsphweid/scorelayout/config"
	"github.com/jsphweid/scorelayout/duration"
	"github.com/jsphweid/scorelayout/measure"
	"github.com/jsphweid/scorelayout/model"
	"github.com/jsphweid/scorelayout/util"
)

type StaffMeasure struct {
	Measure model.Measure
	Clef    model.Clef
}

type timeline struct {
	staff  StaffMeasure
	starts []int
	ends   []int
}

// padding needed by the events starting at one time point, widest per
// category across staves
type padding struct {
	minWidth   float64
	accidental float64
	second     float64
	dotted     float64
}

func (p *padding) widen(o padding) {
	p.minWidth = util.Max(p.minWidth, o.minWidth)
	p.accidental = util.Max(p.accidental, o.accidental)
	p.second = util.Max(p.second, o.second)
	p.dotted = util.Max(p.dotted, o.dotted)
}

func eventPadding(e model.Event, clef model.Clef, segment, span int, cfg config.Config) padding {
	var p padding
	share := 1.0
	if span > segment && span > 0 {
		share = float64(segment) / float64(span)
	}
	p.minWidth = cfg.SpacingUnit * cfg.DurationFactor(e.Duration) * share
	if e.HasAccidental() {
		p.accidental = cfg.AccidentalSpacing
	}
	if chord.Layout(e.Notes, clef, nil, cfg).HasSeconds() {
		p.second = cfg.SecondSpacing
		if e.HasAccidental() {
			p.second += cfg.SecondAccidentalSpacing
		}
	}
	if e.Dotted {
		p.dotted = cfg.DottedSpacing
	}
	return p
}

// Synchronize builds one quant -> x map for every staff. Each segment between
// consecutive time points gets sqrt-proportional base space, raised to the
// widest minimum width of any event starting there, plus the widest
// accidental, second and dot padding among those events.
func Synchronize(measures []StaffMeasure, cfg config.Config) model.SystemLayout {
	points := []int{0}
	timelines := make([]timeline, len(measures))
	leads := map[int]float64{}
	for i, m := range measures {
		starts, _ := duration.Offsets(m.Measure.Events)
		ends := duration.Ends(m.Measure.Events)
		timelines[i] = timeline{staff: m, starts: starts, ends: ends}
		points = append(points, starts...)
		points = append(points, ends...)
		for j, lead := range measure.Leads(m.Measure.Events, m.Clef, cfg) {
			leads[starts[j]] = util.Max(leads[starts[j]], lead)
		}
	}
	points = util.Dedupe(points)

	x := cfg.MeasurePaddingLeft
	quantToX := map[int]float64{points[0]: x}
	for i := 0; i+1 < len(points); i++ {
		from, to := points[i], points[i+1]
		segment := to - from

		var pad padding
		for _, tl := range timelines {
			for j, e := range tl.staff.Measure.Events {
				if tl.starts[j] != from {
					continue
				}
				span := tl.ends[j] - tl.starts[j]
				pad.widen(eventPadding(e, tl.staff.Clef, segment, span, cfg))
			}
		}

		base := cfg.SpacingUnit * math.Sqrt(float64(segment))
		x += util.Max(base, pad.minWidth) + pad.accidental + pad.second + pad.dotted
		quantToX[to] = x
	}

	return model.SystemLayout{
		QuantToX:   quantToX,
		Leads:      leads,
		TotalWidth: x + cfg.MeasurePaddingRight,
	}
}

// LayoutMeasures synchronizes the staves and lays each one out on the shared
// grid. Noteheads starting at the same quant share one x on every staff.
// Every returned layout, and the system, has the width of the widest.
func LayoutMeasures(measures []StaffMeasure, cfg config.Config) ([]model.MeasureLayout, model.SystemLayout) {
	sys := Synchronize(measures, cfg)

	layouts := make([]model.MeasureLayout, len(measures))
	width := sys.TotalWidth
	for i, m := range measures {
		layouts[i] = measure.Layout(m.Measure.Events, measure.Options{
			Clef:            m.Clef,
			IsPickup:        m.Measure.IsPickup,
			ForcedPositions: sys.QuantToX,
			ForcedLeads:     sys.Leads,
		}, cfg)
		width = util.Max(width, layouts[i].TotalWidth)
	}
	for i := range layouts {
		layouts[i] = measure.Widen(layouts[i], width)
	}
	sys.TotalWidth = width
	return layouts, sys
}
