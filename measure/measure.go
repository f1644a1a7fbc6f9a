// Package measure lays out the events of one measure left to right: event
// positions, hit zones for mouse interaction and the measure's total width.
package measure

import (
	"github.com/jsphweid/scorelayout/chord"
	"github.com/jsphweid/scorelayout/config"
	"github.com/jsphweid/scorelayout/duration"
	"github.com/jsphweid/scorelayout/model"
	"github.com/jsphweid/scorelayout/tuplet"
	"github.com/jsphweid/scorelayout/util"
)

type Options struct {
	// 0 means cfg.QuantsPerMeasure
	TotalQuants int
	Clef        model.Clef
	IsPickup    bool
	// quant -> x; when the cursor reaches one of these quants it snaps to the x
	ForcedPositions map[int]float64
	// quant -> notehead offset from a forced column, shared by every staff
	// so that snapped noteheads line up
	ForcedLeads map[int]float64
}

type walker struct {
	cfg    config.Config
	opts   Options
	events []model.Event
	starts []int
	ends   []int

	cursor     float64
	processed  []model.LaidOutEvent
	eventZones []model.HitZone
	totalWidth float64
}

func Layout(events []model.Event, opts Options, cfg config.Config) model.MeasureLayout {
	w := walk(events, opts, cfg)
	if len(events) == 0 {
		return w.emptyLayout()
	}
	return model.MeasureLayout{
		HitZones:        w.hitZones(),
		EventPositions:  w.positions(),
		TotalWidth:      w.totalWidth,
		ProcessedEvents: w.processed,
	}
}

// Width is Layout(...).TotalWidth without building hit zones.
func Width(events []model.Event, opts Options, cfg config.Config) float64 {
	return walk(events, opts, cfg).totalWidth
}

// MinWidth is the narrowest a measure may be: a whole note (a quarter for
// pickups) plus both paddings.
func MinWidth(isPickup bool, cfg config.Config) float64 {
	d := model.Whole
	if isPickup {
		d = model.Quarter
	}
	return cfg.NoteWidth(d, false) + cfg.MeasurePaddingLeft + cfg.MeasurePaddingRight
}

func walk(events []model.Event, opts Options, cfg config.Config) *walker {
	w := &walker{cfg: cfg, opts: opts, events: events, cursor: cfg.MeasurePaddingLeft}
	w.starts, _ = duration.Offsets(events)
	w.ends = duration.Ends(events)

	eachEvent(events, opts.Clef, w.place)

	w.totalWidth = util.Max(w.cursor+cfg.MeasurePaddingRight, MinWidth(opts.IsPickup, cfg))
	return w
}

// eachEvent visits events in order with the stem direction forced by their
// tuplet group (nil outside one) and whether the next event is in the same
// group.
func eachEvent(events []model.Event, clef model.Clef, fn func(i int, forced *model.Direction, grouped bool)) {
	for i := 0; i < len(events); {
		e := events[i]
		switch e.Kind() {
		case model.TupletMember:
			if e.Tuplet.Position == 0 {
				end := tuplet.Collect(events, i)
				dir := tuplet.Direction(events[i:end], clef)
				for j := i; j < end; j++ {
					fn(j, &dir, j+1 < end)
				}
				i = end
				continue
			}
			// an orphaned member still gets its compressed width
			fn(i, nil, false)
		default:
			fn(i, nil, false)
		}
		i++
	}
}

// Lead is how far right of its column an event's notehead sits: room for the
// accidental plus the overhang of a down-stem second.
func Lead(e model.Event, layout model.ChordLayout, cfg config.Config) float64 {
	var lead float64
	if e.HasAccidental() {
		lead = cfg.AccidentalSpacing
	}
	return lead + util.Abs(layout.MinOffset())
}

// Leads returns Lead for every event, with tuplet stem directions applied the
// same way Layout applies them.
func Leads(events []model.Event, clef model.Clef, cfg config.Config) []float64 {
	res := make([]float64, len(events))
	eachEvent(events, clef, func(i int, forced *model.Direction, _ bool) {
		res[i] = Lead(events[i], chord.Layout(events[i].Notes, clef, forced, cfg), cfg)
	})
	return res
}

// EventWidth is the horizontal advance of a single event before tuplet
// compression and lookahead padding.
func EventWidth(e model.Event, layout model.ChordLayout, cfg config.Config) float64 {
	width := cfg.NoteWidth(e.Duration, e.Dotted)
	if e.HasAccidental() {
		width += cfg.AccidentalSpacing
	}
	if layout.HasSeconds() {
		width += cfg.SecondSpacing
		if e.HasAccidental() {
			width += cfg.SecondAccidentalSpacing
		}
	}
	return width
}

func (w *walker) place(i int, forced *model.Direction, grouped bool) {
	e := w.events[i]
	layout := chord.Layout(e.Notes, w.opts.Clef, forced, w.cfg)

	// a down-stem second hangs left of the column; shift the head right so
	// the zone's left edge stays put
	lead := Lead(e, layout, w.cfg)
	if col, ok := w.opts.ForcedPositions[w.starts[i]]; ok {
		w.cursor = col
		if shared, ok := w.opts.ForcedLeads[w.starts[i]]; ok {
			lead = shared
		}
	}
	x := w.cursor + lead

	advance := EventWidth(e, layout, w.cfg) * tuplet.Compression(e.Tuplet)
	// members of one tuplet group stay evenly spaced
	if !grouped && i+1 < len(w.events) && w.events[i+1].HasAccidental() {
		advance += w.cfg.LookaheadPaddingFactor * w.cfg.AccidentalSpacing
	}

	w.processed = append(w.processed, model.LaidOutEvent{
		Event:  copyEvent(e),
		X:      x,
		Start:  w.starts[i],
		Quants: w.ends[i] - w.starts[i],
		Chord:  layout,
	})
	w.eventZones = append(w.eventZones, model.HitZone{
		StartX:  x - w.cfg.HitZoneRadius + layout.MinOffset(),
		EndX:    x + w.cfg.HitZoneRadius + layout.MaxOffset(),
		Index:   i,
		Type:    model.ZoneEvent,
		EventID: e.ID,
	})
	w.cursor += advance
}

func (w *walker) positions() map[string]float64 {
	res := make(map[string]float64, len(w.processed))
	for _, p := range w.processed {
		res[p.ID] = p.X
	}
	return res
}

func (w *walker) hitZones() []model.HitZone {
	var zones []model.HitZone
	for i, z := range w.eventZones {
		zones = append(zones, z)
		if i+1 < len(w.eventZones) && z.EndX < w.eventZones[i+1].StartX {
			zones = append(zones, model.HitZone{
				StartX: z.EndX,
				EndX:   w.eventZones[i+1].StartX,
				Index:  i + 1,
				Type:   model.ZoneInsert,
			})
		}
	}
	last := w.eventZones[len(w.eventZones)-1]
	zones = append(zones, model.HitZone{
		StartX: last.EndX,
		EndX:   w.totalWidth,
		Index:  len(w.events),
		Type:   model.ZoneAppend,
	})
	return tile(zones, w.totalWidth)
}

// tile makes the zones cover [0, width] exactly: starts are made monotonic
// and kept inside the measure, and every end is clamped to the next start.
func tile(zones []model.HitZone, width float64) []model.HitZone {
	zones[0].StartX = 0
	for i := range zones {
		zones[i].StartX = util.Min(zones[i].StartX, width)
		if i > 0 {
			zones[i].StartX = util.Max(zones[i].StartX, zones[i-1].StartX)
		}
	}
	for i := 0; i < len(zones)-1; i++ {
		zones[i].EndX = zones[i+1].StartX
	}
	zones[len(zones)-1].EndX = width
	return zones
}

func (w *walker) emptyLayout() model.MeasureLayout {
	totalQuants := w.opts.TotalQuants
	if totalQuants <= 0 {
		totalQuants = w.cfg.QuantsPerMeasure
	}
	placeholder := model.Event{
		ID:       model.PlaceholderID,
		Duration: model.Whole,
		Notes:    []model.Note{{ID: model.PlaceholderID + "-note"}},
	}
	x := w.cfg.MeasurePaddingLeft
	return model.MeasureLayout{
		HitZones: []model.HitZone{{
			StartX: 0,
			EndX:   w.totalWidth,
			Index:  0,
			Type:   model.ZoneAppend,
		}},
		EventPositions: map[string]float64{placeholder.ID: x},
		TotalWidth:     w.totalWidth,
		ProcessedEvents: []model.LaidOutEvent{{
			Event:  placeholder,
			X:      x,
			Quants: totalQuants,
			Chord:  chord.Layout(placeholder.Notes, w.opts.Clef, nil, w.cfg),
		}},
	}
}

func copyEvent(e model.Event) model.Event {
	res := e
	res.Notes = make([]model.Note, len(e.Notes))
	copy(res.Notes, e.Notes)
	if e.Tuplet != nil {
		t := *e.Tuplet
		res.Tuplet = &t
	}
	return res
}

// Widen returns a copy of the layout stretched to width; the trailing APPEND
// zone absorbs the extra space. Narrower widths are ignored.
func Widen(layout model.MeasureLayout, width float64) model.MeasureLayout {
	if width <= layout.TotalWidth {
		return layout
	}
	res := layout
	res.TotalWidth = width
	res.HitZones = make([]model.HitZone, len(layout.HitZones))
	copy(res.HitZones, layout.HitZones)
	if len(res.HitZones) > 0 {
		res.HitZones[len(res.HitZones)-1].EndX = width
	}
	return res
}
