package measure

import (
	"fmt"
	"math"
	"testing"

	"github.com/jsphweid/scorelayout/config"
	"github.com/jsphweid/scorelayout/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func note(id string, d model.Duration, pitch string) model.Event {
	return model.Event{ID: id, Duration: d, Notes: []model.Note{{ID: id + "-n", Pitch: pitch}}}
}

func sharp(id string, d model.Duration, pitch string) model.Event {
	e := note(id, d, pitch)
	e.Notes[0].Accidental = "#"
	return e
}

func triplet(id string, pos int) model.Event {
	e := note(id, model.Eighth, "C5")
	e.Tuplet = &model.Tuplet{Ratio: [2]int{3, 2}, GroupSize: 3, Position: pos}
	return e
}

var treble = Options{Clef: model.Treble}

func assertZonesTile(t *testing.T, layout model.MeasureLayout) {
	zones := layout.HitZones
	require.NotEmpty(t, zones)
	assert.Equal(t, 0.0, zones[0].StartX)
	assert.Equal(t, layout.TotalWidth, zones[len(zones)-1].EndX)
	assert.Equal(t, model.ZoneAppend, zones[len(zones)-1].Type)
	for i := 0; i < len(zones)-1; i++ {
		assert.Equal(t, zones[i].EndX, zones[i+1].StartX, "zone %d", i)
		assert.LessOrEqual(t, zones[i].StartX, zones[i].EndX, "zone %d", i)
	}
}

func TestEmptyMeasure(t *testing.T) {
	cfg := config.Default()
	layout := Layout(nil, treble, cfg)

	assert := assert.New(t)
	assert.Equal(cfg.NoteWidth(model.Whole, false)+cfg.MeasurePaddingLeft+cfg.MeasurePaddingRight, layout.TotalWidth)
	assert.Len(layout.HitZones, 1)
	assert.Equal(model.ZoneAppend, layout.HitZones[0].Type)
	assert.Equal(0, layout.HitZones[0].Index)
	require.Len(t, layout.ProcessedEvents, 1)
	assert.Equal(model.PlaceholderID, layout.ProcessedEvents[0].ID)
	assert.Equal(model.Whole, layout.ProcessedEvents[0].Duration)
	assert.Equal(cfg.QuantsPerMeasure, layout.ProcessedEvents[0].Quants)
	assert.Equal(cfg.MeasurePaddingLeft, layout.EventPositions[model.PlaceholderID])
}

func TestEmptyPickupIsNarrower(t *testing.T) {
	cfg := config.Default()
	pickup := Layout(nil, Options{Clef: model.Treble, IsPickup: true}, cfg)
	full := Layout(nil, treble, cfg)

	assert.Equal(t, cfg.NoteWidth(model.Quarter, false)+cfg.MeasurePaddingLeft+cfg.MeasurePaddingRight, pickup.TotalWidth)
	assert.Less(t, pickup.TotalWidth, full.TotalWidth)
}

func TestSingleQuarterStartsAtPadding(t *testing.T) {
	cfg := config.Default()
	layout := Layout([]model.Event{note("e1", model.Quarter, "C4")}, treble, cfg)

	assert.Equal(t, cfg.MeasurePaddingLeft, layout.EventPositions["e1"])
	assertZonesTile(t, layout)
}

func TestZonesForFourQuarters(t *testing.T) {
	events := []model.Event{
		note("a", model.Quarter, "C4"),
		note("b", model.Quarter, "D4"),
		note("c", model.Quarter, "E4"),
		note("d", model.Quarter, "F4"),
	}
	layout := Layout(events, treble, config.Default())
	assertZonesTile(t, layout)

	var types []string
	for _, z := range layout.HitZones {
		types = append(types, fmt.Sprintf("%v:%d", z.Type, z.Index))
	}
	assert.Equal(t, []string{
		"EVENT:0", "INSERT:1",
		"EVENT:1", "INSERT:2",
		"EVENT:2", "INSERT:3",
		"EVENT:3", "APPEND:4",
	}, types)
	assert.Equal(t, "b", layout.HitZones[2].EventID)
}

func TestWidthMatchesLayout(t *testing.T) {
	cfg := config.Default()
	cases := [][]model.Event{
		nil,
		{note("a", model.Quarter, "C4")},
		{sharp("a", model.Half, "F4"), note("b", model.Eighth, "G4"), note("c", model.Eighth, "")},
		{triplet("a", 0), triplet("b", 1), triplet("c", 2), note("d", model.Half, "B4")},
	}
	for i, events := range cases {
		t.Run(fmt.Sprintf("case %d", i), func(t *testing.T) {
			assert.Equal(t, Layout(events, treble, cfg).TotalWidth, Width(events, treble, cfg))
		})
	}
}

func TestAddingEventsNeverShrinks(t *testing.T) {
	cfg := config.Default()
	var events []model.Event
	prev := Width(events, treble, cfg)
	for i := 0; i < 12; i++ {
		events = append(events, note(fmt.Sprintf("e%d", i), model.Quarter, "A4"))
		w := Width(events, treble, cfg)
		assert.GreaterOrEqual(t, w, prev)
		prev = w
	}
}

func TestAccidentalPushesEventRight(t *testing.T) {
	cfg := config.Default()
	plain := Layout([]model.Event{note("a", model.Quarter, "E4"), note("b", model.Quarter, "F4")}, treble, cfg)
	withSharp := Layout([]model.Event{note("a", model.Quarter, "E4"), sharp("b", model.Quarter, "F#4")}, treble, cfg)

	assert.Greater(t, withSharp.EventPositions["b"], plain.EventPositions["b"])

	first := Layout([]model.Event{sharp("a", model.Quarter, "F#4")}, treble, cfg)
	assert.Greater(t, first.EventPositions["a"], cfg.MeasurePaddingLeft)
}

func TestLookaheadPadding(t *testing.T) {
	cfg := config.Default()
	layout := Layout([]model.Event{note("a", model.Quarter, "E4"), sharp("b", model.Quarter, "F#4")}, treble, cfg)

	want := cfg.MeasurePaddingLeft + cfg.NoteWidth(model.Quarter, false) +
		cfg.LookaheadPaddingFactor*cfg.AccidentalSpacing + cfg.AccidentalSpacing
	assert.InDelta(t, want, layout.EventPositions["b"], 1e-9)
}

func TestDownStemSecondCompensation(t *testing.T) {
	cfg := config.Default()
	e := model.Event{ID: "a", Duration: model.Quarter, Notes: []model.Note{
		{ID: "lo", Pitch: "C5"},
		{ID: "hi", Pitch: "D5"},
	}}
	layout := Layout([]model.Event{note("first", model.Quarter, "E4"), e}, treble, cfg)

	assert := assert.New(t)
	column := cfg.MeasurePaddingLeft + cfg.NoteWidth(model.Quarter, false)
	p := layout.ProcessedEvents[1]
	assert.Equal(model.Down, p.Chord.Direction)
	assert.Equal(column+cfg.NoteheadWidth, p.X)

	// the event zone's left edge is where an unshifted note's would be
	var zone model.HitZone
	for _, z := range layout.HitZones {
		if z.Type == model.ZoneEvent && z.EventID == "a" {
			zone = z
		}
	}
	assert.Equal(column-cfg.HitZoneRadius, zone.StartX)
	assertZonesTile(t, layout)
}

func TestSecondsWidenEvents(t *testing.T) {
	cfg := config.Default()
	e := model.Event{ID: "a", Duration: model.Quarter, Notes: []model.Note{
		{ID: "x", Pitch: "F4"},
		{ID: "y", Pitch: "G4", Accidental: "#"},
	}}
	layout := Layout([]model.Event{e, note("b", model.Quarter, "C4")}, treble, cfg)

	want := cfg.MeasurePaddingLeft + cfg.AccidentalSpacing + cfg.NoteWidth(model.Quarter, false) +
		cfg.SecondSpacing + cfg.SecondAccidentalSpacing
	assert.InDelta(t, want, layout.EventPositions["b"], 1e-9)
}

func TestTupletMembersEvenlySpacedAndCompressed(t *testing.T) {
	cfg := config.Default()
	events := []model.Event{triplet("a", 0), triplet("b", 1), triplet("c", 2), note("d", model.Quarter, "C5")}
	layout := Layout(events, treble, cfg)
	pos := layout.EventPositions

	assert := assert.New(t)
	assert.InDelta(pos["b"]-pos["a"], pos["c"]-pos["b"], 1e-9)
	assert.Less(pos["b"]-pos["a"], cfg.NoteWidth(model.Eighth, false))

	var starts []int
	for _, p := range layout.ProcessedEvents {
		starts = append(starts, p.Start)
	}
	assert.Equal([]int{0, 5, 11, 16}, starts)
	assertZonesTile(t, layout)
}

func TestNoLookaheadInsideTupletGroup(t *testing.T) {
	cfg := config.Default()
	b := triplet("b", 1)
	b.Notes[0].Accidental = "#"
	events := []model.Event{triplet("a", 0), b, triplet("c", 2)}
	layout := Layout(events, treble, cfg)
	pos := layout.EventPositions

	compression := math.Sqrt(2.0 / 3.0)
	assert.InDelta(t, cfg.NoteWidth(model.Eighth, false)*compression+cfg.AccidentalSpacing, pos["b"]-pos["a"], 1e-9)
	assertZonesTile(t, layout)
}

func TestLookaheadBeforeTupletGroup(t *testing.T) {
	cfg := config.Default()
	a := triplet("a", 0)
	a.Notes[0].Accidental = "#"
	events := []model.Event{note("q", model.Quarter, "C5"), a, triplet("b", 1), triplet("c", 2)}
	layout := Layout(events, treble, cfg)

	want := cfg.NoteWidth(model.Quarter, false) + cfg.LookaheadPaddingFactor*cfg.AccidentalSpacing + cfg.AccidentalSpacing
	assert.InDelta(t, want, layout.EventPositions["a"]-layout.EventPositions["q"], 1e-9)
}

func TestTupletSharesFurthestNoteDirection(t *testing.T) {
	events := []model.Event{triplet("a", 0), triplet("b", 1), triplet("c", 2)}
	events[1].Notes = []model.Note{{ID: "low", Pitch: "C4"}}
	// a and c on C5 alone would stem down; C4 is further away and wins
	layout := Layout(events, treble, config.Default())

	for _, p := range layout.ProcessedEvents {
		assert.Equal(t, model.Up, p.Chord.Direction, p.ID)
	}
}

func TestForcedPositions(t *testing.T) {
	cfg := config.Default()
	events := []model.Event{note("a", model.Quarter, "C4"), note("b", model.Quarter, "D4")}
	opts := Options{Clef: model.Treble, ForcedPositions: map[int]float64{0: 20, 16: 150}}
	layout := Layout(events, opts, cfg)

	assert := assert.New(t)
	assert.Equal(20.0, layout.EventPositions["a"])
	assert.Equal(150.0, layout.EventPositions["b"])
	assert.Equal(150+cfg.NoteWidth(model.Quarter, false)+cfg.MeasurePaddingRight, layout.TotalWidth)
	assertZonesTile(t, layout)
}

func TestForcedLeadsOverrideOwnLead(t *testing.T) {
	cfg := config.Default()
	events := []model.Event{note("a", model.Quarter, "C5"), sharp("b", model.Quarter, "F#5")}
	cases := []struct {
		name  string
		leads map[int]float64
		want  float64
	}{
		{name: "own", leads: nil, want: 150 + cfg.AccidentalSpacing},
		{name: "shared", leads: map[int]float64{16: 30}, want: 180},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			opts := Options{Clef: model.Treble, ForcedPositions: map[int]float64{0: 20, 16: 150}, ForcedLeads: c.leads}
			layout := Layout(events, opts, cfg)
			assert.Equal(t, c.want, layout.EventPositions["b"])
			assertZonesTile(t, layout)
		})
	}
}

func TestLeads(t *testing.T) {
	cfg := config.Default()
	events := []model.Event{note("a", model.Quarter, "C5"), sharp("b", model.Quarter, "F#5")}
	assert.Equal(t, []float64{0, cfg.AccidentalSpacing}, Leads(events, model.Treble, cfg))
}

func TestLayoutDoesNotMutateInput(t *testing.T) {
	events := []model.Event{triplet("a", 0), triplet("b", 1), triplet("c", 2)}
	layout := Layout(events, treble, config.Default())

	layout.ProcessedEvents[0].Notes[0].Pitch = "G9"
	layout.ProcessedEvents[0].Tuplet.Position = 7
	assert.Equal(t, "C5", events[0].Notes[0].Pitch)
	assert.Equal(t, 0, events[0].Tuplet.Position)
}

func TestRestsAreLaidOut(t *testing.T) {
	events := []model.Event{note("r", model.Half, ""), note("a", model.Half, "A4")}
	layout := Layout(events, treble, config.Default())

	assert.Len(t, layout.ProcessedEvents, 2)
	assert.Greater(t, layout.EventPositions["a"], layout.EventPositions["r"])
	assertZonesTile(t, layout)
}

func TestWiden(t *testing.T) {
	cfg := config.Default()
	layout := Layout([]model.Event{note("a", model.Quarter, "C4")}, treble, cfg)
	wide := Widen(layout, layout.TotalWidth+50)

	assert := assert.New(t)
	assert.Equal(layout.TotalWidth+50, wide.TotalWidth)
	assertZonesTile(t, wide)
	// original untouched
	assert.Equal(layout.TotalWidth, layout.HitZones[len(layout.HitZones)-1].EndX)
	assert.Equal(layout, Widen(layout, 1))
}
