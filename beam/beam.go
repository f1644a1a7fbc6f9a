package beam

import (
	"github.com/jsphweid/scorelayout/chord"
	"github.com/jsphweid/scorelayout/config"
	"github.com/jsphweid/scorelayout/constants"
	"github.com/jsphweid/scorelayout/duration"
	"github.com/jsphweid/scorelayout/model"
	"github.com/jsphweid/scorelayout/pitch"
	"github.com/jsphweid/scorelayout/util"
)

// Eligible events can be beamed: flagged, undotted and not a rest.
func Eligible(e model.Event) bool {
	switch e.Kind() {
	case model.Rest:
		return false
	case model.TupletMember:
		if e.IsRest() {
			return false
		}
	}
	return duration.IsFlagged(e.Duration) && !e.Dotted
}

// BoundaryQuants is the span a beam may not cross for the given duration.
// An explicit cfg.BeamBeatQuants is used as is. Otherwise the boundary is the
// beat (a quarter of the measure), doubled for durations longer than a
// quarter of the beat so that eighths in 4/4 are beamed in fours.
func BoundaryQuants(d model.Duration, cfg config.Config) int {
	if cfg.BeamBeatQuants > 0 {
		return cfg.BeamBeatQuants
	}
	beat := cfg.BeatQuants()
	if beat <= 0 {
		beat = constants.QuantsPerQuarter
	}
	if duration.Base(d)*4 > beat {
		return beat * 2
	}
	return beat
}

// Groups beams runs of eligible events of one duration type. A run breaks on
// any ineligible or unplaced event, a change of duration or tuplet ratio, and
// where it would cross a beat boundary. Runs shorter than two are dropped.
func Groups(events []model.Event, positions map[string]float64, clef model.Clef, cfg config.Config) []model.BeamGroup {
	starts, _ := duration.Offsets(events)

	var res []model.BeamGroup
	var run []model.Event
	var runUnit int
	flush := func() {
		if len(run) >= 2 {
			res = append(res, Geometry(run, positions, clef, cfg))
		}
		run = nil
	}

	for i, e := range events {
		_, placed := positions[e.ID]
		if !Eligible(e) || !placed {
			flush()
			continue
		}
		unit := starts[i] / BoundaryQuants(e.Duration, cfg)
		if len(run) > 0 && (unit != runUnit || run[0].Duration != e.Duration || !model.SameRatio(run[0], e)) {
			flush()
		}
		if len(run) == 0 {
			runUnit = unit
		}
		run = append(run, e)
	}
	flush()
	return res
}

type stem struct {
	id      string
	x       float64
	anchorY float64
	length  float64
}

// Direction compares the average staff position of every note in the group
// with the middle line; a tie is an up stem.
func Direction(events []model.Event, clef model.Clef) model.Direction {
	var sum, count int
	for _, e := range events {
		for _, n := range e.Notes {
			if n.IsRest() {
				continue
			}
			sum += pitch.Offset(n.Pitch, clef)
			count++
		}
	}
	if count > 0 && sum > 0 {
		return model.Down
	}
	return model.Up
}

func stemsFor(events []model.Event, dir model.Direction, positions map[string]float64, clef model.Clef, cfg config.Config) []stem {
	res := make([]stem, len(events))
	for i, e := range events {
		layout := chord.Layout(e.Notes, clef, &dir, cfg)
		s := stem{id: e.ID, length: cfg.StemLength(e.Duration)}
		if dir == model.Up {
			// right edge of the head, measured from the top note
			s.x = positions[e.ID] + cfg.NoteheadWidth
			s.anchorY = layout.MinY
		} else {
			s.x = positions[e.ID]
			s.anchorY = layout.MaxY
		}
		res[i] = s
	}
	return res
}

func stemLength(dir model.Direction, anchorY, beamY float64) float64 {
	if dir == model.Up {
		return anchorY - beamY
	}
	return beamY - anchorY
}

// Geometry computes the beam line for one run. The slope between the first
// and last stems is clamped to cfg.MaxBeamSlope, holding the start fixed, and
// then the whole beam is moved away from the notes by the largest shortfall
// against cfg.MinStemLength.
func Geometry(events []model.Event, positions map[string]float64, clef model.Clef, cfg config.Config) model.BeamGroup {
	dir := Direction(events, clef)
	stems := stemsFor(events, dir, positions, clef, cfg)
	first, last := stems[0], stems[len(stems)-1]

	sign := -1.0
	if dir == model.Down {
		sign = 1.0
	}
	startY := first.anchorY + sign*first.length
	endY := last.anchorY + sign*last.length

	dx := last.x - first.x
	var slope float64
	if dx != 0 {
		slope = (endY - startY) / dx
	}
	if util.Abs(slope) > cfg.MaxBeamSlope {
		if slope < 0 {
			slope = -cfg.MaxBeamSlope
		} else {
			slope = cfg.MaxBeamSlope
		}
	}
	endY = startY + slope*dx

	var deficit float64
	for _, s := range stems {
		beamY := startY + slope*(s.x-first.x)
		deficit = util.Max(deficit, cfg.MinStemLength-stemLength(dir, s.anchorY, beamY))
	}
	startY += sign * deficit
	endY += sign * deficit

	g := model.BeamGroup{
		StartX:    first.x,
		EndX:      last.x,
		StartY:    startY,
		EndY:      endY,
		Direction: dir,
		Type:      events[0].Duration,
	}
	for _, s := range stems {
		g.IDs = append(g.IDs, s.id)
	}
	return g
}

// StemLengths measures every member's stem against the beam line.
func StemLengths(g model.BeamGroup, events []model.Event, positions map[string]float64, clef model.Clef, cfg config.Config) map[string]float64 {
	byID := make(map[string]model.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}
	members := make([]model.Event, 0, len(g.IDs))
	for _, id := range g.IDs {
		members = append(members, byID[id])
	}

	res := make(map[string]float64, len(members))
	for _, s := range stemsFor(members, g.Direction, positions, clef, cfg) {
		res[s.id] = stemLength(g.Direction, s.anchorY, g.YAt(s.x))
	}
	return res
}
