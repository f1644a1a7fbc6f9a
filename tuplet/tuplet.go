package tuplet

import (
	"math"
	"strconv"

	"github.com/jsphweid/scorelayout/chord"
	"github.com/jsphweid/scorelayout/config"
	"github.com/jsphweid/scorelayout/model"
	"github.com/jsphweid/scorelayout/util"
)

// Collect returns the exclusive end index of the tuplet group that starts at
// events[start]. Members must be contiguous, share the ratio and stay within
// GroupSize. A non-tuplet event yields start+1.
func Collect(events []model.Event, start int) int {
	first := events[start]
	if first.Tuplet == nil {
		return start + 1
	}
	end := start + 1
	for end < len(events) {
		e := events[end]
		if e.Tuplet == nil || e.Tuplet.Position == 0 || !model.SameRatio(first, e) {
			break
		}
		if first.Tuplet.GroupSize > 0 && end-start >= first.Tuplet.GroupSize {
			break
		}
		end++
	}
	return end
}

// Groups finds every tuplet group, each starting at a Position 0 member.
func Groups(events []model.Event) []model.TupletGroup {
	var res []model.TupletGroup
	for i := 0; i < len(events); {
		e := events[i]
		if e.Tuplet == nil || e.Tuplet.Position != 0 {
			i++
			continue
		}
		end := Collect(events, i)
		g := model.TupletGroup{StartIndex: i, Ratio: e.Tuplet.Ratio}
		for _, m := range events[i:end] {
			g.EventIDs = append(g.EventIDs, m.ID)
		}
		res = append(res, g)
		i = end
	}
	return res
}

// Direction is the stem direction shared by every member: the direction of
// the one note furthest from the middle line.
func Direction(members []model.Event, clef model.Clef) model.Direction {
	chords := make([][]model.Note, len(members))
	for i, m := range members {
		chords[i] = m.Notes
	}
	return chord.GroupDirection(chords, clef)
}

// Compression shrinks member widths sub-linearly with the time ratio.
func Compression(t *model.Tuplet) float64 {
	if t == nil || t.Actual() <= 0 || t.Normal() <= 0 {
		return 1
	}
	return math.Sqrt(float64(t.Normal()) / float64(t.Actual()))
}

// Brackets places a bracket over (or under) each tuplet group of a laid out
// measure, on the stem side.
func Brackets(layout model.MeasureLayout, cfg config.Config) []model.Bracket {
	events := make([]model.Event, len(layout.ProcessedEvents))
	for i, p := range layout.ProcessedEvents {
		events[i] = p.Event
	}

	var res []model.Bracket
	for _, g := range Groups(events) {
		members := layout.ProcessedEvents[g.StartIndex : g.StartIndex+len(g.EventIDs)]
		first, last := members[0], members[len(members)-1]
		b := model.Bracket{
			EventIDs:  g.EventIDs,
			StartX:    first.X + first.Chord.MinOffset(),
			EndX:      last.X + last.Chord.MaxOffset() + cfg.NoteheadWidth,
			Direction: first.Chord.Direction,
			Label:     strconv.Itoa(g.Ratio[0]),
		}
		if b.Direction == model.Up {
			b.Y = math.Inf(1)
			for _, m := range members {
				b.Y = util.Min(b.Y, m.Chord.MinY-cfg.StemLength(m.Duration)-cfg.TupletBracketOffset)
			}
		} else {
			b.Y = math.Inf(-1)
			for _, m := range members {
				b.Y = util.Max(b.Y, m.Chord.MaxY+cfg.StemLength(m.Duration)+cfg.TupletBracketOffset)
			}
		}
		res = append(res, b)
	}
	return res
}
