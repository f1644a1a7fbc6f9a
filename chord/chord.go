package chord

import (
	"sort"
	"strings"

	"github.com/jsphweid/scorelayout/config"
	"github.com/jsphweid/scorelayout/model"
	"github.com/jsphweid/scorelayout/pitch"
	"github.com/jsphweid/scorelayout/util"
)

// CreateChordKey is the canonical name of a chord's pitches, lowest first,
// e.g. "C4-E4-G4". Rests are skipped.
func CreateChordKey(notes []model.Note) string {
	var pitched []pitch.Pitch
	for _, n := range notes {
		if p, err := pitch.Parse(n.Pitch); err == nil {
			pitched = append(pitched, p)
		}
	}
	sort.Slice(pitched, func(i, j int) bool {
		if pitched[i].Step() != pitched[j].Step() {
			return pitched[i].Step() < pitched[j].Step()
		}
		return pitched[i].Alter < pitched[j].Alter
	})
	names := make([]string, len(pitched))
	for i, p := range pitched {
		names[i] = p.String()
	}
	return strings.Join(names, "-")
}

// DirectionForOffset is the stem direction for the note furthest from the
// middle line. A note on the line (distance tie) gets an up stem.
func DirectionForOffset(offset int) model.Direction {
	if offset > 0 {
		return model.Down
	}
	return model.Up
}

// Furthest picks the offset with the greatest distance from the middle line.
// When a note above and a note below are equally far, the result is 0 so the
// tie resolves to an up stem.
func Furthest(offsets []int) int {
	var best, maxDist int
	tie := false
	for _, o := range offsets {
		dist := util.Abs(o)
		switch {
		case dist > maxDist:
			best, maxDist, tie = o, dist, false
		case dist == maxDist && o != best:
			tie = true
		}
	}
	if tie {
		return 0
	}
	return best
}

type placed struct {
	note   model.Note
	offset int
}

// Layout sorts the chord top to bottom, picks a stem direction and pushes
// notes a second apart to opposite sides of the stem. A non-nil forced
// direction overrides the chord's own.
func Layout(notes []model.Note, clef model.Clef, forced *model.Direction, cfg config.Config) model.ChordLayout {
	res := model.ChordLayout{
		Direction:   model.Up,
		NoteOffsets: make(map[string]float64),
	}

	var sorted []placed
	for _, n := range notes {
		if n.IsRest() {
			continue
		}
		sorted = append(sorted, placed{note: n, offset: pitch.Offset(n.Pitch, clef)})
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].offset > sorted[j].offset
	})

	res.SortedNotes = make([]model.Note, len(sorted))
	offsets := make([]int, len(sorted))
	for i, p := range sorted {
		res.SortedNotes[i] = p.note
		offsets[i] = p.offset
	}

	if len(sorted) == 0 {
		mid := pitch.MiddleY(cfg.StaffLineSpacing)
		res.MinY, res.MaxY = mid, mid
	} else {
		res.Direction = DirectionForOffset(Furthest(offsets))
		res.MinY = pitch.Y(sorted[0].offset, cfg.StaffLineSpacing)
		res.MaxY = pitch.Y(sorted[len(sorted)-1].offset, cfg.StaffLineSpacing)
	}
	if forced != nil {
		res.Direction = *forced
	}

	for _, p := range sorted {
		res.NoteOffsets[p.note.ID] = 0
	}
	if res.Direction == model.Up {
		// bottom to top, the upper note of a second goes right
		shifted := false
		for i := len(sorted) - 2; i >= 0; i-- {
			if sorted[i].offset-sorted[i+1].offset == 1 && !shifted {
				res.NoteOffsets[sorted[i].note.ID] = cfg.NoteheadWidth
				shifted = true
			} else {
				shifted = false
			}
		}
	} else {
		// top to bottom, the lower note of a second goes left
		shifted := false
		for i := 1; i < len(sorted); i++ {
			if sorted[i-1].offset-sorted[i].offset == 1 && !shifted {
				res.NoteOffsets[sorted[i].note.ID] = -cfg.NoteheadWidth
				shifted = true
			} else {
				shifted = false
			}
		}
	}

	for _, v := range res.NoteOffsets {
		res.MaxNoteShift = util.Max(res.MaxNoteShift, util.Abs(v))
	}
	return res
}

// GroupDirection is the direction implied by the single note furthest from
// the middle line across several chords.
func GroupDirection(chords [][]model.Note, clef model.Clef) model.Direction {
	var offsets []int
	for _, notes := range chords {
		for _, n := range notes {
			if n.IsRest() {
				continue
			}
			offsets = append(offsets, pitch.Offset(n.Pitch, clef))
		}
	}
	return DirectionForOffset(Furthest(offsets))
}
