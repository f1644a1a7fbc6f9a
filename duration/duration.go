package duration

import (
	"math"

	"github.com/jsphweid/scorelayout/model"
)

var baseQuants = map[model.Duration]int{
	model.Whole:        64,
	model.Half:         32,
	model.Quarter:      16,
	model.Eighth:       8,
	model.Sixteenth:    4,
	model.ThirtySecond: 2,
	model.SixtyFourth:  1,
}

// ordered longest first
var Labels = []model.Duration{
	model.Whole,
	model.Half,
	model.Quarter,
	model.Eighth,
	model.Sixteenth,
	model.ThirtySecond,
	model.SixtyFourth,
}

// Base is the undotted, untupleted length. Unknown labels count as a quarter.
func Base(d model.Duration) int {
	if q, ok := baseQuants[d]; ok {
		return q
	}
	return baseQuants[model.Quarter]
}

func IsKnown(d model.Duration) bool {
	_, ok := baseQuants[d]
	return ok
}

// IsFlagged is true for durations drawn with a flag (or beam).
func IsFlagged(d model.Duration) bool {
	return IsKnown(d) && Base(d) <= baseQuants[model.Eighth]
}

func Exact(d model.Duration, dotted bool, tuplet *model.Tuplet) float64 {
	q := float64(Base(d))
	if dotted {
		q *= 1.5
	}
	if tuplet != nil && tuplet.Actual() > 0 && tuplet.Normal() > 0 {
		q *= float64(tuplet.Normal()) / float64(tuplet.Actual())
	}
	return q
}

func Quants(d model.Duration, dotted bool, tuplet *model.Tuplet) int {
	return int(math.Round(Exact(d, dotted, tuplet)))
}

func OfEvent(e model.Event) int {
	return Quants(e.Duration, e.Dotted, e.Tuplet)
}

// Offsets returns each event's start quant and the end of the last event.
// Within a run of tuplet members the exact fractional time is accumulated and
// only the cumulative position is rounded, so a triplet of eighths covers
// exactly one quarter.
func Offsets(events []model.Event) (starts []int, total int) {
	starts = make([]int, len(events))
	var anchor int
	var exact float64
	inTuplet := false
	var prev model.Event
	for i, e := range events {
		if e.Kind() != model.TupletMember {
			if inTuplet {
				total = anchor + int(math.Round(exact))
				inTuplet = false
			}
			starts[i] = total
			total += OfEvent(e)
			prev = e
			continue
		}
		if !inTuplet || !model.SameRatio(prev, e) || e.Tuplet.Position == 0 {
			if inTuplet {
				total = anchor + int(math.Round(exact))
			}
			anchor = total
			exact = 0
			inTuplet = true
		}
		starts[i] = anchor + int(math.Round(exact))
		exact += Exact(e.Duration, e.Dotted, e.Tuplet)
		prev = e
	}
	if inTuplet {
		total = anchor + int(math.Round(exact))
	}
	return starts, total
}

// Ends pairs with Offsets: the end quant of every event.
func Ends(events []model.Event) []int {
	starts, total := Offsets(events)
	ends := make([]int, len(events))
	for i := range events {
		if i+1 < len(events) {
			ends[i] = starts[i+1]
		} else {
			ends[i] = total
		}
	}
	return ends
}

// Decompose splits a quant length into the fewest labelled durations,
// longest first, allowing dots.
func Decompose(quants int) []Piece {
	var res []Piece
	for quants > 0 {
		for _, d := range Labels {
			dotted := Base(d) * 3 / 2
			if Base(d) > 1 && dotted <= quants && Base(d)%2 == 0 {
				res = append(res, Piece{Duration: d, Dotted: true})
				quants -= dotted
				break
			}
			if Base(d) <= quants {
				res = append(res, Piece{Duration: d})
				quants -= Base(d)
				break
			}
		}
	}
	return res
}

type Piece struct {
	Duration model.Duration
	Dotted   bool
}
