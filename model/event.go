package model

type Duration = string

const (
	Whole        Duration = "whole"
	Half         Duration = "half"
	Quarter      Duration = "quarter"
	Eighth       Duration = "eighth"
	Sixteenth    Duration = "sixteenth"
	ThirtySecond Duration = "thirtySecond"
	SixtyFourth  Duration = "sixtyFourth"
)

type Clef = string

const (
	Treble Clef = "treble"
	Bass   Clef = "bass"
)

// id of the synthetic whole rest that fills an empty measure
const PlaceholderID = "placeholder-rest"

type Note struct {
	ID string `json:"id"`
	// NOTE: empty pitch means rest
	Pitch      string `json:"pitch"`
	Accidental string `json:"accidental,omitempty"`
}

func (n Note) IsRest() bool {
	return n.Pitch == ""
}

// Ratio is [actual, normal], e.g. [3, 2] for a triplet
type Tuplet struct {
	Ratio     [2]int `json:"ratio"`
	GroupSize int    `json:"group_size"`
	Position  int    `json:"position"`
}

func (t Tuplet) Actual() int { return t.Ratio[0] }
func (t Tuplet) Normal() int { return t.Ratio[1] }

type EventKind int

const (
	Plain EventKind = iota
	TupletMember
	Rest
)

type Event struct {
	ID       string   `json:"id"`
	Duration Duration `json:"duration"`
	Dotted   bool     `json:"dotted,omitempty"`
	Notes    []Note   `json:"notes"`
	Tuplet   *Tuplet  `json:"tuplet,omitempty"`
}

// Kind tags the event by how it is timed. A rest inside a tuplet is a
// TupletMember since it takes the group's compressed duration.
func (e Event) Kind() EventKind {
	switch {
	case e.Tuplet != nil:
		return TupletMember
	case e.IsRest():
		return Rest
	default:
		return Plain
	}
}

func (e Event) IsRest() bool {
	for _, n := range e.Notes {
		if !n.IsRest() {
			return false
		}
	}
	return true
}

func (e Event) HasAccidental() bool {
	for _, n := range e.Notes {
		if n.Accidental != "" {
			return true
		}
	}
	return false
}

// SameRatio reports whether both events are tuplet members of the same ratio,
// or both are plain.
func SameRatio(a, b Event) bool {
	if a.Tuplet == nil || b.Tuplet == nil {
		return a.Tuplet == nil && b.Tuplet == nil
	}
	return a.Tuplet.Ratio == b.Tuplet.Ratio
}

type Measure struct {
	Events   []Event `json:"events"`
	IsPickup bool    `json:"is_pickup,omitempty"`
}

type Staff struct {
	Clef     Clef      `json:"clef"`
	Measures []Measure `json:"measures"`
}

type Score struct {
	Title        string  `json:"title"`
	KeySignature string  `json:"key_signature"`
	Staves       []Staff `json:"staves"`
}

func (s Score) NumMeasures() int {
	var res int
	for _, staff := range s.Staves {
		if len(staff.Measures) > res {
			res = len(staff.Measures)
		}
	}
	return res
}
