package model

type Direction = string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

type ChordLayout struct {
	SortedNotes  []Note             `json:"sorted_notes"`
	Direction    Direction          `json:"direction"`
	NoteOffsets  map[string]float64 `json:"note_offsets"`
	MaxNoteShift float64            `json:"max_note_shift"`
	MinY         float64            `json:"min_y"`
	MaxY         float64            `json:"max_y"`
}

// MinOffset is the most negative note offset, or 0.
func (c ChordLayout) MinOffset() float64 {
	var res float64
	for _, v := range c.NoteOffsets {
		if v < res {
			res = v
		}
	}
	return res
}

// MaxOffset is the most positive note offset, or 0.
func (c ChordLayout) MaxOffset() float64 {
	var res float64
	for _, v := range c.NoteOffsets {
		if v > res {
			res = v
		}
	}
	return res
}

func (c ChordLayout) HasSeconds() bool {
	return c.MaxNoteShift > 0
}
