// Package pitch turns pitch names like "F#4" into staff positions.
package pitch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/scorelayout/model"
)

const letters = "CDEFGAB"

type Pitch struct {
	Letter byte
	// semitone alteration, -2 (double flat) to 2 (double sharp)
	Alter  int
	Octave int
}

// Parse accepts a letter, an optional accidental (#, ##, x, b, bb) and an
// octave number.
func Parse(s string) (Pitch, error) {
	var p Pitch
	if len(s) < 2 {
		return p, fmt.Errorf("pitch too short: %q", s)
	}
	letter := strings.ToUpper(s[:1])[0]
	if strings.IndexByte(letters, letter) < 0 {
		return p, fmt.Errorf("bad pitch letter in %q", s)
	}
	p.Letter = letter

	rest := s[1:]
	for len(rest) > 0 {
		switch rest[0] {
		case '#':
			p.Alter++
		case 'x':
			p.Alter += 2
		case 'b':
			p.Alter--
		default:
			goto OCTAVE
		}
		rest = rest[1:]
	}

OCTAVE:
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return p, fmt.Errorf("bad octave in %q", s)
	}
	p.Octave = octave
	return p, nil
}

// Step is the diatonic staff position, one per line or space.
func (p Pitch) Step() int {
	return p.Octave*7 + strings.IndexByte(letters, p.Letter)
}

// Line identifies a staff line/space regardless of alteration, e.g. "F4".
func (p Pitch) Line() string {
	return fmt.Sprintf("%c%d", p.Letter, p.Octave)
}

func (p Pitch) String() string {
	return fmt.Sprintf("%c%v%d", p.Letter, AlterSymbol(p.Alter), p.Octave)
}

// Midi is the MIDI key number, C4 = 60.
func (p Pitch) Midi() int {
	semis := []int{0, 2, 4, 5, 7, 9, 11}
	return (p.Octave+1)*12 + semis[strings.IndexByte(letters, p.Letter)] + p.Alter
}

var sharpNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// FromMidi spells a key number with sharps.
func FromMidi(key uint8) string {
	return fmt.Sprintf("%v%d", sharpNames[int(key)%12], int(key)/12-1)
}

// AlterSymbol is the display symbol for an alteration, "" for natural.
func AlterSymbol(alter int) string {
	switch alter {
	case 1:
		return "#"
	case 2:
		return "x"
	case -1:
		return "b"
	case -2:
		return "bb"
	}
	return ""
}

// MiddleStep is the step of the clef's middle staff line. Unknown clefs are
// treated as treble.
func MiddleStep(clef model.Clef) int {
	if clef == model.Bass {
		return 3*7 + 1 // D3
	}
	return 4*7 + 6 // B4
}

// Offset is the distance in steps above (+) or below (-) the middle line.
// Unparseable pitches sit on the middle line.
func Offset(pitch string, clef model.Clef) int {
	p, err := Parse(pitch)
	if err != nil {
		return 0
	}
	return p.Step() - MiddleStep(clef)
}

// Y is the vertical position with the top staff line at 0 and y growing
// downward.
func Y(offset int, lineSpacing float64) float64 {
	return MiddleY(lineSpacing) - float64(offset)*lineSpacing/2
}

func MiddleY(lineSpacing float64) float64 {
	return 2 * lineSpacing
}
