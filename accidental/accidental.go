// Package accidental decides which notes of a measure display an accidental
// given the key signature and what has already sounded in the measure.
package accidental

import (
	"github.com/jsphweid/scorelayout/model"
	"github.com/jsphweid/scorelayout/pitch"
)

const Natural = "n"

// symbol shown for an alteration, a natural sign for none
func symbol(alter int) string {
	if alter == 0 {
		return Natural
	}
	return pitch.AlterSymbol(alter)
}

// Calculate walks the events in order and returns, for every sounding note,
// the accidental to display or "" to hide it.
//
// A staff line already sounded in the measure shows an accidental only when
// its alteration changes. The first note on a line shows one when it departs
// from the key, or as a courtesy when its letter was altered on another line
// earlier in the measure.
func Calculate(events []model.Event, keySignature string) map[string]string {
	key := pitch.KeyAlterations(keySignature)
	pitchHistory := make(map[string]int)
	alteredLetters := make(map[byte]bool)

	res := make(map[string]string)
	for _, e := range events {
		for _, n := range e.Notes {
			if n.IsRest() {
				continue
			}
			p, err := pitch.Parse(n.Pitch)
			if err != nil {
				res[n.ID] = ""
				continue
			}

			line := p.Line()
			shown := ""
			if last, seen := pitchHistory[line]; seen {
				if last != p.Alter {
					shown = symbol(p.Alter)
				}
			} else if p.Alter != key[p.Letter] {
				shown = symbol(p.Alter)
			} else if alteredLetters[p.Letter] {
				shown = symbol(p.Alter)
			}

			if p.Alter != key[p.Letter] {
				alteredLetters[p.Letter] = true
			}
			pitchHistory[line] = p.Alter
			res[n.ID] = shown
		}
	}
	return res
}
