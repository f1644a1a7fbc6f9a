// Package score lays out a whole score measure by measure, aligning every
// staff of each measure index and attaching beams, tuplet brackets and
// accidentals.
package score

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jsphweid/scorelayout/accidental"
	"github.com/jsphweid/scorelayout/beam"
	"github.com/jsphweid/scorelayout/config"
	"github.com/jsphweid/scorelayout/model"
	"github.com/jsphweid/scorelayout/system"
	"github.com/jsphweid/scorelayout/tuplet"
	"github.com/jsphweid/scorelayout/util"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func Read(path string) (model.Score, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Score{}, errors.Wrap(err, "opening score")
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return s, errors.Wrapf(err, "reading %v", path)
	}
	return s, nil
}

func Decode(r io.Reader) (model.Score, error) {
	var s model.Score
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return s, errors.Wrap(err, "decoding score")
	}
	return s, nil
}

// WithAccidentals returns a copy of the measure whose notes carry exactly the
// accidentals that will be displayed, so spacing only reserves room for
// visible ones.
func WithAccidentals(m model.Measure, shown map[string]string) model.Measure {
	res := m
	res.Events = make([]model.Event, len(m.Events))
	for i, e := range m.Events {
		e.Notes = append([]model.Note(nil), e.Notes...)
		for j := range e.Notes {
			if s, ok := shown[e.Notes[j].ID]; ok {
				e.Notes[j].Accidental = s
			}
		}
		res.Events[i] = e
	}
	return res
}

// Layout lays out every measure index. A staff shorter than the others is
// padded with empty measures.
func Layout(s model.Score, cfg config.Config) model.ScoreLayout {
	res := model.ScoreLayout{Title: s.Title}
	n := s.NumMeasures()
	for i := 0; i < n; i++ {
		col := LayoutColumn(s, i, cfg)
		res.TotalWidth += col.System.TotalWidth
		res.Measures = append(res.Measures, col)
	}
	log.WithFields(log.Fields{"title": s.Title, "measures": n, "staves": len(s.Staves)}).Info("laid out score")
	return res
}

// LayoutColumn lays out measure index i of every staff.
func LayoutColumn(s model.Score, i int, cfg config.Config) model.MeasureColumn {
	measures := make([]system.StaffMeasure, len(s.Staves))
	shown := make([]map[string]string, len(s.Staves))
	for j, staff := range s.Staves {
		var m model.Measure
		if i < len(staff.Measures) {
			m = staff.Measures[i]
		} else {
			log.WithFields(log.Fields{"staff": j, "measure": i}).Warn("staff is short, using an empty measure")
		}
		shown[j] = accidental.Calculate(m.Events, s.KeySignature)
		measures[j] = system.StaffMeasure{Measure: WithAccidentals(m, shown[j]), Clef: staff.Clef}
	}

	layouts, sys := system.LayoutMeasures(measures, cfg)
	col := model.MeasureColumn{Index: i, System: sys}
	for j, m := range measures {
		events := m.Measure.Events
		col.Staves = append(col.Staves, model.StaffMeasureLayout{
			Clef:        m.Clef,
			Layout:      layouts[j],
			Beams:       beam.Groups(events, layouts[j].EventPositions, m.Clef, cfg),
			Tuplets:     tuplet.Groups(events),
			Brackets:    tuplet.Brackets(layouts[j], cfg),
			Accidentals: shown[j],
		})
	}
	log.WithFields(log.Fields{"measure": i, "width": sys.TotalWidth}).Debug("laid out measure")
	return col
}

// Report summarises a layout, one line per measure.
func Report(l model.ScoreLayout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: %d measures, total width %.1f\n", l.Title, len(l.Measures), l.TotalWidth)
	for _, m := range l.Measures {
		var beams, brackets, accidentals int
		perStaff := make([]int, len(m.Staves))
		for i, s := range m.Staves {
			perStaff[i] = len(s.Layout.ProcessedEvents)
			beams += len(s.Beams)
			brackets += len(s.Brackets)
			for _, a := range s.Accidentals {
				if a != "" {
					accidentals++
				}
			}
		}
		fmt.Fprintf(&b, "measure %d: width %.1f, %d events, %d beams, %d tuplets, %d accidentals\n",
			m.Index+1, m.System.TotalWidth, util.Sum(perStaff), beams, brackets, accidentals)
	}
	return b.String()
}
