// Package placement decides what a click at a quant inside a measure means:
// add to an existing chord, insert before an event, or append.
package placement

import (
	"github.com/jsphweid/scorelayout/config"
	"github.com/jsphweid/scorelayout/duration"
	"github.com/jsphweid/scorelayout/model"
	"github.com/jsphweid/scorelayout/util"
)

// Analyze resolves an intended quant against the measure's events in order.
// The first event either claims the click as a chord (its start is within
// cfg.MagnetThreshold) or has the quant strictly inside it and is inserted
// before. Anything else appends.
func Analyze(events []model.Event, intendedQuant int, cfg config.Config) model.Placement {
	q := util.Max(intendedQuant, 0)
	starts, total := duration.Offsets(events)
	ends := duration.Ends(events)

	for i := range events {
		if util.Abs(starts[i]-q) <= cfg.MagnetThreshold {
			return model.Placement{Mode: model.ModeChord, Index: i, VisualQuant: starts[i]}
		}
		if starts[i] < q && q < ends[i] {
			return model.Placement{Mode: model.ModeInsert, Index: i, VisualQuant: starts[i]}
		}
	}

	return model.Placement{Mode: model.ModeAppend, Index: len(events), VisualQuant: total}
}
