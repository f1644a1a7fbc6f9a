// Package midi imports standard MIDI files as scores: notes are quantised,
// simultaneous onsets become chords and gaps become rests.
package midi

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/jsphweid/scorelayout/config"
	"github.com/jsphweid/scorelayout/constants"
	"github.com/jsphweid/scorelayout/duration"
	"github.com/jsphweid/scorelayout/model"
	"github.com/jsphweid/scorelayout/pitch"
	"github.com/jsphweid/scorelayout/util"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "reading midi file")
	}
	return Read(bytes.NewReader(dat))
}

func Read(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			s, e = nil, errors.Errorf("parsing midi file: %v", rec)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing midi file")
	}
	return res, nil
}

type reducedEvent struct {
	tick      int64
	isNoteOff bool
	key       uint8
}

type sounding struct {
	start, end int64
	key        uint8
}

// notes pairs note on and off messages of one track, first on with first off
// per key. Notes still held at the end of the track are dropped.
func notes(track smf.Track) []sounding {
	var events []reducedEvent
	var absTicks int64
	for _, event := range track {
		absTicks += int64(event.Delta)
		var channel, key, velocity uint8
		switch {
		case event.Message.GetNoteOn(&channel, &key, &velocity):
			events = append(events, reducedEvent{tick: absTicks, isNoteOff: velocity == 0, key: key})
		case event.Message.GetNoteOff(&channel, &key, &velocity):
			events = append(events, reducedEvent{tick: absTicks, isNoteOff: true, key: key})
		}
	}

	// earlier first, then note off
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].isNoteOff && !events[j].isNoteOff
	})

	var res []sounding
	pressed := make(map[uint8][]int64)
	for _, evt := range events {
		if !evt.isNoteOff {
			pressed[evt.key] = append(pressed[evt.key], evt.tick)
			continue
		}
		starts := pressed[evt.key]
		if len(starts) == 0 {
			continue
		}
		res = append(res, sounding{start: starts[0], end: evt.tick, key: evt.key})
		pressed[evt.key] = starts[1:]
	}
	return res
}

type onset struct {
	quant int
	end   int
	keys  []uint8
}

func quantize(tick int64, ticksPerQuant float64) int {
	return int(math.Round(float64(tick) / ticksPerQuant))
}

// onsets groups the notes of a track by quantised start. A group lasts until
// its shortest note ends.
func onsets(sounds []sounding, ticksPerQuant float64) []onset {
	byQuant := make(map[int]*onset)
	for _, s := range sounds {
		start := quantize(s.start, ticksPerQuant)
		end := util.Max(quantize(s.end, ticksPerQuant), start+1)
		o, ok := byQuant[start]
		if !ok {
			o = &onset{quant: start, end: end}
			byQuant[start] = o
		}
		o.end = util.Min(o.end, end)
		o.keys = append(o.keys, s.key)
	}

	res := make([]onset, 0, len(byQuant))
	for _, q := range util.SortedKeys(byQuant) {
		o := *byQuant[q]
		sort.Slice(o.keys, func(i, j int) bool { return o.keys[i] < o.keys[j] })
		res = append(res, o)
	}
	return res
}

type staffBuilder struct {
	cfg      config.Config
	prefix   string
	measures []model.Measure
	count    int
}

// emit writes a chord (or a rest when keys is empty) of length quants starting
// at start, cutting it at barlines.
func (b *staffBuilder) emit(start, length int, keys []uint8) {
	qpm := b.cfg.QuantsPerMeasure
	for length > 0 {
		take := util.Min(length, qpm-start%qpm)
		idx := start / qpm
		for len(b.measures) <= idx {
			b.measures = append(b.measures, model.Measure{})
		}
		for _, piece := range duration.Decompose(take) {
			id := fmt.Sprintf("%v-e%d", b.prefix, b.count)
			b.count++
			e := model.Event{ID: id, Duration: piece.Duration, Dotted: piece.Dotted}
			if len(keys) == 0 {
				e.Notes = []model.Note{{ID: id + "-n0"}}
			}
			for i, k := range keys {
				name := pitch.FromMidi(k)
				n := model.Note{ID: fmt.Sprintf("%v-n%d", id, i), Pitch: name}
				if p, err := pitch.Parse(name); err == nil && p.Alter != 0 {
					n.Accidental = pitch.AlterSymbol(p.Alter)
				}
				e.Notes = append(e.Notes, n)
			}
			b.measures[idx].Events = append(b.measures[idx].Events, e)
		}
		start += take
		length -= take
	}
}

// Staff converts one track. ok is false for tracks without notes.
func Staff(track smf.Track, ticksPerQuant float64, prefix string, cfg config.Config) (model.Staff, bool) {
	sounds := notes(track)
	if len(sounds) == 0 {
		return model.Staff{}, false
	}

	var keySum int
	for _, s := range sounds {
		keySum += int(s.key)
	}
	clef := model.Treble
	if keySum < 60*len(sounds) {
		clef = model.Bass
	}

	b := &staffBuilder{cfg: cfg, prefix: prefix}
	cursor := 0
	groups := onsets(sounds, ticksPerQuant)
	for i, o := range groups {
		if o.quant > cursor {
			b.emit(cursor, o.quant-cursor, nil)
		}
		end := o.end
		if i+1 < len(groups) {
			end = util.Min(end, groups[i+1].quant)
		}
		b.emit(o.quant, end-o.quant, o.keys)
		cursor = end
	}
	if rem := cursor % cfg.QuantsPerMeasure; rem != 0 {
		b.emit(cursor, cfg.QuantsPerMeasure-rem, nil)
	}
	return model.Staff{Clef: clef, Measures: b.measures}, true
}

// ToScore converts every track with notes into a staff. Only metric time
// formats are supported.
func ToScore(s *smf.SMF, title string, cfg config.Config) (model.Score, error) {
	res := model.Score{Title: title, KeySignature: "C"}
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return res, errors.Errorf("unsupported time format %v", s.TimeFormat)
	}
	ticksPerQuant := float64(ticks) / constants.QuantsPerQuarter
	if ticksPerQuant <= 0 {
		return res, errors.New("midi file has no ticks per quarter")
	}

	for i, track := range s.Tracks {
		staff, ok := Staff(track, ticksPerQuant, fmt.Sprintf("t%d", i), cfg)
		if ok {
			res.Staves = append(res.Staves, staff)
		}
	}
	return res, nil
}

// QuantsPerMeasure reads the first time signature of the file. ok is false
// when there is none.
func QuantsPerMeasure(s *smf.SMF) (quants int, ok bool) {
	for _, track := range s.Tracks {
		for _, ev := range track {
			var num, denom, cpt, dsqpq uint8
			if ev.Message.GetMetaTimeSig(&num, &denom, &cpt, &dsqpq) && denom > 0 {
				return constants.QuantsPerWholeNote * int(num) / int(denom), true
			}
		}
	}
	return 0, false
}
