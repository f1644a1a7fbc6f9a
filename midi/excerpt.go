package midi

import (
	"github.com/jsphweid/scorelayout/constants"
	"github.com/jsphweid/scorelayout/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Excerpt copies the notes sounding in [fromTick, toTick) into a new SMF with
// the same time format, shifted to start at tick 0. Notes still held at
// toTick are released there. Other messages before toTick are kept, those
// before fromTick moved to the start.
func Excerpt(s *smf.SMF, fromTick, toTick int64) *smf.SMF {
	res := smf.New()
	res.TimeFormat = s.TimeFormat

	for _, track := range s.Tracks {
		var newTrack smf.Track
		var absTicks, last int64
		held := make(map[[2]uint8]bool)
		add := func(tick int64, msg []byte) {
			newTrack = append(newTrack, smf.Event{Delta: uint32(tick - last), Message: msg})
			last = tick
		}

		for _, evt := range track {
			absTicks += int64(evt.Delta)
			var channel, key, velocity uint8
			switch {
			case evt.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
				if absTicks >= fromTick && absTicks < toTick {
					add(absTicks-fromTick, evt.Message)
					held[[2]uint8{channel, key}] = true
				}
			case evt.Message.Is(midi.NoteOnMsg), evt.Message.Is(midi.NoteOffMsg):
				evt.Message.GetNoteOn(&channel, &key, &velocity)
				evt.Message.GetNoteOff(&channel, &key, &velocity)
				k := [2]uint8{channel, key}
				if held[k] && absTicks <= toTick {
					add(absTicks-fromTick, evt.Message)
					delete(held, k)
				}
			case len(evt.Message) > 1 && evt.Message[0] == 0xFF && evt.Message[1] == 0x2F:
				// end of track, rewritten by Close
			default:
				if absTicks < toTick {
					add(util.Max(absTicks-fromTick, last), evt.Message)
				}
			}
		}

		for k := range held {
			add(toTick-fromTick, midi.NoteOff(k[0], k[1]))
		}
		newTrack.Close(0)
		res.Tracks = append(res.Tracks, newTrack)
	}
	return res
}

// MeasureTicks is the length of one measure in ticks, or 0 for non metric
// time formats.
func MeasureTicks(s *smf.SMF, quantsPerMeasure int) int64 {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return 0
	}
	return int64(ticks) * int64(quantsPerMeasure) / constants.QuantsPerQuarter
}
