package score

import (
	"strings"
	"testing"

	"github.com/jsphweid/scorelayout/config"
	"github.com/jsphweid/scorelayout/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMinuet(t *testing.T) model.Score {
	s, err := Read("testdata/minuet.json")
	require.NoError(t, err)
	return s
}

func TestRead(t *testing.T) {
	s := readMinuet(t)

	assert := assert.New(t)
	assert.Equal("Minuet", s.Title)
	assert.Equal("G", s.KeySignature)
	require.Len(t, s.Staves, 2)
	assert.Equal(model.Bass, s.Staves[1].Clef)
	assert.Equal(2, s.NumMeasures())
	assert.Equal(2, s.Staves[0].Measures[1].Events[2].Tuplet.Position)
	assert.True(s.Staves[0].Measures[1].Events[3].Dotted)
}

func TestReadErrors(t *testing.T) {
	_, err := Read("testdata/missing.json")
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestLayout(t *testing.T) {
	cfg := config.Default()
	l := Layout(readMinuet(t), cfg)

	assert := assert.New(t)
	require.Len(t, l.Measures, 2)
	var sum float64
	for i, m := range l.Measures {
		assert.Equal(i, m.Index)
		require.Len(t, m.Staves, 2)
		assert.Equal(m.Staves[0].Layout.TotalWidth, m.Staves[1].Layout.TotalWidth)
		assert.Equal(m.System.TotalWidth, m.Staves[0].Layout.TotalWidth)
		sum += m.System.TotalWidth
	}
	assert.Equal(sum, l.TotalWidth)

	first := l.Measures[0].Staves[0]
	require.Len(t, first.Beams, 2)
	assert.Equal([]string{"t2", "t3"}, first.Beams[0].IDs)
	assert.Equal([]string{"t4", "t5"}, first.Beams[1].IDs)
	// F natural against the key of G
	assert.Equal("n", first.Accidentals["t6a"])
	assert.Equal("", first.Accidentals["t1a"])

	// simultaneous starts line up across staves
	bass := l.Measures[0].Staves[1]
	assert.Equal(first.Layout.EventPositions["t1"], bass.Layout.EventPositions["b1"])

	second := l.Measures[1]
	require.Len(t, second.Staves[0].Brackets, 1)
	assert.Equal("3", second.Staves[0].Brackets[0].Label)
	require.Len(t, second.Staves[0].Beams, 1)
	assert.Len(second.Staves[0].Beams[0].IDs, 3)
	assert.Equal(model.PlaceholderID, second.Staves[1].Layout.ProcessedEvents[0].ID)
}

func TestVisibleAccidentalsTakeSpace(t *testing.T) {
	cfg := config.Default()
	measure := model.Measure{Events: []model.Event{
		{ID: "a", Duration: model.Quarter, Notes: []model.Note{{ID: "an", Pitch: "F#4", Accidental: "#"}}},
		{ID: "b", Duration: model.Quarter, Notes: []model.Note{{ID: "bn", Pitch: "F#4", Accidental: "#"}}},
	}}
	s := model.Score{KeySignature: "D", Staves: []model.Staff{{Clef: model.Treble, Measures: []model.Measure{measure}}}}

	inKey := LayoutColumn(s, 0, cfg)
	s.KeySignature = "C"
	outOfKey := LayoutColumn(s, 0, cfg)

	assert := assert.New(t)
	assert.Less(inKey.System.TotalWidth, outOfKey.System.TotalWidth)
	assert.Equal(map[string]string{"an": "", "bn": ""}, inKey.Staves[0].Accidentals)
	// input untouched
	assert.Equal("#", measure.Events[0].Notes[0].Accidental)
}

func TestReport(t *testing.T) {
	r := Report(Layout(readMinuet(t), config.Default()))
	lines := strings.Split(strings.TrimSpace(r), "\n")

	assert := assert.New(t)
	require.Len(t, lines, 3)
	assert.True(strings.HasPrefix(lines[0], "Minuet: 2 measures"))
	assert.Contains(lines[1], "2 beams")
	assert.Contains(lines[1], "1 accidentals")
	assert.Contains(lines[2], "1 tuplets")
}
