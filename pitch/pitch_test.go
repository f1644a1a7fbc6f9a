package pitch

import (
	"testing"

	"github.com/jsphweid/scorelayout/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]Pitch{
		"C4":   {Letter: 'C', Alter: 0, Octave: 4},
		"F#5":  {Letter: 'F', Alter: 1, Octave: 5},
		"Bb3":  {Letter: 'B', Alter: -1, Octave: 3},
		"ebb2": {Letter: 'E', Alter: -2, Octave: 2},
		"Gx4":  {Letter: 'G', Alter: 2, Octave: 4},
		"A-1":  {Letter: 'A', Alter: 0, Octave: -1},
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			p, err := Parse(in)
			require.NoError(t, err)
			assert.Equal(t, want, p)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "C", "H4", "C#", "Cq4"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestOffsets(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, Offset("B4", model.Treble))
	assert.Equal(-6, Offset("C4", model.Treble))
	assert.Equal(4, Offset("F5", model.Treble))
	assert.Equal(0, Offset("D3", model.Bass))
	assert.Equal(6, Offset("C4", model.Bass))
	// unknown clef is treble
	assert.Equal(0, Offset("B4", "alto-ish"))
	assert.Equal(0, Offset("garbage", model.Treble))
}

func TestY(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(20.0, Y(0, 10))
	assert.Equal(0.0, Y(4, 10))
	assert.Equal(40.0, Y(-4, 10))
}

func TestMidi(t *testing.T) {
	p, _ := Parse("C4")
	assert.Equal(t, 60, p.Midi())
	assert.Equal(t, "C4", FromMidi(60))
	assert.Equal(t, "F#5", FromMidi(78))
	assert.Equal(t, "A0", FromMidi(21))
}

func TestString(t *testing.T) {
	p, _ := Parse("Ebb3")
	assert.Equal(t, "Ebb3", p.String())
	assert.Equal(t, "E3", p.Line())
}

func TestKeyAlterations(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(map[byte]int{}, KeyAlterations("C"))
	assert.Equal(map[byte]int{'F': 1, 'C': 1}, KeyAlterations("D"))
	assert.Equal(map[byte]int{'B': -1, 'E': -1}, KeyAlterations("Bb"))
	assert.Equal(map[byte]int{'F': 1}, KeyAlterations("Em"))
	assert.Equal(map[byte]int{'B': -1}, KeyAlterations("D minor"))
	assert.Equal(map[byte]int{}, KeyAlterations("Q#"))
}

func TestFifths(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(7, Fifths("C#"))
	assert.Equal(-7, Fifths("Cb"))
	assert.Equal(-3, Fifths("Cm"))
	assert.Equal(0, Fifths("a minor"))
	assert.Equal(-2, Fifths("Bb major"))
}
