package pitch

import "strings"

const sharpOrder = "FCGDAEB"
const flatOrder = "BEADGCF"

// number of sharps (+) or flats (-) per major key
var majorKeys = map[string]int{
	"C": 0, "G": 1, "D": 2, "A": 3, "E": 4, "B": 5, "F#": 6, "C#": 7,
	"F": -1, "Bb": -2, "Eb": -3, "Ab": -4, "Db": -5, "Gb": -6, "Cb": -7,
}

// relative minors map onto their major
var minorKeys = map[string]string{
	"A": "C", "E": "G", "B": "D", "F#": "A", "C#": "E", "G#": "B", "D#": "F#", "A#": "C#",
	"D": "F", "G": "Bb", "C": "Eb", "F": "Ab", "Bb": "Db", "Eb": "Gb", "Ab": "Cb",
}

// Fifths returns the sharps (+) or flats (-) of a key like "Bb", "F#m" or
// "D minor". Unknown keys are treated as C major.
func Fifths(key string) int {
	key = strings.TrimSpace(key)
	lower := strings.ToLower(key)
	minor := false
	for _, suffix := range []string{" minor", "minor", "min", "m"} {
		if strings.HasSuffix(lower, suffix) && len(key) > len(suffix) {
			key = strings.TrimSpace(key[:len(key)-len(suffix)])
			minor = true
			break
		}
	}
	key = strings.TrimSuffix(strings.TrimSuffix(key, " major"), "major")
	if len(key) > 0 {
		key = strings.ToUpper(key[:1]) + key[1:]
	}
	if minor {
		major, ok := minorKeys[key]
		if !ok {
			return 0
		}
		key = major
	}
	return majorKeys[key]
}

// KeyAlterations is the default alteration for each letter under the key.
func KeyAlterations(key string) map[byte]int {
	res := make(map[byte]int, 7)
	fifths := Fifths(key)
	for i := 0; i < fifths; i++ {
		res[sharpOrder[i]] = 1
	}
	for i := 0; i < -fifths; i++ {
		res[flatOrder[i]] = -1
	}
	return res
}
