package catalogue

import "strings"

var keyCodes = map[string]float64{
	"C": 0, "C#": 1, "D": 2, "D#": 3,
	"E": 4, "F": 5, "F#": 6, "G": 7,
	"G#": 8, "A": 9, "A#": 10, "B": 11,
}

var modeCodes = map[string]float64{
	"Minor": 0,
	"Major": 1,
}

// KeyCode maps a note name (C..B, sharps only) to 0..11.
func KeyCode(s string) (float64, bool) {
	v, ok := keyCodes[strings.TrimSpace(s)]
	return v, ok
}

// ModeCode maps Minor/Major to 0/1.
func ModeCode(s string) (float64, bool) {
	v, ok := modeCodes[strings.TrimSpace(s)]
	return v, ok
}
