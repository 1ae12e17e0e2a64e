package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMood is returned by ParseMood for values outside the mood axis.
var ErrUnknownMood = errors.New("unknown mood")

// Mood is the ranking direction applied to (valence, energy).
type Mood int

// Mood values.
const (
	MoodEnergetic Mood = iota + 1
	MoodCalm
)

// Display labels used by the playlist form.
const (
	LabelEnergetic = "Happy / Energetic"
	LabelCalm      = "Calm / Chill"
)

// ParseMood accepts the short names and the display labels, case-insensitively.
func ParseMood(s string) (Mood, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "energetic", "happy", strings.ToLower(LabelEnergetic):
		return MoodEnergetic, nil
	case "calm", "chill", strings.ToLower(LabelCalm):
		return MoodCalm, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMood, s)
	}
}

// String returns the short name used in metrics and query strings.
func (m Mood) String() string {
	switch m {
	case MoodEnergetic:
		return "energetic"
	case MoodCalm:
		return "calm"
	default:
		return "unknown"
	}
}

// Label returns the display label.
func (m Mood) Label() string {
	switch m {
	case MoodEnergetic:
		return LabelEnergetic
	case MoodCalm:
		return LabelCalm
	default:
		return ""
	}
}
