package slot

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidTimeLabel = errors.New("time label must match HH:MM")

// Syntactic check only: the pattern happens to pin hours to 00-23 and
// minutes to 00-59, but no validation against a real schedule is done.
var timeLabelRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// TimeLabel is the row key of the board: a canonical "HH:MM" string.
type TimeLabel struct {
	value string
}

func NewTimeLabel(s string) (TimeLabel, error) {
	s = strings.TrimSpace(s)
	if !timeLabelRegex.MatchString(s) {
		return TimeLabel{}, ErrInvalidTimeLabel
	}
	return TimeLabel{value: s}, nil
}

func (t TimeLabel) Value() string {
	return t.value
}

// Minutes converts the label to minutes past midnight for chronological
// ordering. Labels are sorted by this value, not by any stored row index.
func (t TimeLabel) Minutes() int {
	h, _ := strconv.Atoi(t.value[:2])
	m, _ := strconv.Atoi(t.value[3:])
	return h*60 + m
}

// Minutes orders raw labels the same way TimeLabel.Minutes does. Labels that
// fail to parse sort last.
func Minutes(label string) int {
	t, err := NewTimeLabel(label)
	if err != nil {
		return 1<<31 - 1
	}
	return t.Minutes()
}
