package model

import (
	"errors"
	"fmt"
	"regexp"
)

// One form variant captures the gender demographic as a structured
// percentage string, e.g. "M-60%-F-40%". The two errors are distinct so a
// validator can tell a malformed string from one whose parts do not add up.
var (
	ErrGenderSplitFormat = errors.New("gender split must match M-NN%-F-NN%")
	ErrGenderSplitSum    = errors.New("gender split percentages must sum to 100")
)

// GenderSplit is a parsed male/female percentage pair.
type GenderSplit struct {
	Male   int
	Female int
}

var genderSplitRe = regexp.MustCompile(`^([MF])-(\d{1,3})%-([MF])-(\d{1,3})%$`)

// ParseGenderSplit parses a "<Code>-<NN>%-<Code>-<NN>%" string with codes M
// and F. It returns ErrGenderSplitFormat for strings that do not match the
// pattern (including repeated codes) and ErrGenderSplitSum when the two
// percentages do not total exactly 100.
func ParseGenderSplit(s string) (GenderSplit, error) {
	m := genderSplitRe.FindStringSubmatch(s)
	if m == nil || m[1] == m[3] {
		return GenderSplit{}, ErrGenderSplitFormat
	}
	var gs GenderSplit
	first, second := atoiDigits(m[2]), atoiDigits(m[4])
	if m[1] == "M" {
		gs.Male, gs.Female = first, second
	} else {
		gs.Female, gs.Male = first, second
	}
	if gs.Male+gs.Female != 100 {
		return GenderSplit{}, ErrGenderSplitSum
	}
	return gs, nil
}

// String renders the split in the canonical M-first form.
func (g GenderSplit) String() string {
	return fmt.Sprintf("M-%d%%-F-%d%%", g.Male, g.Female)
}

// Dominant maps the split onto the coarse Gender enum.
func (g GenderSplit) Dominant() Gender {
	if g.Female > g.Male {
		return GenderFemale
	}
	return GenderMale
}

// atoiDigits converts a digits-only string already vetted by the pattern.
func atoiDigits(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
