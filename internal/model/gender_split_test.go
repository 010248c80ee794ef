package model

import (
	"errors"
	"testing"
)

func TestParseGenderSplit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    GenderSplit
		wantErr error
	}{
		{"male first", "M-60%-F-40%", GenderSplit{Male: 60, Female: 40}, nil},
		{"female first", "F-70%-M-30%", GenderSplit{Male: 30, Female: 70}, nil},
		{"sums to 101", "M-30%-F-71%", GenderSplit{}, ErrGenderSplitSum},
		{"sums to 99", "M-49%-F-50%", GenderSplit{}, ErrGenderSplitSum},
		{"repeated code", "M-50%-M-50%", GenderSplit{}, ErrGenderSplitFormat},
		{"missing percent", "M-60-F-40%", GenderSplit{}, ErrGenderSplitFormat},
		{"lowercase code", "m-60%-f-40%", GenderSplit{}, ErrGenderSplitFormat},
		{"empty", "", GenderSplit{}, ErrGenderSplitFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGenderSplit(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseGenderSplit(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseGenderSplit(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenderSplitDominant(t *testing.T) {
	if (GenderSplit{Male: 60, Female: 40}).Dominant() != GenderMale {
		t.Error("60/40 should be male-dominant")
	}
	if (GenderSplit{Male: 30, Female: 70}).Dominant() != GenderFemale {
		t.Error("30/70 should be female-dominant")
	}
	// Ties fold to male, matching the coarse-enum default.
	if (GenderSplit{Male: 50, Female: 50}).Dominant() != GenderMale {
		t.Error("50/50 tie should fold to male")
	}
}

func TestGenderSplitString(t *testing.T) {
	gs := GenderSplit{Male: 45, Female: 55}
	if got := gs.String(); got != "M-45%-F-55%" {
		t.Errorf("String() = %q", got)
	}
}
