package mapview

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestModeString(t *testing.T) {
	tests := []struct {
		m    Mode
		want string
	}{
		{ModeNone, "none"},
		{ModeMove, "move"},
		{ModeMove | ModeEdit, "move|edit"},
		{ModeExclusive, "select|create|edit"},
		{ModeMove | 0x40, "move|0x40"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Mode(%#x).String() = %q, want %q", uint8(tt.m), got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeNone, false},
		{"none", ModeNone, false},
		{"move", ModeMove, false},
		{"Move | select", ModeMove | ModeSelect, false},
		{"rotate|scale|rotate", ModeRotate | ModeScale, false},
		{"pan", ModeNone, true},
		{"move|", ModeNone, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestModeSingle(t *testing.T) {
	for _, m := range []Mode{ModeMove, ModeRotate, ModeScale, ModeSelect, ModeCreate, ModeEdit} {
		if !m.Single() {
			t.Errorf("%v.Single() = false", m)
		}
	}
	for _, m := range []Mode{ModeNone, ModeMove | ModeSelect, 0x40} {
		if m.Single() {
			t.Errorf("Mode(%#x).Single() = true", uint8(m))
		}
	}
}

func TestModeEachOrder(t *testing.T) {
	var got []Mode
	(ModeEdit | ModeMove | ModeCreate).Each(func(m Mode) { got = append(got, m) })
	want := []Mode{ModeMove, ModeCreate, ModeEdit}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Each order mismatch (-want +got):\n%s", diff)
	}
}

func TestModeGroups(t *testing.T) {
	if ModeExclusive&ModeOrthogonal != 0 {
		t.Error("exclusive and orthogonal groups overlap")
	}
	if ModeExclusive|ModeOrthogonal != ModeAll {
		t.Error("groups do not cover every mode")
	}
	if !ModeAll.Has(ModeMove | ModeEdit) {
		t.Error("ModeAll.Has(move|edit) = false")
	}
}
