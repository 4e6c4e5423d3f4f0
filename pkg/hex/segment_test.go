package hex

import "testing"

func seg(b, e string) Segment {
	return Segment{Begin: MustParsePoint(b), End: MustParsePoint(e)}
}

func TestSegmentIsValid(t *testing.T) {
	tests := []struct {
		s    Segment
		want bool
	}{
		{seg("30", "34"), true},
		{seg("13", "63"), true},
		{seg("51", "24"), true},
		{seg("13", "26"), false},
		{seg("34", "34"), false},
	}
	for _, tt := range tests {
		if got := tt.s.IsValid(); got != tt.want {
			t.Errorf("%v-%v IsValid() = %v, want %v", tt.s.Begin, tt.s.End, got, tt.want)
		}
	}
}

func TestSegmentDirection(t *testing.T) {
	tests := []struct {
		s    Segment
		want Direction
	}{
		{seg("30", "34"), Right},
		{seg("34", "30"), Left},
		{seg("32", "62"), UpRight},
		{seg("62", "32"), DownLeft},
		{seg("25", "61"), UpLeft},
		{seg("61", "25"), DownRight},
		{seg("30", "55"), Incorrect},
		{seg("44", "44"), Incorrect},
	}
	for _, tt := range tests {
		if got := tt.s.Direction(); got != tt.want {
			t.Errorf("%v-%v Direction() = %v, want %v", tt.s.Begin, tt.s.End, got, tt.want)
		}
	}
}

func TestSegmentEquality(t *testing.T) {
	a := seg("13", "26")
	b := seg("26", "13")
	if !a.Equal(b) || !b.Equal(a) {
		t.Fatalf("expected reversed segments to be equal")
	}
	if a.Equal(seg("13", "27")) {
		t.Fatalf("expected different segments to differ")
	}
	set := map[Segment]bool{a.Key(): true}
	if !set[b.Key()] {
		t.Fatalf("expected reversed segment to share a key")
	}
	if a.Length() != b.Length() {
		t.Fatalf("expected equal lengths, got %d and %d", a.Length(), b.Length())
	}
}
