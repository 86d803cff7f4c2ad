package seat

import (
	"fmt"
	"slices"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want Key
	}{
		{"1.1.L", Key{1, 1, "L"}},
		{"12.4.r", Key{12, 4, "R"}},
		{" 3.10.R ", Key{3, 10, "R"}},
		{"2.5.L.extra", Key{2, 5, "L"}},
		{"", Sentinel},
		{"   ", Sentinel},
		{"1.1", Sentinel},
		{"A.1.L", Sentinel},
		{"1.B.L", Sentinel},
		{"1..L", Sentinel},
		{"L", Sentinel},
	}

	for _, tt := range tests {
		if got := Parse(tt.raw); got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseWellFormed(t *testing.T) {
	for row := 0; row < 5; row++ {
		for n := 0; n < 5; n++ {
			for _, side := range []string{"l", "R", "c"} {
				raw := fmt.Sprintf("%d.%d.%s", row, n, side)
				got := Parse(raw)
				want := Key{row, n, map[string]string{"l": "L", "R": "R", "c": "C"}[side]}
				if got != want {
					t.Fatalf("Parse(%q) = %v, want %v", raw, got, want)
				}
			}
		}
	}
}

func TestSide(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1.1.L", "L"},
		{"1.2.r", "R"},
		{"x.y.L", "L"},
		{"1.1.", SentinelSide},
		{"1.1", SentinelSide},
		{"", SentinelSide},
	}

	for _, tt := range tests {
		if got := Side(tt.raw); got != tt.want {
			t.Errorf("Side(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	keys := []Key{
		Sentinel,
		{2, 1, "L"},
		{1, 2, "R"},
		{1, 2, "L"},
		{1, 1, "R"},
	}
	slices.SortFunc(keys, Compare)

	want := []Key{
		{1, 1, "R"},
		{1, 2, "L"},
		{1, 2, "R"},
		{2, 1, "L"},
		Sentinel,
	}
	if !slices.Equal(keys, want) {
		t.Errorf("sorted = %v, want %v", keys, want)
	}
}

func TestSentinelSortsLast(t *testing.T) {
	if Compare(Parse("garbage"), Parse("998.998.Y")) <= 0 {
		t.Error("sentinel should sort after any realistic seat")
	}
	if !Parse("").IsSentinel() {
		t.Error("blank seat should be the sentinel")
	}
}

func ExampleParse() {
	fmt.Println(Parse("3.14.l"))
	fmt.Println(Parse("not a seat"))
	// Output:
	// 3.14.L
	// 999.999.Z
}
