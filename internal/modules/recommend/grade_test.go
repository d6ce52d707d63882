package recommend

import "testing"

func TestGradeOrdinal(t *testing.T) {
	cases := []struct {
		band string
		want float64
	}{
		{"Pre-K", -1},
		{"prek", -1},
		{"K", 0},
		{"Kindergarten", 0},
		{"3", 3},
		{"Grade 5", 5},
		{"6-8", 7},
		{"9-12", 10.5},
		{"Algebra I", 10},
		{"", 10},
	}
	for _, tc := range cases {
		if got := gradeOrdinal(tc.band); got != tc.want {
			t.Fatalf("gradeOrdinal(%q) = %v, want %v", tc.band, got, tc.want)
		}
	}
}
