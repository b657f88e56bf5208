package domain

import "testing"

func TestClassifyBoundaries(t *testing.T) {
	levels := DefaultLevels()

	cases := []struct {
		xp   int
		want string
	}{
		{0, "Beginner"},
		{19, "Beginner"},
		{20, "Intermediate"},
		{49, "Intermediate"},
		{50, "Advanced"},
		{500, "Advanced"},
	}
	for _, c := range cases {
		if got := levels.Classify(c.xp); got != c.want {
			t.Fatalf("xp=%d: expected %s, got %s", c.xp, c.want, got)
		}
	}
}

func TestClassifyMonotonic(t *testing.T) {
	levels := Levels{
		{MinXP: 50, Label: "Advanced"},
		{MinXP: 0, Label: "Beginner"},
		{MinXP: 20, Label: "Intermediate"},
	}.Normalize()

	rank := map[string]int{"Beginner": 0, "Intermediate": 1, "Advanced": 2}
	prev := -1
	for xp := 0; xp <= 100; xp++ {
		r := rank[levels.Classify(xp)]
		if r < prev {
			t.Fatalf("level rank decreased at xp=%d", xp)
		}
		prev = r
	}
}
