package domain

import "sort"

// LevelThreshold maps a minimum XP value to a level label.
type LevelThreshold struct {
	MinXP int
	Label string
}

// Levels classifies XP into level labels using ascending thresholds.
type Levels []LevelThreshold

// DefaultLevels matches the course's original cutoffs.
func DefaultLevels() Levels {
	return Levels{
		{MinXP: 0, Label: "Beginner"},
		{MinXP: 20, Label: "Intermediate"},
		{MinXP: 50, Label: "Advanced"},
	}
}

// Normalize sorts thresholds ascending so Classify can scan them in order.
func (l Levels) Normalize() Levels {
	out := make(Levels, len(l))
	copy(out, l)
	sort.Slice(out, func(i, j int) bool { return out[i].MinXP < out[j].MinXP })
	return out
}

// Classify returns the label of the highest threshold at or below xp.
// Total over all non-negative xp and monotonic by construction.
func (l Levels) Classify(xp int) string {
	if len(l) == 0 {
		l = DefaultLevels()
	}
	label := l[0].Label
	for _, t := range l {
		if xp >= t.MinXP {
			label = t.Label
		}
	}
	return label
}
