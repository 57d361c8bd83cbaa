package playerstats

import "testing"

func TestFantasyPoints_FullLine(t *testing.T) {
	t.Parallel()

	line := StatLine{
		Points:                 20,
		ThreePointersMade:      3,
		FieldGoalsMade:         8,
		FieldGoalsAttempted:    15,
		FreeThrowsMade:         4,
		FreeThrowsAttempted:    5,
		Rebounds:               6,
		Assists:                5,
		Steals:                 2,
		Blocks:                 1,
		Turnovers:              3,
	}

	if got := FantasyPoints(line); got != 45 {
		t.Fatalf("fantasy points mismatch got=%d want=%d", got, 45)
	}
}

func TestFantasyPoints_ZeroLine(t *testing.T) {
	t.Parallel()

	if got := FantasyPoints(StatLine{}); got != 0 {
		t.Fatalf("empty line should score zero, got=%d", got)
	}
}

func TestFantasyPoints_CanBeNegative(t *testing.T) {
	t.Parallel()

	line := StatLine{
		Points:              2,
		FieldGoalsMade:      1,
		FieldGoalsAttempted: 12,
		FreeThrowsAttempted: 4,
		Turnovers:           5,
	}

	// 2 + 2 - 12 - 4 - 10 = -22
	if got := FantasyPoints(line); got != -22 {
		t.Fatalf("fantasy points mismatch got=%d want=%d", got, -22)
	}
}
