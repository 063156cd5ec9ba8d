package room

import "testing"

func TestMarginPoints(t *testing.T) {
	cases := []struct {
		name       string
		totalTeams int
		actual     int
		guessed    int
		want       int
	}{
		{name: "exact position", totalTeams: 4, actual: 2, guessed: 2, want: 4},
		{name: "one off", totalTeams: 4, actual: 2, guessed: 3, want: 3},
		{name: "two off", totalTeams: 4, actual: 1, guessed: 3, want: 2},
		{name: "clamped to one", totalTeams: 4, actual: 1, guessed: 4, want: 1},
		{name: "symmetric error", totalTeams: 20, actual: 15, guessed: 10, want: 15},
		{name: "max error big league", totalTeams: 20, actual: 1, guessed: 20, want: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := marginPoints(tc.totalTeams, tc.actual, tc.guessed)
			if got != tc.want {
				t.Fatalf("marginPoints(%d, %d, %d) = %d, want %d", tc.totalTeams, tc.actual, tc.guessed, got, tc.want)
			}
		})
	}
}

func TestNormalizeTeamName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Arsenal", "arsenal"},
		{"  Manchester City  ", "manchester city"},
		{"REAL MADRID", "real madrid"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := normalizeTeamName(tc.in); got != tc.want {
			t.Fatalf("normalizeTeamName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
