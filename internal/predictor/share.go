package predictor

import (
	"fmt"
	"strings"
)

const barWidth = 20

// WinShare splits 100 percent between home and away in proportion to the
// predicted full time goals. The home share is truncated and the away side
// gets the remainder; with no goals predicted the split is 50/50.
func WinShare(homeGoals, awayGoals float64) (home, away int) {
	total := homeGoals + awayGoals
	if !(total > 0) {
		return 50, 50
	}
	home = int(homeGoals / total * 100)
	home = min(max(home, 0), 100)
	return home, 100 - home
}

// FormatBars renders the two shares as fixed width progress bars.
func FormatBars(home, away int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Home Team: %s %3d%%\n", bar(home), home)
	fmt.Fprintf(&b, "Away Team: %s %3d%%\n", bar(away), away)
	return b.String()
}

func bar(percent int) string {
	percent = min(max(percent, 0), 100)
	filled := percent * barWidth / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled) + "]"
}
