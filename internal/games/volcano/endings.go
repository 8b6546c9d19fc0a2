package volcano

import "github.com/vovakirdan/volcano-flap/internal/config"

// EndingFor picks the end-of-game card for a final score. Bands must be
// ordered highest threshold first (config.Validate does this); the first
// band whose threshold the score strictly exceeds wins.
func EndingFor(score int, endings config.Endings) config.Ending {
	for _, b := range endings.Bands {
		if score > b.Above {
			return b.Ending
		}
	}
	return endings.Default
}
