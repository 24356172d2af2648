package bot

import "math/rand"

// botRng is the single random source behind every random choice the
// bot makes: tie-breaks during hunting and its own fleet placement.
// When nil, the helpers delegate to the global math/rand default.
// Seed it for reproducible games in tests.
var botRng *rand.Rand

// SeedBotRng sets a deterministic random source for reproducible bot behavior.
func SeedBotRng(seed int64) {
	botRng = rand.New(rand.NewSource(seed))
}

// ResetBotRng reverts to the default (non-deterministic) global random source.
func ResetBotRng() {
	botRng = nil
}

func botIntn(n int) int {
	if botRng != nil {
		return botRng.Intn(n)
	}
	return rand.Intn(n)
}
