package history

import "pokerhist/server/hand"

// Context is the per-hand rolling state threaded through one normalization
// or formatting run. It lives for exactly one hand and is never shared
// across hands or goroutines.
type Context struct {
	PlayerNames   map[int64]string
	HandTimestamp int64

	SmallBlind int
	BigBlind   int

	CommunityCards []hand.Card
	PlayerCards    map[int64][]hand.Card

	// AllIn flags that the event being rendered is immediately followed by
	// the player going all-in; the formatter sets it via lookahead.
	AllIn bool
}

// NewContext seeds a fresh per-hand context with the externally known
// player names and hand timestamp.
func NewContext(playerNames map[int64]string, timestamp int64) *Context {
	return &Context{
		PlayerNames:   playerNames,
		HandTimestamp: timestamp,
		PlayerCards:   make(map[int64][]hand.Card),
	}
}
