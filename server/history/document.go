package history

import (
	"strings"

	"pokerhist/server/engine"
	"pokerhist/server/pokereval"
)

// DefaultNormalizer is wired with the engine's pokereval converters.
func DefaultNormalizer() *Normalizer {
	return NewNormalizer(pokereval.Cards, pokereval.BestHand)
}

// GenerateDocument runs one hand's engine events through normalization and
// formatting, returning the finished hand-history document.
func GenerateDocument(n *Normalizer, f *Formatter, events []engine.Event,
	playerNames map[int64]string, timestamp int64) (string, error) {

	ctx := NewContext(playerNames, timestamp)
	narrative, err := n.Normalize(events, ctx)
	if err != nil {
		return "", err
	}
	return strings.Join(f.Format(narrative), "\n"), nil
}
