// Package pokereval converts the engine's native pokereval values into the
// typed card and hand model. The normalizer takes these as injected
// capabilities, so alternate encodings can be substituted in tests.
package pokereval

import (
	"fmt"

	"pokerhist/server/engine"
	"pokerhist/server/hand"
)

// Pokereval maps integers to cards column-major by suit:
//
//	2h/00  2d/13  2c/26  2s/39
//	...
//	Ah/12  Ad/25  Ac/38  As/51
var suits = [...]hand.Suit{hand.Hearts, hand.Diamonds, hand.Clubs, hand.Spades}

// Card converts one encoded card, honoring its visibility flag.
func Card(raw int) (hand.Card, error) {
	idx := engine.CardIndex(raw)
	if idx > 51 {
		return hand.Card{}, fmt.Errorf("card index %d out of range", idx)
	}
	r := hand.Rank(idx % 13)
	s := suits[idx/13]
	if engine.FaceUp(raw) {
		return hand.Upcard(r, s), nil
	}
	return hand.Downcard(r, s), nil
}

// Cards converts an encoded card set, dropping no-card placeholders.
func Cards(raw engine.CardSet) ([]hand.Card, error) {
	cards := make([]hand.Card, 0, len(raw))
	for _, v := range raw {
		if v == engine.NoCard {
			continue
		}
		c, err := Card(v)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

var categories = map[string]hand.Category{
	"NoPair":   hand.HighCard,
	"OnePair":  hand.OnePair,
	"TwoPair":  hand.TwoPair,
	"Trips":    hand.ThreeOfAKind,
	"Straight": hand.Straight,
	"Flush":    hand.Flush,
	"FlHouse":  hand.FullHouse,
	"Quads":    hand.FourOfAKind,
	"StFlush":  hand.StraightFlush,
}

// BestHand converts an engine best-hand triple into a typed Hand. Returns
// nil when the triple signals no qualifying hand (the "Nothing" low, which
// carries no cards). High categories come from the fixed tag set; any other
// tag is the engine's rank-listing descriptor for a qualifying low hand.
func BestHand(raw engine.RawBestHand) (*hand.Hand, error) {
	cards, err := Cards(raw.Cards)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, nil
	}
	category, ok := categories[raw.Category]
	if !ok {
		category = hand.LowHand
	}
	return &hand.Hand{Cards: cards, Ranking: raw.Ranking, Category: category}, nil
}
