package hand

import (
	"fmt"
	"strings"
)

// Category tags an evaluated five-card hand. The nine high categories
// order by greater ranking; LowHand orders by lesser ranking
// (ace-to-five convention).
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	LowHand
)

// Hand is an evaluated five-card hand plus the opaque numeric ranking the
// engine computed for it. Two hands of the same ordering are equal exactly
// when their rankings are equal; the card sequences play no part in
// comparisons, only in descriptions.
type Hand struct {
	Cards    []Card
	Ranking  int64
	Category Category
}

func (h Hand) low() bool { return h.Category == LowHand }

// BetterThan reports whether h beats other under h's ordering.
func (h Hand) BetterThan(other Hand) bool {
	if h.low() {
		return h.Ranking < other.Ranking
	}
	return h.Ranking > other.Ranking
}

func (h Hand) Equal(other Hand) bool { return h.Ranking == other.Ranking }

// AtLeastAsGoodAs is BetterThan-or-Equal; ties must reveal at showdown.
func (h Hand) AtLeastAsGoodAs(other Hand) bool {
	return h.BetterThan(other) || h.Equal(other)
}

// String renders the spoken description of the hand, e.g.
// "a full house, Kings full of Tens" or "7,6,4,3,A" for a low.
func (h Hand) String() string {
	switch h.Category {
	case StraightFlush:
		if h.Cards[0].Rank == Ace {
			return "a Royal Flush"
		}
		return fmt.Sprintf("a straight flush, %s to %s",
			h.Cards[4].Rank.Name(), h.Cards[0].Rank.Name())
	case FourOfAKind:
		return fmt.Sprintf("four of a kind, %ss", h.Cards[0].Rank.Name())
	case FullHouse:
		return fmt.Sprintf("a full house, %ss full of %ss",
			h.Cards[0].Rank.Name(), h.Cards[3].Rank.Name())
	case Flush:
		return fmt.Sprintf("a flush, %s high", h.Cards[0].Rank.Name())
	case Straight:
		return fmt.Sprintf("a straight, %s to %s",
			h.Cards[4].Rank.Name(), h.Cards[0].Rank.Name())
	case ThreeOfAKind:
		return fmt.Sprintf("three of a kind, %ss", h.Cards[0].Rank.Name())
	case TwoPair:
		return fmt.Sprintf("two pair, %ss and %ss",
			h.Cards[0].Rank.Name(), h.Cards[2].Rank.Name())
	case OnePair:
		return fmt.Sprintf("a pair of %ss", h.Cards[0].Rank.Name())
	case HighCard:
		return fmt.Sprintf("high card %s", h.Cards[0].Rank.Name())
	case LowHand:
		abbrevs := make([]string, len(h.Cards))
		for i, c := range h.Cards {
			abbrevs[i] = c.Rank.Abbrev()
		}
		return strings.Join(abbrevs, ",")
	}
	return ""
}

// BestHands holds one player's best hand along each axis. Either slot may
// be nil: no low when the player cannot make a qualifying low, no high in
// low-only variants.
type BestHands struct {
	High *Hand
	Low  *Hand
}

// ResolvedPot records one settled pot: its unraked amount, the players
// eligible to win it, and each winner's share.
type ResolvedPot struct {
	Amount   int
	Eligible []int64
	Winners  map[int64]int
}
