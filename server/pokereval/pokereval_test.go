package pokereval

import (
	"reflect"
	"testing"

	"pokerhist/server/engine"
	"pokerhist/server/hand"
)

func TestCardMapping(t *testing.T) {
	tests := []struct {
		raw  int
		want hand.Card
	}{
		{0, hand.Upcard(hand.Two, hand.Hearts)},
		{12, hand.Upcard(hand.Ace, hand.Hearts)},
		{13, hand.Upcard(hand.Two, hand.Diamonds)},
		{29, hand.Upcard(hand.Five, hand.Clubs)},
		{51, hand.Upcard(hand.Ace, hand.Spades)},
	}
	for _, tc := range tests {
		got, err := Card(tc.raw)
		if err != nil {
			t.Fatalf("Card(%d) returned error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("Card(%d) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestCardFaceDown(t *testing.T) {
	// 231 = 0xC0 | 39: the Two of Spades dealt face down.
	got, err := Card(231)
	if err != nil {
		t.Fatalf("Card returned error: %v", err)
	}
	if got != hand.Downcard(hand.Two, hand.Spades) {
		t.Fatalf("Card(231) = %v, want face-down 2s", got)
	}
}

func TestCardsDropsPlaceholders(t *testing.T) {
	got, err := Cards(engine.CardSet{7, 49, engine.NoCard, 14, engine.NoCard})
	if err != nil {
		t.Fatalf("Cards returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(got))
	}
	want := []hand.Card{
		hand.Upcard(hand.Nine, hand.Hearts),
		hand.Upcard(hand.Queen, hand.Spades),
		hand.Upcard(hand.Three, hand.Diamonds),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Cards = %v, want %v", got, want)
	}
}

func TestBestHandCategories(t *testing.T) {
	tests := []struct {
		tag  string
		want hand.Category
	}{
		{"NoPair", hand.HighCard},
		{"OnePair", hand.OnePair},
		{"TwoPair", hand.TwoPair},
		{"Trips", hand.ThreeOfAKind},
		{"Straight", hand.Straight},
		{"Flush", hand.Flush},
		{"FlHouse", hand.FullHouse},
		{"Quads", hand.FourOfAKind},
		{"StFlush", hand.StraightFlush},
	}
	for _, tc := range tests {
		h, err := BestHand(engine.RawBestHand{Ranking: 1, Category: tc.tag, Cards: engine.CardSet{0, 1, 2, 3, 4}})
		if err != nil {
			t.Fatalf("BestHand(%q) returned error: %v", tc.tag, err)
		}
		if h == nil || h.Category != tc.want {
			t.Fatalf("BestHand(%q) category = %v, want %v", tc.tag, h.Category, tc.want)
		}
	}
}

func TestBestHandQualifyingLow(t *testing.T) {
	// Qualifying lows carry a rank-listing tag, not one of the fixed names.
	h, err := BestHand(engine.RawBestHand{Ranking: 524, Category: "8, 7, 5, 4, 2", Cards: engine.CardSet{6, 18, 3, 2, 0}})
	if err != nil {
		t.Fatalf("BestHand returned error: %v", err)
	}
	if h == nil || h.Category != hand.LowHand {
		t.Fatalf("expected LowHand, got %+v", h)
	}
}

func TestBestHandNothing(t *testing.T) {
	h, err := BestHand(engine.RawBestHand{Ranking: 0, Category: "Nothing"})
	if err != nil {
		t.Fatalf("BestHand returned error: %v", err)
	}
	if h != nil {
		t.Fatalf("a cardless hand must convert to nil, got %+v", h)
	}
}

func TestCardIndexOutOfRange(t *testing.T) {
	if _, err := Card(52); err == nil {
		t.Fatalf("expected error for card index 52")
	}
}
