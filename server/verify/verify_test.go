package verify

import (
	"testing"

	"pokerhist/server/hand"
	"pokerhist/server/history"
)

func pairOfAces() []hand.Card {
	return []hand.Card{
		hand.Upcard(hand.Ace, hand.Spades),
		hand.Upcard(hand.Ace, hand.Hearts),
		hand.Upcard(hand.King, hand.Diamonds),
		hand.Upcard(hand.Seven, hand.Clubs),
		hand.Upcard(hand.Two, hand.Spades),
	}
}

func kingHigh() []hand.Card {
	return []hand.Card{
		hand.Upcard(hand.King, hand.Spades),
		hand.Upcard(hand.Queen, hand.Hearts),
		hand.Upcard(hand.Nine, hand.Diamonds),
		hand.Upcard(hand.Seven, hand.Hearts),
		hand.Upcard(hand.Three, hand.Clubs),
	}
}

func shown(player int64, ranking int64, category hand.Category, cards []hand.Card) history.PlayerShowedHand {
	return history.PlayerShowedHand{
		Player: player,
		Cards:  cards[:2],
		High:   &hand.Hand{Cards: cards, Ranking: ranking, Category: category},
	}
}

func TestShowdownsConsistent(t *testing.T) {
	events := []history.Event{
		history.Showdown{},
		shown(22, 500, hand.OnePair, pairOfAces()),
		shown(23, 100, hand.HighCard, kingHigh()),
	}
	mismatches, err := Showdowns(events)
	if err != nil {
		t.Fatalf("Showdowns returned error: %v", err)
	}
	if len(mismatches) != 0 {
		t.Fatalf("expected no mismatches, got %+v", mismatches)
	}
}

func TestShowdownsContradiction(t *testing.T) {
	events := []history.Event{
		shown(22, 100, hand.OnePair, pairOfAces()),
		shown(23, 500, hand.HighCard, kingHigh()),
	}
	mismatches, err := Showdowns(events)
	if err != nil {
		t.Fatalf("Showdowns returned error: %v", err)
	}
	if len(mismatches) != 1 {
		t.Fatalf("expected 1 mismatch, got %+v", mismatches)
	}
	m := mismatches[0]
	if m.PlayerA != 23 || m.PlayerB != 22 {
		t.Fatalf("mismatch names the wrong players: %+v", m)
	}
}

func TestShowdownsSkipsPartialHands(t *testing.T) {
	events := []history.Event{
		history.PlayerShowedHand{Player: 22, High: nil},
		history.PlayerShowedHand{Player: 23, High: &hand.Hand{Cards: pairOfAces()[:3], Ranking: 9}},
		history.PlayerMuckedHand{Player: 24},
	}
	mismatches, err := Showdowns(events)
	if err != nil {
		t.Fatalf("Showdowns returned error: %v", err)
	}
	if len(mismatches) != 0 {
		t.Fatalf("expected nothing to audit, got %+v", mismatches)
	}
}
