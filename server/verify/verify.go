// Package verify cross-checks engine-supplied showdown rankings against an
// independent five-card evaluator. Hand histories exist for review and
// auditing; this catches an engine whose declared hand order disagrees with
// the cards it revealed.
package verify

import (
	"fmt"

	poker "github.com/paulhankin/poker"

	"pokerhist/server/hand"
	"pokerhist/server/history"
)

// Mismatch reports two shown hands whose engine ranking order contradicts
// the evaluator's.
type Mismatch struct {
	PlayerA int64  `json:"player_a"`
	PlayerB int64  `json:"player_b"`
	Detail  string `json:"detail"`
}

type shownHand struct {
	player  int64
	ranking int64
	score   int16 // library score, larger = stronger
}

// Showdowns audits every pair of five-card high hands shown in one hand's
// narrative events. Low hands use a separate ordering the library does not
// model, so only the high axis is checked.
func Showdowns(events []history.Event) ([]Mismatch, error) {
	var hands []shownHand
	for _, ev := range events {
		s, ok := ev.(history.PlayerShowedHand)
		if !ok || s.High == nil || len(s.High.Cards) != 5 {
			continue
		}
		score, err := eval5(s.High.Cards)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", s.Player, err)
		}
		hands = append(hands, shownHand{player: s.Player, ranking: s.High.Ranking, score: score})
	}

	var mismatches []Mismatch
	for i := 0; i < len(hands); i++ {
		for j := i + 1; j < len(hands); j++ {
			a, b := hands[i], hands[j]
			// Both orderings put the stronger hand higher. Flag only strict
			// contradictions; equal library scores can legitimately sit
			// under distinct engine ranks.
			if a.ranking > b.ranking && a.score < b.score {
				mismatches = append(mismatches, contradiction(a, b))
			} else if b.ranking > a.ranking && b.score < a.score {
				mismatches = append(mismatches, contradiction(b, a))
			}
		}
	}
	return mismatches, nil
}

func contradiction(stronger, weaker shownHand) Mismatch {
	return Mismatch{
		PlayerA: stronger.player,
		PlayerB: weaker.player,
		Detail: fmt.Sprintf(
			"engine ranks player %d (%d) over player %d (%d) but evaluation disagrees (%d vs %d)",
			stronger.player, stronger.ranking, weaker.player, weaker.ranking,
			stronger.score, weaker.score),
	}
}

func eval5(cards []hand.Card) (int16, error) {
	var five [5]poker.Card
	for i, c := range cards {
		pc, err := toLibrary(c)
		if err != nil {
			return 0, err
		}
		five[i] = pc
	}
	return poker.Eval5(&five), nil
}

// toLibrary converts our card model to the evaluator's. Our ranks run
// Two..Ace; the library numbers ranks 1..13 with Ace=1.
func toLibrary(c hand.Card) (poker.Card, error) {
	var s poker.Suit
	switch c.Suit {
	case hand.Clubs:
		s = poker.Club
	case hand.Diamonds:
		s = poker.Diamond
	case hand.Hearts:
		s = poker.Heart
	case hand.Spades:
		s = poker.Spade
	}
	r := int(c.Rank) + 2
	if r == 14 {
		r = 1
	}
	pc, err := poker.MakeCard(s, poker.Rank(r))
	if err != nil {
		return 0, fmt.Errorf("card %s: %w", c, err)
	}
	return pc, nil
}
