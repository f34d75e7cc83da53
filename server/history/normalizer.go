package history

import (
	"fmt"
	"sort"

	"pokerhist/server/engine"
	"pokerhist/server/hand"
)

// CardConverter turns an engine card set into typed cards.
type CardConverter func(engine.CardSet) ([]hand.Card, error)

// BestHandConverter turns an engine best-hand triple into a typed Hand,
// nil when the triple signals no qualifying hand.
type BestHandConverter func(engine.RawBestHand) (*hand.Hand, error)

// Normalizer converts typed engine events into narrative events, threading
// a per-hand Context through the run. Card and best-hand conversions are
// injected so the normalizer stays independent of the upstream encoding.
type Normalizer struct {
	convertCards    CardConverter
	convertBestHand BestHandConverter
	chipScale       int
}

func NewNormalizer(cards CardConverter, best BestHandConverter) *Normalizer {
	return &Normalizer{
		convertCards:    cards,
		convertBestHand: best,
		chipScale:       hand.DefaultChipScale,
	}
}

// SetChipScale overrides the currency-to-chips factor used when parsing
// betting-structure strings.
func (n *Normalizer) SetChipScale(scale int) { n.chipScale = scale }

// Normalize runs one hand's engine events through the normalizer. The same
// events with a fresh Context always produce identical output.
func (n *Normalizer) Normalize(events []engine.Event, ctx *Context) ([]Event, error) {
	var out []Event
	for _, ev := range events {
		generated, err := n.NormalizeEvent(ev, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, generated...)
	}
	return out, nil
}

// NormalizeEvent converts a single engine event into zero or more narrative
// events. Unrecognized variants produce nothing.
func (n *Normalizer) NormalizeEvent(ev engine.Event, ctx *Context) ([]Event, error) {
	switch e := ev.(type) {
	case engine.GameEvent:
		return n.gameEvents(e, ctx)
	case engine.RoundEvent:
		return n.roundEvents(e, ctx)
	case engine.BlindEvent:
		return blindEvents(e, ctx), nil
	case engine.AnteEvent:
		return []Event{PlayerPostedAnte{Player: e.Player, Amount: e.Amount}}, nil
	case engine.AllInEvent:
		return []Event{PlayerWentAllIn{Player: e.Player}}, nil
	case engine.CallEvent:
		return []Event{PlayerCalled{Player: e.Player, Amount: e.Amount}}, nil
	case engine.CheckEvent:
		return []Event{PlayerChecked{Player: e.Player}}, nil
	case engine.FoldEvent:
		return []Event{PlayerFolded{Player: e.Player}}, nil
	case engine.RaiseEvent:
		return []Event{PlayerRaised{Player: e.Player, ByAmount: e.RaiseBy, ToAmount: e.RaiseTo}}, nil
	case engine.ShowdownEvent:
		return n.showdownEvents(e, ctx)
	case engine.CanceledEvent:
		return []Event{
			HandCanceled{},
			UncalledBetReturnedToPlayer{Player: e.Player, Amount: e.Returned},
		}, nil
	case engine.EndEvent:
		return n.endEvents(e, ctx)
	default:
		return nil, nil
	}
}

func (n *Normalizer) gameEvents(e engine.GameEvent, ctx *Context) ([]Event, error) {
	structure, err := hand.ParseBettingStructure(e.BettingStructure, n.chipScale)
	if err != nil {
		return nil, err
	}
	ctx.SmallBlind = structure.SmallBlind
	ctx.BigBlind = structure.BigBlind

	players := make([]Player, len(e.Players))
	for seat, id := range e.Players {
		players[seat] = Player{
			ID:    id,
			Name:  ctx.PlayerNames[id],
			Seat:  seat,
			Chips: e.PlayerChips[id],
		}
	}
	return []Event{HandStarted{
		HandSerial: e.HandSerial,
		Timestamp:  ctx.HandTimestamp,
		Variant:    e.Variant,
		Structure:  structure,
		Players:    players,
	}}, nil
}

func (n *Normalizer) roundEvents(e engine.RoundEvent, ctx *Context) ([]Event, error) {
	community, err := n.convertCards(e.Board)
	if err != nil {
		return nil, err
	}

	var out []Event
	switch e.Name {
	case "pre-flop":
		out = append(out, PreflopRoundStarted{})
	case "flop":
		out = append(out, FlopDealt{Cards: community})
	case "turn", "river":
		// The engine supplies the full board incrementally; only the
		// newest card is announced.
		if len(community) == 0 {
			return nil, fmt.Errorf("%s round without community cards", e.Name)
		}
		newest := community[len(community)-1]
		if e.Name == "turn" {
			out = append(out, TurnDealt{Card: newest})
		} else {
			out = append(out, RiverDealt{Card: newest})
		}
	}

	for _, id := range sortedIDs(e.Pockets) {
		cards, err := n.convertCards(e.Pockets[id])
		if err != nil {
			return nil, err
		}
		out = append(out, CardsDealtToPlayer{Player: id, Cards: cards})
	}
	return out, nil
}

// blindEvents classifies a blind posting by its amount relative to the
// configured blinds; the engine does not label postings by type, and
// short-stacked players may post less than the nominal blind. Postings
// above the big blind are dropped.
func blindEvents(e engine.BlindEvent, ctx *Context) []Event {
	switch {
	case e.Dead == ctx.SmallBlind && e.Amount == ctx.BigBlind:
		return []Event{PlayerPostedBigAndSmallBlinds{
			Player:     e.Player,
			SmallBlind: e.Dead,
			BigBlind:   e.Amount,
		}}
	case e.Amount == ctx.SmallBlind || e.Amount <= ctx.BigBlind/2:
		return []Event{PlayerPostedSmallBlind{Player: e.Player, Amount: e.Amount}}
	case e.Amount <= ctx.BigBlind:
		return []Event{PlayerPostedBigBlind{Player: e.Player, Amount: e.Amount}}
	}
	return nil
}

// showdownEvents records every supplied player's hole cards in the context;
// the marker event is emitted only when the showdown is contested. A single
// remaining player means a fold-win, signaled by the end event instead.
func (n *Normalizer) showdownEvents(e engine.ShowdownEvent, ctx *Context) ([]Event, error) {
	for id, cards := range e.Holecards {
		converted, err := n.convertCards(cards)
		if err != nil {
			return nil, err
		}
		ctx.PlayerCards[id] = converted
	}
	if len(e.Holecards) > 1 {
		return []Event{Showdown{}}, nil
	}
	return nil, nil
}

func (n *Normalizer) endEvents(e engine.EndEvent, ctx *Context) ([]Event, error) {
	if len(e.Stack) == 0 {
		return nil, fmt.Errorf("end event with empty showdown stack")
	}
	state, ok := e.Stack[0].(engine.GameState)
	if !ok {
		return nil, fmt.Errorf("showdown stack does not begin with game_state")
	}
	if state.Rake == nil {
		return nil, fmt.Errorf("end event missing serial2rake")
	}
	if state.SidePots == nil {
		return nil, fmt.Errorf("end event missing side_pots")
	}

	bestHands, err := n.bestHands(state)
	if err != nil {
		return nil, err
	}

	// The last pot in the declared structure is the main pot.
	mainPotIndex := len(state.SidePots.Pots) - 1

	var out []Event
	var pots []hand.ResolvedPot
	shown := make(map[int64]bool)
	mucked := make(map[int64]bool)

	for _, entry := range e.Stack[1:] {
		potIndex := len(pots)
		isMain := potIndex == mainPotIndex

		switch r := entry.(type) {
		case engine.Resolve:
			pot := hand.ResolvedPot{
				Amount:   r.Pot,
				Eligible: r.Serials,
				Winners:  r.Shares,
			}
			if bestHands != nil {
				revealed, err := revealEvents(pot, bestHands, ctx, shown, mucked)
				if err != nil {
					return nil, err
				}
				out = append(out, revealed...)
			}
			for _, id := range sortedIDs(pot.Winners) {
				out = append(out, collected(id, pot.Winners[id], isMain, potIndex))
			}
			// Prepend so the final list reads main pot first.
			pots = append([]hand.ResolvedPot{pot}, pots...)
		case engine.Uncalled:
			out = append(out, UncalledBetReturnedToPlayer{Player: r.Player, Amount: r.Amount})
		case engine.LeftOver:
			out = append(out, collected(r.Player, r.Chips, isMain, potIndex))
		}
	}

	rake := make(map[int64]int, len(state.Rake))
	for id, amount := range state.Rake {
		rake[id] = amount
	}
	out = append(out, HandEnded{Pots: pots, Rake: rake})
	return out, nil
}

// revealEvents decides show/muck for each eligible player of one pot, in
// the pot's eligibility order. A player reveals when their high or low hand
// is at least as strong as the best revealed so far in this pot; otherwise
// they muck. Either mark is permanent: a player already shown or mucked in
// an earlier pot emits nothing here.
func revealEvents(pot hand.ResolvedPot, bestHands map[int64]hand.BestHands,
	ctx *Context, shown, mucked map[int64]bool) ([]Event, error) {

	var out []Event
	var bestHigh, bestLow *hand.Hand

	for _, id := range pot.Eligible {
		if shown[id] || mucked[id] {
			continue
		}
		hands, ok := bestHands[id]
		if !ok {
			return nil, fmt.Errorf("no best hand for eligible player %d", id)
		}
		if mustShow(hands, bestHigh, bestLow) {
			out = append(out, PlayerShowedHand{
				Player: id,
				Cards:  ctx.PlayerCards[id],
				High:   hands.High,
				Low:    hands.Low,
			})
			shown[id] = true
			if hands.High != nil && (bestHigh == nil || hands.High.BetterThan(*bestHigh)) {
				bestHigh = hands.High
			}
			if hands.Low != nil && (bestLow == nil || hands.Low.BetterThan(*bestLow)) {
				bestLow = hands.Low
			}
		} else {
			out = append(out, PlayerMuckedHand{
				Player: id,
				Cards:  ctx.PlayerCards[id],
				High:   hands.High,
				Low:    hands.Low,
			})
			mucked[id] = true
		}
	}
	return out, nil
}

// mustShow: ties reveal too, so split pots read correctly. With nothing
// revealed yet in the pot, any hand qualifies.
func mustShow(hands hand.BestHands, bestHigh, bestLow *hand.Hand) bool {
	if hands.High != nil && (bestHigh == nil || hands.High.AtLeastAsGoodAs(*bestHigh)) {
		return true
	}
	if hands.Low != nil && (bestLow == nil || hands.Low.AtLeastAsGoodAs(*bestLow)) {
		return true
	}
	return false
}

func (n *Normalizer) bestHands(state engine.GameState) (map[int64]hand.BestHands, error) {
	if state.BestHands == nil {
		return nil, nil
	}
	out := make(map[int64]hand.BestHands, len(state.BestHands))
	for id, raw := range state.BestHands {
		var hands hand.BestHands
		if raw.Hi != nil {
			h, err := n.convertBestHand(*raw.Hi)
			if err != nil {
				return nil, fmt.Errorf("player %d high hand: %w", id, err)
			}
			hands.High = h
		}
		if raw.Low != nil {
			h, err := n.convertBestHand(*raw.Low)
			if err != nil {
				return nil, fmt.Errorf("player %d low hand: %w", id, err)
			}
			hands.Low = h
		}
		out[id] = hands
	}
	return out, nil
}

func collected(player int64, amount int, isMain bool, potIndex int) Event {
	if isMain {
		return PlayerCollectedFromMainPot{Player: player, Amount: amount}
	}
	return PlayerCollectedFromSidePot{Player: player, Amount: amount, Index: potIndex}
}

func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
