package history

import (
	"fmt"
	"strings"
	"time"

	"pokerhist/server/hand"
)

// Perspective controls whose hole cards appear in the rendered history.
type Perspective int

const (
	// Omniscient shows every player's dealt cards (admin/audit view).
	Omniscient Perspective = iota
	// Observer hides all dealt hole cards.
	Observer
	// PlayerView shows only the configured player's dealt cards.
	PlayerView
)

var variantNames = map[string]string{
	"holdem": "Hold'em",
	"omaha":  "Omaha",
	"omaha8": "Omaha Hi/Lo",
}

// Formatter renders narrative events into hand-history text lines.
type Formatter struct {
	SiteName    string
	DateLayout  string
	Perspective Perspective
	PlayerID    int64
}

func NewFormatter(siteName string) *Formatter {
	if siteName == "" {
		siteName = "Bitcoin Poker Network"
	}
	return &Formatter{
		SiteName:   siteName,
		DateLayout: "2006/01/02 - 15:04:05",
	}
}

// Format renders a full hand's narrative events. A fresh context is built
// per call; the "and is all-in" suffix comes from one event of lookahead.
func (f *Formatter) Format(events []Event) []string {
	ctx := NewContext(make(map[int64]string), 0)
	var lines []string
	for i, ev := range events {
		ctx.AllIn = false
		if i+1 < len(events) {
			_, ctx.AllIn = events[i+1].(PlayerWentAllIn)
		}
		lines = append(lines, f.eventLines(ev, ctx)...)
	}
	return lines
}

// eventLines renders one narrative event. Unknown kinds render nothing.
func (f *Formatter) eventLines(ev Event, ctx *Context) []string {
	switch e := ev.(type) {
	case HandStarted:
		return f.handStartedLines(e, ctx)
	case PlayerPostedSmallBlind:
		return []string{f.playerAction(e.Player, fmt.Sprintf("posts small blind %d", e.Amount), ctx)}
	case PlayerPostedBigBlind:
		return []string{f.playerAction(e.Player, fmt.Sprintf("posts big blind %d", e.Amount), ctx)}
	case PlayerPostedBigAndSmallBlinds:
		total := e.SmallBlind + e.BigBlind
		return []string{f.playerAction(e.Player, fmt.Sprintf("posts small & big blinds %d", total), ctx)}
	case PlayerPostedAnte:
		return []string{f.playerAction(e.Player, fmt.Sprintf("posts the ante %d", e.Amount), ctx)}
	case PreflopRoundStarted:
		return []string{"*** HOLE CARDS ***"}
	case CardsDealtToPlayer:
		if f.Perspective == Observer || (f.Perspective == PlayerView && e.Player != f.PlayerID) {
			return nil
		}
		return []string{fmt.Sprintf("Dealt to %s %s", ctx.PlayerNames[e.Player], cardsString(e.Cards))}
	case FlopDealt:
		ctx.CommunityCards = append([]hand.Card(nil), e.Cards...)
		return []string{fmt.Sprintf("*** FLOP *** %s", cardsString(e.Cards))}
	case TurnDealt:
		board := cardsString(ctx.CommunityCards)
		ctx.CommunityCards = append(ctx.CommunityCards, e.Card)
		return []string{fmt.Sprintf("*** TURN *** %s %s", board, cardsString([]hand.Card{e.Card}))}
	case RiverDealt:
		board := cardsString(ctx.CommunityCards)
		ctx.CommunityCards = append(ctx.CommunityCards, e.Card)
		return []string{fmt.Sprintf("*** RIVER *** %s %s", board, cardsString([]hand.Card{e.Card}))}
	case PlayerCalled:
		return []string{f.playerAction(e.Player, fmt.Sprintf("calls %d", e.Amount), ctx)}
	case PlayerChecked:
		return []string{f.playerAction(e.Player, "checks", ctx)}
	case PlayerFolded:
		return []string{f.playerAction(e.Player, "folds", ctx)}
	case PlayerRaised:
		if e.ByAmount == e.ToAmount {
			return []string{f.playerAction(e.Player, fmt.Sprintf("bets %d", e.ByAmount), ctx)}
		}
		return []string{f.playerAction(e.Player, fmt.Sprintf("raises %d to %d", e.ByAmount, e.ToAmount), ctx)}
	case UncalledBetReturnedToPlayer:
		return []string{fmt.Sprintf("Uncalled bet (%d) returned to %s", e.Amount, ctx.PlayerNames[e.Player])}
	case Showdown:
		return []string{"*** SHOW DOWN ***"}
	case PlayerShowedHand:
		action := fmt.Sprintf("shows %s (%s)", cardsString(e.Cards), handDescription(e.High, e.Low))
		return []string{f.playerAction(e.Player, action, ctx)}
	case PlayerMuckedHand:
		return []string{f.playerAction(e.Player, "mucks", ctx)}
	case PlayerCollectedFromSidePot:
		return []string{fmt.Sprintf("%s collected %d from side pot-%d",
			ctx.PlayerNames[e.Player], e.Amount, e.Index+1)}
	case PlayerCollectedFromMainPot:
		return []string{fmt.Sprintf("%s collected %d from main pot",
			ctx.PlayerNames[e.Player], e.Amount)}
	case HandEnded:
		return f.handEndedLines(e, ctx)
	default:
		return nil
	}
}

func (f *Formatter) handStartedLines(e HandStarted, ctx *Context) []string {
	variant, ok := variantNames[e.Variant]
	if !ok {
		variant = e.Variant
	}
	date := time.Unix(e.Timestamp, 0).UTC().Format(f.DateLayout)
	lines := []string{fmt.Sprintf("%s Game #%d:  %s %s (%d/%d) - %s (UTC)",
		f.SiteName, e.HandSerial, variant, e.Structure.Limit,
		e.Structure.SmallBlind, e.Structure.BigBlind, date)}

	for _, p := range e.Players {
		ctx.PlayerNames[p.ID] = p.Name
		lines = append(lines, fmt.Sprintf("Seat %d: %s (%d in chips)", p.Seat+1, p.Name, p.Chips))
	}
	return lines
}

func (f *Formatter) handEndedLines(e HandEnded, ctx *Context) []string {
	lines := []string{"*** SUMMARY ***"}
	if len(e.Pots) > 0 {
		lines = append(lines, potSummary(e.Pots, e.Rake))
	}
	if len(ctx.CommunityCards) > 0 {
		lines = append(lines, fmt.Sprintf("Board %s", cardsString(ctx.CommunityCards)))
	}
	return lines
}

// potSummary expects the main pot first, side pots after.
func potSummary(pots []hand.ResolvedPot, rake map[int64]int) string {
	total := 0
	for _, pot := range pots {
		total += pot.Amount
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Total pot %d Main pot %d.", total, pots[0].Amount)
	for i, side := range pots[1:] {
		fmt.Fprintf(&b, " Side pot-%d %d.", i+1, side.Amount)
	}
	totalRake := 0
	for _, amount := range rake {
		totalRake += amount
	}
	fmt.Fprintf(&b, " | Rake %d", totalRake)
	return b.String()
}

func (f *Formatter) playerAction(player int64, action string, ctx *Context) string {
	line := fmt.Sprintf("%s: %s", ctx.PlayerNames[player], action)
	if ctx.AllIn {
		line += " and is all-in"
	}
	return line
}

func cardsString(cards []hand.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func handDescription(high, low *hand.Hand) string {
	switch {
	case high != nil && low != nil:
		return fmt.Sprintf("HI: %s; LO: %s", high, low)
	case high != nil:
		return high.String()
	case low != nil:
		return low.String()
	}
	return ""
}
