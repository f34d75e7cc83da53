package history

import "pokerhist/server/hand"

// Event is one observable fact of a hand's story, the sole output of the
// Normalizer and sole input of the Formatter. The variant set is closed.
type Event interface {
	narrativeEvent()
}

// Player describes one seated player at hand start.
type Player struct {
	ID    int64
	Name  string
	Seat  int
	Chips int
}

type HandStarted struct {
	HandSerial int64
	Timestamp  int64
	Variant    string
	Structure  hand.BettingStructure
	Players    []Player
}

type PlayerPostedSmallBlind struct {
	Player int64
	Amount int
}

type PlayerPostedBigBlind struct {
	Player int64
	Amount int
}

type PlayerPostedBigAndSmallBlinds struct {
	Player     int64
	SmallBlind int
	BigBlind   int
}

type PlayerPostedAnte struct {
	Player int64
	Amount int
}

type CardsDealtToPlayer struct {
	Player int64
	Cards  []hand.Card
}

type PreflopRoundStarted struct{}

type FlopDealt struct {
	Cards []hand.Card
}

type TurnDealt struct {
	Card hand.Card
}

type RiverDealt struct {
	Card hand.Card
}

type PlayerCalled struct {
	Player int64
	Amount int
}

type PlayerChecked struct {
	Player int64
}

type PlayerFolded struct {
	Player int64
}

type PlayerRaised struct {
	Player   int64
	ByAmount int
	ToAmount int
}

type PlayerWentAllIn struct {
	Player int64
}

type Showdown struct{}

// PlayerShowedHand always carries both hand slots; either may be nil.
type PlayerShowedHand struct {
	Player int64
	Cards  []hand.Card
	High   *hand.Hand
	Low    *hand.Hand
}

type PlayerMuckedHand struct {
	Player int64
	Cards  []hand.Card
	High   *hand.Hand
	Low    *hand.Hand
}

type PlayerCollectedFromMainPot struct {
	Player int64
	Amount int
}

// PlayerCollectedFromSidePot carries the 0-based side-pot index.
type PlayerCollectedFromSidePot struct {
	Player int64
	Amount int
	Index  int
}

type UncalledBetReturnedToPlayer struct {
	Player int64
	Amount int
}

type HandCanceled struct{}

// HandEnded terminates a completed hand: main pot first, then side pots.
type HandEnded struct {
	Pots []hand.ResolvedPot
	Rake map[int64]int
}

func (HandStarted) narrativeEvent()                   {}
func (PlayerPostedSmallBlind) narrativeEvent()        {}
func (PlayerPostedBigBlind) narrativeEvent()          {}
func (PlayerPostedBigAndSmallBlinds) narrativeEvent() {}
func (PlayerPostedAnte) narrativeEvent()              {}
func (CardsDealtToPlayer) narrativeEvent()            {}
func (PreflopRoundStarted) narrativeEvent()           {}
func (FlopDealt) narrativeEvent()                     {}
func (TurnDealt) narrativeEvent()                     {}
func (RiverDealt) narrativeEvent()                    {}
func (PlayerCalled) narrativeEvent()                  {}
func (PlayerChecked) narrativeEvent()                 {}
func (PlayerFolded) narrativeEvent()                  {}
func (PlayerRaised) narrativeEvent()                  {}
func (PlayerWentAllIn) narrativeEvent()               {}
func (Showdown) narrativeEvent()                      {}
func (PlayerShowedHand) narrativeEvent()              {}
func (PlayerMuckedHand) narrativeEvent()              {}
func (PlayerCollectedFromMainPot) narrativeEvent()    {}
func (PlayerCollectedFromSidePot) narrativeEvent()    {}
func (UncalledBetReturnedToPlayer) narrativeEvent()   {}
func (HandCanceled) narrativeEvent()                  {}
func (HandEnded) narrativeEvent()                     {}
