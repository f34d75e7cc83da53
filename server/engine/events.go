package engine

// CardSet is a sequence of cards in the engine's native integer encoding:
// the low six bits are the pokereval card index (0..51), either of the two
// high bits marks the card face down, and 255 means no card.
type CardSet []int

const (
	NoCard        = 255
	cardIndexMask = 0x3F
	faceDownMask  = 0xC0
)

// CardIndex extracts the pokereval card index from an encoded card.
func CardIndex(v int) int { return v & cardIndexMask }

// FaceUp reports whether an encoded card is visible.
func FaceUp(v int) bool { return v&faceDownMask == 0 }

// Event is one typed engine event. The set of variants is closed; consumers
// switch exhaustively and treat anything unknown as a no-op.
type Event interface {
	engineEvent()
}

// GameEvent marks the start of a hand.
type GameEvent struct {
	Level            int
	HandSerial       int64
	HandsCount       int
	UTCTime          float64
	Variant          string
	BettingStructure string
	Players          []int64
	ButtonSeat       int
	PlayerChips      map[int64]int
}

// RoundEvent marks the start of a betting round. Board carries community
// cards (empty for variants or rounds without them); Pockets carries hole
// cards dealt at the start of the round, if any.
type RoundEvent struct {
	Name    string
	Board   CardSet
	Pockets map[int64]CardSet
}

type BlindEvent struct {
	Player int64
	Amount int
	Dead   int
}

type AnteEvent struct {
	Player int64
	Amount int
}

// AllInEvent follows immediately after the blind/ante/call/raise that put
// the player all-in.
type AllInEvent struct {
	Player int64
}

type CallEvent struct {
	Player int64
	Amount int
}

type CheckEvent struct {
	Player int64
}

type FoldEvent struct {
	Player int64
}

type RaiseEvent struct {
	Player  int64
	RaiseTo int
	Pay     int
	RaiseBy int
}

// ShowdownEvent carries the hole cards of every player that reached the end
// of the final betting round.
type ShowdownEvent struct {
	Board     CardSet
	Holecards map[int64]CardSet
}

// CanceledEvent signals a canceled hand with chips returned to one player.
type CanceledEvent struct {
	Player   int64
	Returned int
}

// EndEvent declares the winners and carries the showdown stack: one leading
// GameState entry followed by resolution entries.
type EndEvent struct {
	Winners []int64
	Stack   []StackEntry
}

func (GameEvent) engineEvent()     {}
func (RoundEvent) engineEvent()    {}
func (BlindEvent) engineEvent()    {}
func (AnteEvent) engineEvent()     {}
func (AllInEvent) engineEvent()    {}
func (CallEvent) engineEvent()     {}
func (CheckEvent) engineEvent()    {}
func (FoldEvent) engineEvent()     {}
func (RaiseEvent) engineEvent()    {}
func (ShowdownEvent) engineEvent() {}
func (CanceledEvent) engineEvent() {}
func (EndEvent) engineEvent()      {}

// StackEntry is one entry of an EndEvent's showdown stack.
type StackEntry interface {
	stackEntry()
}

// GameState is the leading stack entry summarizing the hand's conclusion.
// BestHands is nil when there was no showdown (pot won by folds). Rake is
// nil only on malformed input; the normalizer treats that as a contract
// violation.
type GameState struct {
	Pot        int
	FoldWin    bool
	PlayerList []int64
	SidePots   *SidePots
	BestHands  map[int64]RawBestHands
	Shares     map[int64]int
	Deltas     map[int64]int
	Rake       map[int64]int
}

// SidePots describes the unraked pot structure. Pots holds one [amount,
// running total] pair per pot; the last entry is the main pot.
type SidePots struct {
	Pots      [][]int
	LastRound int
}

// RawBestHands is one player's engine-evaluated best hand per axis.
type RawBestHands struct {
	Hi  *RawBestHand
	Low *RawBestHand
}

// RawBestHand is the opaque (ranking, category, cards) triple supplied by
// the engine for one axis of one player's best hand.
type RawBestHand struct {
	Ranking  int64
	Category string
	Cards    CardSet
}

// Resolve settles one pot: eligible players, pot size and winner shares.
type Resolve struct {
	Serials   []int64
	Pot       int
	Shares    map[int64]int
	ChipsLeft int
	Hi        []int64
	Lo        []int64
}

// Uncalled returns an uncalled bet to the player who made it.
type Uncalled struct {
	Player int64
	Amount int
}

// LeftOver assigns indivisible remainder chips to one player.
type LeftOver struct {
	Player int64
	Chips  int
}

func (GameState) stackEntry() {}
func (Resolve) stackEntry()   {}
func (Uncalled) stackEntry()  {}
func (LeftOver) stackEntry()  {}
