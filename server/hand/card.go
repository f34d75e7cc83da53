package hand

// Rank of a playing card, Two..Ace.
type Rank int

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankNames = [...]string{
	"Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Jack", "Queen", "King", "Ace",
}

var rankAbbrevs = [...]string{
	"2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K", "A",
}

func (r Rank) Name() string   { return rankNames[r] }
func (r Rank) Abbrev() string { return rankAbbrevs[r] }
func (r Rank) String() string { return r.Name() }

// Suit of a playing card.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

var suitNames = [...]string{"hearts", "diamonds", "clubs", "spades"}
var suitAbbrevs = [...]string{"h", "d", "c", "s"}

func (s Suit) Name() string   { return suitNames[s] }
func (s Suit) Abbrev() string { return suitAbbrevs[s] }
func (s Suit) String() string { return s.Name() }

// Card is a rank/suit pair with a visibility tag. FaceUp is fixed at
// construction and never changes afterwards.
type Card struct {
	Rank   Rank
	Suit   Suit
	FaceUp bool
}

func Upcard(r Rank, s Suit) Card   { return Card{Rank: r, Suit: s, FaceUp: true} }
func Downcard(r Rank, s Suit) Card { return Card{Rank: r, Suit: s, FaceUp: false} }

// String renders the short form used in history lines, e.g. "As" or "7d".
func (c Card) String() string { return c.Rank.Abbrev() + c.Suit.Abbrev() }
