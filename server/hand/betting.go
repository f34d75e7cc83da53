package hand

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Limit is the betting limit kind of a game.
type Limit int

const (
	FixedLimit Limit = iota
	PotLimit
	NoLimit
)

func (l Limit) String() string {
	switch l {
	case FixedLimit:
		return "Limit"
	case PotLimit:
		return "Pot Limit"
	case NoLimit:
		return "No Limit"
	}
	return ""
}

// BettingStructure holds the configured blinds (in chips) and limit kind.
type BettingStructure struct {
	Limit      Limit
	SmallBlind int
	BigBlind   int
}

// DefaultChipScale converts currency amounts in structure strings to chips
// (100 chips = 1 unit of currency in a typical cash game).
const DefaultChipScale = 100

var structureRe = regexp.MustCompile(`^(ante-)?([0-9]*\.?[0-9]+)-([0-9]*\.?[0-9]+)-(.+)$`)

// ParseBettingStructure parses an engine betting-structure string such as
// ".10-.25-no-limit" or "ante-10-20-limit". Blind amounts are scaled to
// chips by scale (use DefaultChipScale), truncating below the minor unit.
func ParseBettingStructure(structure string, scale int) (BettingStructure, error) {
	m := structureRe.FindStringSubmatch(structure)
	if m == nil {
		return BettingStructure{}, fmt.Errorf("malformed betting structure %q", structure)
	}

	var limit Limit
	switch m[4] {
	case "limit":
		limit = FixedLimit
	case "no-limit":
		limit = NoLimit
	case "pot-limit":
		limit = PotLimit
	default:
		return BettingStructure{}, fmt.Errorf("unknown limit kind %q in %q", m[4], structure)
	}

	small, err := amountToChips(m[2], scale)
	if err != nil {
		return BettingStructure{}, fmt.Errorf("betting structure %q: %w", structure, err)
	}
	big, err := amountToChips(m[3], scale)
	if err != nil {
		return BettingStructure{}, fmt.Errorf("betting structure %q: %w", structure, err)
	}

	return BettingStructure{Limit: limit, SmallBlind: small, BigBlind: big}, nil
}

// amountToChips multiplies a decimal amount string by scale, truncating.
// Integer arithmetic throughout so ".10" at scale 100 is exactly 10.
func amountToChips(amount string, scale int) (int, error) {
	whole, frac, _ := strings.Cut(amount, ".")
	if whole == "" {
		whole = "0"
	}
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad amount %q", amount)
	}
	chips := n * int64(scale)
	if frac != "" {
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("bad amount %q", amount)
		}
		den := int64(1)
		for range frac {
			den *= 10
		}
		chips += f * int64(scale) / den
	}
	return int(chips), nil
}
