package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ParseHand converts one hand's raw positional records into typed events.
// Unknown record kinds (e.g. "position", "rake") are skipped; malformed
// fields inside a recognized record are an error.
func ParseHand(records []json.RawMessage) ([]Event, error) {
	events := make([]Event, 0, len(records))
	for i, rec := range records {
		ev, err := ParseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if ev != nil {
			events = append(events, ev)
		}
	}
	return events, nil
}

// ParseRecord converts one raw record (a JSON array whose first element is
// the kind label) into a typed event, or nil for unrecognized kinds.
func ParseRecord(raw json.RawMessage) (Event, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("not a record array: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty record")
	}
	var kind string
	if err := json.Unmarshal(fields[0], &kind); err != nil {
		return nil, fmt.Errorf("record label: %w", err)
	}
	args := fields[1:]

	switch kind {
	case "game":
		return parseGame(args)
	case "round":
		return parseRound(args)
	case "blind":
		ev := BlindEvent{}
		err := scan(kind, args, &ev.Player, &ev.Amount, &ev.Dead)
		return ev, err
	case "ante":
		ev := AnteEvent{}
		err := scan(kind, args, &ev.Player, &ev.Amount)
		return ev, err
	case "all-in":
		ev := AllInEvent{}
		err := scan(kind, args, &ev.Player)
		return ev, err
	case "call":
		ev := CallEvent{}
		err := scan(kind, args, &ev.Player, &ev.Amount)
		return ev, err
	case "check":
		ev := CheckEvent{}
		err := scan(kind, args, &ev.Player)
		return ev, err
	case "fold":
		ev := FoldEvent{}
		err := scan(kind, args, &ev.Player)
		return ev, err
	case "raise":
		ev := RaiseEvent{}
		err := scan(kind, args, &ev.Player, &ev.RaiseTo, &ev.Pay, &ev.RaiseBy)
		return ev, err
	case "showdown":
		return parseShowdown(args)
	case "canceled":
		ev := CanceledEvent{}
		err := scan(kind, args, &ev.Player, &ev.Returned)
		return ev, err
	case "end":
		return parseEnd(args)
	default:
		return nil, nil
	}
}

// scan unmarshals positional args into the given int/int64 destinations.
func scan(kind string, args []json.RawMessage, dests ...any) error {
	if len(args) < len(dests) {
		return fmt.Errorf("%s record: want %d fields, have %d", kind, len(dests), len(args))
	}
	for i, d := range dests {
		if err := json.Unmarshal(args[i], d); err != nil {
			return fmt.Errorf("%s record field %d: %w", kind, i+1, err)
		}
	}
	return nil
}

func parseGame(args []json.RawMessage) (Event, error) {
	// The trailing game_info object is optional and unused here.
	if len(args) < 9 {
		return nil, fmt.Errorf("game record: want 9 fields, have %d", len(args))
	}
	ev := GameEvent{}
	err := scan("game", args,
		&ev.Level, &ev.HandSerial, &ev.HandsCount, &ev.UTCTime,
		&ev.Variant, &ev.BettingStructure, &ev.Players, &ev.ButtonSeat)
	if err != nil {
		return nil, err
	}
	chips, err := idIntMap(args[8])
	if err != nil {
		return nil, fmt.Errorf("game record serial2chips: %w", err)
	}
	ev.PlayerChips = chips
	return ev, nil
}

func parseRound(args []json.RawMessage) (Event, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("round record: want 3 fields, have %d", len(args))
	}
	ev := RoundEvent{}
	if err := scan("round", args, &ev.Name, &ev.Board); err != nil {
		return nil, err
	}
	pockets, err := idCardSetMap(args[2])
	if err != nil {
		return nil, fmt.Errorf("round record pockets: %w", err)
	}
	ev.Pockets = pockets
	return ev, nil
}

func parseShowdown(args []json.RawMessage) (Event, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("showdown record: want 2 fields, have %d", len(args))
	}
	ev := ShowdownEvent{}
	if err := scan("showdown", args, &ev.Board); err != nil {
		return nil, err
	}
	holecards, err := idCardSetMap(args[1])
	if err != nil {
		return nil, fmt.Errorf("showdown record holecards: %w", err)
	}
	ev.Holecards = holecards
	return ev, nil
}

func parseEnd(args []json.RawMessage) (Event, error) {
	ev := EndEvent{}
	if len(args) < 2 {
		return nil, fmt.Errorf("end record: want 2 fields, have %d", len(args))
	}
	if err := json.Unmarshal(args[0], &ev.Winners); err != nil {
		return nil, fmt.Errorf("end record winners: %w", err)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(args[1], &entries); err != nil {
		return nil, fmt.Errorf("end record showdown stack: %w", err)
	}
	for i, e := range entries {
		entry, err := parseStackEntry(e)
		if err != nil {
			return nil, fmt.Errorf("showdown stack entry %d: %w", i, err)
		}
		ev.Stack = append(ev.Stack, entry)
	}
	return ev, nil
}

func parseStackEntry(raw json.RawMessage) (StackEntry, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, err
	}
	switch tag.Type {
	case "game_state":
		return parseGameState(raw)
	case "resolve":
		var body struct {
			Serials   []int64         `json:"serials"`
			Pot       int             `json:"pot"`
			Shares    json.RawMessage `json:"serial2share"`
			ChipsLeft int             `json:"chips_left"`
			Hi        []int64         `json:"hi"`
			Lo        []int64         `json:"lo"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		shares, err := idIntMap(body.Shares)
		if err != nil {
			return nil, fmt.Errorf("serial2share: %w", err)
		}
		return Resolve{
			Serials:   body.Serials,
			Pot:       body.Pot,
			Shares:    shares,
			ChipsLeft: body.ChipsLeft,
			Hi:        body.Hi,
			Lo:        body.Lo,
		}, nil
	case "uncalled":
		var body struct {
			Serial   int64 `json:"serial"`
			Uncalled int   `json:"uncalled"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		return Uncalled{Player: body.Serial, Amount: body.Uncalled}, nil
	case "left_over":
		var body struct {
			Serial    int64 `json:"serial"`
			ChipsLeft int   `json:"chips_left"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		return LeftOver{Player: body.Serial, Chips: body.ChipsLeft}, nil
	default:
		return nil, fmt.Errorf("unknown entry type %q", tag.Type)
	}
}

func parseGameState(raw json.RawMessage) (StackEntry, error) {
	var body struct {
		Pot        int                        `json:"pot"`
		FoldWin    bool                       `json:"foldwin"`
		PlayerList []int64                    `json:"player_list"`
		RawSide    json.RawMessage            `json:"side_pots"`
		Best       map[string]json.RawMessage `json:"serial2best"`
		Shares     json.RawMessage            `json:"serial2share"`
		Deltas     json.RawMessage            `json:"serial2delta"`
		Rake       json.RawMessage            `json:"serial2rake"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	state := GameState{
		Pot:        body.Pot,
		FoldWin:    body.FoldWin,
		PlayerList: body.PlayerList,
	}

	if len(body.RawSide) > 0 {
		var side struct {
			Pots      [][]int `json:"pots"`
			LastRound int     `json:"last_round"`
		}
		if err := json.Unmarshal(body.RawSide, &side); err != nil {
			return nil, fmt.Errorf("side_pots: %w", err)
		}
		state.SidePots = &SidePots{Pots: side.Pots, LastRound: side.LastRound}
	}

	var err error
	if state.Shares, err = idIntMap(body.Shares); err != nil {
		return nil, fmt.Errorf("serial2share: %w", err)
	}
	if state.Deltas, err = idIntMap(body.Deltas); err != nil {
		return nil, fmt.Errorf("serial2delta: %w", err)
	}
	if state.Rake, err = idIntMap(body.Rake); err != nil {
		return nil, fmt.Errorf("serial2rake: %w", err)
	}

	if body.Best != nil {
		state.BestHands = make(map[int64]RawBestHands, len(body.Best))
		for key, val := range body.Best {
			id, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("serial2best key %q: %w", key, err)
			}
			var axes map[string]json.RawMessage
			if err := json.Unmarshal(val, &axes); err != nil {
				return nil, fmt.Errorf("serial2best[%d]: %w", id, err)
			}
			var best RawBestHands
			for axis, rawHand := range axes {
				bh, err := parseBestHand(rawHand)
				if err != nil {
					return nil, fmt.Errorf("serial2best[%d].%s: %w", id, axis, err)
				}
				switch axis {
				case "hi":
					best.Hi = bh
				case "low":
					best.Low = bh
				}
			}
			state.BestHands[id] = best
		}
	}
	return state, nil
}

// parseBestHand decodes the engine's [ranking, [category, card...]] pair.
func parseBestHand(raw json.RawMessage) (*RawBestHand, error) {
	var pair []json.RawMessage
	if err := json.Unmarshal(raw, &pair); err != nil {
		return nil, err
	}
	if len(pair) != 2 {
		return nil, fmt.Errorf("want [ranking, details], have %d elements", len(pair))
	}
	bh := &RawBestHand{}
	if err := json.Unmarshal(pair[0], &bh.Ranking); err != nil {
		return nil, fmt.Errorf("ranking: %w", err)
	}
	var details []json.RawMessage
	if err := json.Unmarshal(pair[1], &details); err != nil {
		return nil, fmt.Errorf("details: %w", err)
	}
	if len(details) == 0 {
		return nil, fmt.Errorf("empty details")
	}
	if err := json.Unmarshal(details[0], &bh.Category); err != nil {
		return nil, fmt.Errorf("category: %w", err)
	}
	for i, d := range details[1:] {
		var c int
		if err := json.Unmarshal(d, &c); err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		bh.Cards = append(bh.Cards, c)
	}
	return bh, nil
}

// idIntMap decodes a JSON object keyed by stringified player ids.
// A missing (null/absent) object stays nil so callers can tell absence
// from emptiness.
func idIntMap(raw json.RawMessage) (map[int64]int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var m map[string]int
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	out := make(map[int64]int, len(m))
	for k, v := range m {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("player id %q: %w", k, err)
		}
		out[id] = v
	}
	return out, nil
}

func idCardSetMap(raw json.RawMessage) (map[int64]CardSet, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var m map[string]CardSet
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	out := make(map[int64]CardSet, len(m))
	for k, v := range m {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("player id %q: %w", k, err)
		}
		out[id] = v
	}
	return out, nil
}
