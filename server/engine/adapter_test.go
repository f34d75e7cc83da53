package engine

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func records(t *testing.T, lines ...string) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, len(lines))
	for i, l := range lines {
		out[i] = json.RawMessage(l)
	}
	return out
}

func TestParseHandSkipsUnknownKinds(t *testing.T) {
	events, err := ParseHand(records(t,
		`["position", 0]`,
		`["fold", 22]`,
		`["rake", 5, {"22": 5}]`,
		`["check", 23]`,
	))
	if err != nil {
		t.Fatalf("ParseHand returned error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if _, ok := events[0].(FoldEvent); !ok {
		t.Fatalf("expected FoldEvent, got %T", events[0])
	}
	if _, ok := events[1].(CheckEvent); !ok {
		t.Fatalf("expected CheckEvent, got %T", events[1])
	}
}

func TestParseHandReportsRecordIndex(t *testing.T) {
	_, err := ParseHand(records(t,
		`["fold", 22]`,
		`["blind", 23]`,
	))
	if err == nil {
		t.Fatalf("expected error for short blind record")
	}
	if got := err.Error(); !strings.HasPrefix(got, "record 1:") {
		t.Fatalf("error should name the failing record: %q", got)
	}
}

func TestParseGameRecord(t *testing.T) {
	ev, err := ParseRecord(json.RawMessage(
		`["game", 0, 174, 3, 1310087430.5, "holdem", ".10-.25-no-limit",
		  [22, 23], 1, {"22": 126200, "23": 123700}, {"table": "t1"}]`))
	if err != nil {
		t.Fatalf("ParseRecord returned error: %v", err)
	}
	game, ok := ev.(GameEvent)
	if !ok {
		t.Fatalf("expected GameEvent, got %T", ev)
	}
	if game.HandSerial != 174 || game.HandsCount != 3 {
		t.Fatalf("unexpected serial/count: %d/%d", game.HandSerial, game.HandsCount)
	}
	if game.Variant != "holdem" || game.BettingStructure != ".10-.25-no-limit" {
		t.Fatalf("unexpected variant/structure: %q/%q", game.Variant, game.BettingStructure)
	}
	if !reflect.DeepEqual(game.Players, []int64{22, 23}) {
		t.Fatalf("unexpected players: %v", game.Players)
	}
	if game.ButtonSeat != 1 {
		t.Fatalf("unexpected button seat: %d", game.ButtonSeat)
	}
	if game.PlayerChips[22] != 126200 || game.PlayerChips[23] != 123700 {
		t.Fatalf("unexpected chips: %v", game.PlayerChips)
	}
}

func TestParseRoundRecord(t *testing.T) {
	ev, err := ParseRecord(json.RawMessage(
		`["round", "pre-flop", [], {"22": [231, 201], "23": [234, 211]}]`))
	if err != nil {
		t.Fatalf("ParseRecord returned error: %v", err)
	}
	round, ok := ev.(RoundEvent)
	if !ok {
		t.Fatalf("expected RoundEvent, got %T", ev)
	}
	if round.Name != "pre-flop" {
		t.Fatalf("unexpected round name: %q", round.Name)
	}
	if len(round.Board) != 0 {
		t.Fatalf("expected empty board, got %v", round.Board)
	}
	if !reflect.DeepEqual(round.Pockets[22], CardSet{231, 201}) {
		t.Fatalf("unexpected pocket for 22: %v", round.Pockets[22])
	}
}

func TestParseRoundRecordNullPockets(t *testing.T) {
	ev, err := ParseRecord(json.RawMessage(`["round", "flop", [7, 49, 14], null]`))
	if err != nil {
		t.Fatalf("ParseRecord returned error: %v", err)
	}
	round := ev.(RoundEvent)
	if round.Pockets != nil {
		t.Fatalf("null pockets should stay nil, got %v", round.Pockets)
	}
	if !reflect.DeepEqual(round.Board, CardSet{7, 49, 14}) {
		t.Fatalf("unexpected board: %v", round.Board)
	}
}

func TestParseActionRecords(t *testing.T) {
	tests := []struct {
		raw  string
		want Event
	}{
		{`["blind", 23, 25, 10]`, BlindEvent{Player: 23, Amount: 25, Dead: 10}},
		{`["ante", 23, 5]`, AnteEvent{Player: 23, Amount: 5}},
		{`["all-in", 23]`, AllInEvent{Player: 23}},
		{`["call", 22, 50]`, CallEvent{Player: 22, Amount: 50}},
		{`["check", 22]`, CheckEvent{Player: 22}},
		{`["fold", 22]`, FoldEvent{Player: 22}},
		{`["raise", 23, 100, 75, 50]`, RaiseEvent{Player: 23, RaiseTo: 100, Pay: 75, RaiseBy: 50}},
		{`["canceled", 22, 12]`, CanceledEvent{Player: 22, Returned: 12}},
	}
	for _, tc := range tests {
		ev, err := ParseRecord(json.RawMessage(tc.raw))
		if err != nil {
			t.Fatalf("ParseRecord(%s) returned error: %v", tc.raw, err)
		}
		if !reflect.DeepEqual(ev, tc.want) {
			t.Fatalf("ParseRecord(%s) = %#v, want %#v", tc.raw, ev, tc.want)
		}
	}
}

func TestParseShowdownRecord(t *testing.T) {
	ev, err := ParseRecord(json.RawMessage(
		`["showdown", [7, 49, 14, 255, 255], {"22": [231, 201]}]`))
	if err != nil {
		t.Fatalf("ParseRecord returned error: %v", err)
	}
	sd, ok := ev.(ShowdownEvent)
	if !ok {
		t.Fatalf("expected ShowdownEvent, got %T", ev)
	}
	if !reflect.DeepEqual(sd.Board, CardSet{7, 49, 14, 255, 255}) {
		t.Fatalf("unexpected board: %v", sd.Board)
	}
	if !reflect.DeepEqual(sd.Holecards[22], CardSet{231, 201}) {
		t.Fatalf("unexpected holecards: %v", sd.Holecards)
	}
}

func TestParseEndRecord(t *testing.T) {
	ev, err := ParseRecord(json.RawMessage(`["end", [23],
		[{"type": "game_state", "pot": 3700, "foldwin": true,
		  "player_list": [22, 23],
		  "side_pots": {"pots": [[3700, 3700]], "last_round": 0},
		  "serial2share": {"23": 3700},
		  "serial2delta": {"22": -1200, "23": 1200},
		  "serial2rake": {"23": 0}},
		 {"type": "resolve", "serials": [23], "pot": 3700,
		  "serial2share": {"23": 3700}, "chips_left": 0, "hi": [23]},
		 {"type": "uncalled", "serial": 23, "uncalled": 1300},
		 {"type": "left_over", "serial": 23, "chips_left": 1}]]`))
	if err != nil {
		t.Fatalf("ParseRecord returned error: %v", err)
	}
	end, ok := ev.(EndEvent)
	if !ok {
		t.Fatalf("expected EndEvent, got %T", ev)
	}
	if !reflect.DeepEqual(end.Winners, []int64{23}) {
		t.Fatalf("unexpected winners: %v", end.Winners)
	}
	if len(end.Stack) != 4 {
		t.Fatalf("expected 4 stack entries, got %d", len(end.Stack))
	}

	state, ok := end.Stack[0].(GameState)
	if !ok {
		t.Fatalf("expected GameState first, got %T", end.Stack[0])
	}
	if state.Pot != 3700 || !state.FoldWin {
		t.Fatalf("unexpected game state: %+v", state)
	}
	if state.SidePots == nil || !reflect.DeepEqual(state.SidePots.Pots, [][]int{{3700, 3700}}) {
		t.Fatalf("unexpected side pots: %+v", state.SidePots)
	}
	if state.BestHands != nil {
		t.Fatalf("absent serial2best should stay nil")
	}
	if state.Rake == nil || state.Rake[23] != 0 {
		t.Fatalf("unexpected rake: %v", state.Rake)
	}
	if state.Deltas[22] != -1200 {
		t.Fatalf("unexpected deltas: %v", state.Deltas)
	}

	res, ok := end.Stack[1].(Resolve)
	if !ok {
		t.Fatalf("expected Resolve second, got %T", end.Stack[1])
	}
	if res.Pot != 3700 || res.Shares[23] != 3700 || !reflect.DeepEqual(res.Hi, []int64{23}) {
		t.Fatalf("unexpected resolve: %+v", res)
	}
	if got := end.Stack[2].(Uncalled); got.Player != 23 || got.Amount != 1300 {
		t.Fatalf("unexpected uncalled: %+v", got)
	}
	if got := end.Stack[3].(LeftOver); got.Player != 23 || got.Chips != 1 {
		t.Fatalf("unexpected left_over: %+v", got)
	}
}

func TestParseEndRecordBestHands(t *testing.T) {
	ev, err := ParseRecord(json.RawMessage(`["end", [22],
		[{"type": "game_state", "pot": 200, "foldwin": false,
		  "player_list": [22, 23],
		  "side_pots": {"pots": [[200, 200]], "last_round": 4},
		  "serial2best": {
		    "22": {"hi": [250, ["TwoPair", 12, 25, 5, 18, 30]]},
		    "23": {"hi": [100, ["NoPair", 51, 30, 20, 10, 0]],
		           "low": [524, ["Nothing"]]}},
		  "serial2rake": {"22": 10}}]]`))
	if err != nil {
		t.Fatalf("ParseRecord returned error: %v", err)
	}
	state := ev.(EndEvent).Stack[0].(GameState)
	best, ok := state.BestHands[22]
	if !ok || best.Hi == nil {
		t.Fatalf("missing best hand for 22: %+v", state.BestHands)
	}
	if best.Hi.Ranking != 250 || best.Hi.Category != "TwoPair" {
		t.Fatalf("unexpected high hand: %+v", best.Hi)
	}
	if !reflect.DeepEqual(best.Hi.Cards, CardSet{12, 25, 5, 18, 30}) {
		t.Fatalf("unexpected high cards: %v", best.Hi.Cards)
	}
	low := state.BestHands[23].Low
	if low == nil || low.Category != "Nothing" || len(low.Cards) != 0 {
		t.Fatalf("unexpected low hand: %+v", low)
	}
}

func TestParseEndRecordUnknownEntryType(t *testing.T) {
	_, err := ParseRecord(json.RawMessage(`["end", [22], [{"type": "mystery"}]]`))
	if err == nil {
		t.Fatalf("expected error for unknown stack entry type")
	}
}

func TestCardEncoding(t *testing.T) {
	if CardIndex(231) != 39 {
		t.Fatalf("CardIndex(231) = %d, want 39", CardIndex(231))
	}
	if FaceUp(231) {
		t.Fatalf("231 carries the face-down bits")
	}
	if !FaceUp(39) {
		t.Fatalf("39 should be face up")
	}
}
