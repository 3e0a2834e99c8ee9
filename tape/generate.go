package tape

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	"holdem-core/card"
	"holdem-core/holdem"
)

const defaultTableID = "tape_local"

// Generate 按脚本驱动引擎打完一手牌并录下事件带。
// 任何一步偏离脚本 (非法动作、阶段不符、行动位不符) 都带着期望状态报错。
func Generate(spec HandSpec) (*HandTape, error) {
	ns, err := normalizeSpec(spec)
	if err != nil {
		return nil, err
	}

	players := make([]*holdem.Player, 0, len(ns.seats))
	for _, seat := range ns.seats {
		players = append(players, holdem.NewPlayer(seat.playerID, seat.seat, seat.stack))
	}
	deck, err := card.NewOrderedDeck(ns.deck)
	if err != nil {
		return nil, &TapeError{StepIndex: -1, Reason: "invalid_deck", Message: err.Error()}
	}
	game, err := holdem.NewGameStateWithDeck(players, ns.table.SB, ns.table.BB, ns.dealerSeat, deck)
	if err != nil {
		return nil, &TapeError{StepIndex: -1, Reason: "engine_init_failed", Message: err.Error()}
	}

	builder := newTapeBuilder(defaultTableID, ns.heroSeat)

	beforeStart := game.Snapshot()
	ns.handStartStack = make(map[uint64]int64, len(beforeStart.Players))
	for _, ps := range beforeStart.Players {
		ns.handStartStack[ps.ID] = ps.Stack
	}
	if err := builder.addSnapshot(beforeStart); err != nil {
		return nil, err
	}

	if err := game.StartHand(); err != nil {
		return nil, &TapeError{StepIndex: -1, Reason: "start_hand_failed", Message: err.Error()}
	}
	afterStart := game.Snapshot()
	if err := builder.addHandStart(afterStart); err != nil {
		return nil, err
	}
	if hero := heroHoleCards(afterStart, ns.heroSeat); len(hero) == 2 {
		if err := builder.addHoleCards(ns.heroSeat, hero); err != nil {
			return nil, err
		}
	}
	if afterStart.SeatToAct != holdem.InvalidSeat {
		if err := builder.addActionPrompt(game, afterStart); err != nil {
			return nil, err
		}
	}

	for stepIdx, action := range ns.actions {
		before := game.Snapshot()
		if before.HandComplete || before.SeatToAct == holdem.InvalidSeat {
			return nil, &TapeError{
				StepIndex: int32(stepIdx),
				Reason:    "no_action_expected",
				Message:   "hand is already past the betting stage; no further actions are allowed",
			}
		}
		if before.Phase != action.phase {
			return nil, &TapeError{
				StepIndex: int32(stepIdx),
				Reason:    "phase_mismatch",
				Message:   fmt.Sprintf("expected phase %s, got %s", before.Phase, action.phase),
				Expected: &ExpectedState{
					ActionSeat: before.SeatToAct,
					Phase:      before.Phase.String(),
				},
			}
		}
		if before.SeatToAct != action.seat {
			return nil, &TapeError{
				StepIndex: int32(stepIdx),
				Reason:    "out_of_turn",
				Message:   fmt.Sprintf("expected action seat %d, got %d", before.SeatToAct, action.seat),
				Expected:  expectedStateFor(game, before),
			}
		}
		if !isLegalAction(game, action.playerID, action.action) {
			return nil, &TapeError{
				StepIndex: int32(stepIdx),
				Reason:    "illegal_action",
				Message:   fmt.Sprintf("action %s is not legal for seat %d", action.action, action.seat),
				Expected:  expectedStateFor(game, before),
			}
		}

		result := game.ApplyAction(holdem.Action{
			PlayerID: action.playerID,
			Type:     action.action,
			Amount:   action.amount,
		})
		if !result.OK {
			return nil, &TapeError{
				StepIndex: int32(stepIdx),
				Reason:    "action_apply_failed",
				Message:   strings.Join(result.Errors, "; "),
				Expected:  expectedStateFor(game, before),
			}
		}

		after := game.Snapshot()
		if err := builder.addActionResult(after, action); err != nil {
			return nil, err
		}
		if err := builder.addStreetTransitions(before, after); err != nil {
			return nil, err
		}
		if potsChanged(before.Pots, after.Pots) {
			if err := builder.addPotUpdate(after.Pots); err != nil {
				return nil, err
			}
		}

		if after.HandComplete {
			if err := builder.addHandEnd(game.LastSettlement(), after, ns.handStartStack); err != nil {
				return nil, err
			}
			break
		}
		if after.SeatToAct != holdem.InvalidSeat {
			if err := builder.addActionPrompt(game, after); err != nil {
				return nil, err
			}
		}
	}

	// 脚本走到摊牌: 用内置评牌器结算并录下结果
	if !game.HandComplete() && game.Phase() == holdem.PhaseShowdown {
		if _, err := game.ShowdownEvaluated(holdem.BandEvaluator{}); err != nil {
			return nil, &TapeError{StepIndex: -1, Reason: "showdown_failed", Message: err.Error()}
		}
		final := game.Snapshot()
		if err := builder.addHandEnd(game.LastSettlement(), final, ns.handStartStack); err != nil {
			return nil, err
		}
	}

	return &HandTape{
		TapeVersion: 1,
		TableID:     builder.tableID,
		HeroSeat:    ns.heroSeat,
		Events:      builder.events,
	}, nil
}

func heroHoleCards(snap holdem.Snapshot, heroSeat int) []card.Card {
	for _, ps := range snap.Players {
		if ps.Seat == heroSeat {
			return ps.HoleCards
		}
	}
	return nil
}

func isLegalAction(g *holdem.GameState, playerID uint64, action holdem.ActionType) bool {
	actions, _, err := g.LegalActions(playerID)
	if err != nil {
		return false
	}
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

func expectedStateFor(g *holdem.GameState, snap holdem.Snapshot) *ExpectedState {
	out := &ExpectedState{
		ActionSeat: snap.SeatToAct,
		Phase:      snap.Phase.String(),
	}
	for _, ps := range snap.Players {
		if ps.Seat != snap.SeatToAct {
			continue
		}
		actions, minRaiseTo, err := g.LegalActions(ps.ID)
		if err != nil {
			return out
		}
		for _, a := range actions {
			out.LegalActions = append(out.LegalActions, a.String())
		}
		out.MinRaiseTo = minRaiseTo
		if call := snap.CurrentBet - ps.RoundBet; call > 0 {
			out.CallAmount = call
		}
		break
	}
	return out
}

func potsChanged(before, after []holdem.PotSnapshot) bool {
	if len(before) != len(after) {
		return true
	}
	for i := range before {
		if before[i].Amount != after[i].Amount {
			return true
		}
	}
	return false
}

// tapeBuilder 顺序累积事件, 每个事件同时保留解码信封和 base64 线上形态
type tapeBuilder struct {
	tableID  string
	heroSeat int
	seq      uint64
	events   []TapeEvent
}

func newTapeBuilder(tableID string, heroSeat int) *tapeBuilder {
	return &tapeBuilder{
		tableID:  tableID,
		heroSeat: heroSeat,
		events:   make([]TapeEvent, 0, 64),
	}
}

func (b *tapeBuilder) push(eventType string, payload map[string]any) error {
	b.seq++
	env, err := structpb.NewStruct(map[string]any{
		"tableId": b.tableID,
		"seq":     b.seq,
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		return &TapeError{StepIndex: -1, Reason: "envelope_encode_failed", Message: err.Error()}
	}
	b64, err := EncodeEnvelope(env)
	if err != nil {
		return err
	}
	b.events = append(b.events, TapeEvent{
		Type:        eventType,
		Seq:         b.seq,
		Value:       env,
		EnvelopeB64: b64,
	})
	return nil
}

func (b *tapeBuilder) addSnapshot(snap holdem.Snapshot) error {
	return b.push("snapshot", snapshotPayload(snap))
}

func (b *tapeBuilder) addHandStart(snap holdem.Snapshot) error {
	return b.push("handStart", map[string]any{
		"handCount":  snap.HandCount,
		"dealerSeat": snap.DealerSeat,
		"smallBlind": snap.SmallBlind,
		"bigBlind":   snap.BigBlind,
	})
}

func (b *tapeBuilder) addHoleCards(seat int, hole []card.Card) error {
	return b.push("holeCards", map[string]any{
		"seat":  seat,
		"cards": cardsPayload(hole),
	})
}

func (b *tapeBuilder) addActionPrompt(g *holdem.GameState, snap holdem.Snapshot) error {
	expected := expectedStateFor(g, snap)
	legal := make([]any, 0, len(expected.LegalActions))
	for _, a := range expected.LegalActions {
		legal = append(legal, a)
	}
	return b.push("actionPrompt", map[string]any{
		"seat":         expected.ActionSeat,
		"legalActions": legal,
		"minRaiseTo":   expected.MinRaiseTo,
		"callAmount":   expected.CallAmount,
	})
}

func (b *tapeBuilder) addActionResult(after holdem.Snapshot, action normalizedAction) error {
	var newStack, roundBet int64
	for _, ps := range after.Players {
		if ps.Seat == action.seat {
			newStack = ps.Stack
			roundBet = ps.RoundBet
			break
		}
	}
	potTotal := int64(0)
	for _, pot := range after.Pots {
		potTotal += pot.Amount
	}
	return b.push("actionResult", map[string]any{
		"seat":        action.seat,
		"playerId":    action.playerID,
		"action":      action.action.String(),
		"amount":      roundBet,
		"newStack":    newStack,
		"newPotTotal": potTotal,
	})
}

func (b *tapeBuilder) addPotUpdate(pots []holdem.PotSnapshot) error {
	return b.push("potUpdate", map[string]any{"pots": potsPayload(pots)})
}

func (b *tapeBuilder) addStreetTransitions(before, after holdem.Snapshot) error {
	steps := []struct {
		upTo  int
		phase holdem.Phase
	}{
		{3, holdem.PhaseFlop},
		{4, holdem.PhaseTurn},
		{5, holdem.PhaseRiver},
	}
	for _, step := range steps {
		if len(before.CommunityCards) >= step.upTo || len(after.CommunityCards) < step.upTo {
			continue
		}
		err := b.push("board", map[string]any{
			"phase": step.phase.String(),
			"cards": cardsPayload(after.CommunityCards[:step.upTo]),
			"pots":  potsPayload(after.Pots),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *tapeBuilder) addHandEnd(result *holdem.SettlementResult, final holdem.Snapshot, handStartStack map[uint64]int64) error {
	if result == nil {
		return &TapeError{StepIndex: -1, Reason: "missing_settlement", Message: "hand ended without a settlement result"}
	}

	if len(result.HandNames) > 0 {
		hands := make([]any, 0, len(final.Players))
		for _, ps := range final.Players {
			name, ok := result.HandNames[ps.ID]
			if !ok {
				continue
			}
			hands = append(hands, map[string]any{
				"seat":     ps.Seat,
				"playerId": ps.ID,
				"hand":     name,
				"hole":     cardsPayload(ps.HoleCards),
			})
		}
		if err := b.push("showdown", map[string]any{"hands": hands}); err != nil {
			return err
		}
	} else {
		winners := make([]any, 0, 1)
		for _, pr := range result.PotResults {
			for _, id := range pr.Winners {
				winners = append(winners, id)
			}
		}
		if err := b.push("winByFold", map[string]any{"winners": winners}); err != nil {
			return err
		}
	}

	payouts := make(map[string]any, len(result.Payouts))
	for id, amount := range result.Payouts {
		payouts[fmt.Sprintf("%d", id)] = amount
	}
	deltas := make(map[string]any, len(final.Players))
	for _, ps := range final.Players {
		deltas[fmt.Sprintf("%d", ps.ID)] = ps.Stack - handStartStack[ps.ID]
	}
	potResults := make([]any, 0, len(result.PotResults))
	for _, pr := range result.PotResults {
		winners := make([]any, 0, len(pr.Winners))
		for _, id := range pr.Winners {
			winners = append(winners, id)
		}
		potResults = append(potResults, map[string]any{
			"amount":  pr.Amount,
			"winners": winners,
		})
	}
	return b.push("handEnd", map[string]any{
		"handCount":   final.HandCount,
		"payouts":     payouts,
		"stackDeltas": deltas,
		"potResults":  potResults,
	})
}

func snapshotPayload(snap holdem.Snapshot) map[string]any {
	players := make([]any, 0, len(snap.Players))
	for _, ps := range snap.Players {
		players = append(players, map[string]any{
			"id":        ps.ID,
			"seat":      ps.Seat,
			"stack":     ps.Stack,
			"roundBet":  ps.RoundBet,
			"inHand":    ps.InHand,
			"folded":    ps.Folded,
			"allIn":     ps.AllIn,
			"holeCards": cardsPayload(ps.HoleCards),
		})
	}
	return map[string]any{
		"phase":          snap.Phase.String(),
		"handComplete":   snap.HandComplete,
		"dealerSeat":     snap.DealerSeat,
		"seatToAct":      snap.SeatToAct,
		"currentBet":     snap.CurrentBet,
		"communityCards": cardsPayload(snap.CommunityCards),
		"players":        players,
		"pots":           potsPayload(snap.Pots),
	}
}

func cardsPayload(cards []card.Card) []any {
	out := make([]any, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.String())
	}
	return out
}

func potsPayload(pots []holdem.PotSnapshot) []any {
	out := make([]any, 0, len(pots))
	for _, pot := range pots {
		eligible := make([]any, 0, len(pot.EligibleIDs))
		for _, id := range pot.EligibleIDs {
			eligible = append(eligible, id)
		}
		out = append(out, map[string]any{
			"amount":   pot.Amount,
			"eligible": eligible,
		})
	}
	return out
}
