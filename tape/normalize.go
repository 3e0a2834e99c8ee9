package tape

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"holdem-core/card"
	"holdem-core/holdem"
)

type normalizedSeat struct {
	seat     int
	playerID uint64
	name     string
	stack    int64
	isHero   bool
	hole     []card.Card
}

type normalizedAction struct {
	phase    holdem.Phase
	seat     int
	playerID uint64
	action   holdem.ActionType
	amount   int64
}

type normalizedSpec struct {
	table          TableSpec
	dealerSeat     int
	seats          []normalizedSeat
	seatBySeat     map[int]normalizedSeat
	heroSeat       int
	deck           []card.Card
	actions        []normalizedAction
	handStartStack map[uint64]int64
}

func normalizeSpec(spec HandSpec) (normalizedSpec, error) {
	var out normalizedSpec
	out.table = spec.Table
	out.dealerSeat = spec.DealerSeat

	if out.table.BB <= 0 || out.table.SB < 0 || out.table.SB > out.table.BB {
		return out, &TapeError{StepIndex: -1, Reason: "invalid_blinds", Message: "invalid blinds configuration"}
	}
	if len(spec.Seats) < 2 {
		return out, &TapeError{StepIndex: -1, Reason: "invalid_seats", Message: "at least 2 seats are required"}
	}

	out.seatBySeat = make(map[int]normalizedSeat, len(spec.Seats))
	heroCount := 0
	for i, seat := range spec.Seats {
		if seat.Seat < 0 {
			return out, &TapeError{StepIndex: -1, Reason: "invalid_seat", Message: fmt.Sprintf("seat %d index must be >= 0", i)}
		}
		if _, exists := out.seatBySeat[seat.Seat]; exists {
			return out, &TapeError{StepIndex: -1, Reason: "duplicate_seat", Message: fmt.Sprintf("duplicate seat %d", seat.Seat)}
		}
		if seat.Stack < 0 {
			return out, &TapeError{StepIndex: -1, Reason: "invalid_stack", Message: fmt.Sprintf("seat %d stack must be >= 0", i)}
		}

		holeCards, err := parseHoleCards(seat.Hole)
		if err != nil {
			return out, &TapeError{StepIndex: -1, Reason: "invalid_hole_cards", Message: err.Error()}
		}

		playerID := seat.PlayerID
		if playerID == 0 {
			playerID = 100000 + uint64(seat.Seat)
		}
		name := strings.TrimSpace(seat.Name)
		if name == "" {
			name = fmt.Sprintf("P%d", seat.Seat)
		}
		ns := normalizedSeat{
			seat:     seat.Seat,
			playerID: playerID,
			name:     name,
			stack:    seat.Stack,
			isHero:   seat.IsHero,
			hole:     holeCards,
		}
		if ns.isHero {
			heroCount++
			out.heroSeat = ns.seat
		}

		out.seats = append(out.seats, ns)
		out.seatBySeat[ns.seat] = ns
	}
	sort.Slice(out.seats, func(i, j int) bool { return out.seats[i].seat < out.seats[j].seat })

	if _, ok := out.seatBySeat[out.dealerSeat]; !ok {
		return out, &TapeError{StepIndex: -1, Reason: "invalid_dealer", Message: fmt.Sprintf("dealer seat %d is not occupied", out.dealerSeat)}
	}

	activeSeats := activeSeatNumbers(out.seats)
	if len(activeSeats) < 2 {
		return out, &TapeError{StepIndex: -1, Reason: "not_enough_players", Message: "at least 2 active seats (stack > 0) are required"}
	}
	if heroCount == 0 {
		out.heroSeat = activeSeats[0]
	} else if heroCount > 1 {
		return out, &TapeError{StepIndex: -1, Reason: "invalid_hero", Message: "multiple seats marked as hero"}
	}
	if !containsSeat(activeSeats, out.heroSeat) {
		return out, &TapeError{StepIndex: -1, Reason: "invalid_hero", Message: "hero seat must be active"}
	}

	boardCards, err := parseBoard(spec.Board)
	if err != nil {
		return out, err
	}
	slotConstraints, err := buildSlotConstraints(activeSeats, out.seatBySeat, boardCards)
	if err != nil {
		return out, err
	}

	out.deck, err = parseOrBuildDeck(spec.Deck, slotConstraints, seedFromSpec(spec.RNG))
	if err != nil {
		return out, err
	}

	out.actions = make([]normalizedAction, 0, len(spec.Actions))
	for i, a := range spec.Actions {
		phase, err := parsePhaseName(a.Phase)
		if err != nil {
			return out, &TapeError{StepIndex: int32(i), Reason: "invalid_phase", Message: err.Error()}
		}
		action, err := parseActionName(a.Type)
		if err != nil {
			return out, &TapeError{StepIndex: int32(i), Reason: "invalid_action", Message: err.Error()}
		}
		seat, ok := out.seatBySeat[a.Seat]
		if !ok {
			return out, &TapeError{StepIndex: int32(i), Reason: "invalid_action_seat", Message: fmt.Sprintf("seat %d not seated", a.Seat)}
		}
		out.actions = append(out.actions, normalizedAction{
			phase:    phase,
			seat:     a.Seat,
			playerID: seat.playerID,
			action:   action,
			amount:   a.Amount,
		})
	}
	return out, nil
}

func activeSeatNumbers(seats []normalizedSeat) []int {
	out := make([]int, 0, len(seats))
	for _, s := range seats {
		if s.stack > 0 {
			out = append(out, s.seat)
		}
	}
	return out
}

func containsSeat(seats []int, seat int) bool {
	for _, s := range seats {
		if s == seat {
			return true
		}
	}
	return false
}

func seedFromSpec(rng *RNGSpec) int64 {
	if rng == nil {
		return 0
	}
	return rng.Seed
}

// buildSlotConstraints 把脚本指定的手牌/公共牌钉到牌堆下标上。
// 发牌顺序与引擎一致: 两轮按座位升序各发一张, 之后烧一发三、烧一发一、烧一发一。
func buildSlotConstraints(activeSeats []int, seatBySeat map[int]normalizedSeat, board []*card.Card) (map[int]card.Card, error) {
	constraints := make(map[int]card.Card)
	used := make(map[card.Card]int)

	pin := func(idx int, c card.Card) error {
		if prev, ok := used[c]; ok {
			return &TapeError{
				StepIndex: -1,
				Reason:    "conflicting_cards",
				Message:   fmt.Sprintf("card %s pinned to both deck[%d] and deck[%d]", c, prev, idx),
			}
		}
		used[c] = idx
		constraints[idx] = c
		return nil
	}

	n := len(activeSeats)
	for round := 0; round < 2; round++ {
		for j, seat := range activeSeats {
			hole := seatBySeat[seat].hole
			if len(hole) != 2 {
				continue
			}
			if err := pin(round*n+j, hole[round]); err != nil {
				return nil, err
			}
		}
	}

	// 公共牌: base 处是烧牌, 翻牌/转牌/河牌各自跟在一张烧牌之后
	base := 2 * n
	boardSlots := []int{base + 1, base + 2, base + 3, base + 5, base + 7}
	for i, c := range board {
		if c == nil {
			continue
		}
		if err := pin(boardSlots[i], *c); err != nil {
			return nil, err
		}
	}
	return constraints, nil
}

func parseOrBuildDeck(deck []string, constraints map[int]card.Card, seed int64) ([]card.Card, error) {
	if len(deck) > 0 {
		if len(deck) != card.DeckSize {
			return nil, &TapeError{
				StepIndex: -1,
				Reason:    "invalid_deck",
				Message:   fmt.Sprintf("deck must contain %d cards", card.DeckSize),
			}
		}
		out := make([]card.Card, len(deck))
		seen := make(map[card.Card]struct{}, len(deck))
		for i, s := range deck {
			c, err := card.Parse(strings.TrimSpace(s))
			if err != nil {
				return nil, &TapeError{StepIndex: -1, Reason: "invalid_deck_card", Message: fmt.Sprintf("deck[%d]: %v", i, err)}
			}
			if _, ok := seen[c]; ok {
				return nil, &TapeError{StepIndex: -1, Reason: "invalid_deck", Message: fmt.Sprintf("duplicate card in deck[%d]", i)}
			}
			seen[c] = struct{}{}
			out[i] = c
		}
		for idx, expected := range constraints {
			if out[idx] != expected {
				return nil, &TapeError{
					StepIndex: -1,
					Reason:    "deck_constraint_mismatch",
					Message:   fmt.Sprintf("deck[%d] does not match pinned card %s", idx, expected),
				}
			}
		}
		return out, nil
	}

	pinned := make(map[card.Card]struct{}, len(constraints))
	for _, c := range constraints {
		pinned[c] = struct{}{}
	}

	remaining := make([]card.Card, 0, card.DeckSize-len(constraints))
	for _, c := range card.AllCards() {
		if _, ok := pinned[c]; ok {
			continue
		}
		remaining = append(remaining, c)
	}
	if seed != 0 {
		r := rand.New(rand.NewSource(seed))
		r.Shuffle(len(remaining), func(i, j int) {
			remaining[i], remaining[j] = remaining[j], remaining[i]
		})
	}

	out := make([]card.Card, card.DeckSize)
	ri := 0
	for i := range out {
		if pinnedCard, ok := constraints[i]; ok {
			out[i] = pinnedCard
			continue
		}
		out[i] = remaining[ri]
		ri++
	}
	return out, nil
}

func parseHoleCards(hole []string) ([]card.Card, error) {
	if len(hole) == 0 {
		return nil, nil
	}
	if len(hole) != 2 {
		return nil, fmt.Errorf("hole cards must contain exactly 2 cards")
	}
	out := make([]card.Card, 2)
	for i := range hole {
		c, err := card.Parse(strings.TrimSpace(hole[i]))
		if err != nil {
			return nil, fmt.Errorf("hole[%d]: %w", i, err)
		}
		out[i] = c
	}
	if out[0] == out[1] {
		return nil, fmt.Errorf("hole cards cannot duplicate")
	}
	return out, nil
}

func parseBoard(board *BoardSpec) ([]*card.Card, error) {
	out := make([]*card.Card, 5)
	if board == nil {
		return out, nil
	}
	if len(board.Flop) != 0 && len(board.Flop) != 3 {
		return nil, &TapeError{StepIndex: -1, Reason: "invalid_board", Message: "flop must be either empty or 3 cards"}
	}
	for i := 0; i < len(board.Flop); i++ {
		c, err := card.Parse(strings.TrimSpace(board.Flop[i]))
		if err != nil {
			return nil, &TapeError{StepIndex: -1, Reason: "invalid_board_card", Message: fmt.Sprintf("flop[%d]: %v", i, err)}
		}
		cc := c
		out[i] = &cc
	}
	if board.Turn != nil {
		c, err := card.Parse(strings.TrimSpace(*board.Turn))
		if err != nil {
			return nil, &TapeError{StepIndex: -1, Reason: "invalid_board_card", Message: fmt.Sprintf("turn: %v", err)}
		}
		cc := c
		out[3] = &cc
	}
	if board.River != nil {
		c, err := card.Parse(strings.TrimSpace(*board.River))
		if err != nil {
			return nil, &TapeError{StepIndex: -1, Reason: "invalid_board_card", Message: fmt.Sprintf("river: %v", err)}
		}
		cc := c
		out[4] = &cc
	}
	// 不允许跳级钉牌: 有转牌必须有翻牌, 有河牌必须有转牌
	if out[3] != nil && out[0] == nil {
		return nil, &TapeError{StepIndex: -1, Reason: "invalid_board", Message: "turn requires a flop"}
	}
	if out[4] != nil && out[3] == nil {
		return nil, &TapeError{StepIndex: -1, Reason: "invalid_board", Message: "river requires a turn"}
	}
	return out, nil
}

func parsePhaseName(name string) (holdem.Phase, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for phase, s := range holdem.PhaseDictionary {
		if s == needle {
			return phase, nil
		}
	}
	return holdem.PhaseNotStarted, fmt.Errorf("unknown phase %q", name)
}

func parseActionName(name string) (holdem.ActionType, error) {
	needle := strings.ToUpper(strings.TrimSpace(name))
	for action, s := range holdem.ActionTypeDictionary {
		if s == needle && action != holdem.ActionNone {
			return action, nil
		}
	}
	return holdem.ActionNone, fmt.Errorf("unknown action %q", name)
}
