package holdem

import (
	"sort"

	"holdem-core/card"
)

type PlayerSnapshot struct {
	ID               uint64
	Seat             int
	Stack            int64
	RoundBet         int64
	HandContribution int64
	InHand           bool
	Folded           bool
	AllIn            bool
	HoleCards        []card.Card
}

type PotSnapshot struct {
	Amount      int64
	EligibleIDs []uint64
}

// Snapshot 整个聚合的深拷贝读模型, 调用方轮询用, 改它不影响引擎。
type Snapshot struct {
	HandCount    int
	Phase        Phase
	HandComplete bool

	DealerSeat int
	SeatToAct  int

	SmallBlind int64
	BigBlind   int64

	CurrentBet        int64
	MinRaiseIncrement int64
	LastAggressorSeat int

	CommunityCards []card.Card
	Players        []PlayerSnapshot
	Pots           []PotSnapshot
}

func (g *GameState) Snapshot() Snapshot {
	s := Snapshot{
		HandCount:         g.handCount,
		Phase:             g.phase,
		HandComplete:      g.handComplete,
		DealerSeat:        g.dealerSeat,
		SeatToAct:         g.seatToAct,
		SmallBlind:        g.smallBlind,
		BigBlind:          g.bigBlind,
		LastAggressorSeat: InvalidSeat,
		CommunityCards:    append([]card.Card{}, g.community...),
	}
	if g.round != nil {
		s.CurrentBet = g.round.currentBet
		s.MinRaiseIncrement = g.round.minRaiseIncrement(g.bigBlind)
		s.LastAggressorSeat = g.round.lastAggressorSeat
	}

	for _, p := range g.players {
		ps := PlayerSnapshot{
			ID:               p.ID,
			Seat:             p.Seat,
			Stack:            p.stack,
			HandContribution: g.contributions[p.ID],
			Folded:           p.folded,
			AllIn:            p.AllIn(),
			HoleCards:        append([]card.Card{}, p.holeCards...),
		}
		if g.round != nil {
			ps.RoundBet = g.round.contribution(p.Seat)
			ps.InHand = g.round.contesting[p.Seat]
		}
		s.Players = append(s.Players, ps)
	}

	for _, pot := range g.BuildPots() {
		ps := PotSnapshot{Amount: pot.Amount}
		for id := range pot.Eligible {
			ps.EligibleIDs = append(ps.EligibleIDs, id)
		}
		sort.Slice(ps.EligibleIDs, func(i, j int) bool { return ps.EligibleIDs[i] < ps.EligibleIDs[j] })
		s.Pots = append(s.Pots, ps)
	}

	return s
}
