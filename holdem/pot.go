package holdem

import "sort"

// Pot 一个彩池档位: 金额 + 有资格赢取的玩家集合
type Pot struct {
	Amount   int64
	Eligible map[uint64]bool
}

// BuildPots 由整手累计投入重建彩池, 每次全量重算, 从不增量修改。
//
// 做法: 把所有投入总额去重后升序排档。每档 L (上一档 P) 的切片厚度是 L-P,
// 出资人是投入 >= L 的全部玩家, 档位金额 = 厚度 x 出资人数。
// 资格集合是出资人里未弃牌的那部分; 某档没有任何未弃牌出资人时属于死钱,
// 并入紧邻的前一个彩池 (没有前池则弃置, 在真实对局中不可达)。
func (g *GameState) BuildPots() []Pot {
	levels := make([]int64, 0, len(g.players))
	seen := make(map[int64]bool, len(g.players))
	for _, p := range g.players {
		total := g.contributions[p.ID]
		if total <= 0 || seen[total] {
			continue
		}
		seen[total] = true
		levels = append(levels, total)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })

	pots := make([]Pot, 0, len(levels))
	prev := int64(0)
	for _, level := range levels {
		slice := level - prev
		pot := Pot{Eligible: make(map[uint64]bool)}
		funders := int64(0)
		for _, p := range g.players {
			if g.contributions[p.ID] < level {
				continue
			}
			funders++
			if !p.folded {
				pot.Eligible[p.ID] = true
			}
		}
		pot.Amount = slice * funders

		if len(pot.Eligible) == 0 {
			if n := len(pots); n > 0 {
				pots[n-1].Amount += pot.Amount
			}
		} else {
			pots = append(pots, pot)
		}
		prev = level
	}
	return pots
}

// PotResult 单个彩池的分配结果
type PotResult struct {
	Amount     int64
	Winners    []uint64
	WinAmounts []int64
}

// SettlementResult 一手结算的完整读模型
type SettlementResult struct {
	Payouts    map[uint64]int64 // 每个有资格玩家 -> 实得 (未赢为 0)
	PotResults []PotResult
	HandNames  map[uint64]string // 摊牌时由 RankProvider 填充, 弃牌胜不填
}

// settle 按外部提供的 rank (越小越强) 分配全部彩池并把奖金直接加回赢家筹码。
// 每个彩池的竞争者是其资格集合中提供了 rank 的玩家; 平分时余数给座位最小的赢家。
func (g *GameState) settle(handRanks map[uint64]int) (*SettlementResult, error) {
	pots := g.BuildPots()

	out := &SettlementResult{
		Payouts:    make(map[uint64]int64),
		PotResults: make([]PotResult, 0, len(pots)),
	}
	for _, p := range g.players {
		if g.round != nil && g.round.contesting[p.Seat] && !p.folded {
			out.Payouts[p.ID] = 0
		}
	}

	for _, pot := range pots {
		var winners []*Player
		best := 0
		for id := range pot.Eligible {
			rank, ok := handRanks[id]
			if !ok {
				continue
			}
			switch {
			case len(winners) == 0 || rank < best:
				winners = winners[:0]
				winners = append(winners, g.playerByID(id))
				best = rank
			case rank == best:
				winners = append(winners, g.playerByID(id))
			}
		}
		if len(winners) == 0 {
			return nil, errInvalidState("no ranked contender for pot")
		}
		sort.Slice(winners, func(i, j int) bool { return winners[i].Seat < winners[j].Seat })

		share := pot.Amount / int64(len(winners))
		remainder := pot.Amount % int64(len(winners))

		pr := PotResult{Amount: pot.Amount}
		for i, w := range winners {
			amt := share
			if i == 0 {
				amt += remainder // 余数给座位最小的赢家
			}
			w.addStack(amt)
			out.Payouts[w.ID] += amt
			pr.Winners = append(pr.Winners, w.ID)
			pr.WinAmounts = append(pr.WinAmounts, amt)
		}
		out.PotResults = append(out.PotResults, pr)
	}
	return out, nil
}

// settleFoldWin 只剩一个未弃牌玩家: 所有彩池立即判给他, 无需摊牌
func (g *GameState) settleFoldWin() {
	var winner *Player
	for _, p := range g.players {
		if g.round.contesting[p.Seat] && !p.folded {
			winner = p
			break
		}
	}
	if winner == nil {
		panic("no contesting player left to award")
	}

	pots := g.BuildPots()
	total := int64(0)
	for _, pot := range pots {
		total += pot.Amount
	}
	winner.addStack(total)

	g.lastSettlement = &SettlementResult{
		Payouts: map[uint64]int64{winner.ID: total},
		PotResults: []PotResult{{
			Amount:     total,
			Winners:    []uint64{winner.ID},
			WinAmounts: []int64{total},
		}},
	}
	g.handComplete = true
	g.phase = PhaseComplete
	g.seatToAct = InvalidSeat
}
