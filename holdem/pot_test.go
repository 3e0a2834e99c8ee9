package holdem

import "testing"

// potFixture 直接构造聚合内部状态来验证彩池数学, 不走完整下注流程
func potFixture(t *testing.T, stacks map[int]int64, contribs map[uint64]int64, folded map[uint64]bool) *GameState {
	t.Helper()
	players := make([]*Player, 0, len(stacks))
	seats := make([]int, 0, len(stacks))
	for seat, stack := range stacks {
		id := uint64(seat + 1)
		p := NewPlayer(id, seat, stack)
		if folded[id] {
			p.setFolded(true)
		}
		players = append(players, p)
		seats = append(seats, seat)
	}
	g, err := NewGameStateWithDeck(players, 50, 100, seats[0], mustDeck(t))
	if err != nil {
		t.Fatalf("fixture err: %v", err)
	}
	g.contributions = contribs
	g.round = newBettingRound(nil)
	for _, p := range g.players {
		if !p.folded && contribs[p.ID] > 0 {
			g.round.contesting[p.Seat] = true
		}
	}
	return g
}

// 规格样例: A 全下 100, B 全下 50, C 跟注 100
// 期望两个彩池: 50x3=150 {A,B,C} 和 50x2=100 {A,C}
func TestBuildPots_SidePotExample(t *testing.T) {
	// seat0=A(id1) seat1=B(id2) seat2=C(id3)
	g := potFixture(t,
		map[int]int64{0: 0, 1: 0, 2: 100},
		map[uint64]int64{1: 100, 2: 50, 3: 100},
		nil,
	)

	pots := g.BuildPots()
	if len(pots) != 2 {
		t.Fatalf("expected 2 pots, got %d", len(pots))
	}
	if pots[0].Amount != 150 {
		t.Fatalf("main pot should be 150, got %d", pots[0].Amount)
	}
	if len(pots[0].Eligible) != 3 {
		t.Fatalf("main pot should have 3 eligible, got %d", len(pots[0].Eligible))
	}
	if pots[1].Amount != 100 {
		t.Fatalf("side pot should be 100, got %d", pots[1].Amount)
	}
	if len(pots[1].Eligible) != 2 || !pots[1].Eligible[1] || !pots[1].Eligible[3] {
		t.Fatalf("side pot eligible should be {A,C}, got %v", pots[1].Eligible)
	}

	total := pots[0].Amount + pots[1].Amount
	if total != 250 {
		t.Fatalf("pot total %d must match total contributed 250", total)
	}
}

func TestBuildPots_Idempotent(t *testing.T) {
	g := potFixture(t,
		map[int]int64{0: 0, 1: 0, 2: 100},
		map[uint64]int64{1: 100, 2: 50, 3: 100},
		nil,
	)

	first := g.BuildPots()
	second := g.BuildPots()
	if len(first) != len(second) {
		t.Fatalf("pot count changed between calls: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Amount != second[i].Amount {
			t.Fatalf("pot %d amount changed: %d vs %d", i, first[i].Amount, second[i].Amount)
		}
		if len(first[i].Eligible) != len(second[i].Eligible) {
			t.Fatalf("pot %d eligible set changed", i)
		}
		for id := range first[i].Eligible {
			if !second[i].Eligible[id] {
				t.Fatalf("pot %d lost eligible player %d", i, id)
			}
		}
	}
}

// 顶档没有未弃牌出资人时是死钱, 必须并入前一个彩池
func TestBuildPots_DeadMoneyRollsDown(t *testing.T) {
	// id3 投了最多但弃牌: 100 以上的 50x1 档没有活人, 滚入主池
	g := potFixture(t,
		map[int]int64{0: 0, 1: 0, 2: 50},
		map[uint64]int64{1: 100, 2: 100, 3: 150},
		map[uint64]bool{3: true},
	)

	pots := g.BuildPots()
	if len(pots) != 1 {
		t.Fatalf("expected single pot after rollup, got %d", len(pots))
	}
	if pots[0].Amount != 350 {
		t.Fatalf("expected 350 in rolled-up pot, got %d", pots[0].Amount)
	}
	if len(pots[0].Eligible) != 2 || !pots[0].Eligible[1] || !pots[0].Eligible[2] {
		t.Fatalf("eligible should be {1,2}, got %v", pots[0].Eligible)
	}
}

// 贡献额完全相同的多人只应产生一个档位
func TestBuildPots_ExactTieSingleTier(t *testing.T) {
	g := potFixture(t,
		map[int]int64{0: 100, 1: 100, 2: 100},
		map[uint64]int64{1: 200, 2: 200, 3: 200},
		nil,
	)

	pots := g.BuildPots()
	if len(pots) != 1 {
		t.Fatalf("expected 1 pot for exact-tie contributions, got %d", len(pots))
	}
	if pots[0].Amount != 600 {
		t.Fatalf("expected 600, got %d", pots[0].Amount)
	}
}

func TestSettle_SplitsPotAndPaysRemainderToEarliestSeat(t *testing.T) {
	g := potFixture(t,
		map[int]int64{0: 0, 1: 0, 2: 0},
		map[uint64]int64{1: 101, 2: 101, 3: 101},
		nil,
	)

	// 三人平分 303: 101 each; id1 与 id2 平手获胜
	result, err := g.settle(map[uint64]int{1: 5, 2: 5, 3: 9})
	if err != nil {
		t.Fatalf("settle err: %v", err)
	}
	if len(result.PotResults) != 1 {
		t.Fatalf("expected 1 pot result, got %d", len(result.PotResults))
	}
	if result.Payouts[3] != 0 {
		t.Fatalf("loser must be reported with 0 payout, got %d", result.Payouts[3])
	}
	// 303 / 2 = 151 余 1, 余数给座位最小的赢家 (seat0 = id1)
	if result.Payouts[1] != 152 {
		t.Fatalf("seat0 winner should get 152, got %d", result.Payouts[1])
	}
	if result.Payouts[2] != 151 {
		t.Fatalf("seat1 winner should get 151, got %d", result.Payouts[2])
	}
}

func TestSettle_SidePotWinners(t *testing.T) {
	// 主池三人争, 边池只有 A/C: B 的牌最好但只能赢主池
	g := potFixture(t,
		map[int]int64{0: 0, 1: 0, 2: 100},
		map[uint64]int64{1: 100, 2: 50, 3: 100},
		nil,
	)

	result, err := g.settle(map[uint64]int{1: 7, 2: 3, 3: 5})
	if err != nil {
		t.Fatalf("settle err: %v", err)
	}
	if result.Payouts[2] != 150 {
		t.Fatalf("B should win main pot 150, got %d", result.Payouts[2])
	}
	if result.Payouts[3] != 100 {
		t.Fatalf("C should win side pot 100, got %d", result.Payouts[3])
	}
	if result.Payouts[1] != 0 {
		t.Fatalf("A should win nothing, got %d", result.Payouts[1])
	}

	// 奖金直接回到筹码
	if g.playerByID(2).Stack() != 150 {
		t.Fatalf("B stack should be 150, got %d", g.playerByID(2).Stack())
	}
	if g.playerByID(3).Stack() != 200 {
		t.Fatalf("C stack should be 200, got %d", g.playerByID(3).Stack())
	}
}

func TestSettle_MissingRankIsHardFailure(t *testing.T) {
	g := potFixture(t,
		map[int]int64{0: 0, 1: 0},
		map[uint64]int64{1: 100, 2: 100},
		nil,
	)

	if _, err := g.settle(map[uint64]int{}); err == nil {
		t.Fatalf("expected error when no eligible player has a rank")
	}
}
