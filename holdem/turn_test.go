package holdem

import "testing"

func TestShouldCloseRound_RequiresAllActedAndMatched(t *testing.T) {
	g := newTestGame(t, map[int]int64{0: 1000, 1: 1000, 2: 1000}, 0)
	if err := g.StartHand(); err != nil {
		t.Fatalf("StartHand err: %v", err)
	}

	// 盲注刚收完: 没有人表过态, 轮次不能收束
	if g.shouldCloseRound() {
		t.Fatalf("round must stay open right after blinds")
	}

	mustAct(t, g, 1, ActionCall, 0)
	mustAct(t, g, 2, ActionCall, 0)
	// 两人跟注补齐, 大盲还没表态
	if g.Phase() != PhasePreflop {
		t.Fatalf("round closed before the big blind had their option")
	}
	if g.shouldCloseRound() {
		t.Fatalf("round must stay open while one player has not acted")
	}

	mustAct(t, g, 3, ActionCheck, 0)
	if g.Phase() != PhaseFlop {
		t.Fatalf("round should close once everyone acted and matched")
	}
}

func TestRaise_ReopensActionForCallers(t *testing.T) {
	g := newTestGame(t, map[int]int64{0: 1000, 1: 1000, 2: 1000}, 0)
	if err := g.StartHand(); err != nil {
		t.Fatalf("StartHand err: %v", err)
	}

	mustAct(t, g, 1, ActionCall, 0)
	mustAct(t, g, 2, ActionRaise, 300)
	// 加注清掉已表态集合: 先前跟注的玩家必须重新响应
	if g.round.acted[0] {
		t.Fatalf("earlier caller must owe a response after a raise")
	}
	if g.shouldCloseRound() {
		t.Fatalf("round must reopen after a raise")
	}

	mustAct(t, g, 3, ActionCall, 0)
	mustAct(t, g, 1, ActionCall, 0)
	if g.Phase() != PhaseFlop {
		t.Fatalf("round should close after the raise is called around")
	}
}

func TestNextSeat_WrapsAndSkipsFoldedOrBusted(t *testing.T) {
	g := newTestGame(t, map[int]int64{0: 1000, 2: 1000, 5: 1000}, 0)
	if err := g.StartHand(); err != nil {
		t.Fatalf("StartHand err: %v", err)
	}

	if got := g.nextSeat(5); got != 0 {
		t.Fatalf("nextSeat(5) should wrap to 0, got %d", got)
	}
	g.playerBySeat(2).setFolded(true)
	g.round.fold(2)
	if got := g.nextSeat(0); got != 5 {
		t.Fatalf("nextSeat(0) should skip folded seat 2, got %d", got)
	}
}

func TestMinRaiseIncrement_TracksLastFullRaise(t *testing.T) {
	r := newBettingRound([]int{0, 1, 2})
	if got := r.minRaiseIncrement(100); got != 100 {
		t.Fatalf("default increment should be the big blind, got %d", got)
	}

	r.noteAggression(0, 300, 300)
	if got := r.minRaiseIncrement(100); got != 300 {
		t.Fatalf("increment should track the last full raise, got %d", got)
	}

	// 不足额全下 (increment 0) 不得降低加注线
	r.noteAggression(1, 450, 0)
	if got := r.minRaiseIncrement(100); got != 300 {
		t.Fatalf("short all-in must not lower the raise line, got %d", got)
	}
	if len(r.acted) != 0 {
		t.Fatalf("aggression must clear the acted set")
	}
}
