package holdem

// advancePhase 推进一个阶段并按规则"烧一张再发"公共牌。
// 转换完成后账本重置为仍在争夺的座位集合 (全下玩家保留彩池资格但不再行动)。
// 牌堆不足属于调用方契约破坏, 直接 panic。
func (g *GameState) advancePhase() {
	switch g.phase {
	case PhasePreflop:
		g.phase = PhaseFlop
		g.dealCommunity(3)
	case PhaseFlop:
		g.phase = PhaseTurn
		g.dealCommunity(1)
	case PhaseTurn:
		g.phase = PhaseRiver
		g.dealCommunity(1)
	case PhaseRiver:
		g.phase = PhaseShowdown
	default:
		g.phase = PhaseComplete
	}

	if g.round != nil {
		g.round = newBettingRound(g.round.contestingSeats())
	}
}

func (g *GameState) dealCommunity(n int) {
	if err := g.deck.Burn(); err != nil {
		panic("deck underflow")
	}
	cards, err := g.deck.DrawN(n)
	if err != nil {
		panic("deck underflow")
	}
	g.community = append(g.community, cards...)
}

// runOutToShowdown 没人能再下注时把剩余公共牌一路发到摊牌
func (g *GameState) runOutToShowdown() {
	for g.phase < PhaseShowdown {
		g.advancePhase()
	}
	g.seatToAct = InvalidSeat
}

// closeRound 本轮收束: 推进阶段并重置行动位, 必要时直接跑完公共牌
func (g *GameState) closeRound() {
	g.advancePhase()
	if g.phase >= PhaseShowdown {
		g.seatToAct = InvalidSeat
		return
	}
	if !g.anyoneCanAct() {
		g.runOutToShowdown()
		return
	}
	// 翻后首行动位: 庄位之后第一个还能行动的在局玩家
	g.seatToAct = g.nextSeat(g.dealerSeat)
}
