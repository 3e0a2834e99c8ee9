package holdem

// canAct 还能在本轮行动: 已发牌在局、未弃牌、有筹码
func (g *GameState) canAct(p *Player) bool {
	if g.round == nil {
		return false
	}
	return g.round.contesting[p.Seat] && !p.folded && p.stack > 0
}

// nextSeat 从 fromSeat 之后按座位升序环形扫描, 返回第一个还能行动的座位。
// 找不到时原样返回 fromSeat, 调用方需另行判断手牌是否结束。
func (g *GameState) nextSeat(fromSeat int) int {
	n := len(g.players)
	if n == 0 {
		return fromSeat
	}
	start := g.seatIndexAfter(fromSeat)
	for i := 0; i < n; i++ {
		p := g.players[(start+i)%n]
		if g.canAct(p) {
			return p.Seat
		}
	}
	return fromSeat
}

// seatIndexAfter 返回座位严格大于 fromSeat 的第一个玩家下标 (环形)
func (g *GameState) seatIndexAfter(fromSeat int) int {
	for i, p := range g.players {
		if p.Seat > fromSeat {
			return i
		}
	}
	return 0
}

// anyoneCanAct 是否还有人能继续下注
func (g *GameState) anyoneCanAct() bool {
	for _, p := range g.players {
		if g.canAct(p) {
			return true
		}
	}
	return false
}

// shouldCloseRound 本轮是否可以收束:
// - 没有任何玩家还能行动 (全部弃牌/全下) => true
// - 否则要求每个还能行动的玩家都在最后一次攻击性动作之后表过态,
//   且本轮投入已补齐到当前注额; 任何一人不满足则本轮继续。
func (g *GameState) shouldCloseRound() bool {
	for _, p := range g.players {
		if !g.canAct(p) {
			continue
		}
		if !g.round.acted[p.Seat] {
			return false
		}
		if g.round.contribution(p.Seat) != g.round.currentBet {
			return false
		}
	}
	return true
}
