package holdem

import "fmt"

// validateAction 无状态校验器: 绝不修改聚合, 按规则顺序累积所有适用的拒绝原因。
// 每个被拒动作至少带一条具体原因, 不允许静默失败。
func (g *GameState) validateAction(a Action) (bool, []string) {
	var reasons []string

	if g.handComplete || g.phase >= PhaseShowdown {
		reasons = append(reasons, "hand is complete, no actions accepted")
		return false, reasons
	}
	if g.phase == PhaseNotStarted || g.round == nil {
		reasons = append(reasons, "no hand in progress")
		return false, reasons
	}

	p := g.playerByID(a.PlayerID)
	if p == nil {
		reasons = append(reasons, fmt.Sprintf("unknown player id %d", a.PlayerID))
		return false, reasons
	}

	if p.folded {
		reasons = append(reasons, "folded player cannot act")
	}
	if p.AllIn() {
		reasons = append(reasons, "all-in player cannot act")
	}
	if p.Seat != g.seatToAct {
		reasons = append(reasons, fmt.Sprintf("not seat %d's turn, seat %d to act", p.Seat, g.seatToAct))
	}

	r := g.round
	contrib := r.contribution(p.Seat)

	switch a.Type {
	case ActionFold:
		// 永远合法

	case ActionCheck:
		if contrib != r.currentBet {
			reasons = append(reasons, fmt.Sprintf("cannot check, %d to call", r.currentBet-contrib))
		}

	case ActionCall:
		if r.owed(p.Seat) <= 0 {
			reasons = append(reasons, "nothing to call, check instead")
		}
		if p.stack == 0 {
			reasons = append(reasons, "no chips left to call with")
		}

	case ActionBet:
		if r.currentBet > 0 {
			reasons = append(reasons, "a bet already exists this round, raise instead")
		}
		if a.Amount <= 0 {
			reasons = append(reasons, "bet amount must be positive")
		} else {
			if a.Amount < g.bigBlind {
				reasons = append(reasons, fmt.Sprintf("bet %d below big blind %d", a.Amount, g.bigBlind))
			}
			if a.Amount-contrib > p.stack {
				reasons = append(reasons, fmt.Sprintf("bet %d exceeds stack %d", a.Amount, p.stack))
			}
		}

	case ActionRaise:
		if r.currentBet == 0 {
			reasons = append(reasons, "no bet to raise, bet instead")
		} else {
			delta := a.Amount - contrib
			if a.Amount <= r.currentBet {
				reasons = append(reasons, fmt.Sprintf("raise to %d must exceed current bet %d", a.Amount, r.currentBet))
			}
			if delta > p.stack {
				reasons = append(reasons, fmt.Sprintf("raise to %d exceeds stack %d", a.Amount, p.stack))
			}
			// 全下例外: 把剩余筹码全部推入时允许低于最小加注额
			minTarget := r.currentBet + r.minRaiseIncrement(g.bigBlind)
			if a.Amount < minTarget && delta != p.stack {
				reasons = append(reasons, fmt.Sprintf("raise to %d below minimum %d", a.Amount, minTarget))
			}
		}

	case ActionAllIn:
		if p.stack == 0 {
			reasons = append(reasons, "no chips left to go all-in")
		}
		if a.Amount > p.stack {
			reasons = append(reasons, fmt.Sprintf("all-in amount %d exceeds stack %d", a.Amount, p.stack))
		}

	default:
		reasons = append(reasons, fmt.Sprintf("unknown action type %d", a.Type))
	}

	return len(reasons) == 0, reasons
}

// LegalActions 纯投影: 返回某玩家此刻可用的动作类型和最小加注目标额。
// 不校验是否轮到该玩家, 轮转由 ApplyAction 裁决。
func (g *GameState) LegalActions(playerID uint64) ([]ActionType, int64, error) {
	if g.handComplete {
		return nil, 0, ErrHandEnded
	}
	if g.phase == PhaseNotStarted || g.round == nil {
		return nil, 0, ErrNoHand
	}
	p := g.playerByID(playerID)
	if p == nil {
		return nil, 0, fmt.Errorf("unknown player id %d", playerID)
	}
	if p.folded || p.AllIn() || !g.round.contesting[p.Seat] {
		return nil, 0, nil
	}

	r := g.round
	contrib := r.contribution(p.Seat)

	acts := []ActionType{ActionFold}
	if contrib == r.currentBet {
		acts = append(acts, ActionCheck)
	}
	if r.owed(p.Seat) > 0 && p.stack > 0 {
		acts = append(acts, ActionCall)
	}
	if r.currentBet == 0 && p.stack >= g.bigBlind {
		acts = append(acts, ActionBet)
	}
	if r.currentBet > 0 && contrib+p.stack > r.currentBet {
		acts = append(acts, ActionRaise)
	}
	if p.stack > 0 {
		acts = append(acts, ActionAllIn)
	}

	minRaiseTo := r.currentBet + r.minRaiseIncrement(g.bigBlind)
	if r.currentBet == 0 {
		minRaiseTo = g.bigBlind
	}
	return acts, minRaiseTo, nil
}
