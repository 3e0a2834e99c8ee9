package holdem

import "holdem-core/card"

// Player 一个坐席玩家。座位与 ID 在会话建立后不可变, 筹码与状态随手牌推进变化。
type Player struct {
	ID   uint64
	Seat int

	stack     int64
	folded    bool
	holeCards []card.Card
}

func NewPlayer(id uint64, seat int, stack int64) *Player {
	return &Player{ID: id, Seat: seat, stack: stack}
}

func (p *Player) Stack() int64  { return p.stack }
func (p *Player) Folded() bool  { return p.folded }

// AllIn 全下: 筹码为零且未弃牌
func (p *Player) AllIn() bool {
	return p.stack == 0 && !p.folded
}

func (p *Player) HoleCards() []card.Card {
	return p.holeCards
}

func (p *Player) resetForNewHand() {
	p.folded = false
	p.holeCards = p.holeCards[:0]
}

func (p *Player) addHoleCard(cards ...card.Card) {
	p.holeCards = append(p.holeCards, cards...)
}

// commitChips 从筹码中扣除 amount, 调用前必须保证 amount <= stack
func (p *Player) commitChips(amount int64) {
	p.stack -= amount
}

func (p *Player) addStack(amount int64) {
	p.stack += amount
}

func (p *Player) setFolded(v bool) { p.folded = v }
