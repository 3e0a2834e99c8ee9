package holdem

import (
	"fmt"
	"sort"

	"holdem-core/card"
)

// 一副牌最多支撑的入座人数: 2 张手牌/人 + 3 张烧牌 + 5 张公共牌
const maxSeatedPlayers = 22

// GameState 一张牌桌的会话聚合。跨多手存活, 独占玩家列表,
// 所有交叉引用都通过座位/ID 在自有集合上查找。
//
// 纯同步调用, 引擎内部不加锁: 同一聚合上的 ApplyAction/Showdown
// 必须由调用方串行化。
type GameState struct {
	players []*Player // 座位升序

	deck         *card.Deck
	entropy      card.EntropySource
	shuffler     card.Shuffler
	scriptedDeck bool

	smallBlind int64
	bigBlind   int64
	dealerSeat int

	phase     Phase
	community []card.Card
	seatToAct int

	round         *bettingRound
	contributions map[uint64]int64 // 整手累计投入 (playerID -> amount)
	handComplete  bool

	handCount      int
	lastSettlement *SettlementResult
}

// NewGameState 建立会话聚合。熵源和洗牌器显式注入, 不存在全局随机单例。
func NewGameState(players []*Player, smallBlind, bigBlind int64, dealerSeat int, src card.EntropySource, shuffler card.Shuffler) (*GameState, error) {
	if src == nil || shuffler == nil {
		return nil, errInvalidSetup("entropy source and shuffler are required")
	}
	g, err := newGameState(players, smallBlind, bigBlind, dealerSeat)
	if err != nil {
		return nil, err
	}
	g.entropy = src
	g.shuffler = shuffler
	g.deck = card.NewDeck(src, shuffler)
	return g, nil
}

// NewGameStateWithDeck 用预先排好的牌堆建立会话, 服务确定性脚本 (tape 包) 和测试。
// 每次 StartHand 只回卷游标, 不重洗。
func NewGameStateWithDeck(players []*Player, smallBlind, bigBlind int64, dealerSeat int, deck *card.Deck) (*GameState, error) {
	if deck == nil {
		return nil, errInvalidSetup("deck is required")
	}
	g, err := newGameState(players, smallBlind, bigBlind, dealerSeat)
	if err != nil {
		return nil, err
	}
	g.deck = deck
	g.scriptedDeck = true
	return g, nil
}

func newGameState(players []*Player, smallBlind, bigBlind int64, dealerSeat int) (*GameState, error) {
	if len(players) < 2 {
		return nil, errInvalidSetup(fmt.Sprintf("need at least 2 players, got %d", len(players)))
	}
	if len(players) > maxSeatedPlayers {
		return nil, errInvalidSetup(fmt.Sprintf("too many players for one deck: %d", len(players)))
	}
	if smallBlind < 0 || bigBlind <= 0 || smallBlind > bigBlind {
		return nil, errInvalidSetup(fmt.Sprintf("invalid blinds: sb=%d bb=%d", smallBlind, bigBlind))
	}

	owned := make([]*Player, len(players))
	copy(owned, players)
	sort.Slice(owned, func(i, j int) bool { return owned[i].Seat < owned[j].Seat })

	seats := make(map[int]bool, len(owned))
	ids := make(map[uint64]bool, len(owned))
	for _, p := range owned {
		if p == nil {
			return nil, errInvalidSetup("nil player")
		}
		if p.stack < 0 {
			return nil, errInvalidSetup(fmt.Sprintf("player %d has negative stack", p.ID))
		}
		if seats[p.Seat] {
			return nil, errInvalidSetup(fmt.Sprintf("duplicate seat %d", p.Seat))
		}
		if ids[p.ID] {
			return nil, errInvalidSetup(fmt.Sprintf("duplicate player id %d", p.ID))
		}
		seats[p.Seat] = true
		ids[p.ID] = true
	}
	if !seats[dealerSeat] {
		return nil, errInvalidSetup(fmt.Sprintf("dealer seat %d is not occupied", dealerSeat))
	}

	return &GameState{
		players:       owned,
		smallBlind:    smallBlind,
		bigBlind:      bigBlind,
		dealerSeat:    dealerSeat,
		phase:         PhaseNotStarted,
		seatToAct:     InvalidSeat,
		contributions: make(map[uint64]int64, len(owned)),
	}, nil
}

func (g *GameState) playerBySeat(seat int) *Player {
	for _, p := range g.players {
		if p.Seat == seat {
			return p
		}
	}
	return nil
}

func (g *GameState) playerByID(id uint64) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (g *GameState) Phase() Phase            { return g.phase }
func (g *GameState) HandComplete() bool      { return g.handComplete }
func (g *GameState) SeatToAct() int          { return g.seatToAct }
func (g *GameState) DealerSeat() int         { return g.dealerSeat }
func (g *GameState) Player(id uint64) *Player {
	return g.playerByID(id)
}

func (g *GameState) CommunityCards() []card.Card {
	return append([]card.Card{}, g.community...)
}

// Contribution 某玩家整手的累计投入
func (g *GameState) Contribution(id uint64) int64 {
	return g.contributions[id]
}

func (g *GameState) LastSettlement() *SettlementResult {
	return g.lastSettlement
}

// AdvanceDealer 把庄位移到下一个有筹码的座位, 只能在两手之间调用
func (g *GameState) AdvanceDealer() error {
	if g.phase != PhaseNotStarted && !g.handComplete {
		return ErrHandInProgress
	}
	n := len(g.players)
	start := g.seatIndexAfter(g.dealerSeat)
	for i := 0; i < n; i++ {
		p := g.players[(start+i)%n]
		if p.stack > 0 {
			g.dealerSeat = p.Seat
			return nil
		}
	}
	return errInvalidState("no funded seat to move dealer to")
}

// StartHand 开一手新牌: 重洗/回卷牌堆、清空上手状态、发手牌、收盲注、定首行动位。
func (g *GameState) StartHand() error {
	if g.phase != PhaseNotStarted && !g.handComplete {
		return ErrHandInProgress
	}

	funded := make([]int, 0, len(g.players))
	for _, p := range g.players {
		p.resetForNewHand()
		if p.stack > 0 {
			funded = append(funded, p.Seat)
		}
	}
	if len(funded) < 2 {
		return fmt.Errorf("not enough funded players: %d < 2", len(funded))
	}

	g.handCount++
	g.handComplete = false
	g.lastSettlement = nil
	g.community = g.community[:0]
	g.contributions = make(map[uint64]int64, len(funded))

	if g.scriptedDeck {
		g.deck.Rewind()
	} else {
		g.deck.ResetAndShuffle(g.entropy, g.shuffler)
	}

	g.round = newBettingRound(funded)
	g.phase = PhasePreflop

	// 发手牌: 两轮, 每轮从最小座位开始一人一张
	for i := 0; i < 2; i++ {
		for _, p := range g.players {
			if !g.round.contesting[p.Seat] {
				continue
			}
			c, err := g.deck.Draw()
			if err != nil {
				return err
			}
			p.addHoleCard(c)
		}
	}

	// 盲注。Heads-Up 特例: 刚好两个有筹码的玩家时庄位交小盲并先行动。
	sbSeat, bbSeat := g.blindSeats(funded)
	g.postBlind(sbSeat, g.smallBlind)
	g.postBlind(bbSeat, g.bigBlind)
	g.round.currentBet = g.bigBlind
	g.round.lastAggressorSeat = bbSeat
	// lastRaiseIncrement 留零, 校验时默认按大盲

	if len(funded) == 2 {
		g.seatToAct = sbSeat
	} else {
		g.seatToAct = g.nextSeat(bbSeat)
	}
	if p := g.playerBySeat(g.seatToAct); p != nil && !g.canAct(p) {
		g.seatToAct = g.nextSeat(g.seatToAct)
	}

	// 盲注已把所有人打空: 直接跑完公共牌等摊牌
	if !g.anyoneCanAct() {
		g.runOutToShowdown()
	}
	return nil
}

// blindSeats 以庄位为基准确定小盲/大盲座位
func (g *GameState) blindSeats(funded []int) (int, int) {
	if len(funded) == 2 {
		sb := g.dealerSeat
		if !contains(funded, sb) {
			sb = g.nextFundedSeat(g.dealerSeat)
		}
		return sb, g.nextFundedSeat(sb)
	}
	sb := g.nextFundedSeat(g.dealerSeat)
	return sb, g.nextFundedSeat(sb)
}

// nextFundedSeat 庄位/盲注定位: 环形找下一个本手有份参与的座位
func (g *GameState) nextFundedSeat(fromSeat int) int {
	n := len(g.players)
	start := g.seatIndexAfter(fromSeat)
	for i := 0; i < n; i++ {
		p := g.players[(start+i)%n]
		if g.round.contesting[p.Seat] {
			return p.Seat
		}
	}
	return fromSeat
}

func (g *GameState) postBlind(seat int, amount int64) {
	p := g.playerBySeat(seat)
	if p == nil || amount <= 0 {
		return
	}
	pay := amount
	if pay > p.stack {
		pay = p.stack
	}
	g.commit(p, pay)
}

// commit 扣筹码并同时记入本轮账本和整手累计投入
func (g *GameState) commit(p *Player, amount int64) {
	if amount <= 0 {
		return
	}
	p.commitChips(amount)
	g.round.addContribution(p.Seat, amount)
	g.contributions[p.ID] += amount
}

// ApplyAction 校验并执行一个玩家意图。
// 拒绝时聚合完全不变; 接受后推进账本/筹码并裁决轮次与阶段转换。
func (g *GameState) ApplyAction(a Action) ActionResult {
	ok, reasons := g.validateAction(a)
	if !ok {
		return rejected(reasons...)
	}

	p := g.playerByID(a.PlayerID)
	seat := p.Seat
	r := g.round

	switch a.Type {
	case ActionFold:
		p.setFolded(true)
		r.fold(seat)

	case ActionCheck:
		// 只记表态

	case ActionCall:
		pay := r.owed(seat)
		if pay > p.stack {
			pay = p.stack
		}
		g.commit(p, pay)

	case ActionBet:
		g.commit(p, a.Amount-r.contribution(seat))
		r.noteAggression(seat, a.Amount, a.Amount)

	case ActionRaise:
		inc := a.Amount - r.currentBet
		if inc < r.minRaiseIncrement(g.bigBlind) {
			inc = 0 // 不足额全下不抬高最小加注线
		}
		g.commit(p, a.Amount-r.contribution(seat))
		r.noteAggression(seat, a.Amount, inc)

	case ActionAllIn:
		target := r.contribution(seat) + p.stack
		g.commit(p, p.stack)
		if target > r.currentBet {
			inc := target - r.currentBet
			if inc < r.minRaiseIncrement(g.bigBlind) {
				inc = 0
			}
			r.noteAggression(seat, target, inc)
		}
	}
	r.markActed(seat)

	// 只剩一个未弃牌玩家: 立即判池, 本手结束
	if len(r.contesting) <= 1 {
		g.settleFoldWin()
		return accepted()
	}

	// 没人能再下注: 跑完公共牌等外部 ranks 摊牌
	if !g.anyoneCanAct() {
		g.runOutToShowdown()
		return accepted()
	}

	if g.shouldCloseRound() {
		g.closeRound()
		return accepted()
	}

	g.seatToAct = g.nextSeat(seat)
	return accepted()
}

// Showdown 强制进入摊牌并用外部提供的 rank (越小越强) 结算。
// 返回每个有资格玩家的实得 (未赢为 0)。
func (g *GameState) Showdown(handRanks map[uint64]int) (map[uint64]int64, error) {
	if g.handComplete {
		return nil, ErrHandEnded
	}
	if g.phase == PhaseNotStarted {
		return nil, ErrNoHand
	}

	g.phase = PhaseShowdown
	result, err := g.settle(handRanks)
	if err != nil {
		return nil, err
	}
	g.lastSettlement = result
	g.handComplete = true
	g.phase = PhaseComplete
	g.seatToAct = InvalidSeat
	return result.Payouts, nil
}

// ShowdownEvaluated 用注入的 RankProvider 给所有未弃牌玩家求值后摊牌,
// 并在结算结果里带上牌型名。
func (g *GameState) ShowdownEvaluated(rp RankProvider) (map[uint64]int64, error) {
	if g.handComplete {
		return nil, ErrHandEnded
	}
	if g.phase == PhaseNotStarted || g.round == nil {
		return nil, ErrNoHand
	}

	ranks := make(map[uint64]int)
	names := make(map[uint64]string)
	for _, p := range g.players {
		if !g.round.contesting[p.Seat] || p.folded || len(p.holeCards) != 2 {
			continue
		}
		rank, err := rp.Evaluate(p.holeCards, g.community)
		if err != nil {
			return nil, err
		}
		name, err := rp.HandName(p.holeCards, g.community)
		if err != nil {
			return nil, err
		}
		ranks[p.ID] = rank
		names[p.ID] = name
	}

	payouts, err := g.Showdown(ranks)
	if err != nil {
		return nil, err
	}
	g.lastSettlement.HandNames = names
	return payouts, nil
}

func contains(seats []int, seat int) bool {
	for _, s := range seats {
		if s == seat {
			return true
		}
	}
	return false
}
