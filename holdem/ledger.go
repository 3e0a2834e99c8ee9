package holdem

// bettingRound 单轮下注账本, 每个阶段开始时整体重置。
//
// 不变量:
// - currentBet 在一轮内单调不减
// - 未全下的在局玩家本轮投入 <= currentBet
type bettingRound struct {
	currentBet         int64
	lastAggressorSeat  int
	lastRaiseIncrement int64

	contributions map[int]int64 // seat -> 本轮投入
	contesting    map[int]bool  // 仍在争夺 (未弃牌) 的座位
	acted         map[int]bool  // 自最后一次攻击性动作后已表态的座位
}

func newBettingRound(seats []int) *bettingRound {
	r := &bettingRound{
		lastAggressorSeat: InvalidSeat,
		contributions:     make(map[int]int64, len(seats)),
		contesting:        make(map[int]bool, len(seats)),
		acted:             make(map[int]bool, len(seats)),
	}
	for _, s := range seats {
		r.contesting[s] = true
	}
	return r
}

// contestingSeats 按任意顺序返回仍在争夺的座位
func (r *bettingRound) contestingSeats() []int {
	seats := make([]int, 0, len(r.contesting))
	for s := range r.contesting {
		seats = append(seats, s)
	}
	return seats
}

func (r *bettingRound) contribution(seat int) int64 {
	return r.contributions[seat]
}

// owed 该座位补齐到当前注额还差多少
func (r *bettingRound) owed(seat int) int64 {
	return r.currentBet - r.contributions[seat]
}

func (r *bettingRound) addContribution(seat int, amount int64) {
	r.contributions[seat] += amount
}

// minRaiseIncrement 当前最小加注增量, 尚无加注时退回大盲
func (r *bettingRound) minRaiseIncrement(bigBlind int64) int64 {
	if r.lastRaiseIncrement > 0 {
		return r.lastRaiseIncrement
	}
	return bigBlind
}

// noteAggression 记录一次攻击性动作: 抬高注额并要求其他人重新表态
func (r *bettingRound) noteAggression(seat int, newBet, increment int64) {
	r.currentBet = newBet
	r.lastAggressorSeat = seat
	if increment > 0 {
		r.lastRaiseIncrement = increment
	}
	r.acted = make(map[int]bool, len(r.contesting))
}

func (r *bettingRound) markActed(seat int) {
	r.acted[seat] = true
}

func (r *bettingRound) fold(seat int) {
	delete(r.contesting, seat)
}
