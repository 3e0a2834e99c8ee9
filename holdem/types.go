package holdem

// InvalidSeat 当前无行动位时的座位哨兵值
const InvalidSeat int = -1

// Phase 游戏阶段
type Phase byte

const (
	PhaseNotStarted Phase = 0
	PhasePreflop    Phase = 1
	PhaseFlop       Phase = 2
	PhaseTurn       Phase = 3
	PhaseRiver      Phase = 4
	PhaseShowdown   Phase = 5
	PhaseComplete   Phase = 6
)

var PhaseDictionary = map[Phase]string{
	PhaseNotStarted: "notstarted",
	PhasePreflop:    "preflop",
	PhaseFlop:       "flop",
	PhaseTurn:       "turn",
	PhaseRiver:      "river",
	PhaseShowdown:   "showdown",
	PhaseComplete:   "complete",
}

func (p Phase) String() string {
	if s, ok := PhaseDictionary[p]; ok {
		return s
	}
	return "unknown"
}

// ActionType 动作类型：1-FOLD 2-CHECK 3-CALL 4-BET 5-RAISE 6-ALLIN
type ActionType byte

const (
	ActionNone  ActionType = 0
	ActionFold  ActionType = 1
	ActionCheck ActionType = 2
	ActionCall  ActionType = 3
	ActionBet   ActionType = 4
	ActionRaise ActionType = 5
	ActionAllIn ActionType = 6
)

var ActionTypeDictionary = map[ActionType]string{
	ActionNone:  "NONE",
	ActionFold:  "FOLD",
	ActionCheck: "CHECK",
	ActionCall:  "CALL",
	ActionBet:   "BET",
	ActionRaise: "RAISE",
	ActionAllIn: "ALLIN",
}

func (a ActionType) String() string {
	if s, ok := ActionTypeDictionary[a]; ok {
		return s
	}
	return "UNKNOWN"
}

// Action 一次玩家意图。
// Amount 语义: BET/RAISE 表示该玩家本轮的目标总下注额 (不是增量);
// ALLIN 应等于玩家全部剩余筹码; FOLD/CHECK/CALL 忽略。
type Action struct {
	PlayerID uint64
	Type     ActionType
	Amount   int64
}

// ActionResult 动作校验/执行结果。
// 非法动作不是 error: 聚合不变, 原因全部列出, 调用方可重新提交。
type ActionResult struct {
	OK     bool
	Errors []string
}

func rejected(reasons ...string) ActionResult {
	return ActionResult{OK: false, Errors: reasons}
}

func accepted() ActionResult {
	return ActionResult{OK: true}
}
