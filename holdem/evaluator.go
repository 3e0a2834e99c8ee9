package holdem

import (
	"fmt"
	"sort"

	"holdem-core/card"
)

// 牌型档位, 数值越小越强, 档位间隔 1,000,000
const (
	HandStraightFlush = 1
	HandFourOfKind    = 2
	HandFullHouse     = 3
	HandFlush         = 4
	HandStraight      = 5
	HandThreeOfKind   = 6
	HandTwoPair       = 7
	HandOnePair       = 8
	HandHighCard      = 9
)

const handBandSize = 1_000_000

var handNameDictionary = map[int]string{
	HandStraightFlush: "Straight Flush",
	HandFourOfKind:    "Four of a Kind",
	HandFullHouse:     "Full House",
	HandFlush:         "Flush",
	HandStraight:      "Straight",
	HandThreeOfKind:   "Three of a Kind",
	HandTwoPair:       "Two Pair",
	HandOnePair:       "One Pair",
	HandHighCard:      "High Card",
}

// RankProvider 手牌强度提供者, rank 越小越强。
// 引擎本体不关心编码, 只用 rank 排序分池。
type RankProvider interface {
	Evaluate(hole, community []card.Card) (int, error)
	HandName(hole, community []card.Card) (string, error)
}

// BandEvaluator 本包自带的档位编码求值器
type BandEvaluator struct{}

func (BandEvaluator) Evaluate(hole, community []card.Card) (int, error) {
	return Evaluate(hole, community)
}

func (BandEvaluator) HandName(hole, community []card.Card) (string, error) {
	return HandName(hole, community)
}

// Evaluate 在 2 张手牌 + 3..5 张公共牌里枚举所有 5 张组合, 取最强 (最小) 分值
func Evaluate(hole, community []card.Card) (int, error) {
	all, err := gatherCards(hole, community)
	if err != nil {
		return 0, err
	}

	n := len(all)
	best := 0
	var five [5]card.Card
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						five[0], five[1], five[2], five[3], five[4] = all[a], all[b], all[c], all[d], all[e]
						score := eval5(five)
						if best == 0 || score < best {
							best = score
						}
					}
				}
			}
		}
	}
	return best, nil
}

// HandName 最佳 5 张组合的牌型名, 同花顺 A 高单列为 Royal Flush
func HandName(hole, community []card.Card) (string, error) {
	score, err := Evaluate(hole, community)
	if err != nil {
		return "", err
	}
	if score == HandStraightFlush*handBandSize {
		return "Royal Flush", nil
	}
	return handNameDictionary[score/handBandSize], nil
}

// HandCategory 从分值还原档位常量
func HandCategory(score int) int {
	return score / handBandSize
}

func gatherCards(hole, community []card.Card) ([]card.Card, error) {
	if len(hole) < 2 {
		return nil, fmt.Errorf("need at least 2 hole cards, got %d", len(hole))
	}
	if len(community) < 3 {
		return nil, fmt.Errorf("need at least 3 community cards, got %d", len(community))
	}
	all := make([]card.Card, 0, len(hole)+len(community))
	all = append(all, hole...)
	all = append(all, community...)
	if len(all) > 7 {
		return nil, fmt.Errorf("too many cards: %d", len(all))
	}
	seen := make(map[card.Card]struct{}, len(all))
	for _, c := range all {
		if !c.Valid() {
			return nil, fmt.Errorf("invalid card: %v", c)
		}
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("duplicate card: %v", c)
		}
		seen[c] = struct{}{}
	}
	return all, nil
}

// eval5 给一个确定的 5 张组合打分。
// 分值 = 档位 x 1,000,000 + 档内决胜值; 决胜向量按 15 进制加权,
// 每位取 14-rank, 保证同档内大牌对应更小 (更强) 的分值。
func eval5(five [5]card.Card) int {
	ranks := make([]int, 5)
	flush := true
	for i, c := range five {
		ranks[i] = c.Rank()
		if c.Suit() != five[0].Suit() {
			flush = false
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	straightHigh := straightHighRank(ranks)

	// 按 (张数, 点数) 降序分组
	type group struct {
		rank  int
		count int
	}
	counts := make(map[int]int, 5)
	for _, r := range ranks {
		counts[r]++
	}
	groups := make([]group, 0, 5)
	for r, c := range counts {
		groups = append(groups, group{rank: r, count: c})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	var category int
	var tiebreak []int

	switch {
	case flush && straightHigh > 0:
		category = HandStraightFlush
		tiebreak = []int{straightHigh}
	case groups[0].count == 4:
		category = HandFourOfKind
		tiebreak = []int{groups[0].rank, groups[1].rank}
	case groups[0].count == 3 && groups[1].count == 2:
		category = HandFullHouse
		tiebreak = []int{groups[0].rank, groups[1].rank}
	case flush:
		category = HandFlush
		tiebreak = ranks
	case straightHigh > 0:
		category = HandStraight
		tiebreak = []int{straightHigh}
	case groups[0].count == 3:
		category = HandThreeOfKind
		tiebreak = []int{groups[0].rank, groups[1].rank, groups[2].rank}
	case groups[0].count == 2 && groups[1].count == 2:
		category = HandTwoPair
		tiebreak = []int{groups[0].rank, groups[1].rank, groups[2].rank}
	case groups[0].count == 2:
		category = HandOnePair
		tiebreak = []int{groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank}
	default:
		category = HandHighCard
		tiebreak = ranks
	}

	score := category * handBandSize
	weight := 15 * 15 * 15 * 15
	for i := 0; i < 5; i++ {
		if i < len(tiebreak) {
			score += (card.RankMax - tiebreak[i]) * weight
		}
		weight /= 15
	}
	return score
}

// straightHighRank 五张降序点数构成顺子时返回头张点数, 否则 0。
// A-2-3-4-5 (wheel) 识别为 5 高顺子而不是 A 高。
func straightHighRank(ranksDesc []int) int {
	run := true
	for i := 1; i < 5; i++ {
		if ranksDesc[i] != ranksDesc[i-1]-1 {
			run = false
			break
		}
	}
	if run {
		return ranksDesc[0]
	}
	if ranksDesc[0] == 14 && ranksDesc[1] == 5 && ranksDesc[2] == 4 && ranksDesc[3] == 3 && ranksDesc[4] == 2 {
		return 5
	}
	return 0
}
