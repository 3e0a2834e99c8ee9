package holdem

import (
	poker "github.com/paulhankin/poker"

	"holdem-core/card"
)

// LibraryEvaluator 基于 paulhankin/poker 查表实现的 RankProvider。
// 库分值越大越强, 这里取负号转成"越小越强"; 编码与 BandEvaluator 不同,
// 只保证排序方向一致, 两个 provider 不能混用在同一次结算里。
type LibraryEvaluator struct{}

func toPH(c card.Card) poker.Card {
	var s poker.Suit
	switch c.Suit() {
	case card.Club:
		s = poker.Club
	case card.Diamond:
		s = poker.Diamond
	case card.Heart:
		s = poker.Heart
	default:
		s = poker.Spade
	}
	// 我们的点数 2..14 (A=14), 库用 1..13 (A=1)
	r := c.Rank()
	if r == card.RankMax {
		r = 1
	}
	pc, _ := poker.MakeCard(s, poker.Rank(r))
	return pc
}

func (LibraryEvaluator) Evaluate(hole, community []card.Card) (int, error) {
	all, err := gatherCards(hole, community)
	if err != nil {
		return 0, err
	}

	pcs := make([]poker.Card, len(all))
	for i, c := range all {
		pcs[i] = toPH(c)
	}

	var score int16
	switch len(pcs) {
	case 7:
		var a7 [7]poker.Card
		copy(a7[:], pcs)
		score = poker.Eval7(&a7)
	case 5:
		var a5 [5]poker.Card
		copy(a5[:], pcs)
		score = poker.Eval5(&a5)
	default:
		// 6 张: 枚举 5 张子集取最强
		var five [5]poker.Card
		first := true
		for skip := 0; skip < len(pcs); skip++ {
			k := 0
			for i, pc := range pcs {
				if i == skip {
					continue
				}
				five[k] = pc
				k++
			}
			s := poker.Eval5(&five)
			if first || s > score {
				score = s
				first = false
			}
		}
	}
	return -int(score), nil
}

func (LibraryEvaluator) HandName(hole, community []card.Card) (string, error) {
	all, err := gatherCards(hole, community)
	if err != nil {
		return "", err
	}
	pcs := make([]poker.Card, len(all))
	for i, c := range all {
		pcs[i] = toPH(c)
	}
	return poker.Describe(pcs)
}
