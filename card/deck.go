package card

import (
	"errors"
	"fmt"
)

// DeckSize 标准牌堆张数
const DeckSize = 52

// ErrDeckExhausted 牌堆已发完, 属于调用方契约错误
var ErrDeckExhausted = errors.New("deck exhausted")

// EntropySource 熵源: NextInt 必须返回 [0,bound) 内均匀分布的整数。
// 洗牌时传入, 不提供全局单例。
type EntropySource interface {
	NextInt(bound int) int
}

// Shuffler 就地洗牌策略
type Shuffler interface {
	ShuffleInPlace(cards []Card, src EntropySource)
}

// FisherYates 标准 Fisher-Yates 就地洗牌
type FisherYates struct{}

func (FisherYates) ShuffleInPlace(cards []Card, src EntropySource) {
	for i := len(cards) - 1; i > 0; i-- {
		j := src.NextInt(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Deck 有序 52 张牌 + 发牌游标。
// 游标严格前进, 重洗会重排并把游标归零, 不重新分配底层数组。
type Deck struct {
	cards  [DeckSize]Card
	cursor int
}

// AllCards 花色优先、点数升序的全部 52 张牌
func AllCards() []Card {
	out := make([]Card, 0, DeckSize)
	for s := Spade; s <= Diamond; s++ {
		for rank := RankMin; rank <= RankMax; rank++ {
			out = append(out, Card(byte(s)<<4|byte(rank)))
		}
	}
	return out
}

// NewDeck 构造标准 52 张牌堆并立即洗牌
func NewDeck(src EntropySource, shuffler Shuffler) *Deck {
	d := &Deck{}
	copy(d.cards[:], AllCards())
	shuffler.ShuffleInPlace(d.cards[:], src)
	return d
}

// NewOrderedDeck 按给定顺序构造牌堆, 必须恰好是 52 张互不相同的合法牌。
// 用于确定性手牌脚本 (tape 包) 和测试。
func NewOrderedDeck(cards []Card) (*Deck, error) {
	if len(cards) != DeckSize {
		return nil, fmt.Errorf("ordered deck needs %d cards, got %d", DeckSize, len(cards))
	}
	d := &Deck{}
	seen := make(map[Card]struct{}, DeckSize)
	for i, c := range cards {
		if !c.Valid() {
			return nil, fmt.Errorf("invalid card at %d: %v", i, c)
		}
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("duplicate card in ordered deck: %v", c)
		}
		seen[c] = struct{}{}
		d.cards[i] = c
	}
	return d, nil
}

// Draw 取出下一张牌
func (d *Deck) Draw() (Card, error) {
	if d.cursor >= DeckSize {
		return CardInvalid, ErrDeckExhausted
	}
	c := d.cards[d.cursor]
	d.cursor++
	return c, nil
}

// DrawN 原子地取出 n 张牌: 牌不够时游标不动
func (d *Deck) DrawN(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid draw count: %d", n)
	}
	if d.cursor+n > DeckSize {
		return nil, ErrDeckExhausted
	}
	out := make([]Card, n)
	copy(out, d.cards[d.cursor:d.cursor+n])
	d.cursor += n
	return out, nil
}

// Burn 烧一张牌, 只推进游标不返回
func (d *Deck) Burn() error {
	if d.cursor >= DeckSize {
		return ErrDeckExhausted
	}
	d.cursor++
	return nil
}

// ResetAndShuffle 重洗现有 52 张并把游标归零, 在两手之间复用
func (d *Deck) ResetAndShuffle(src EntropySource, shuffler Shuffler) {
	shuffler.ShuffleInPlace(d.cards[:], src)
	d.cursor = 0
}

// Rewind 只把游标归零不重排, 服务脚本化牌堆
func (d *Deck) Rewind() {
	d.cursor = 0
}

// Remaining 剩余可发张数
func (d *Deck) Remaining() int {
	return DeckSize - d.cursor
}
