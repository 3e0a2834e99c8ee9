package card

import (
	"fmt"
	"strings"
)

// Card 牌枚举
//
// 编码规则:
// - 高4位: 花色 (0:Spade, 1:Heart, 2:Club, 3:Diamond)
// - 低4位: 点数 (2..14, A=14)
type Card byte

// 点数取值范围, A 永远按 14 处理
const (
	RankMin = 2
	RankMax = 14
)

func (c Card) String() string {
	if c == CardInvalid {
		return "Invalid"
	}

	rank := c & 0x0F

	rankStr := ""
	switch rank {
	case 10:
		rankStr = "T"
	case 11:
		rankStr = "J"
	case 12:
		rankStr = "Q"
	case 13:
		rankStr = "K"
	case 14:
		rankStr = "A"
	default:
		rankStr = fmt.Sprintf("%d", rank)
	}

	return fmt.Sprintf("%s%s", c.Suit(), rankStr)
}

// Rank 获取牌面值 2-14 (2..K=13, A=14)
func (c Card) Rank() int {
	if c == CardInvalid {
		return 0
	}
	return int(c & 0x0F)
}

// Suit 花色 (0:Spades, 1:Hearts, 2:Clubs, 3:Diamonds)
func (c Card) Suit() Suit {
	return Suit(c >> 4)
}

func (c Card) IsAce() bool {
	return c.Rank() == RankMax
}

// Valid 校验编码是否落在 52 张标准牌范围内
func (c Card) Valid() bool {
	r := int(c & 0x0F)
	s := byte(c >> 4)
	return r >= RankMin && r <= RankMax && s <= byte(Diamond)
}

// Make 由花色和点数构造一张牌, 点数必须在 [2,14]
func Make(s Suit, rank int) (Card, error) {
	if rank < RankMin || rank > RankMax {
		return CardInvalid, fmt.Errorf("invalid rank: %d", rank)
	}
	if s > Diamond {
		return CardInvalid, fmt.Errorf("invalid suit: %d", s)
	}
	return Card(byte(s)<<4 | byte(rank)), nil
}

// Parse 将字符串 (如 "As", "Td", "10h") 转换为 Card 常量
func Parse(cardStr string) (Card, error) {
	if len(cardStr) < 2 {
		return CardInvalid, fmt.Errorf("invalid card string: %s", cardStr)
	}

	// 1. 解析花色 (取最后一个字符)
	suitChar := cardStr[len(cardStr)-1]
	var suit Suit

	switch suitChar {
	case 's', 'S':
		suit = Spade
	case 'h', 'H':
		suit = Heart
	case 'c', 'C':
		suit = Club
	case 'd', 'D':
		suit = Diamond
	default:
		return CardInvalid, fmt.Errorf("invalid suit: %c", suitChar)
	}

	// 2. 解析点数
	rankStr := strings.ToUpper(cardStr[:len(cardStr)-1])
	rank := 0

	switch rankStr {
	case "T", "10":
		rank = 10
	case "J":
		rank = 11
	case "Q":
		rank = 12
	case "K":
		rank = 13
	case "A":
		rank = 14
	case "2", "3", "4", "5", "6", "7", "8", "9":
		rank = int(rankStr[0] - '0')
	default:
		return CardInvalid, fmt.Errorf("invalid rank: %s", rankStr)
	}

	return Make(suit, rank)
}
