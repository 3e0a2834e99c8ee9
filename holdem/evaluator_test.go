package holdem

import (
	"testing"

	"holdem-core/card"
)

func mustEval(t *testing.T, hole, community []card.Card) int {
	t.Helper()
	score, err := Evaluate(hole, community)
	if err != nil {
		t.Fatalf("Evaluate err: %v", err)
	}
	return score
}

func TestEvaluate_WheelIsFiveHighStraight(t *testing.T) {
	// A♠2♦3♥4♣5♠ + 两张不碍事的牌
	wheel := mustEval(t,
		[]card.Card{card.CardSpadeA, card.CardDiamond2},
		[]card.Card{card.CardHeart3, card.CardClub4, card.CardSpade5, card.CardHeart9, card.CardDiamondJ},
	)
	if HandCategory(wheel) != HandStraight {
		t.Fatalf("expected straight for wheel, got category %d", HandCategory(wheel))
	}

	sixHigh := mustEval(t,
		[]card.Card{card.CardSpade2, card.CardDiamond3},
		[]card.Card{card.CardHeart4, card.CardClub5, card.CardSpade6, card.CardHeart9, card.CardDiamondJ},
	)
	if HandCategory(sixHigh) != HandStraight {
		t.Fatalf("expected straight for 6-high, got category %d", HandCategory(sixHigh))
	}
	if !(wheel > sixHigh) {
		t.Fatalf("wheel must rank worse than 6-high straight: %d <= %d", wheel, sixHigh)
	}

	pair := mustEval(t,
		[]card.Card{card.CardSpadeA, card.CardDiamondA},
		[]card.Card{card.CardHeart3, card.CardClub7, card.CardSpade9},
	)
	if !(wheel < pair) {
		t.Fatalf("wheel must rank better than any pair: %d >= %d", wheel, pair)
	}
}

func TestEvaluate_CategoryOrdering(t *testing.T) {
	community := []card.Card{card.CardHeart9, card.CardDiamondJ, card.CardClub2}

	hands := []struct {
		name string
		hole []card.Card
		comm []card.Card
		cat  int
	}{
		{"straight flush", []card.Card{card.CardSpade5, card.CardSpade6}, []card.Card{card.CardSpade7, card.CardSpade8, card.CardSpade9}, HandStraightFlush},
		{"four of a kind", []card.Card{card.CardSpadeK, card.CardHeartK}, []card.Card{card.CardClubK, card.CardDiamondK, card.CardHeart2}, HandFourOfKind},
		{"full house", []card.Card{card.CardSpadeQ, card.CardHeartQ}, []card.Card{card.CardClubQ, card.CardDiamond8, card.CardHeart8}, HandFullHouse},
		{"flush", []card.Card{card.CardSpade2, card.CardSpade7}, []card.Card{card.CardSpade9, card.CardSpadeJ, card.CardSpadeK}, HandFlush},
		{"straight", []card.Card{card.CardSpadeT, card.CardHeart9}, []card.Card{card.CardClub8, card.CardDiamond7, card.CardHeart6}, HandStraight},
		{"three of a kind", []card.Card{card.CardSpade4, card.CardHeart4}, append([]card.Card{card.CardDiamond4}, community[:2]...), HandThreeOfKind},
		{"two pair", []card.Card{card.CardSpadeJ, card.CardHeart2}, community, HandTwoPair},
		{"one pair", []card.Card{card.CardSpade9, card.CardHeart5}, community, HandOnePair},
		{"high card", []card.Card{card.CardSpadeA, card.CardHeart7}, community, HandHighCard},
	}

	prev := 0
	for i, h := range hands {
		score := mustEval(t, h.hole, h.comm)
		if HandCategory(score) != h.cat {
			t.Fatalf("%s: expected category %d, got %d (score %d)", h.name, h.cat, HandCategory(score), score)
		}
		if i > 0 && score <= prev {
			t.Fatalf("%s: expected strictly worse score than previous category: %d <= %d", h.name, score, prev)
		}
		prev = score
	}
}

func TestEvaluate_PicksBestFiveOfSeven(t *testing.T) {
	// AA + KK 散牌: 最强组合应是两对
	score := mustEval(t,
		[]card.Card{card.CardSpadeA, card.CardHeartA},
		[]card.Card{card.CardClubK, card.CardDiamondK, card.CardSpade2, card.CardHeart3, card.CardClub4},
	)
	if HandCategory(score) != HandTwoPair {
		t.Fatalf("expected two pair, got category %d", HandCategory(score))
	}
}

func TestEvaluate_KickerBreaksTie(t *testing.T) {
	// 同为一对 9, A kicker 必须强于 K kicker
	aceKicker := mustEval(t,
		[]card.Card{card.CardSpade9, card.CardSpadeA},
		[]card.Card{card.CardHeart9, card.CardClub5, card.CardDiamond7},
	)
	kingKicker := mustEval(t,
		[]card.Card{card.CardDiamond9, card.CardSpadeK},
		[]card.Card{card.CardHeart9, card.CardClub5, card.CardDiamond7},
	)
	if !(aceKicker < kingKicker) {
		t.Fatalf("ace kicker must beat king kicker: %d >= %d", aceKicker, kingKicker)
	}
}

func TestHandName_RoyalFlush(t *testing.T) {
	name, err := HandName(
		[]card.Card{card.CardSpadeA, card.CardSpadeK},
		[]card.Card{card.CardSpadeQ, card.CardSpadeJ, card.CardSpadeT},
	)
	if err != nil {
		t.Fatalf("HandName err: %v", err)
	}
	if name != "Royal Flush" {
		t.Fatalf("expected Royal Flush, got %q", name)
	}
}

func TestEvaluate_RejectsBadInput(t *testing.T) {
	if _, err := Evaluate([]card.Card{card.CardSpadeA}, []card.Card{card.CardHeart2, card.CardHeart3, card.CardHeart4}); err == nil {
		t.Fatalf("expected error for single hole card")
	}
	if _, err := Evaluate([]card.Card{card.CardSpadeA, card.CardSpadeK}, []card.Card{card.CardHeart2, card.CardHeart3}); err == nil {
		t.Fatalf("expected error for short community")
	}
	if _, err := Evaluate([]card.Card{card.CardSpadeA, card.CardSpadeA}, []card.Card{card.CardHeart2, card.CardHeart3, card.CardHeart4}); err == nil {
		t.Fatalf("expected error for duplicate card")
	}
}

// BandEvaluator 与 paulhankin/poker 查表求值的排序方向必须一致
func TestEvaluate_AgreesWithLookupLibrary(t *testing.T) {
	community := []card.Card{card.CardHeart2, card.CardClub7, card.CardDiamond9, card.CardSpade3, card.CardHeartJ}
	holes := [][]card.Card{
		{card.CardSpadeA, card.CardSpadeK},  // high card
		{card.CardDiamondJ, card.CardClubJ}, // three jacks
		{card.CardSpade9, card.CardClub9},   // three nines
		{card.CardSpade7, card.CardHeart7},  // three sevens
		{card.CardDiamond2, card.CardSpade2}, // three deuces
		{card.CardClubA, card.CardDiamondA}, // pair of aces
	}

	band := BandEvaluator{}
	lib := LibraryEvaluator{}
	for i := 0; i < len(holes); i++ {
		for j := i + 1; j < len(holes); j++ {
			b1, err := band.Evaluate(holes[i], community)
			if err != nil {
				t.Fatalf("band eval err: %v", err)
			}
			b2, _ := band.Evaluate(holes[j], community)
			l1, err := lib.Evaluate(holes[i], community)
			if err != nil {
				t.Fatalf("library eval err: %v", err)
			}
			l2, _ := lib.Evaluate(holes[j], community)

			bandSays := compareInt(b1, b2)
			libSays := compareInt(l1, l2)
			if bandSays != libSays {
				t.Fatalf("ordering disagreement for %v vs %v: band %d, library %d", holes[i], holes[j], bandSays, libSays)
			}
		}
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
