package card

import (
	"errors"
	"testing"
)

func TestNewDeck_Has52UniqueCards(t *testing.T) {
	d := NewDeck(NewSeededSource(1), FisherYates{})

	seen := make(map[Card]struct{}, DeckSize)
	for i := 0; i < DeckSize; i++ {
		c, err := d.Draw()
		if err != nil {
			t.Fatalf("Draw %d err: %v", i, err)
		}
		if !c.Valid() {
			t.Fatalf("invalid card drawn: %v", c)
		}
		if _, dup := seen[c]; dup {
			t.Fatalf("duplicate card drawn: %v", c)
		}
		seen[c] = struct{}{}
	}

	if _, err := d.Draw(); !errors.Is(err, ErrDeckExhausted) {
		t.Fatalf("expected ErrDeckExhausted after 52 draws, got %v", err)
	}
}

func TestDrawN_AtomicOnUnderflow(t *testing.T) {
	d := NewDeck(NewSeededSource(1), FisherYates{})

	if _, err := d.DrawN(50); err != nil {
		t.Fatalf("DrawN(50) err: %v", err)
	}
	if d.Remaining() != 2 {
		t.Fatalf("expected 2 remaining, got %d", d.Remaining())
	}

	// 不够 3 张: 必须整体失败且游标不动
	if _, err := d.DrawN(3); !errors.Is(err, ErrDeckExhausted) {
		t.Fatalf("expected ErrDeckExhausted, got %v", err)
	}
	if d.Remaining() != 2 {
		t.Fatalf("failed DrawN must not move cursor, remaining=%d", d.Remaining())
	}

	cards, err := d.DrawN(2)
	if err != nil || len(cards) != 2 {
		t.Fatalf("DrawN(2) err: %v len=%d", err, len(cards))
	}
}

func TestBurn_ConsumesOneSlot(t *testing.T) {
	d := NewDeck(NewSeededSource(7), FisherYates{})

	if err := d.Burn(); err != nil {
		t.Fatalf("Burn err: %v", err)
	}
	if d.Remaining() != DeckSize-1 {
		t.Fatalf("expected %d remaining after burn, got %d", DeckSize-1, d.Remaining())
	}
}

func TestResetAndShuffle_ResetsCursorAndKeepsFullDeck(t *testing.T) {
	d := NewDeck(NewSeededSource(3), FisherYates{})
	if _, err := d.DrawN(30); err != nil {
		t.Fatalf("DrawN err: %v", err)
	}

	d.ResetAndShuffle(NewSeededSource(4), FisherYates{})
	if d.Remaining() != DeckSize {
		t.Fatalf("expected full deck after reset, got %d", d.Remaining())
	}

	seen := make(map[Card]struct{}, DeckSize)
	for i := 0; i < DeckSize; i++ {
		c, err := d.Draw()
		if err != nil {
			t.Fatalf("Draw err: %v", err)
		}
		if _, dup := seen[c]; dup {
			t.Fatalf("duplicate card after reshuffle: %v", c)
		}
		seen[c] = struct{}{}
	}
}

func TestSameSeed_SameOrder(t *testing.T) {
	d1 := NewDeck(NewSeededSource(99), FisherYates{})
	d2 := NewDeck(NewSeededSource(99), FisherYates{})
	for i := 0; i < DeckSize; i++ {
		c1, _ := d1.Draw()
		c2, _ := d2.Draw()
		if c1 != c2 {
			t.Fatalf("same seed diverged at %d: %v vs %v", i, c1, c2)
		}
	}
}

func TestNewOrderedDeck_RejectsDuplicates(t *testing.T) {
	d := NewDeck(NewSeededSource(5), FisherYates{})
	cards, _ := d.DrawN(DeckSize)
	cards[1] = cards[0]

	if _, err := NewOrderedDeck(cards); err == nil {
		t.Fatalf("expected duplicate validation error")
	}
}

func TestNewOrderedDeck_PreservesOrder(t *testing.T) {
	src := NewDeck(NewSeededSource(5), FisherYates{})
	cards, _ := src.DrawN(DeckSize)

	d, err := NewOrderedDeck(cards)
	if err != nil {
		t.Fatalf("NewOrderedDeck err: %v", err)
	}
	for i, want := range cards {
		got, err := d.Draw()
		if err != nil {
			t.Fatalf("Draw err: %v", err)
		}
		if got != want {
			t.Fatalf("order mismatch at %d: got %v want %v", i, got, want)
		}
	}
}
