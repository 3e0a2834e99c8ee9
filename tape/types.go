package tape

import "google.golang.org/protobuf/types/known/structpb"

// HandSpec 一手牌的声明式脚本: 座位、盲注、可选的牌面约束和动作序列。
// 生成器据此驱动引擎并录下事件带。
type HandSpec struct {
	Table      TableSpec    `json:"table"`
	DealerSeat int          `json:"dealer_seat"`
	Seats      []SeatSpec   `json:"seats"`
	Board      *BoardSpec   `json:"board,omitempty"`
	Deck       []string     `json:"deck,omitempty"`
	Actions    []ActionSpec `json:"actions"`
	RNG        *RNGSpec     `json:"rng,omitempty"`
}

type TableSpec struct {
	SB int64 `json:"sb"`
	BB int64 `json:"bb"`
}

type SeatSpec struct {
	Seat     int      `json:"seat"`
	Name     string   `json:"name,omitempty"`
	PlayerID uint64   `json:"player_id,omitempty"`
	Stack    int64    `json:"stack"`
	IsHero   bool     `json:"is_hero,omitempty"`
	Hole     []string `json:"hole,omitempty"`
}

type BoardSpec struct {
	Flop  []string `json:"flop,omitempty"`
	Turn  *string  `json:"turn,omitempty"`
	River *string  `json:"river,omitempty"`
}

type ActionSpec struct {
	Phase  string `json:"phase"`
	Seat   int    `json:"seat"`
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
}

type RNGSpec struct {
	Seed int64 `json:"seed"`
}

// HandTape 录好的事件带。Value 是解码后的信封, EnvelopeB64 是线上形态。
type HandTape struct {
	TapeVersion int         `json:"tape_version"`
	TableID     string      `json:"table_id"`
	HeroSeat    int         `json:"hero_seat"`
	Events      []TapeEvent `json:"events"`
}

type TapeEvent struct {
	Type        string           `json:"type"`
	Seq         uint64           `json:"seq"`
	Value       *structpb.Struct `json:"value,omitempty"`
	EnvelopeB64 string           `json:"envelope_b64,omitempty"`
}

// WireHandTape 对外传输形态: 只带 base64 信封, 不带解码值
type WireHandTape struct {
	TapeVersion int             `json:"tapeVersion"`
	TableID     string          `json:"tableId"`
	HeroSeat    int             `json:"heroSeat"`
	Events      []WireTapeEvent `json:"events"`
}

type WireTapeEvent struct {
	Type        string `json:"type"`
	Seq         uint64 `json:"seq"`
	EnvelopeB64 string `json:"envelopeB64"`
}

func ToWireHandTape(t *HandTape) *WireHandTape {
	if t == nil {
		return nil
	}
	out := &WireHandTape{
		TapeVersion: t.TapeVersion,
		TableID:     t.TableID,
		HeroSeat:    t.HeroSeat,
		Events:      make([]WireTapeEvent, 0, len(t.Events)),
	}
	for _, e := range t.Events {
		out.Events = append(out.Events, WireTapeEvent{
			Type:        e.Type,
			Seq:         e.Seq,
			EnvelopeB64: e.EnvelopeB64,
		})
	}
	return out
}
