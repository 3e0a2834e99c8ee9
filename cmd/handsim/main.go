package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"

	"holdem-core/card"
	"holdem-core/holdem"
	"holdem-core/tape"
)

// handsim 跑一手演示牌局, 或回放一个 HandSpec 脚本:
//
//	handsim             演示模式: 随机牌堆 + 朴素跟注策略
//	handsim spec.json   按脚本生成事件带并逐条渲染
func main() {
	_ = godotenv.Load()

	cfg := loadConfig()
	if len(os.Args) > 1 {
		if err := replaySpecFile(os.Args[1]); err != nil {
			pterm.Error.Printfln("replay failed: %v", err)
			os.Exit(1)
		}
		return
	}
	if err := runDemoHand(cfg); err != nil {
		pterm.Error.Printfln("demo hand failed: %v", err)
		os.Exit(1)
	}
}

type config struct {
	seed    int64
	players int
	stack   int64
	sb      int64
	bb      int64
}

func loadConfig() config {
	return config{
		seed:    envInt("HANDSIM_SEED", 1),
		players: int(envInt("HANDSIM_PLAYERS", 3)),
		stack:   envInt("HANDSIM_STACK", 10000),
		sb:      envInt("HANDSIM_SB", 50),
		bb:      envInt("HANDSIM_BB", 100),
	}
}

func envInt(key string, def int64) int64 {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		pterm.Warning.Printfln("ignoring %s=%q: %v", key, s, err)
		return def
	}
	return n
}

func replaySpecFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var spec tape.HandSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	t, err := tape.Generate(spec)
	if err != nil {
		return err
	}
	pterm.DefaultSection.Printfln("tape %s, hero seat %d, %d events", t.TableID, t.HeroSeat, len(t.Events))
	for _, e := range t.Events {
		env, err := tape.DecodeEnvelope(e.EnvelopeB64)
		if err != nil {
			return err
		}
		line, err := tape.EnvelopeJSON(env)
		if err != nil {
			return err
		}
		pterm.Info.Printfln("#%03d %-12s %s", e.Seq, e.Type, line)
	}
	return nil
}

func runDemoHand(cfg config) error {
	if cfg.players < 2 {
		return fmt.Errorf("need at least 2 players, got %d", cfg.players)
	}

	players := make([]*holdem.Player, 0, cfg.players)
	for i := 0; i < cfg.players; i++ {
		players = append(players, holdem.NewPlayer(uint64(i+1), i, cfg.stack))
	}
	game, err := holdem.NewGameState(players, cfg.sb, cfg.bb, 0, card.NewSeededSource(cfg.seed), card.FisherYates{})
	if err != nil {
		return err
	}
	if err := game.StartHand(); err != nil {
		return err
	}

	pterm.DefaultSection.Printfln("hand #%d, blinds %d/%d, seed %d", 1, cfg.sb, cfg.bb, cfg.seed)
	renderTable(game)

	// 朴素策略: 能过牌就过牌, 否则跟注
	lastPhase := game.Phase()
	for !game.HandComplete() && game.Phase() < holdem.PhaseShowdown {
		seat := game.SeatToAct()
		if seat == holdem.InvalidSeat {
			break
		}
		p := seatPlayer(game, seat)
		if p == nil {
			return fmt.Errorf("no player at seat %d", seat)
		}

		acts, _, err := game.LegalActions(p.ID)
		if err != nil {
			return err
		}
		choice := pickAction(acts)
		res := game.ApplyAction(holdem.Action{PlayerID: p.ID, Type: choice})
		if !res.OK {
			return fmt.Errorf("seat %d action %s rejected: %s", seat, choice, strings.Join(res.Errors, "; "))
		}
		pterm.Info.Printfln("seat %d (%s) %s", seat, playerLabel(p.ID), choice)

		if game.Phase() != lastPhase && game.Phase() <= holdem.PhaseRiver {
			lastPhase = game.Phase()
			renderBoard(game)
		}
	}

	if !game.HandComplete() {
		payouts, err := game.ShowdownEvaluated(holdem.BandEvaluator{})
		if err != nil {
			return err
		}
		renderBoard(game)
		renderShowdown(game, payouts)
	} else if settle := game.LastSettlement(); settle != nil {
		for id, amount := range settle.Payouts {
			pterm.Success.Printfln("%s takes down the pot: %d", playerLabel(id), amount)
		}
	}
	renderTable(game)
	return nil
}

func seatPlayer(g *holdem.GameState, seat int) *holdem.Player {
	snap := g.Snapshot()
	for _, ps := range snap.Players {
		if ps.Seat == seat {
			return g.Player(ps.ID)
		}
	}
	return nil
}

func pickAction(acts []holdem.ActionType) holdem.ActionType {
	for _, a := range acts {
		if a == holdem.ActionCheck {
			return a
		}
	}
	for _, a := range acts {
		if a == holdem.ActionCall {
			return a
		}
	}
	return holdem.ActionFold
}

func playerLabel(id uint64) string {
	return pterm.LightCyan(fmt.Sprintf("P%d", id))
}
