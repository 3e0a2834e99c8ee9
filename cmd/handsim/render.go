package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"holdem-core/card"
	"holdem-core/holdem"
)

func renderTable(g *holdem.GameState) {
	snap := g.Snapshot()

	rows := pterm.TableData{{"Seat", "Player", "Stack", "Round Bet", "Hole", "Status"}}
	for _, ps := range snap.Players {
		status := "in hand"
		switch {
		case ps.Folded:
			status = "folded"
		case ps.AllIn:
			status = "all-in"
		case !ps.InHand:
			status = "sitting out"
		}
		marker := ""
		if ps.Seat == snap.DealerSeat {
			marker = " (D)"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d%s", ps.Seat, marker),
			fmt.Sprintf("P%d", ps.ID),
			fmt.Sprintf("%d", ps.Stack),
			fmt.Sprintf("%d", ps.RoundBet),
			cardLine(ps.HoleCards),
			status,
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		pterm.Error.Printfln("render table: %v", err)
	}

	potTotal := int64(0)
	for _, pot := range snap.Pots {
		potTotal += pot.Amount
	}
	pterm.Printfln("phase %s, pot %d, board %s", snap.Phase, potTotal, cardLine(snap.CommunityCards))
}

func renderBoard(g *holdem.GameState) {
	snap := g.Snapshot()
	box := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	pterm.Println(box.
		WithTitle(pterm.LightYellow(fmt.Sprintf("|%s|", strings.ToUpper(snap.Phase.String())))).
		WithTitleTopCenter().
		Sprintf(cardLine(snap.CommunityCards)))
}

func renderShowdown(g *holdem.GameState, payouts map[uint64]int64) {
	settle := g.LastSettlement()
	box := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	lines := make([]string, 0, len(payouts))
	for id, amount := range payouts {
		if amount == 0 {
			continue
		}
		line := pterm.Sprintf("%s won %d", playerLabel(id), amount)
		if settle != nil {
			if name, ok := settle.HandNames[id]; ok {
				line = pterm.Sprintf("%s won %d with %s", playerLabel(id), amount, name)
			}
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = append(lines, "no payouts")
	}
	pterm.Println(box.
		WithTitle(pterm.LightGreen("|SHOWDOWN|")).
		WithTitleTopCenter().
		Sprintf(strings.Join(lines, "\n")))
}

func cardLine(cards []card.Card) string {
	if len(cards) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}
