package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/toocheesy/stacked/internal/game"
	"github.com/toocheesy/stacked/internal/log"
)

// ConsoleController is the human seat at the terminal: it renders the
// table, lists the legal moves, and reads a 1-based choice from stdin.
type ConsoleController struct {
	player int
	reader *bufio.Reader
}

func NewConsoleController(player int) *ConsoleController {
	return &ConsoleController{
		player: player,
		reader: bufio.NewReader(os.Stdin),
	}
}

// ChooseMove implements game.PlayerController.
func (c *ConsoleController) ChooseMove(ctx context.Context, s *game.GameSession, moves []game.Move) (game.Move, error) {
	c.renderState(s)
	c.renderMoves(s, moves)

	idx, err := c.readChoice(ctx, len(moves))
	if err != nil {
		return game.Move{}, err
	}
	return moves[idx], nil
}

// Notify implements game.PlayerController.
func (c *ConsoleController) Notify(ctx context.Context, event log.GameEvent) error {
	// The prompt already shows our own state; echo the table talk.
	fmt.Println(log.FormatEvent(event))
	return nil
}

func (c *ConsoleController) renderState(s *game.GameSession) {
	scores := s.Scores()

	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════╗")
	for p := 0; p < s.NumPlayers(); p++ {
		if p == c.player {
			continue
		}
		marks := ""
		if s.Dealer() == p {
			marks = " (dealer)"
		}
		fmt.Printf("║  Bot %d%s  Hand: %d  Captured: %d  Score: %d (+%d)\n",
			p, marks, len(s.Hand(p)), s.CapturedCount(p), scores[p].Overall, scores[p].Round)
	}
	fmt.Println("║──────────────────────────────────────────────────────")
	fmt.Printf("║  Board: %s\n", formatCards(s.Board()))
	fmt.Printf("║  Deck: %d cards left\n", s.DeckCount())
	fmt.Println("║──────────────────────────────────────────────────────")
	marks := ""
	if s.Dealer() == c.player {
		marks = " (dealer)"
	}
	fmt.Printf("║  YOU%s  Captured: %d  Score: %d (+%d)\n",
		marks, s.CapturedCount(c.player), scores[c.player].Overall, scores[c.player].Round)
	fmt.Printf("║  Hand: %s\n", formatCards(s.Hand(c.player)))
	fmt.Println("╚══════════════════════════════════════════════════════╝")
	fmt.Printf("Round %d", s.Round())
	if deadline, ok := s.RoundDeadline(); ok {
		fmt.Printf(" | %s left", timeLeft(deadline))
	}
	fmt.Println()
}

func (c *ConsoleController) renderMoves(s *game.GameSession, moves []game.Move) {
	hintDesc := ""
	if opt := game.Hint(s.Hand(c.player), s.Board(), s.Mode()); opt != nil {
		hintDesc = opt.Move().Desc
	}

	fmt.Println("\nMoves:")
	for i, m := range moves {
		mark := " "
		if m.Desc == hintDesc {
			mark = "*"
		}
		fmt.Printf(" %s%d) %s\n", mark, i+1, m.Desc)
	}
}

// readChoice reads a 1-based move number. Stdin cannot be interrupted, so
// the read runs in a goroutine and the context (the round timer in timed
// modes) can abandon it.
func (c *ConsoleController) readChoice(ctx context.Context, count int) (int, error) {
	type result struct {
		idx int
		err error
	}
	ch := make(chan result, 1)

	go func() {
		for {
			fmt.Print("> ")
			line, err := c.reader.ReadString('\n')
			if err != nil {
				ch <- result{err: err}
				return
			}
			n, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil || n < 1 || n > count {
				fmt.Printf("Enter a number between 1 and %d\n", count)
				continue
			}
			ch <- result{idx: n - 1}
			return
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("\nTime's up!")
		return 0, ctx.Err()
	case r := <-ch:
		return r.idx, r.err
	}
}

func timeLeft(deadline time.Time) string {
	left := time.Until(deadline).Round(time.Second)
	if left < 0 {
		left = 0
	}
	return left.String()
}

func formatCards(cards []game.Card) string {
	if len(cards) == 0 {
		return "(empty)"
	}
	labels := make([]string, len(cards))
	for i, c := range cards {
		labels[i] = c.String()
	}
	return strings.Join(labels, " ")
}
