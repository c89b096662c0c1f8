package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/toocheesy/stacked/internal/bot"
	"github.com/toocheesy/stacked/internal/game"
	"github.com/toocheesy/stacked/internal/log"
)

func main() {
	mode := flag.String("mode", "classic", "game mode name")
	modesFile := flag.String("modes", "", "path to modes YAML file (empty for built-ins)")
	bots := flag.String("bots", "strategist,greedy", "comma-separated bot personalities")
	seed := flag.Int64("seed", 0, "shuffle seed (0 for random)")
	delay := flag.Duration("delay", 600*time.Millisecond, "bot thinking delay")
	watch := flag.Bool("watch", false, "bots only, no human seat")
	transcript := flag.String("transcript", "", "write the full event transcript to this file after the match")
	flag.Parse()

	policy, err := game.ModeByName(*modesFile, *mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	botNames := strings.Split(*bots, ",")
	var controllers []game.PlayerController
	var logger log.EventLogger
	if *watch {
		// Every event goes to the terminal through the match logger.
		logger = log.NewTextLogger(os.Stdout)
		for i, name := range botNames {
			p, err := bot.ByName(strings.TrimSpace(name))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			controllers = append(controllers, bot.NewController(p, i, *delay))
		}
		if len(controllers) < 2 {
			fmt.Fprintln(os.Stderr, "Error: -watch needs at least two bots")
			os.Exit(1)
		}
	} else {
		// The console seat echoes events itself via Notify.
		logger = log.NewMemoryLogger()
		controllers = append(controllers, NewConsoleController(0))
		for i, name := range botNames {
			p, err := bot.ByName(strings.TrimSpace(name))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			controllers = append(controllers, bot.NewController(p, i+1, *delay))
		}
	}

	match, err := game.NewMatch(game.MatchConfig{
		Mode:   policy,
		Seed:   *seed,
		Logger: logger,
	}, controllers...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("STACKED! %s mode, first to %d points\n", policy.Name(), policy.TargetScore())

	winner, err := match.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scores := match.Session.Scores()
	fmt.Println()
	fmt.Println("═══════════════════════════════════")
	fmt.Println("          GAME OVER")
	fmt.Println("═══════════════════════════════════")
	for p, s := range scores {
		who := fmt.Sprintf("Bot %d", p)
		if !*watch && p == 0 {
			who = "You"
		}
		mark := "  "
		if p == winner {
			mark = "★ "
		}
		fmt.Printf("%s%s: %d points\n", mark, who, s.Overall)
	}
	fmt.Println("═══════════════════════════════════")

	if *transcript != "" {
		if err := os.WriteFile(*transcript, []byte(log.FormatAll(logger.Events())), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}
