package game

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ModeFile represents the top-level YAML structure.
type ModeFile struct {
	Modes []ModeEntry `yaml:"modes"`
}

// ModeEntry represents a single mode definition in the YAML file.
type ModeEntry struct {
	Name          string         `yaml:"name"`
	TargetScore   int            `yaml:"target_score"`
	HandSize      int            `yaml:"hand_size"`
	BoardSize     int            `yaml:"board_size"`
	Scoring       map[string]int `yaml:"scoring"` // rank label → points, plus "default"
	Restrict      string         `yaml:"restrict"`
	RoundTimerSec int            `yaml:"round_timer_sec"`
}

// ParseModeFile parses a YAML mode file and returns a map of mode name →
// policy. Omitted fields fall back to the classic defaults.
func ParseModeFile(path string) (map[string]ModePolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var mf ModeFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse mode YAML: %w", err)
	}

	modes := make(map[string]ModePolicy)
	for _, entry := range mf.Modes {
		m, err := buildMode(entry)
		if err != nil {
			return nil, err
		}
		modes[m.Name()] = m
	}
	return modes, nil
}

// ModeByName resolves a mode by name: from the YAML file when a path is
// given, otherwise from the built-in presets.
func ModeByName(path, name string) (ModePolicy, error) {
	var modes map[string]ModePolicy
	if path != "" {
		parsed, err := ParseModeFile(path)
		if err != nil {
			return nil, err
		}
		modes = parsed
	} else {
		modes = BuiltinModes()
	}
	m, ok := modes[name]
	if !ok {
		return nil, fmt.Errorf("mode %q not found (have %d modes)", name, len(modes))
	}
	return m, nil
}

func buildMode(entry ModeEntry) (ModePolicy, error) {
	if entry.Name == "" {
		return nil, fmt.Errorf("mode entry missing name")
	}
	m := &configMode{
		name:        entry.Name,
		targetScore: entry.TargetScore,
		handSize:    entry.HandSize,
		boardSize:   entry.BoardSize,
		scoring:     DefaultScoring(),
		roundTimer:  time.Duration(entry.RoundTimerSec) * time.Second,
	}
	if m.targetScore <= 0 {
		m.targetScore = 500
	}
	if m.handSize <= 0 {
		m.handSize = 4
	}
	if m.boardSize <= 0 {
		m.boardSize = 4
	}

	switch entry.Restrict {
	case "":
		m.restrict = RestrictNone
	case "pairs-only":
		m.restrict = RestrictPairsOnly
	case "sums-only":
		m.restrict = RestrictSumsOnly
	default:
		return nil, fmt.Errorf("mode %q: unknown restriction %q", entry.Name, entry.Restrict)
	}

	if len(entry.Scoring) > 0 {
		table := ScoringTable{Points: make(map[Rank]int), Default: DefaultScoring().Default}
		for label, points := range entry.Scoring {
			if label == "default" {
				table.Default = points
				continue
			}
			rank, err := parseRank(label)
			if err != nil {
				return nil, fmt.Errorf("mode %q: %w", entry.Name, err)
			}
			table.Points[rank] = points
		}
		m.scoring = table
	}

	return m, nil
}

func parseRank(label string) (Rank, error) {
	switch label {
	case "A":
		return Ace, nil
	case "K":
		return King, nil
	case "Q":
		return Queen, nil
	case "J":
		return Jack, nil
	}
	var n int
	if _, err := fmt.Sscanf(label, "%d", &n); err == nil && n >= 2 && n <= 10 {
		return Rank(n), nil
	}
	return 0, fmt.Errorf("unknown rank label %q", label)
}
