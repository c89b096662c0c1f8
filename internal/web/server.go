package web

import (
	"context"
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/toocheesy/stacked/internal/bot"
	"github.com/toocheesy/stacked/internal/game"
	gamelog "github.com/toocheesy/stacked/internal/log"
)

//go:embed static
var staticFiles embed.FS

// ModeInfo is the JSON representation of a mode for the /api/modes endpoint.
type ModeInfo struct {
	Name        string `json:"name"`
	TargetScore int    `json:"targetScore"`
	HandSize    int    `json:"handSize"`
	BoardSize   int    `json:"boardSize"`
	TimerSec    int    `json:"timerSec,omitempty"`
}

// Server hosts the browser table: static UI, mode listing, and a websocket
// endpoint that runs one in-process match per connection with the browser
// in seat 0 and bots in the rest.
type Server struct {
	modesFile string
	mux       *http.ServeMux
}

// NewServer creates a new web server. modesFile may be empty to offer only
// the built-in modes.
func NewServer(modesFile string) *Server {
	s := &Server{
		modesFile: modesFile,
		mux:       http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f)
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/modes", s.handleModes)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	modes := game.BuiltinModes()
	if s.modesFile != "" {
		fileModes, err := game.ParseModeFile(s.modesFile)
		if err != nil {
			log.Printf("Warning: could not load modes file: %v", err)
		} else {
			for name, m := range fileModes {
				modes[name] = m
			}
		}
	}

	var infos []ModeInfo
	for name, m := range modes {
		infos = append(infos, ModeInfo{
			Name:        name,
			TargetScore: m.TargetScore(),
			HandSize:    m.HandSize(),
			BoardSize:   m.BoardSize(),
			TimerSec:    int(m.RoundTimer() / time.Second),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(infos)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // local server, any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	human := NewSocketController(wsConn, 0)

	human.mu.Lock()
	start, err := human.recv(ctx)
	human.mu.Unlock()
	if err != nil || start.Type != "start" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected start message")
		return
	}

	modeName := start.Mode
	if modeName == "" {
		modeName = "classic"
	}
	mode, err := game.ModeByName(s.modesFile, modeName)
	if err != nil {
		s.sendError(ctx, human, err.Error())
		return
	}

	botNames := start.Bots
	if len(botNames) == 0 {
		botNames = []string{"strategist", "greedy"}
	}
	delay := time.Duration(start.DelayMs) * time.Millisecond
	if start.DelayMs == 0 {
		delay = 600 * time.Millisecond
	}

	controllers := []game.PlayerController{human}
	for i, name := range botNames {
		p, err := bot.ByName(name)
		if err != nil {
			s.sendError(ctx, human, err.Error())
			return
		}
		controllers = append(controllers, bot.NewController(p, i+1, delay))
	}

	match, err := game.NewMatch(game.MatchConfig{
		Mode:   mode,
		Seed:   start.Seed,
		Logger: gamelog.NewMemoryLogger(),
	}, controllers...)
	if err != nil {
		s.sendError(ctx, human, err.Error())
		return
	}

	winner, err := match.Run(ctx)
	if err != nil {
		log.Printf("match ended with error: %v", err)
		return
	}
	if err := human.SendGameOver(ctx, winner, match.Session.Scores()); err != nil {
		log.Printf("send game_over: %v", err)
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

func (s *Server) sendError(ctx context.Context, human *SocketController, detail string) {
	human.mu.Lock()
	defer human.mu.Unlock()
	if err := human.send(ctx, ServerMessage{Type: "error", Detail: detail}); err != nil {
		log.Printf("send error: %v", err)
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
