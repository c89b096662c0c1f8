package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/toocheesy/stacked/internal/web"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// modesFile is the path to the modes YAML file, set by main. Empty means
// built-in modes only.
var modesFile string

// SetModesFile sets the path to the modes YAML file.
func SetModesFile(path string) {
	modesFile = path
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(takeMoveTool(), handleTakeMove)
	s.AddTool(getGameStateTool(), handleGetGameState)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new STACKED! match with Claude in seat 0 against bot opponents. "+
			"Returns the initial game state and the first pending decision. "+
			"Captures score points; first to the mode's target score after a round wins."),
		mcp.WithString("mode", mcp.Description("Game mode name (default 'classic')")),
		mcp.WithString("bots", mcp.Description("Space-separated bot personalities for the other seats, e.g. 'strategist greedy' (default)")),
		mcp.WithNumber("seed", mcp.Description("Deck shuffle seed, 0 for random")),
	)
}

func takeMoveTool() mcp.Tool {
	return mcp.NewTool("take_move",
		mcp.WithDescription("Choose a move from the pending move list. Use this when the pending decision type is 'choose_move'."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the move to take from the moves list")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A game is already running. Only one game at a time is supported."), nil
	}

	modeName := request.GetString("mode", "classic")
	botNames := strings.Fields(request.GetString("bots", ""))
	if len(botNames) == 0 {
		botNames = []string{"strategist", "greedy"}
	}
	seed := int64(request.GetInt("seed", 0))

	sess, err := NewGameSession(modesFile, modeName, botNames, seed)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}

	activeSession = sess

	resp, err := sess.waitForPending()
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleTakeMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess := activeSession
	pending := sess.currentPending
	if pending == nil {
		return mcp.NewToolResultError("No pending decision."), nil
	}
	if pending.Type != DecisionChooseMove {
		return mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not 'choose_move'.", pending.Type), nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(pending.Moves) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Moves)-1), nil
	}

	sess.claudeCtrl.responseCh <- MoveResponse{Index: index}

	resp, err := sess.waitForPending()
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}

	if resp.GameOver {
		activeSession = nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess := activeSession
	events := sess.drainEvents()

	sess.mu.Lock()
	gameOver := sess.gameOver
	winner := sess.winner
	scores := sess.scores
	sess.mu.Unlock()

	resp := &ToolResponse{
		Events:   events,
		GameOver: gameOver,
		Winner:   winner,
	}
	for p, sc := range scores {
		resp.Scores = append(resp.Scores, web.ScoreView{Player: p, Round: sc.Round, Overall: sc.Overall})
	}

	if sess.currentPending != nil {
		resp.State = sess.currentPending.State
		if !gameOver {
			resp.Pending = &PendingView{
				Type:      sess.currentPending.Type,
				ForPlayer: "claude",
				Moves:     sess.currentPending.Moves,
				Hint:      sess.currentPending.Hint,
			}
		}
	}

	// Ensure events is never null in JSON
	if resp.Events == nil {
		resp.Events = []web.EventView{}
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}
