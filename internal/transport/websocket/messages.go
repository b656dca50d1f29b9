package websocket

import (
	"github.com/iamasit07/connect4-negamax/internal/domain"
	"github.com/iamasit07/connect4-negamax/internal/service/game"
)

// client → server
const (
	TypeInit          = "init"
	TypeMakeMove      = "make_move"
	TypeAIMove        = "ai_move"
	TypeReset         = "reset"
	TypeSetDifficulty = "set_difficulty"
)

// server → client
const (
	TypeGameState       = "game_state"
	TypeMoveMade        = "move_made"
	TypeError           = "error"
	TypeForceDisconnect = "force_disconnect"
)

type ClientMessage struct {
	Type       string `json:"type"`
	Token      string `json:"token,omitempty"`
	GameID     string `json:"gameId,omitempty"`
	Column     *int   `json:"column,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Depth      int    `json:"depth,omitempty"`
}

type ServerMessage struct {
	Type    string            `json:"type"`
	GameID  string            `json:"gameId,omitempty"`
	Message string            `json:"message,omitempty"`
	Move    *game.MoveOutcome `json:"move,omitempty"`
	State   *game.Snapshot    `json:"state,omitempty"`
	Winner  domain.PlayerID   `json:"winner,omitempty"`
}

func errorMessage(gameID, message string) ServerMessage {
	return ServerMessage{Type: TypeError, GameID: gameID, Message: message}
}
