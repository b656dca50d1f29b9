package domain

import "fmt"

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Opponent returns the other player. Empty has no opponent and maps to itself.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return Empty
	}
}

func (p PlayerID) IsPlayer() bool {
	return p == Player1 || p == Player2
}

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	default:
		return "empty"
	}
}

// glyphs used by the text rendering, same as the classic console board
const (
	glyphEmpty   = '.'
	glyphPlayer1 = 'O'
	glyphPlayer2 = 'X'
)

const (
	StandardRows      = 6
	StandardColumns   = 7
	StandardWinLength = 4
)

// Outcome is the state of a game as seen from outside
type Outcome int

const (
	InProgress Outcome = iota
	Player1Wins
	Player2Wins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Player1Wins:
		return "player1_wins"
	case Player2Wins:
		return "player2_wins"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	for _, candidate := range []Outcome{InProgress, Player1Wins, Player2Wins, Draw} {
		if candidate.String() == string(text) {
			*o = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

func (o Outcome) IsOver() bool {
	return o != InProgress
}

// Winner returns the winning player, or Empty for a draw or a running game.
func (o Outcome) Winner() PlayerID {
	switch o {
	case Player1Wins:
		return Player1
	case Player2Wins:
		return Player2
	default:
		return Empty
	}
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove   Error = "invalid move"
	ErrColumnFull    Error = "column is full"
	ErrNoLegalMove   Error = "no legal move"
	ErrInvalidConfig Error = "invalid configuration"
	ErrInvalidBoard  Error = "invalid board"
	ErrGameOver      Error = "game is over"
	ErrNotYourTurn   Error = "not your turn"
)
