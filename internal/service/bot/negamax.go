package bot

import (
	"fmt"
	"math"

	"github.com/iamasit07/connect4-negamax/internal/domain"
)

const (
	// Infinity bounds the root window; negating it cannot overflow.
	Infinity = math.MaxInt32
	NoMove   = -1
)

type Stats struct {
	Nodes   int `json:"nodes"`
	Cutoffs int `json:"cutoffs"`
}

// Result is the engine's choice for the player to move. Score is from that
// player's perspective.
type Result struct {
	Move   int   `json:"move"`
	Score  int   `json:"score"`
	Depth  int   `json:"depth"`
	Stats  Stats `json:"stats"`
	Cached bool  `json:"cached,omitempty"`
}

// Engine is a Negamax search with alpha-beta pruning. It keeps no state
// between calls, so one Engine can serve any number of boards.
type Engine struct {
	evaluator Evaluator
}

func NewEngine(evaluator Evaluator) *Engine {
	if evaluator == nil {
		evaluator = WinLossEvaluator{}
	}
	return &Engine{evaluator: evaluator}
}

func (e *Engine) Evaluator() Evaluator {
	return e.evaluator
}

// Search picks the best column for player looking depth plies ahead. The
// board passed in is never modified.
func (e *Engine) Search(board *domain.Board, player domain.PlayerID, depth int) (Result, error) {
	if depth < 1 {
		return Result{Move: NoMove}, fmt.Errorf("%w: search depth must be positive, got %d", domain.ErrInvalidConfig, depth)
	}
	if !player.IsPlayer() {
		return Result{Move: NoMove}, fmt.Errorf("%w: %s cannot move", domain.ErrInvalidMove, player)
	}
	if len(domain.LegalMoves(board)) == 0 {
		return Result{Move: NoMove}, domain.ErrNoLegalMove
	}

	s := &search{board: board.Clone(), evaluator: e.evaluator}
	s.stats.Nodes++
	move, score := s.expand(player, depth, -Infinity, Infinity)

	return Result{Move: move, Score: score, Depth: depth, Stats: s.stats}, nil
}

// search is the state of one Search call. board is a private clone that
// every branch mutates and restores.
type search struct {
	board     *domain.Board
	evaluator Evaluator
	stats     Stats
}

func (s *search) negamax(player domain.PlayerID, depth, alpha, beta int) int {
	s.stats.Nodes++

	// the previous mover may have just completed a line
	if domain.HasWon(s.board, player.Opponent()) {
		return -TerminalLossScore
	}
	if s.board.IsFull() {
		return 0
	}
	if depth == 0 {
		return s.evaluator.Score(s.board, player)
	}

	_, score := s.expand(player, depth, alpha, beta)
	return score
}

// expand tries every legal move in ascending column order. Ties keep the
// earlier column because only a strictly better score replaces the best.
func (s *search) expand(player domain.PlayerID, depth, alpha, beta int) (int, int) {
	bestMove, bestScore := NoMove, -Infinity

	for _, col := range domain.LegalMoves(s.board) {
		score, ok := s.try(col, player, depth, alpha, beta)
		if !ok {
			continue
		}
		if score > bestScore {
			bestMove, bestScore = col, score
		}

		alpha = max(alpha, bestScore)
		if alpha >= beta {
			s.stats.Cutoffs++
			break
		}
	}

	return bestMove, bestScore
}

// try plays col, scores the reply from the opponent's side and takes the move back.
func (s *search) try(col int, player domain.PlayerID, depth, alpha, beta int) (int, bool) {
	if _, err := s.board.Apply(col, player); err != nil {
		return 0, false
	}
	defer s.board.Undo(col)

	return -s.negamax(player.Opponent(), depth-1, -beta, -alpha), true
}
