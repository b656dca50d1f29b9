package bot

import (
	"fmt"

	"github.com/iamasit07/connect4-negamax/internal/domain"
)

const (
	// TerminalLossScore is the value of a lost game for the side that lost.
	// Heuristic scores stay below MaxHeuristicScore so they never reach it.
	TerminalLossScore = 1000000
	MaxHeuristicScore = TerminalLossScore / 10

	// window weights, by how many cells of a window are still missing
	missingOneWeight = 500
	missingTwoWeight = 50
	centerWeight     = 20
)

const (
	EvaluatorWinLoss    = "winloss"
	EvaluatorPositional = "positional"
)

// Evaluator scores a board from perspective's point of view: negative is
// bad for perspective. Score(b, p) must equal -Score(b, p.Opponent()).
type Evaluator interface {
	Score(board *domain.Board, perspective domain.PlayerID) int
	Name() string
}

func NewEvaluator(name string) (Evaluator, error) {
	switch name {
	case "", EvaluatorWinLoss:
		return WinLossEvaluator{}, nil
	case EvaluatorPositional:
		return PositionalEvaluator{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown evaluator %q", domain.ErrInvalidConfig, name)
	}
}

// decided returns the terminal score when exactly one side has a line.
func decided(board *domain.Board, perspective domain.PlayerID) (int, bool) {
	won := domain.HasWon(board, perspective)
	lost := domain.HasWon(board, perspective.Opponent())
	switch {
	case lost && !won:
		return -TerminalLossScore, true
	case won && !lost:
		return TerminalLossScore, true
	default:
		return 0, false
	}
}

// WinLossEvaluator knows only decided games. Draws and undecided cutoffs are both 0.
type WinLossEvaluator struct{}

func (WinLossEvaluator) Name() string { return EvaluatorWinLoss }

func (WinLossEvaluator) Score(board *domain.Board, perspective domain.PlayerID) int {
	score, _ := decided(board, perspective)
	return score
}

// PositionalEvaluator adds open-window counting and a centre bonus on top of
// win/loss detection.
type PositionalEvaluator struct{}

func (PositionalEvaluator) Name() string { return EvaluatorPositional }

func (PositionalEvaluator) Score(board *domain.Board, perspective domain.PlayerID) int {
	if score, ok := decided(board, perspective); ok {
		return score
	}

	opponent := perspective.Opponent()
	score := evaluateWindows(board, perspective) - evaluateWindows(board, opponent)

	// centre columns take part in the most lines
	for _, col := range centerColumns(board.Width()) {
		for row := 0; row < board.Height(); row++ {
			switch board.Cell(row, col) {
			case perspective:
				score += centerWeight
			case opponent:
				score -= centerWeight
			}
		}
	}

	return clamp(score, -MaxHeuristicScore, MaxHeuristicScore)
}

// evaluateWindows sums every WinLength window that holds discs of player and
// nothing of the opponent.
func evaluateWindows(board *domain.Board, player domain.PlayerID) int {
	n := board.WinLength()
	directions := [][2]int{
		{0, 1},  // horizontal
		{1, 0},  // vertical
		{1, 1},  // diagonal /
		{-1, 1}, // diagonal \
	}

	score := 0
	for row := 0; row < board.Height(); row++ {
		for col := 0; col < board.Width(); col++ {
			for _, dir := range directions {
				endRow, endCol := row+dir[0]*(n-1), col+dir[1]*(n-1)
				if endRow < 0 || endRow >= board.Height() || endCol >= board.Width() {
					continue
				}
				own, blocked := 0, false
				for i := 0; i < n; i++ {
					switch board.Cell(row+dir[0]*i, col+dir[1]*i) {
					case player:
						own++
					case domain.Empty:
					default:
						blocked = true
					}
				}
				if blocked || own == 0 {
					continue
				}
				switch n - own {
				case 1:
					score += missingOneWeight
				case 2:
					score += missingTwoWeight
				}
			}
		}
	}
	return score
}

func centerColumns(width int) []int {
	if width%2 == 1 {
		return []int{width / 2}
	}
	return []int{width/2 - 1, width / 2}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
