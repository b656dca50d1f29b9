package bot

import (
	"errors"
	"testing"

	"github.com/iamasit07/connect4-negamax/internal/domain"
)

var drawSequence = []int{
	5, 3, 2, 3, 1, 5, 3, 1, 0, 1, 4, 1, 2, 5, 0, 5, 6, 6, 2, 0, 6,
	0, 4, 2, 3, 0, 3, 4, 2, 3, 2, 6, 0, 4, 1, 1, 5, 4, 4, 5, 6, 6,
}

// boardFromColumns plays columns on a standard board, Player1 first, and
// returns the board with the player to move.
func boardFromColumns(t *testing.T, columns ...int) (*domain.Board, domain.PlayerID) {
	t.Helper()
	b := domain.NewStandardBoard()
	player := domain.Player1
	for i, col := range columns {
		if _, err := b.Apply(col, player); err != nil {
			t.Fatalf("move %d (column %d) failed: %v", i, col, err)
		}
		player = player.Opponent()
	}
	return b, player
}

// exhaustive is plain negamax without pruning, used as the reference result.
func exhaustive(b *domain.Board, ev Evaluator, player domain.PlayerID, depth int, root bool, nodes *int) (int, int) {
	*nodes++
	if !root {
		if domain.HasWon(b, player.Opponent()) {
			return NoMove, -TerminalLossScore
		}
		if b.IsFull() {
			return NoMove, 0
		}
		if depth == 0 {
			return NoMove, ev.Score(b, player)
		}
	}

	bestMove, bestScore := NoMove, -Infinity
	for _, col := range domain.LegalMoves(b) {
		if _, err := b.Apply(col, player); err != nil {
			panic(err)
		}
		_, v := exhaustive(b, ev, player.Opponent(), depth-1, false, nodes)
		if err := b.Undo(col); err != nil {
			panic(err)
		}
		if -v > bestScore {
			bestMove, bestScore = col, -v
		}
	}
	return bestMove, bestScore
}

var midGames = [][]int{
	{3, 3, 4, 2, 2, 4, 5},
	{3, 2, 3, 3, 2, 4, 1, 4},
	{0, 6, 1, 5, 3, 3, 4, 2, 2},
	{3, 4, 4, 5, 5, 6, 2, 3, 5, 6},
	{2, 3, 2, 3, 4, 4, 1, 0, 6, 5, 5},
	{3, 3, 3, 3, 2, 4, 4, 2},
}

func TestImmediateWinAtDepthOne(t *testing.T) {
	// Player2 holds three in column 6 and is to move
	b, toMove := boardFromColumns(t, 0, 6, 0, 6, 1, 6, 5)
	if toMove != domain.Player2 {
		t.Fatalf("expected Player2 to move, got %s", toMove)
	}

	for _, ev := range []Evaluator{WinLossEvaluator{}, PositionalEvaluator{}} {
		result, err := NewEngine(ev).Search(b, toMove, 1)
		if err != nil {
			t.Fatalf("%s: search failed: %v", ev.Name(), err)
		}
		if result.Move != 6 {
			t.Fatalf("%s: expected winning column 6, got %d", ev.Name(), result.Move)
		}
		if result.Score != TerminalLossScore {
			t.Fatalf("%s: expected score %d, got %d", ev.Name(), TerminalLossScore, result.Score)
		}
	}
}

func TestBlocksOpponentThreat(t *testing.T) {
	// Player1 has three stacked in column 3
	b, toMove := boardFromColumns(t, 3, 0, 3, 1, 3)

	result, err := NewEngine(nil).Search(b, toMove, 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if result.Move != 3 {
		t.Fatalf("expected block in column 3, got %d (score %d)", result.Move, result.Score)
	}
}

func TestSearchIsDeterministic(t *testing.T) {
	b, toMove := boardFromColumns(t, midGames[1]...)
	engine := NewEngine(PositionalEvaluator{})

	first, err := engine.Search(b, toMove, 5)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := engine.Search(b, toMove, 5)
		if err != nil {
			t.Fatalf("search %d failed: %v", i, err)
		}
		if again != first {
			t.Fatalf("search %d returned %+v, first returned %+v", i, again, first)
		}
	}
}

func TestTiesKeepLowestColumn(t *testing.T) {
	// every reply scores 0 on an empty board at depth 1
	b := domain.NewStandardBoard()
	result, err := NewEngine(nil).Search(b, domain.Player1, 1)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if result.Move != 0 || result.Score != 0 {
		t.Fatalf("expected leftmost column with score 0, got %+v", result)
	}
}

func TestAlphaBetaMatchesExhaustiveSearch(t *testing.T) {
	for _, ev := range []Evaluator{WinLossEvaluator{}, PositionalEvaluator{}} {
		engine := NewEngine(ev)
		for i, moves := range midGames {
			b, toMove := boardFromColumns(t, moves...)
			for _, depth := range []int{3, 4} {
				var nodes int
				wantMove, wantScore := exhaustive(b.Clone(), ev, toMove, depth, true, &nodes)

				got, err := engine.Search(b, toMove, depth)
				if err != nil {
					t.Fatalf("%s board %d depth %d: search failed: %v", ev.Name(), i, depth, err)
				}
				if got.Move != wantMove || got.Score != wantScore {
					t.Fatalf("%s board %d depth %d: pruned (%d, %d) != exhaustive (%d, %d)\n%s",
						ev.Name(), i, depth, got.Move, got.Score, wantMove, wantScore, b)
				}
				if got.Stats.Nodes > nodes {
					t.Fatalf("%s board %d depth %d: pruning visited %d nodes, exhaustive %d",
						ev.Name(), i, depth, got.Stats.Nodes, nodes)
				}
			}
		}
	}
}

func TestPruningCutsNodes(t *testing.T) {
	b := domain.NewStandardBoard()
	var nodes int
	exhaustive(b.Clone(), WinLossEvaluator{}, domain.Player1, 5, true, &nodes)

	got, err := NewEngine(nil).Search(b, domain.Player1, 5)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if got.Stats.Cutoffs == 0 {
		t.Fatalf("expected at least one cutoff")
	}
	if got.Stats.Nodes >= nodes {
		t.Fatalf("expected fewer nodes than exhaustive %d, got %d", nodes, got.Stats.Nodes)
	}
}

func TestSearchLeavesBoardUntouched(t *testing.T) {
	b, toMove := boardFromColumns(t, midGames[3]...)
	before := b.Key()

	if _, err := NewEngine(PositionalEvaluator{}).Search(b, toMove, 4); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if b.Key() != before {
		t.Fatalf("search mutated the caller's board:\n%s", b)
	}
}

func TestSearchOnFullBoard(t *testing.T) {
	b, toMove := boardFromColumns(t, drawSequence...)

	result, err := NewEngine(nil).Search(b, toMove, 3)
	if !errors.Is(err, domain.ErrNoLegalMove) {
		t.Fatalf("expected ErrNoLegalMove, got %v", err)
	}
	if result.Move != NoMove {
		t.Fatalf("expected NoMove, got %d", result.Move)
	}
}

func TestSearchRejectsBadInput(t *testing.T) {
	b := domain.NewStandardBoard()
	engine := NewEngine(nil)

	for _, depth := range []int{0, -3} {
		if _, err := engine.Search(b, domain.Player1, depth); !errors.Is(err, domain.ErrInvalidConfig) {
			t.Fatalf("depth %d: expected ErrInvalidConfig, got %v", depth, err)
		}
	}
	if _, err := engine.Search(b, domain.Empty, 3); !errors.Is(err, domain.ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove for Empty, got %v", err)
	}
}
