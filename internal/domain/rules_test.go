package domain

import (
	"reflect"
	"testing"
)

// drawSequence fills a 6x7 board without either side ever connecting four.
var drawSequence = []int{
	5, 3, 2, 3, 1, 5, 3, 1, 0, 1, 4, 1, 2, 5, 0, 5, 6, 6, 2, 0, 6,
	0, 4, 2, 3, 0, 3, 4, 2, 3, 2, 6, 0, 4, 1, 1, 5, 4, 4, 5, 6, 6,
}

// placeRun writes length discs for player straight into the grid. HasWon is a
// pure scan, so gravity is irrelevant here.
func placeRun(b *Board, player PlayerID, row, col, deltaRow, deltaCol, length int) {
	for i := 0; i < length; i++ {
		b.cells[b.index(row+deltaRow*i, col+deltaCol*i)] = player
	}
}

func TestHasWonRunLengths(t *testing.T) {
	starts := []struct {
		name     string
		row, col int
		dr, dc   int
	}{
		{"horizontal", 0, 0, 0, 1},
		{"vertical", 0, 6, 1, 0},
		{"diagonal up", 0, 1, 1, 1},
		{"diagonal down", 5, 2, -1, 1},
	}

	for _, s := range starts {
		for _, length := range []int{StandardWinLength - 1, StandardWinLength, StandardWinLength + 1} {
			b := NewStandardBoard()
			placeRun(b, Player2, s.row, s.col, s.dr, s.dc, length)

			want := length >= StandardWinLength
			if got := HasWon(b, Player2); got != want {
				t.Fatalf("%s run of %d: HasWon = %v, want %v\n%s", s.name, length, got, want, b)
			}
			if HasWon(b, Player1) {
				t.Fatalf("%s run of %d: Player1 must not win\n%s", s.name, length, b)
			}
		}
	}
}

func TestHasWonBrokenRun(t *testing.T) {
	b, err := ParseBoard(4,
		".......",
		".......",
		".......",
		".......",
		"XXX.XXX",
		"OOOXOOO",
	)
	if err != nil {
		t.Fatalf("ParseBoard failed: %v", err)
	}
	if HasWon(b, Player1) || HasWon(b, Player2) {
		t.Fatalf("interrupted runs must not win:\n%s", b)
	}
	if HasWon(b, Empty) {
		t.Fatalf("Empty never wins")
	}
}

func TestHasWonCustomWinLength(t *testing.T) {
	b, err := NewBoard(4, 5, 3)
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}
	playColumns(t, b, 0, 0, 1, 1)
	if HasWon(b, Player1) {
		t.Fatalf("two in a row is not a win with win length 3")
	}
	playColumns(t, b, 2)
	if !HasWon(b, Player1) {
		t.Fatalf("expected three in a row to win:\n%s", b)
	}
}

func TestLegalMovesAscendingAndFresh(t *testing.T) {
	b := NewStandardBoard()
	playColumns(t, b, 2, 2, 2, 2, 2, 2, 5, 5, 5, 5, 5, 5)

	want := []int{0, 1, 3, 4, 6}
	got := LegalMoves(b)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected legal moves %v, got %v", want, got)
	}

	got[0] = 42
	if again := LegalMoves(b); !reflect.DeepEqual(again, want) {
		t.Fatalf("legal moves must be recomputed per call, got %v", again)
	}
}

func TestVerticalFourWins(t *testing.T) {
	b := NewStandardBoard()
	// Player1 stacks column 3, Player2 never blocks
	playColumns(t, b, 3, 0, 3, 0, 3, 0)
	if IsTerminal(b) {
		t.Fatalf("three in a column is not terminal")
	}
	playColumns(t, b, 3)
	if !HasWon(b, Player1) {
		t.Fatalf("expected Player1 to win:\n%s", b)
	}
	if OutcomeOf(b) != Player1Wins {
		t.Fatalf("expected Player1Wins, got %s", OutcomeOf(b))
	}
}

func TestFullBoardWithoutLineIsDraw(t *testing.T) {
	b := NewStandardBoard()
	playColumns(t, b, drawSequence...)

	if !b.IsFull() {
		t.Fatalf("expected a full board:\n%s", b)
	}
	if HasWon(b, Player1) || HasWon(b, Player2) {
		t.Fatalf("draw board must not contain a line:\n%s", b)
	}
	if len(LegalMoves(b)) != 0 {
		t.Fatalf("a full board has no legal moves")
	}
	if !IsTerminal(b) {
		t.Fatalf("a full board is terminal")
	}
	if OutcomeOf(b) != Draw {
		t.Fatalf("expected Draw, got %s", OutcomeOf(b))
	}
}
