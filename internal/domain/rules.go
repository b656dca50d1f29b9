package domain

// scan directions as (deltaRow, deltaCol): horizontal, vertical, diagonal /, diagonal \
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{-1, 1},
}

// LegalMoves lists the playable columns in ascending order. The slice is
// freshly allocated on every call and empty once the board is full.
func LegalMoves(b *Board) []int {
	moves := make([]int, 0, b.columns)
	for col := 0; col < b.columns; col++ {
		if b.heights[col] < b.rows {
			moves = append(moves, col)
		}
	}
	return moves
}

// HasWon reports whether player owns WinLength consecutive cells in any
// row, column or diagonal. It scans the whole board and never mutates it.
func HasWon(b *Board, player PlayerID) bool {
	if !player.IsPlayer() {
		return false
	}

	n := b.winLength
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.columns; col++ {
			if b.cells[b.index(row, col)] != player {
				continue
			}
			for _, d := range directions {
				endRow := row + d[0]*(n-1)
				endCol := col + d[1]*(n-1)
				if endRow < 0 || endRow >= b.rows || endCol >= b.columns {
					continue
				}
				if countRun(b, row, col, d[0], d[1], player, n) == n {
					return true
				}
			}
		}
	}
	return false
}

// countRun counts consecutive cells of player starting at (row, col), stopping at limit.
func countRun(b *Board, row, col, deltaRow, deltaCol int, player PlayerID, limit int) int {
	count := 0
	for count < limit && b.Cell(row, col) == player {
		count++
		row += deltaRow
		col += deltaCol
	}
	return count
}

func IsTerminal(b *Board) bool {
	return HasWon(b, Player1) || HasWon(b, Player2) || b.IsFull()
}

// OutcomeOf derives the game outcome from the board alone.
func OutcomeOf(b *Board) Outcome {
	switch {
	case HasWon(b, Player1):
		return Player1Wins
	case HasWon(b, Player2):
		return Player2Wins
	case b.IsFull():
		return Draw
	default:
		return InProgress
	}
}
