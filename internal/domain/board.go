package domain

import (
	"fmt"
	"strings"
)

// Board is a Connect-Four grid. Row 0 is the bottom row and discs stack
// upwards, so a cell above an empty cell is always empty.
type Board struct {
	rows      int
	columns   int
	winLength int
	cells     []PlayerID // row-major, rows*columns
	heights   []int      // discs per column
	moves     int
}

func NewBoard(rows, columns, winLength int) (*Board, error) {
	if rows < 1 || columns < 1 {
		return nil, fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfig, rows, columns)
	}
	if winLength < 1 || (winLength > rows && winLength > columns) {
		return nil, fmt.Errorf("%w: win length %d does not fit a %dx%d board", ErrInvalidConfig, winLength, rows, columns)
	}

	return &Board{
		rows:      rows,
		columns:   columns,
		winLength: winLength,
		cells:     make([]PlayerID, rows*columns),
		heights:   make([]int, columns),
	}, nil
}

// NewStandardBoard returns the classic 6x7 board with four to win.
func NewStandardBoard() *Board {
	b, _ := NewBoard(StandardRows, StandardColumns, StandardWinLength)
	return b
}

// ParseBoard builds a board from text rows listed top row first, the same
// layout String produces. '.' is empty, 'O' is Player1 and 'X' is Player2.
func ParseBoard(winLength int, rows ...string) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidBoard)
	}
	columns := len(rows[0])

	b, err := NewBoard(len(rows), columns, winLength)
	if err != nil {
		return nil, err
	}

	for i, line := range rows {
		if len(line) != columns {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, i, len(line), columns)
		}
		row := len(rows) - 1 - i
		for col := 0; col < columns; col++ {
			var p PlayerID
			switch line[col] {
			case glyphEmpty:
				p = Empty
			case glyphPlayer1:
				p = Player1
			case glyphPlayer2:
				p = Player2
			default:
				return nil, fmt.Errorf("%w: unknown cell %q at row %d", ErrInvalidBoard, line[col], i)
			}
			b.cells[b.index(row, col)] = p
		}
	}

	// heights are derived bottom up; a disc above a gap breaks gravity
	for col := 0; col < columns; col++ {
		h := 0
		for h < b.rows && b.cells[b.index(h, col)] != Empty {
			h++
		}
		for r := h; r < b.rows; r++ {
			if b.cells[b.index(r, col)] != Empty {
				return nil, fmt.Errorf("%w: floating disc in column %d", ErrInvalidBoard, col)
			}
		}
		b.heights[col] = h
		b.moves += h
	}

	return b, nil
}

func (b *Board) index(row, col int) int {
	return row*b.columns + col
}

func (b *Board) Height() int    { return b.rows }
func (b *Board) Width() int     { return b.columns }
func (b *Board) WinLength() int { return b.winLength }
func (b *Board) MoveCount() int { return b.moves }

// Cell returns the occupant of (row, col); anything off the board reads as Empty.
func (b *Board) Cell(row, col int) PlayerID {
	if row < 0 || row >= b.rows || col < 0 || col >= b.columns {
		return Empty
	}
	return b.cells[b.index(row, col)]
}

func (b *Board) IsValidMove(column int) bool {
	return column >= 0 && column < b.columns && b.heights[column] < b.rows
}

// LandingRow reports the row a disc dropped in column would occupy.
func (b *Board) LandingRow(column int) (int, bool) {
	if !b.IsValidMove(column) {
		return -1, false
	}
	return b.heights[column], true
}

// Apply drops a disc for player into column and returns the row it landed in.
// On error the board is left untouched.
func (b *Board) Apply(column int, player PlayerID) (int, error) {
	if !player.IsPlayer() {
		return -1, fmt.Errorf("%w: %s cannot move", ErrInvalidMove, player)
	}
	if column < 0 || column >= b.columns {
		return -1, fmt.Errorf("%w: column %d out of range [0,%d)", ErrInvalidMove, column, b.columns)
	}
	row := b.heights[column]
	if row >= b.rows {
		return -1, fmt.Errorf("%w: %w (column %d)", ErrInvalidMove, ErrColumnFull, column)
	}

	b.cells[b.index(row, column)] = player
	b.heights[column]++
	b.moves++
	return row, nil
}

// Undo lifts the top disc out of column.
func (b *Board) Undo(column int) error {
	if column < 0 || column >= b.columns {
		return fmt.Errorf("%w: column %d out of range [0,%d)", ErrInvalidMove, column, b.columns)
	}
	if b.heights[column] == 0 {
		return fmt.Errorf("%w: column %d is empty", ErrInvalidMove, column)
	}

	b.heights[column]--
	b.cells[b.index(b.heights[column], column)] = Empty
	b.moves--
	return nil
}

func (b *Board) IsFull() bool {
	for _, h := range b.heights {
		if h < b.rows {
			return false
		}
	}
	return true
}

// Clone creates a deep copy of the board
func (b *Board) Clone() *Board {
	c := *b
	c.cells = make([]PlayerID, len(b.cells))
	copy(c.cells, b.cells)
	c.heights = make([]int, len(b.heights))
	copy(c.heights, b.heights)
	return &c
}

// Key identifies the position, board shape included.
func (b *Board) Key() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%dx%dw%d:", b.rows, b.columns, b.winLength)
	for _, c := range b.cells {
		sb.WriteByte(byte('0' + c))
	}
	return sb.String()
}

// Rows returns the cells as plain ints, bottom row first.
func (b *Board) Rows() [][]int {
	out := make([][]int, b.rows)
	for r := 0; r < b.rows; r++ {
		out[r] = make([]int, b.columns)
		for c := 0; c < b.columns; c++ {
			out[r][c] = int(b.cells[b.index(r, c)])
		}
	}
	return out
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := b.rows - 1; r >= 0; r-- {
		for c := 0; c < b.columns; c++ {
			switch b.cells[b.index(r, c)] {
			case Player1:
				sb.WriteByte(glyphPlayer1)
			case Player2:
				sb.WriteByte(glyphPlayer2)
			default:
				sb.WriteByte(glyphEmpty)
			}
		}
		if r > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
