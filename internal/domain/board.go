package domain

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// NoRow is returned by LandingRow when the column has no empty cell.
const NoRow = -1

// Board is a rows x columns grid. Row 0 is the top; pieces settle toward
// the highest row index.
type Board struct {
	rows    int
	columns int
	cells   [][]PlayerID
}

func NewBoard(rows, columns int) (*Board, error) {
	if rows < 1 || columns < 1 {
		return nil, ErrInvalidDimensions
	}

	cells := make([][]PlayerID, rows)
	for i := range cells {
		cells[i] = make([]PlayerID, columns)
	}
	return &Board{rows: rows, columns: columns, cells: cells}, nil
}

func (b *Board) Rows() int    { return b.rows }
func (b *Board) Columns() int { return b.columns }

// Cell returns the occupant of (row, column), Empty if none.
func (b *Board) Cell(row, column int) (PlayerID, error) {
	if column < 0 || column >= b.columns {
		return Empty, ErrInvalidColumn
	}
	if row < 0 || row >= b.rows {
		return Empty, ErrInvalidRow
	}
	return b.cells[row][column], nil
}

// LandingRow scans the column bottom-up and returns the first empty row,
// or NoRow when the column is full.
func (b *Board) LandingRow(column int) (int, error) {
	if column < 0 || column >= b.columns {
		return NoRow, ErrInvalidColumn
	}

	for row := b.rows - 1; row >= 0; row-- {
		if b.cells[row][column] == Empty {
			return row, nil
		}
	}
	return NoRow, nil
}

// Place sets the cell. The caller must have obtained row from LandingRow.
func (b *Board) Place(row, column int, player PlayerID) {
	b.cells[row][column] = player
}

func (b *Board) IsFull() bool {
	return lo.EveryBy(b.cells, func(row []PlayerID) bool {
		return !lo.Contains(row, Empty)
	})
}

// Grid returns a deep copy as plain ints, the shape renderers and the wire
// format expect.
func (b *Board) Grid() [][]int {
	grid := make([][]int, b.rows)
	for i := range b.cells {
		grid[i] = lo.Map(b.cells[i], func(p PlayerID, _ int) int { return int(p) })
	}
	return grid
}

// String draws the board for terminals.
func (b *Board) String() string {
	return FormatGrid(b.Grid())
}

// FormatGrid draws rows top to bottom: '.' for empty, the player digit
// otherwise, and a column index footer.
func FormatGrid(grid [][]int) string {
	if len(grid) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, row := range grid {
		for x, cell := range row {
			if x > 0 {
				sb.WriteByte(' ')
			}
			if cell == int(Empty) {
				sb.WriteByte('.')
			} else {
				sb.WriteString(strconv.Itoa(cell))
			}
		}
		sb.WriteByte('\n')
	}
	for x := range grid[0] {
		if x > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(x % 10))
	}
	sb.WriteByte('\n')
	return sb.String()
}
