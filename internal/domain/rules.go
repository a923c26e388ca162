package domain

// runDirections are the four ways a run can extend from its anchor cell:
// right, down, down-right, down-left. Anchoring every run at its first cell
// in scan order means no run is examined backwards.
var runDirections = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// HasWin reports whether player owns ToWin consecutive cells in any
// direction. It scans every cell in row-major order and does not mutate
// the board.
func HasWin(board *Board, player PlayerID) bool {
	if !player.Valid() {
		return false
	}

	for y := 0; y < board.rows; y++ {
		for x := 0; x < board.columns; x++ {
			for _, d := range runDirections {
				if board.isRun(y, x, d[0], d[1], player) {
					return true
				}
			}
		}
	}
	return false
}

// isRun checks the ToWin cells starting at (y, x) stepping by (dy, dx).
func (b *Board) isRun(y, x, dy, dx int, player PlayerID) bool {
	for i := 0; i < ToWin; i++ {
		r, c := y+i*dy, x+i*dx
		if r < 0 || r >= b.rows || c < 0 || c >= b.columns {
			return false
		}
		if b.cells[r][c] != player {
			return false
		}
	}
	return true
}
