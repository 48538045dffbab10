package slot

// Display colors are derived from state, never chosen by a user.
type Color string

const (
	ColorNeutral  Color = ""
	ColorReserved Color = "green"
	ColorOverride Color = "orange"
)

func (c Color) String() string {
	return string(c)
}

const (
	// ColumnsPerRow is the fixed width of the board grid.
	ColumnsPerRow = 4
)
