package textutil

// CellWidth is the number of columns rune r occupies when drawn at column
// after sanitising. Tabs advance to the next tab stop.
func CellWidth(r rune, column, tabWidth int) int {
	if r == '\t' {
		return TabAdvance(column, tabWidth)
	}
	if isFormattingRune(r) {
		return DisplayWidth(formattingRuneLabels[r])
	}
	if r < 0x20 || r == 0x7f {
		return 1
	}
	return RuneWidth(r)
}

// WrapOffsets returns the rune offsets at which each visual row of line
// starts when wrapped to width columns. The first entry is always 0.
func WrapOffsets(line []rune, width, tabWidth int) []int {
	rows := []int{0}
	if width <= 0 {
		return rows
	}
	column := 0
	for i, r := range line {
		w := CellWidth(r, column, tabWidth)
		if column > 0 && column+w > width {
			rows = append(rows, i)
			column = 0
			w = CellWidth(r, column, tabWidth)
		}
		column += w
	}
	return rows
}

// WrappedRowCount reports how many rows text occupies when each of its
// lines is wrapped to width columns.
func WrappedRowCount(lines []string, width, tabWidth int) int {
	total := 0
	for _, line := range lines {
		total += len(WrapOffsets([]rune(line), width, tabWidth))
	}
	return total
}
