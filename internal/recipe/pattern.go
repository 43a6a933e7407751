package recipe

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/hammamikhairi/ottocraft/internal/domain"
)

// Blank is the pattern character for a cell that must stay empty.
const Blank = ' '

// MaxPatternSize bounds both pattern dimensions.
const MaxPatternSize = 3

// Pattern is the shape of a shaped recipe: 1 to 3 rows of 1 to 3
// characters, all rows the same length.
type Pattern []string

// Validate checks the pattern's dimensions.
func (p Pattern) Validate() error {
	if len(p) == 0 {
		return domain.ErrPatternRequired
	}
	if len(p) > MaxPatternSize {
		return fmt.Errorf("%w: %d rows, at most %d allowed", domain.ErrInvalidPattern, len(p), MaxPatternSize)
	}
	width := utf8.RuneCountInString(p[0])
	for i, row := range p {
		n := utf8.RuneCountInString(row)
		if n == 0 || n > MaxPatternSize {
			return fmt.Errorf("%w: row %d has %d columns, want 1 to %d", domain.ErrInvalidPattern, i+1, n, MaxPatternSize)
		}
		if n != width {
			return fmt.Errorf("%w: row %d has %d columns, row 1 has %d", domain.ErrInvalidPattern, i+1, n, width)
		}
	}
	return nil
}

// Rows returns the number of pattern rows.
func (p Pattern) Rows() int { return len(p) }

// Cols returns the number of pattern columns.
func (p Pattern) Cols() int {
	if len(p) == 0 {
		return 0
	}
	return utf8.RuneCountInString(p[0])
}

// Cell returns the character at row r, column c of the pattern padded to
// 3x3. Cells outside the declared rows and columns are Blank.
func (p Pattern) Cell(r, c int) rune {
	if r < 0 || r >= len(p) || c < 0 {
		return Blank
	}
	for i, ch := range []rune(p[r]) {
		if i == c {
			return ch
		}
	}
	return Blank
}

// Signs returns the distinct non-blank characters in row-major order.
func (p Pattern) Signs() []rune {
	var out []rune
	for _, row := range p {
		for _, ch := range row {
			if ch != Blank && !slices.Contains(out, ch) {
				out = append(out, ch)
			}
		}
	}
	return out
}
