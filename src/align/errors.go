package align

import "fmt"

// AlignmentBreakError is returned when no indexed substring starts at a query position,
// so the query can't be tiled from the reference on either strand
type AlignmentBreakError struct {
	Position int
}

// Error satisfies the error interface
func (e *AlignmentBreakError) Error() string {
	return fmt.Sprintf("alignment break: no match found at position %d", e.Position)
}
