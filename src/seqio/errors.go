package seqio

import (
	"fmt"
	"strings"
)

// InvalidSymbolError is returned when a character outside of A/C/G/T is found in a sequence
type InvalidSymbolError struct {
	Name     string // the sequence the symbol came from, may be empty
	Symbol   byte
	Position int // 0-based position of the symbol, -1 if unknown
}

// Lowercase reports whether the offending symbol is the lowercase form of a valid base
func (e *InvalidSymbolError) Lowercase() bool {
	return e.Symbol >= 'a' && e.Symbol <= 'z' && hashCodes[e.Symbol-'a'+'A'] != 0
}

// Error satisfies the error interface
func (e *InvalidSymbolError) Error() string {
	var msg strings.Builder
	if e.Name != "" {
		msg.WriteString(e.Name + " contains invalid character")
	} else {
		msg.WriteString("invalid DNA character")
	}
	fmt.Fprintf(&msg, ": '%c'", e.Symbol)
	if e.Position >= 0 {
		fmt.Fprintf(&msg, " at position %d", e.Position)
	}
	msg.WriteString(". Only A/T/C/G allowed")
	if e.Lowercase() {
		msg.WriteString(" (detected lowercase, convert to uppercase before aligning)")
	}
	return msg.String()
}
