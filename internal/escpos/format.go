package escpos

import (
	"fmt"
	"strconv"
	"time"
)

// amount renders a monetary value with exactly two decimal digits.
func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// rate renders a percentage without trailing zeros.
func rate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Field widths count code points, not UTF-8 bytes: the builder emits one
// byte per code point, so rune counts are what lines up on paper.

// padRight truncates or space-pads s to exactly width characters.
func padRight(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s + stringOf(' ', width-len(r))
}

// padLeft right-justifies s in a field of exactly width characters.
func padLeft(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return stringOf(' ', width-len(r)) + s
}

// truncate clips s to at most n characters.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

// formatDate renders a payload timestamp for printing. RFC3339 and the
// plain "2006-01-02 15:04:05" form are recognized; anything else is
// printed as received so a malformed date never drops the receipt.
func formatDate(s string) string {
	if s == "" {
		return time.Now().Format("2006-01-02 15:04")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02 15:04")
		}
	}
	return s
}

// itemRow renders one invoice table row: quantity left-aligned in 4
// columns, product name in 18, line total right-aligned in 10.
func itemRow(quantity int, name string, subtotal float64) string {
	qty := padRight(fmt.Sprintf("%dx", quantity), 4)
	return qty + padRight(name, 18) + padLeft(amount(subtotal), 10)
}
