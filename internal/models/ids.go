package models

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// FormatSequenceID renders ids such as TXN001 or BILL012.
func FormatSequenceID(prefix string, n int) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

// SequenceNumber extracts the numeric part of an id; ids without digits yield 0.
func SequenceNumber(id string) int {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, id)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// NextSequence returns one past the highest sequence number among ids.
func NextSequence(ids []string) int {
	highest := 0
	for _, id := range ids {
		if n := SequenceNumber(id); n > highest {
			highest = n
		}
	}
	return highest + 1
}
