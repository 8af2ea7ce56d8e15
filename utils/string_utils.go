package utils

import (
	"strings"
)

// SplitLines разбить по \n, убрать пробелы по краям (пустые строки остаются)
func SplitLines(s string) []string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}
