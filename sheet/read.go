package sheet

import (
	"fmt"
	"strings"

	"github.com/tealeg/xlsx/v3"
)

// Read прочитать xlsx. Все листы идут подряд, диапазоны объединения
// сдвигаются на количество строк предыдущих листов.
func Read(data []byte) (*Grid, error) {
	wb, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}

	grid := &Grid{}
	for _, sh := range wb.Sheets {
		if err := readSheet(grid, sh); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sh.Name, err)
		}
	}
	return grid, nil
}

func readSheet(grid *Grid, sh *xlsx.Sheet) error {
	offset := len(grid.Rows)

	for r := 0; r < sh.MaxRow; r++ {
		row := make([]string, sh.MaxCol)
		borders := make([]Border, sh.MaxCol)

		for c := 0; c < sh.MaxCol; c++ {
			cell, err := sh.Cell(r, c)
			if err != nil {
				return err
			}

			row[c] = cleanCell(cell.String())
			borders[c] = borderOf(cell.GetStyle())

			if cell.HMerge > 0 || cell.VMerge > 0 {
				grid.Merges = append(grid.Merges, Range{
					StartRow: offset + r,
					StartCol: c,
					EndRow:   offset + r + cell.VMerge,
					EndCol:   c + cell.HMerge,
				})
			}
		}

		grid.Rows = append(grid.Rows, row)
		grid.Borders = append(grid.Borders, borders)
	}
	return nil
}

// Конвертер иногда оставляет BOM и \r
func cleanCell(s string) string {
	s = strings.ReplaceAll(s, "\ufeff", "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(s)
}

func borderOf(style *xlsx.Style) Border {
	if style == nil {
		return Border{}
	}
	return Border{
		Top:    hasLine(style.Border.Top),
		Bottom: hasLine(style.Border.Bottom),
		Left:   hasLine(style.Border.Left),
		Right:  hasLine(style.Border.Right),
	}
}

func hasLine(s string) bool {
	return s != "" && s != "none"
}
