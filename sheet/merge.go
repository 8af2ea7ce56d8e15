package sheet

import "strings"

// MergeRows склеить строки, которые являются одной логической строкой.
//
// Источники: диапазоны объединения (merges) и линии первого столбца (borders).
// Серия по линиям начинается со строки с верхней линией без нижней и
// заканчивается перед следующей верхней линией, либо на строке с нижней.
// Серии из одной строки и незакрытые серии игнорируются. Значения столбцов
// склеиваются через \n.
func MergeRows(rows [][]string, merges []Range, borders []RowBorder) [][]string {
	runs := map[int]int{}
	extend := func(start, end int) {
		// Битые диапазоны просто пропускаем
		if start < 0 || end <= start {
			return
		}
		if cur, ok := runs[start]; !ok || end > cur {
			runs[start] = end
		}
	}

	for _, m := range merges {
		extend(m.StartRow, m.EndRow)
	}

	for i := 0; i < len(borders); i++ {
		if !borders[i].Top || borders[i].Bottom {
			continue
		}

		end := -1
		for j := i + 1; j < len(borders); j++ {
			if borders[j].Top {
				end = j - 1
				break
			}
			if borders[j].Bottom {
				end = j
				break
			}
		}

		if end > i {
			extend(borders[i].Row, borders[end].Row)
			// Следующая серия может начинаться сразу после этой
			i = end
		}
	}

	merged := make([][]string, 0, len(rows))
	for i := 0; i < len(rows); i++ {
		row := append([]string(nil), rows[i]...)
		end, ok := runs[i]
		if !ok {
			merged = append(merged, row)
			continue
		}

		for i < end && i+1 < len(rows) {
			i++
			// Диапазон, начинающийся внутри серии, продлевает её
			if next, ok := runs[i]; ok && next > end {
				end = next
			}
			row = joinRows(row, rows[i])
		}
		merged = append(merged, row)
	}

	return merged
}

func joinRows(a, b []string) []string {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	ret := make([]string, n)
	for k := 0; k < n; k++ {
		ret[k] = strings.TrimSpace(cellAt(a, k) + "\n" + cellAt(b, k))
	}
	return ret
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

type cellKey struct{ row, col int }

// MergeColumns склеить горизонтально объединённые ячейки в строках
// [fromRow, toRow) через пробел. Строка при этом становится короче.
func MergeColumns(rows [][]string, merges []Range, borders [][]Border, fromRow, toRow int) [][]string {
	if toRow < 0 {
		toRow += len(rows)
	}

	runs := map[cellKey]int{}
	extend := func(key cellKey, end int) {
		if end <= key.col {
			return
		}
		if cur, ok := runs[key]; !ok || end > cur {
			runs[key] = end
		}
	}

	for _, m := range merges {
		if m.StartRow < fromRow || m.EndRow >= toRow {
			continue
		}
		// Объединение на несколько строк схлопываем в каждой из них,
		// иначе столбцы разъедутся при склейке строк
		for r := m.StartRow; r <= m.EndRow; r++ {
			extend(cellKey{r, m.StartCol}, m.EndCol)
		}
	}

	for i := fromRow; i < toRow && i < len(borders); i++ {
		row := borders[i]
		for j := 0; j < len(row); j++ {
			if !row[j].Left || row[j].Right {
				continue
			}

			end := -1
			for k := j + 1; k < len(row); k++ {
				if row[k].Left {
					end = k - 1
					break
				}
				if row[k].Right {
					end = k
					break
				}
			}

			if end > j {
				extend(cellKey{i, j}, end)
				j = end
			}
		}
	}

	merged := make([][]string, 0, len(rows))
	for i, row := range rows {
		newRow := make([]string, 0, len(row))
		for j := 0; j < len(row); j++ {
			cell := row[j]
			end, ok := runs[cellKey{i, j}]
			for ok && j < end && j+1 < len(row) {
				j++
				cell = strings.TrimRight(cell+" "+row[j], " ")
			}
			newRow = append(newRow, cell)
		}
		merged = append(merged, newRow)
	}

	return merged
}
