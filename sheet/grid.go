// Package sheet читает таблицу, полученную из PDF, и склеивает строки и
// столбцы, которые конвертер разбил на несколько физических.
package sheet

// Range прямоугольник объединённых ячеек (включительно)
type Range struct {
	StartRow, StartCol int
	EndRow, EndCol     int
}

// Border есть ли у ячейки линия с каждой стороны
type Border struct {
	Top, Bottom, Left, Right bool
}

// RowBorder линии первой ячейки строки
type RowBorder struct {
	Row         int
	Top, Bottom bool
}

// Grid таблица строк с метаданными объединения
type Grid struct {
	Rows    [][]string
	Merges  []Range
	Borders [][]Border // Параллельно Rows, может быть nil
}

// RowBorders линии первого столбца каждой строки
func (g *Grid) RowBorders() []RowBorder {
	if g.Borders == nil {
		return nil
	}
	ret := make([]RowBorder, len(g.Borders))
	for i, row := range g.Borders {
		ret[i].Row = i
		if len(row) > 0 {
			ret[i].Top = row[0].Top
			ret[i].Bottom = row[0].Bottom
		}
	}
	return ret
}

// Options как склеивать таблицу конкретного источника
type Options struct {
	MergeRows bool

	// Склеивать столбцы в строках [FromRow, ToRow). Отрицательный ToRow
	// считается от конца таблицы.
	MergeColumns   bool
	FromRow, ToRow int
}

// Normalize применить склейку столбцов, потом строк
func (g *Grid) Normalize(opts Options) [][]string {
	rows := g.Rows
	if opts.MergeColumns {
		rows = MergeColumns(rows, g.Merges, g.Borders, opts.FromRow, opts.ToRow)
	}
	if opts.MergeRows {
		rows = MergeRows(rows, g.Merges, g.RowBorders())
	}
	return rows
}
