package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeRowsByRanges(t *testing.T) {
	rows := [][]string{
		{"header"},
		{"123456", "Cálculo", "[T] Lu 1"},
		{"", "I", "2 (Sala A)"},
		{"654321", "Física"},
	}
	merges := []Range{{StartRow: 1, StartCol: 0, EndRow: 2, EndCol: 0}}

	got := MergeRows(rows, merges, nil)
	assert.Equal(t, [][]string{
		{"header"},
		{"123456", "Cálculo\nI", "[T] Lu 1\n2 (Sala A)"},
		{"654321", "Física"},
	}, got)
}

func TestMergeRowsShorterRow(t *testing.T) {
	rows := [][]string{
		{"a"},
		{"b", "c", "d"},
	}
	got := MergeRows(rows, []Range{{StartRow: 0, EndRow: 1}}, nil)
	assert.Equal(t, [][]string{{"a\nb", "c", "d"}}, got)
}

func TestMergeRowsOverlappingRanges(t *testing.T) {
	rows := [][]string{{"1"}, {"2"}, {"3"}, {"4"}, {"5"}}
	merges := []Range{
		{StartRow: 0, EndRow: 1},
		{StartRow: 0, EndRow: 2}, // Максимальный конец
		{StartRow: 2, EndRow: 3}, // Начинается внутри серии
	}

	got := MergeRows(rows, merges, nil)
	assert.Equal(t, [][]string{{"1\n2\n3\n4"}, {"5"}}, got)
}

func TestMergeRowsIgnoresMalformedRanges(t *testing.T) {
	rows := [][]string{{"1"}, {"2"}, {"3"}}
	merges := []Range{
		{StartRow: 2, EndRow: 0},
		{StartRow: 1, EndRow: 1},
		{StartRow: -1, EndRow: 2},
	}

	assert.Equal(t, rows, MergeRows(rows, merges, nil))
}

func TestMergeRowsByBorders(t *testing.T) {
	// a..b до следующей верхней линии, c..d до нижней, e закрыта сразу,
	// f не закрыта
	rows := [][]string{{"a"}, {"b"}, {"c"}, {"d"}, {"e"}, {"f"}, {"g"}}
	borders := []RowBorder{
		{Row: 0, Top: true},
		{Row: 1},
		{Row: 2, Top: true},
		{Row: 3, Bottom: true},
		{Row: 4, Top: true, Bottom: true},
		{Row: 5, Top: true},
		{Row: 6},
	}

	got := MergeRows(rows, nil, borders)
	assert.Equal(t, [][]string{{"a\nb"}, {"c\nd"}, {"e"}, {"f"}, {"g"}}, got)
}

func TestMergeRowsSingleRowBorderRun(t *testing.T) {
	rows := [][]string{{"a"}, {"b"}, {"c"}}
	borders := []RowBorder{
		{Row: 0, Top: true},
		{Row: 1, Top: true},
		{Row: 2, Bottom: true},
	}

	got := MergeRows(rows, nil, borders)
	assert.Equal(t, [][]string{{"a"}, {"b\nc"}}, got)
}

func TestMergeRowsIdempotent(t *testing.T) {
	rows := [][]string{
		{"1", "x"},
		{"", "y"},
		{"2", "z"},
	}
	merges := []Range{{StartRow: 0, EndRow: 1}}

	once := MergeRows(rows, merges, nil)
	twice := MergeRows(once, nil, nil)
	assert.Equal(t, once, twice)
}

func TestMergeColumns(t *testing.T) {
	rows := [][]string{
		{"title", "", ""},
		{"skip", "", "x"},
		{"1", "Cálculo", "", "5"},
		{"2", "", "", "6"},
		{"footer", "", ""},
	}
	merges := []Range{
		{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 2}, // вне окна
		{StartRow: 2, StartCol: 1, EndRow: 3, EndCol: 2}, // две строки
	}

	got := MergeColumns(rows, merges, nil, 1, -1)
	assert.Equal(t, [][]string{
		{"title", "", ""},
		{"skip", "", "x"},
		{"1", "Cálculo", "5"},
		{"2", "", "6"},
		{"footer", "", ""},
	}, got)
}

func TestMergeColumnsByBorders(t *testing.T) {
	rows := [][]string{
		{"1", "Sala", "101", "x"},
	}
	borders := [][]Border{{
		{Left: true, Right: true},
		{Left: true},
		{Right: true},
		{Left: true, Right: true},
	}}

	got := MergeColumns(rows, nil, borders, 0, 1)
	assert.Equal(t, [][]string{{"1", "Sala 101", "x"}}, got)
}

func TestGridNormalize(t *testing.T) {
	g := &Grid{
		Rows: [][]string{
			{"1", "a", "", "b"},
			{"", "c", "", "d"},
		},
		Merges: []Range{
			{StartRow: 0, StartCol: 1, EndRow: 1, EndCol: 2},
			{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 0},
		},
	}

	got := g.Normalize(Options{MergeRows: true, MergeColumns: true, FromRow: 0, ToRow: 2})
	assert.Equal(t, [][]string{{"1", "a\nc", "b\nd"}}, got)
}

func TestRowBorders(t *testing.T) {
	g := &Grid{Borders: [][]Border{
		{{Top: true}, {Bottom: true}},
		{},
		{{Bottom: true}},
	}}

	assert.Equal(t, []RowBorder{
		{Row: 0, Top: true},
		{Row: 1},
		{Row: 2, Bottom: true},
	}, g.RowBorders())
}
