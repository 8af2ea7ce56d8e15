package sheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
)

func buildWorkbook(t *testing.T) []byte {
	t.Helper()

	f := xlsx.NewFile()

	first, err := f.AddSheet("Hoja1")
	require.NoError(t, err)
	row := first.AddRow()
	code := row.AddCell()
	code.SetString("123456")
	code.Merge(0, 1)
	row.AddCell().SetString("\ufeffCálculo ")
	row = first.AddRow()
	row.AddCell().SetString("")
	row.AddCell().SetString("I\r\nII")

	second, err := f.AddSheet("Hoja2")
	require.NoError(t, err)
	row = second.AddRow()
	name := row.AddCell()
	name.SetString("Física")
	name.Merge(1, 0)
	row.AddCell().SetString("")

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestRead(t *testing.T) {
	grid, err := Read(buildWorkbook(t))
	require.NoError(t, err)

	require.Len(t, grid.Rows, 3)
	assert.Equal(t, []string{"123456", "Cálculo"}, grid.Rows[0])
	assert.Equal(t, []string{"", "I\nII"}, grid.Rows[1])
	assert.Equal(t, "Física", grid.Rows[2][0])
	assert.Len(t, grid.Borders, 3)

	// Диапазон второго листа сдвинут на строки первого
	assert.ElementsMatch(t, []Range{
		{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 0},
		{StartRow: 2, StartCol: 0, EndRow: 2, EndCol: 1},
	}, grid.Merges)
}

func TestReadInvalid(t *testing.T) {
	_, err := Read([]byte("not a workbook"))
	assert.Error(t, err)
}

func TestBorderOf(t *testing.T) {
	st := xlsx.NewStyle()
	st.Border.Top = "thin"
	st.Border.Left = "medium"
	st.Border.Bottom = "none"

	assert.Equal(t, Border{Top: true, Left: true}, borderOf(st))
	assert.Equal(t, Border{}, borderOf(nil))
}

func TestCleanCell(t *testing.T) {
	assert.Equal(t, "a\nb", cleanCell("\ufeff a\r\nb \n"))
}
