package schedules

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udecbot/horarios/model"
)

// rowParser код из первого столбца, секции из остальных
type rowParser struct{}

func (rowParser) ParseRow(_ context.Context, row []string) []model.Subject {
	code, err := strconv.Atoi(row[0])
	if err != nil {
		return nil
	}
	var subjects []model.Subject
	for _, sec := range row[1:] {
		n, _ := strconv.Atoi(sec)
		subjects = append(subjects, model.Subject{Code: uint32(code), Section: n, Name: row[0] + "/" + sec})
	}
	return subjects
}

func TestAssembleFirstWins(t *testing.T) {
	rows := [][]string{
		{"CÓDIGO"},
		{"100", "1", "2"},
		{"200", "1"},
		{"100", "2", "3"},
	}

	got := Assemble(context.Background(), rows, rowParser{}, 2)

	var keys []string
	for _, s := range got {
		keys = append(keys, s.Key())
	}
	assert.Equal(t, []string{"100-1", "100-2", "200-1", "100-3"}, keys)
	assert.Equal(t, "100/2", got[1].Name)
}

func TestAssembleEmpty(t *testing.T) {
	assert.Empty(t, Assemble(context.Background(), nil, rowParser{}, 0))
}
