// Package schedules сборка предметов из документов и кеширование результата.
package schedules

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/udecbot/horarios/model"
	"github.com/udecbot/horarios/parser"
)

// DefaultWorkers строк разбирается одновременно (разбор ждёт справочник)
const DefaultWorkers = 8

// Assemble разобрать строки параллельно и склеить результат в порядке строк.
// Повторный код-секция отбрасывается, побеждает первый.
func Assemble(ctx context.Context, rows [][]string, p parser.RowParser, workers int) []model.Subject {
	if workers < 1 {
		workers = DefaultWorkers
	}

	parsed := make([][]model.Subject, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, row := range rows {
		g.Go(func() error {
			parsed[i] = p.ParseRow(gctx, row)
			return nil
		})
	}
	_ = g.Wait()

	seen := model.SubjectMap{}
	var subjects []model.Subject
	for _, row := range parsed {
		for _, s := range row {
			if _, ok := seen[s.Key()]; ok {
				continue
			}
			seen[s.Key()] = s
			subjects = append(subjects, s)
		}
	}
	return subjects
}
