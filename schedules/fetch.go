package schedules

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/udecbot/horarios/cache"
	"github.com/udecbot/horarios/model"
	"github.com/udecbot/horarios/parser"
	"github.com/udecbot/horarios/pdfconv"
	"github.com/udecbot/horarios/sheet"
	"github.com/udecbot/horarios/source"
)

// Source один документ и то, как его разбирать
type Source struct {
	Name     string // Имя файла кеша
	Document source.Document
	Parser   parser.RowParser
	Sheet    sheet.Options
	Codec    cache.Codec
}

// Provider отдаёт актуальные документы одного учреждения
type Provider interface {
	GetInstitution() string
	GetSources(ctx context.Context) ([]Source, error)
}

// Report что получилось с одним источником
type Report struct {
	Source    string
	UpdatedAt int64
	Cached    bool
	Subjects  int
	Err       error
}

// Result предметы успешных источников и отчёт по каждому
type Result struct {
	Subjects model.SubjectMap
	Reports  []Report
}

// Failed отчёты с ошибкой
func (r Result) Failed() []Report {
	var failed []Report
	for _, rep := range r.Reports {
		if rep.Err != nil {
			failed = append(failed, rep)
		}
	}
	return failed
}

// ErrAllFailed ни один источник не отработал
var ErrAllFailed = errors.New("all schedule sources failed")

// Fetcher забирает расписания всех провайдеров, пересобирая только
// изменившиеся документы
type Fetcher struct {
	Providers []Provider
	Store     *cache.Store
	Converter pdfconv.Converter
	Workers   int
	Log       zerolog.Logger

	// BuildTimeout ограничивает одну пересборку документа, 0 значит
	// DefaultBuildTimeout
	BuildTimeout time.Duration

	group singleflight.Group
}

const DefaultBuildTimeout = 15 * time.Minute

// Fetch источники обрабатываются параллельно, ошибка одного не мешает
// остальным. Ошибка возвращается, только если упали все.
func (f *Fetcher) Fetch(ctx context.Context) (Result, error) {
	// Порядок провайдеров сохраняется, от него зависит, чей предмет победит
	lists := make([][]Source, len(f.Providers))
	listErrs := make([]error, len(f.Providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range f.Providers {
		g.Go(func() error {
			lists[i], listErrs[i] = p.GetSources(gctx)
			return nil
		})
	}
	_ = g.Wait()

	var reports []Report
	var sources []Source
	for i, p := range f.Providers {
		if err := listErrs[i]; err != nil {
			f.Log.Warn().Err(err).Str("institution", p.GetInstitution()).Msg("could not list sources")
			reports = append(reports, Report{Source: p.GetInstitution(), Err: err})
			continue
		}
		sources = append(sources, lists[i]...)
	}

	files := make([]model.ScheduleFile, len(sources))
	sourceReports := make([]Report, len(sources))

	g, gctx = errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			file, cached, err := f.fetchSource(gctx, src)
			rep := Report{Source: src.Name, UpdatedAt: src.Document.UpdatedAt, Cached: cached, Err: err}
			if err != nil {
				f.Log.Warn().Err(err).Str("source", src.Name).Msg("source failed")
			} else {
				files[i] = file
				rep.Subjects = len(file.Subjects)
			}
			sourceReports[i] = rep
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Subjects: model.SubjectMap{}, Reports: append(reports, sourceReports...)}
	for _, file := range files {
		res.Subjects.Add(file.Subjects...)
	}

	if len(res.Reports) > 0 && len(res.Failed()) == len(res.Reports) {
		return res, ErrAllFailed
	}
	return res, nil
}

type fetched struct {
	file   model.ScheduleFile
	cached bool
}

// Один read-check-convert-write на файл кеша одновременно. Общая работа
// идёт на своём контексте: отмена одного вызывающего не роняет остальных,
// он сам просто перестаёт ждать.
func (f *Fetcher) fetchSource(ctx context.Context, src Source) (model.ScheduleFile, bool, error) {
	timeout := f.BuildTimeout
	if timeout <= 0 {
		timeout = DefaultBuildTimeout
	}

	ch := f.group.DoChan(src.Name, func() (any, error) {
		bctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()

		old := f.Store.Read(src.Name)
		if src.Document.UpdatedAt != 0 && old.UpdatedAt == src.Document.UpdatedAt {
			f.Log.Debug().Str("source", src.Name).Msg("cache hit")
			return fetched{file: old, cached: true}, nil
		}

		file, err := f.build(bctx, src)
		if err != nil {
			return nil, err
		}
		if err := f.Store.Write(src.Name, src.Codec, file); err != nil {
			return nil, fmt.Errorf("write cache: %w", err)
		}
		return fetched{file: file}, nil
	})

	select {
	case <-ctx.Done():
		return model.ScheduleFile{}, false, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return model.ScheduleFile{}, false, r.Err
		}
		res := r.Val.(fetched)
		return res.file, res.cached, nil
	}
}

func (f *Fetcher) build(ctx context.Context, src Source) (model.ScheduleFile, error) {
	log := f.Log.With().Str("source", src.Name).Str("document", src.Document.Name).Logger()
	log.Info().Msg("document changed, converting")

	data, err := f.Converter.Convert(ctx, src.Document.URL)
	if err != nil {
		return model.ScheduleFile{}, fmt.Errorf("convert %s: %w", src.Document.Name, err)
	}

	grid, err := sheet.Read(data)
	if err != nil {
		return model.ScheduleFile{}, fmt.Errorf("read %s: %w", src.Document.Name, err)
	}

	rows := grid.Normalize(src.Sheet)
	subjects := representable(Assemble(ctx, rows, src.Parser, f.Workers), src.Codec, log)
	log.Info().Int("rows", len(rows)).Int("subjects", len(subjects)).Msg("parsed")

	return model.ScheduleFile{UpdatedAt: src.Document.UpdatedAt, Subjects: subjects}, nil
}

// representable выкинуть предметы, которые формат кеша не примет, чтобы
// одна кривая строка не валила весь документ
func representable(subjects []model.Subject, codec cache.Codec, log zerolog.Logger) []model.Subject {
	ret := subjects[:0]
	for _, s := range subjects {
		if err := codec.Check(s); err != nil {
			log.Warn().Err(err).Str("subject", s.Key()).Msg("subject dropped")
			continue
		}
		if len(ret) == math.MaxUint16 {
			log.Warn().Str("subject", s.Key()).Msg("too many subjects, rest dropped")
			break
		}
		ret = append(ret, s)
	}
	return ret
}
