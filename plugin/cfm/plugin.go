// Package cfm расписания Facultad de Ciencias Físicas y Matemáticas: по
// одному PDF на каждое направление в листинге директории.
package cfm

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/udecbot/horarios/cache"
	"github.com/udecbot/horarios/parser"
	"github.com/udecbot/horarios/schedules"
	"github.com/udecbot/horarios/sheet"
	"github.com/udecbot/horarios/source"
)

// Склейка столбцов с 4 строки до предпоследней (шапка и подвал не трогаются)
var sheetOptions = sheet.Options{
	MergeRows:    true,
	MergeColumns: true,
	FromRow:      3,
	ToRow:        -2,
}

type _CFMPlugin struct {
	listing  source.CFMListing
	fallback parser.Fallback
	log      zerolog.Logger
}

func GetPlugin(listing source.CFMListing, fallback parser.Fallback, log zerolog.Logger) *_CFMPlugin {
	return &_CFMPlugin{listing: listing, fallback: fallback, log: log}
}

func (p _CFMPlugin) GetInstitution() string {
	return "Facultad de Ciencias Físicas y Matemáticas"
}

// CacheName имя файла кеша для типа документа
func CacheName(kind string) string {
	return "cfm-" + strings.ToLower(kind)
}

func (p *_CFMPlugin) GetSources(ctx context.Context) ([]schedules.Source, error) {
	docs, err := p.listing.Latest(ctx)
	if err != nil {
		return nil, err
	}

	var sources []schedules.Source
	for _, kind := range source.CFMTypes {
		doc, ok := docs[kind]
		if !ok {
			p.log.Warn().Str("type", kind).Msg("no document this year")
			continue
		}

		sources = append(sources, schedules.Source{
			Name:     CacheName(kind),
			Document: doc,
			Parser: Parser{
				// Документ MAT раздаёт практики по-своему
				Distribute: parser.DistributeOptions{BundleRemainder: kind == "MAT"},
				Fallback:   p.fallback,
				Log:        p.log.With().Str("type", kind).Logger(),
			},
			Sheet: sheetOptions,
			Codec: cache.Codec{},
		})
	}

	if len(sources) == 0 {
		return nil, source.ErrNoDocument
	}
	return sources, nil
}
