// Package engineering расписание факультета инженерии: один PDF на сайте
// ofivirtualfi, таблица в 10 столбцов.
package engineering

import (
	"context"

	"github.com/udecbot/horarios/cache"
	"github.com/udecbot/horarios/schedules"
	"github.com/udecbot/horarios/sheet"
	"github.com/udecbot/horarios/source"
)

// CacheName имя файла кеша
const CacheName = "engineering"

type _EngineeringPlugin struct {
	api    source.EngineeringAPI
	parser Parser
}

func GetPlugin(api source.EngineeringAPI, p Parser) *_EngineeringPlugin {
	return &_EngineeringPlugin{api: api, parser: p}
}

func (p _EngineeringPlugin) GetInstitution() string {
	return "Facultad de Ingeniería"
}

func (p *_EngineeringPlugin) GetSources(ctx context.Context) ([]schedules.Source, error) {
	doc, err := p.api.Latest(ctx)
	if err != nil {
		return nil, err
	}

	return []schedules.Source{{
		Name:     CacheName,
		Document: doc,
		Parser:   p.parser,
		Sheet:    sheet.Options{},
		Codec:    cache.Codec{Hours: true},
	}}, nil
}
