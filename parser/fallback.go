package parser

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/udecbot/horarios/source"
)

// Fallback справочник для полей, которых нет в документе
type Fallback struct {
	Lookup source.Lookup // nil отключает запросы
	Log    zerolog.Logger
}

// Info один запрос по коду. Ошибка только логируется, поля остаются nil.
func (f Fallback) Info(ctx context.Context, code uint32) source.Info {
	if f.Lookup == nil {
		return source.Info{}
	}
	text, err := f.Lookup.Lookup(ctx, code)
	if err != nil {
		f.Log.Warn().Err(err).Uint32("code", code).Msg("subject lookup failed")
		return source.Info{}
	}
	return source.ParseLookup(text)
}
