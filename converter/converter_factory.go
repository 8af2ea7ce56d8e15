package converter

import (
	"github.com/udecbot/horarios/config"
	"github.com/udecbot/horarios/utils"
)

// Names все конвертеры
var Names = []string{"json", "pjson", "pgsql", "ics"}

func Converter(converter string, cfg *config.Config) IConverter {
	switch converter {
	case "json":
		return JSONConverter{}
	case "pjson":
		return JSONConverter{Pretty: true}
	case "pgsql":
		return PGSQLConverter{}
	case "ics":
		loc := utils.LoadLocation(cfg.Timezone)
		c := ICSConverter{Weeks: cfg.TermWeeks, Location: loc}
		// Формат даты уже проверен при загрузке конфига
		if start, err := utils.ParseDate(cfg.TermStart, loc); err == nil && start != nil {
			c.TermStart = *start
		}
		return c
	default:
		return DummyConverter{Name: converter}
	}
}
