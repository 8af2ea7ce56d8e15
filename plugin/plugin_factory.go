package plugin

import (
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/udecbot/horarios/config"
	"github.com/udecbot/horarios/parser"
	"github.com/udecbot/horarios/plugin/cfm"
	"github.com/udecbot/horarios/plugin/engineering"
	"github.com/udecbot/horarios/source"
	"github.com/udecbot/horarios/utils"
)

// NewFallback справочник предметов, общий для всех плагинов (и ограничитель
// запросов тоже общий)
func NewFallback(cfg *config.Config, log zerolog.Logger) parser.Fallback {
	fb := parser.Fallback{Log: log.With().Str("component", "lookup").Logger()}
	if cfg.SubjectLookupURL == "" {
		return fb
	}
	fb.Lookup = source.HTTPLookup{
		URL:     cfg.SubjectLookupURL,
		Client:  source.NewHTTPClient(cfg.HTTPTimeout(), false),
		Limiter: rate.NewLimiter(rate.Limit(cfg.LookupRatePerSec), cfg.LookupRatePerSec),
	}
	return fb
}

// NewPlugin плагин по имени, nil если такого нет
func NewPlugin(name string, cfg *config.Config, fallback parser.Fallback, log zerolog.Logger) Plugin {
	log = log.With().Str("plugin", name).Logger()

	switch name {
	case "engineering":
		api := source.EngineeringAPI{
			DocumentsURL: cfg.EngineeringDocumentsURL,
			DownloadURL:  cfg.EngineeringDownloadURL,
			// Сертификат ofivirtualfi не проходит проверку
			Client: source.NewHTTPClient(cfg.HTTPTimeout(), true),
		}
		return engineering.GetPlugin(api, engineering.Parser{Fallback: fallback, Log: log})
	case "cfm":
		listing := source.CFMListing{
			URL:      cfg.CFMListingURL,
			Location: utils.LoadLocation(cfg.Timezone),
			Timeout:  cfg.HTTPTimeout(),
		}
		return cfm.GetPlugin(listing, fallback, log)
	default:
		return nil
	}
}
