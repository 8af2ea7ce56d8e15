package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/udecbot/horarios/cache"
	"github.com/udecbot/horarios/config"
	"github.com/udecbot/horarios/converter"
	"github.com/udecbot/horarios/pdfconv"
	"github.com/udecbot/horarios/plugin"
	"github.com/udecbot/horarios/schedules"
	"github.com/udecbot/horarios/source"
	"github.com/udecbot/horarios/utils"
)

// Флаги fetch и watch
var (
	pluginNames   utils.StringEnum
	converterName string
	output        string
	filter        config.Filter
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Обновить кеш и выгрузить предметы",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := filter.Init(); err != nil {
			return err
		}
		f, err := newFetcher()
		if err != nil {
			return err
		}
		return runFetch(cmd.Context(), f, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	addFetchFlags(fetchCmd)
}

func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().VarP(&pluginNames, "plugin", "p", "Учреждение (можно несколько), по умолчанию все")
	cmd.Flags().StringVar(&converterName, "converter", "", "Тип выходных данных: json, pjson, pgsql, ics (пусто: не выгружать)")
	cmd.Flags().StringVarP(&output, "output", "o", "horarios.json", "Файл или DSN, куда будет записываться результат")
	cmd.Flags().Var(&filter.CodeMatcher.MatchRaw, "code", "Требуемые коды предметов (~ для регулярки)")
	cmd.Flags().Var(&filter.NameMatcher.MatchRaw, "name", "Требуемые названия предметов")
	cmd.Flags().Var(&filter.CareerMatcher.MatchRaw, "career", "Требуемые специальности ("+config.AnyCivilCareer+" для любой гражданской)")
}

func newFetcher() (*schedules.Fetcher, error) {
	names := pluginNames
	if len(names) == 0 {
		names = plugin.Names
	}

	fallback := plugin.NewFallback(cfg, log)
	var providers []schedules.Provider
	for _, name := range names {
		p := plugin.NewPlugin(name, cfg, fallback, log)
		if p == nil {
			return nil, fmt.Errorf("%s не найден", name)
		}
		providers = append(providers, p)
	}

	store, err := cache.NewStore(cfg.SchedulesDir, log)
	if err != nil {
		return nil, err
	}

	return &schedules.Fetcher{
		Providers: providers,
		Store:     store,
		Converter: pdfconv.Browser{
			URL:     cfg.ConverterURL,
			Client:  source.NewHTTPClient(cfg.HTTPTimeout(), false),
			Timeout: cfg.ConvertTimeout(),
			Log:     log.With().Str("component", "pdfconv").Logger(),
		},
		Workers:      cfg.ParseWorkers,
		Log:          log,
		BuildTimeout: 2 * cfg.ConvertTimeout(),
	}, nil
}

func runFetch(ctx context.Context, f *schedules.Fetcher, w io.Writer) error {
	res, err := f.Fetch(ctx)
	printReport(w, res)
	if err != nil {
		if errors.Is(err, schedules.ErrAllFailed) {
			return fmt.Errorf("ошибка при получении расписания: %w", err)
		}
		return err
	}

	subjects := filter.Apply(res.Subjects)
	log.Info().Int("subjects", len(subjects)).Int("total", len(res.Subjects)).Msg("fetch done")

	if converterName == "" {
		return nil
	}
	if err := converter.Converter(converterName, cfg).Write(subjects, output); err != nil {
		return fmt.Errorf("ошибка в сохранении расписания: %w", err)
	}
	return nil
}

func printReport(w io.Writer, res schedules.Result) {
	for _, rep := range res.Reports {
		switch {
		case rep.Err != nil:
			fmt.Fprintf(w, "%-16s FAIL   %v\n", rep.Source, rep.Err)
		case rep.Cached:
			fmt.Fprintf(w, "%-16s cached %4d subjects, %s\n", rep.Source, rep.Subjects, formatMillis(rep.UpdatedAt))
		default:
			fmt.Fprintf(w, "%-16s parsed %4d subjects, %s\n", rep.Source, rep.Subjects, formatMillis(rep.UpdatedAt))
		}
	}
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).In(utils.LoadLocation(cfg.Timezone)).Format("2006-01-02 15:04")
}
