package cmd

import (
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/udecbot/horarios/utils"
)

var runNow bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Запускать fetch по расписанию WATCH_SPEC до остановки",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := filter.Init(); err != nil {
			return err
		}
		f, err := newFetcher()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		job := func() {
			if err := runFetch(ctx, f, cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("scheduled fetch failed")
			}
		}

		c := cron.New(
			cron.WithLocation(utils.LoadLocation(cfg.Timezone)),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		)
		if _, err := c.AddFunc(cfg.WatchSpec, job); err != nil {
			return err
		}

		if runNow {
			job()
		}
		c.Start()
		log.Info().Str("spec", cfg.WatchSpec).Msg("watching")

		<-ctx.Done()
		<-c.Stop().Done()
		log.Info().Msg("watch stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addFetchFlags(watchCmd)
	watchCmd.Flags().BoolVar(&runNow, "now", true, "Сразу выполнить fetch, не дожидаясь расписания")
}
