// Package cmd командная строка: fetch, inspect, watch.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/udecbot/horarios/config"
	"github.com/udecbot/horarios/logger"
)

var (
	configPath string

	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "horarios",
	Short: "Расписания UdeC: скачать, разобрать, закешировать",
	Long: `horarios забирает PDF расписаний факультетов UdeC, переводит их в таблицы,
разбирает по секциям и хранит результат в бинарном кеше. Документ
конвертируется заново только если он изменился.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		log = logger.Setup(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML файл с настройками")
}

// Execute запустить корневую команду, Ctrl+C отменяет контекст
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
