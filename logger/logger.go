// Package logger настройка zerolog для всего приложения.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup глобальный уровень и логгер. format: "json" или "pretty".
// Пишет в stderr, stdout остаётся под вывод конвертеров.
func Setup(level, format string) zerolog.Logger {
	return New(os.Stderr, level, format)
}

// New то же, но в произвольный writer
func New(out io.Writer, level, format string) zerolog.Logger {
	var writer io.Writer = out
	if format == "pretty" {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	return zerolog.New(writer).
		With().
		Timestamp().
		Caller().
		Logger()
}
