package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/udecbot/horarios/cache"
	"github.com/udecbot/horarios/model"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <cache-name>",
	Short: "Показать содержимое файла кеша",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.NewStore(cfg.SchedulesDir, log)
		if err != nil {
			return err
		}

		// Store.Read молча отдаёт пустой файл, здесь нужна ошибка
		data, err := os.ReadFile(store.Path(args[0]))
		if err != nil {
			return err
		}
		file, err := cache.Decode(data)
		if err != nil {
			return fmt.Errorf("decode %s: %w", args[0], err)
		}

		printFile(cmd.OutOrStdout(), file)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func printFile(w io.Writer, file model.ScheduleFile) {
	fmt.Fprintf(w, "updated %s, %d subjects\n", formatMillis(file.UpdatedAt), len(file.Subjects))
	for _, s := range file.Subjects {
		fmt.Fprintf(w, "%s %s\n", s.Key(), s.Name)
		for _, e := range s.Schedule {
			fmt.Fprintf(w, "\t%s\n", formatEntry(e))
		}
		for _, p := range s.Professors {
			fmt.Fprintf(w, "\t[%s] %s\n", p.Kind, p.Name)
		}
	}
}

func formatEntry(e model.ScheduleEntry) string {
	kind := e.Kind.String()
	if kind == "" {
		kind = "?"
	}
	if e.Group != 0 {
		kind += " G" + strconv.Itoa(e.Group)
	}
	if e.Pending {
		return kind + " por coordinar"
	}

	blocks := make([]string, len(e.Blocks))
	for i, b := range e.Blocks {
		blocks[i] = strconv.Itoa(b)
	}
	return fmt.Sprintf("%s %s %s %s", kind, e.Day, strings.Join(blocks, ","), e.Classroom)
}
