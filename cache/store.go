package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/udecbot/horarios/model"
)

const fileExt = ".bin"

// Store файлы кеша, по одному на источник, в одной директории
type Store struct {
	dir string
	log zerolog.Logger
}

// NewStore директория создаётся, если её нет
func NewStore(dir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create cache directory: %w", err)
	}
	return &Store{dir: dir, log: log.With().Str("component", "cache").Logger()}, nil
}

// Path путь к файлу источника name
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name)+fileExt)
}

// Read прочитать кеш. Никогда не падает: если файла нет, он битый или старой
// версии, то возвращается пустой файл (UpdatedAt = 0).
func (s *Store) Read(name string) model.ScheduleFile {
	empty := model.ScheduleFile{}

	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("source", name).Msg("cache unreadable, treating as miss")
		}
		return empty
	}

	file, err := Decode(data)
	if err != nil {
		s.log.Warn().Err(err).Str("source", name).Msg("cache corrupt or outdated, treating as miss")
		return empty
	}
	return file
}

// Write перезаписать кеш целиком. Пишем во временный файл и переименовываем,
// чтобы при ошибке старый файл остался целым.
func (s *Store) Write(name string, codec Codec, file model.ScheduleFile) error {
	data, err := codec.Encode(file)
	if err != nil {
		return fmt.Errorf("encode cache %s: %w", name, err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("could not create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(name)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync cache %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.Path(name)); err != nil {
		return fmt.Errorf("replace cache %s: %w", name, err)
	}

	s.log.Debug().Str("source", name).Int("subjects", len(file.Subjects)).Int("bytes", len(data)).Msg("cache written")
	return nil
}
