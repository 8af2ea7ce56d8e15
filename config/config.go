package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	yaml "go.yaml.in/yaml/v3"
)

// Config настройки приложения. Приоритет: переменные окружения, затем
// YAML файл, затем значения по умолчанию.
type Config struct {
	SchedulesDir string `yaml:"schedules_dir" validate:"required"`
	LogLevel     string `yaml:"log_level" validate:"oneof=trace debug info warn error fatal panic"`
	LogFormat    string `yaml:"log_format" validate:"oneof=json pretty"`

	EngineeringDocumentsURL string `yaml:"engineering_documents_url" validate:"required,url"`
	EngineeringDownloadURL  string `yaml:"engineering_download_url" validate:"required,url"`
	CFMListingURL           string `yaml:"cfm_listing_url" validate:"required,url"`
	SubjectLookupURL        string `yaml:"subject_lookup_url" validate:"omitempty,url"` // Пустой отключает справочник
	ConverterURL            string `yaml:"converter_url" validate:"required,url"`

	HTTPTimeoutSeconds    int `yaml:"http_timeout_seconds" validate:"min=1"`
	ConvertTimeoutSeconds int `yaml:"convert_timeout_seconds" validate:"min=1"`
	LookupRatePerSec      int `yaml:"lookup_rate_per_sec" validate:"min=1"`
	ParseWorkers          int `yaml:"parse_workers" validate:"min=1,max=256"`

	Timezone  string `yaml:"timezone" validate:"required"`
	TermStart string `yaml:"term_start" validate:"omitempty,datetime=2006-01-02"`
	TermWeeks int    `yaml:"term_weeks" validate:"min=1,max=52"`
	WatchSpec string `yaml:"watch_spec" validate:"required"`
}

func defaults() Config {
	return Config{
		SchedulesDir: "resources/schedules",
		LogLevel:     "info",
		LogFormat:    "pretty",

		EngineeringDocumentsURL: "https://ofivirtualfi.udec.cl/api/file/documents/?limit=1&searchFields=resourceType,mimeType" +
			"&search=scheduleSubjects,application/pdf&sort=id_file+desc&exactMatching=true",
		EngineeringDownloadURL: "https://ofivirtualfi.udec.cl/api/file/downloadFile/",
		CFMListingURL:          "https://www.cfm.cl/pdf/horarios/",
		SubjectLookupURL:       "https://alumnos.udec.cl/?q=node/25",
		ConverterURL:           "https://smallpdf.com/pdf-to-excel",

		HTTPTimeoutSeconds:    30,
		ConvertTimeoutSeconds: 300,
		LookupRatePerSec:      5,
		ParseWorkers:          8,

		Timezone:  "America/Santiago",
		TermWeeks: 17,
		WatchSpec: "@every 1h",
	}
}

// Load собрать конфиг. path к YAML файлу может быть пустым.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // .env необязателен

	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("yaml unmarshal: %w", err)
		}
	}

	cfg.SchedulesDir = getEnv("SCHEDULES_DIR", cfg.SchedulesDir)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.EngineeringDocumentsURL = getEnv("ENGINEERING_DOCUMENTS_URL", cfg.EngineeringDocumentsURL)
	cfg.EngineeringDownloadURL = getEnv("ENGINEERING_DOWNLOAD_URL", cfg.EngineeringDownloadURL)
	cfg.CFMListingURL = getEnv("CFM_LISTING_URL", cfg.CFMListingURL)
	cfg.SubjectLookupURL = getEnv("SUBJECT_LOOKUP_URL", cfg.SubjectLookupURL)
	cfg.ConverterURL = getEnv("CONVERTER_URL", cfg.ConverterURL)
	cfg.HTTPTimeoutSeconds = getEnvInt("HTTP_TIMEOUT_SECONDS", cfg.HTTPTimeoutSeconds)
	cfg.ConvertTimeoutSeconds = getEnvInt("CONVERT_TIMEOUT_SECONDS", cfg.ConvertTimeoutSeconds)
	cfg.LookupRatePerSec = getEnvInt("LOOKUP_RATE_PER_SEC", cfg.LookupRatePerSec)
	cfg.ParseWorkers = getEnvInt("PARSE_WORKERS", cfg.ParseWorkers)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	cfg.TermStart = getEnv("TERM_START", cfg.TermStart)
	cfg.TermWeeks = getEnvInt("TERM_WEEKS", cfg.TermWeeks)
	cfg.WatchSpec = getEnv("WATCH_SPEC", cfg.WatchSpec)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c *Config) ConvertTimeout() time.Duration {
	return time.Duration(c.ConvertTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
