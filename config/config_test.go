package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udecbot/horarios/model"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "resources/schedules", cfg.SchedulesDir)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout())
	assert.Equal(t, 300*time.Second, cfg.ConvertTimeout())
	assert.Equal(t, "@every 1h", cfg.WatchSpec)
}

func TestLoadYAMLAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "horarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
schedules_dir: /var/lib/horarios
parse_workers: 4
term_start: "2025-03-10"
log_format: json
`), 0644))

	t.Setenv("PARSE_WORKERS", "16")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/horarios", cfg.SchedulesDir)
	assert.Equal(t, "2025-03-10", cfg.TermStart)
	assert.Equal(t, "json", cfg.LogFormat)
	// Окружение важнее файла
	assert.Equal(t, 16, cfg.ParseWorkers)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad url", env: map[string]string{"CFM_LISTING_URL": "not a url"}},
		{name: "bad log format", env: map[string]string{"LOG_FORMAT": "xml"}},
		{name: "bad term start", env: map[string]string{"TERM_START": "10.03.2025"}},
		{name: "zero workers", env: map[string]string{"PARSE_WORKERS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMatcher(t *testing.T) {
	m := Matcher{MatchRaw: []string{"527140", "~^5101"}}
	require.NoError(t, m.Compile())

	assert.True(t, m.Match("527140"))
	assert.True(t, m.Match("510150"))
	assert.False(t, m.Match("999999"))

	empty := Matcher{}
	assert.True(t, empty.Match("anything"))

	bad := Matcher{MatchRaw: []string{"~("}}
	assert.Error(t, bad.Compile())
}

func TestFilter(t *testing.T) {
	f := Filter{
		NameMatcher:   Matcher{MatchRaw: []string{"~(?i)^c[aá]lculo"}},
		CareerMatcher: Matcher{MatchRaw: []string{"Ing. Civil", AnyCivilCareer}},
	}
	require.NoError(t, f.Init())

	calc := model.Subject{Code: 527140, Name: "Cálculo I", Section: 1, Careers: []model.Career{{Name: "Ing. Civil", Semester: 1}}}
	calcAny := model.Subject{Code: 527141, Name: "Calculo II", Section: 1, Careers: []model.Career{{AnyCivilSpecialty: true}}}
	phys := model.Subject{Code: 510150, Name: "Física I", Section: 1, Careers: []model.Career{{Name: "Ing. Civil", Semester: 1}}}
	noCareer := model.Subject{Code: 527142, Name: "Cálculo III", Section: 1}

	assert.True(t, f.Match(calc))
	assert.True(t, f.Match(calcAny))
	assert.False(t, f.Match(phys))
	assert.False(t, f.Match(noCareer))

	got := f.Apply(model.Index([]model.Subject{calc, calcAny, phys, noCareer}))
	assert.Len(t, got, 2)
	assert.Contains(t, got, "527140-1")
}
