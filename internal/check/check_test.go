package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/framescript/internal/config"
)

// recordingLogger captures log lines per level for assertions.
type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) log(level, format string, args ...interface{}) {
	r.lines = append(r.lines, level+": "+fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Info(f string, a ...interface{})    { r.log("INFO", f, a...) }
func (r *recordingLogger) Success(f string, a ...interface{}) { r.log("SUCCESS", f, a...) }
func (r *recordingLogger) Warn(f string, a ...interface{})    { r.log("WARN", f, a...) }
func (r *recordingLogger) Error(f string, a ...interface{})   { r.log("ERROR", f, a...) }

func (r *recordingLogger) joined() string { return strings.Join(r.lines, "\n") }

func writeProfileDir(t *testing.T, settings, chapters, maps string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"settings.yaml": settings,
		"chapters.yaml": chapters,
		"maps.yaml":     maps,
	}
	for name, content := range files {
		if content == "" {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestRunCheck_CleanProfiles(t *testing.T) {
	dir := writeProfileDir(t, `
aa:
  main:
    desc_str: 0.3
  op:
    desc_str: 0.5
crop:
  main:
    top: 2
`, "", "")

	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeCheck
	cfg.ProfileDir = dir
	cfg.Zone = "op"

	log := &recordingLogger{}
	problems := RunCheck(&cfg, log)
	if problems != 0 {
		t.Fatalf("RunCheck found %d problems:\n%s", problems, log.joined())
	}
	assert.Contains(t, log.joined(), "No problems found")
}

func TestRunCheck_UnknownBlock(t *testing.T) {
	dir := writeProfileDir(t, `
telecine:
  main:
    x: 1
`, "", "")

	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeCheck
	cfg.ProfileDir = dir

	log := &recordingLogger{}
	problems := RunCheck(&cfg, log)
	assert.Equal(t, 1, problems)
	assert.Contains(t, log.joined(), `Block "telecine"`)
}

func TestRunCheck_UnknownSetting(t *testing.T) {
	dir := writeProfileDir(t, `
aa:
  main:
    not_a_setting: 1
`, "", "")

	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeCheck
	cfg.ProfileDir = dir
	cfg.Zone = ""

	log := &recordingLogger{}
	problems := RunCheck(&cfg, log)
	assert.Equal(t, 1, problems)
	assert.Contains(t, log.joined(), "not_a_setting")
}

func TestRunCheck_UndefinedZone(t *testing.T) {
	dir := writeProfileDir(t, `
aa:
  main:
    desc_str: 0.3
  op:
    desc_str: 0.5
`, "", "")

	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeCheck
	cfg.ProfileDir = dir
	cfg.Zone = "ed" // block defines zones, but not this one

	log := &recordingLogger{}
	problems := RunCheck(&cfg, log)
	assert.Equal(t, 1, problems)
	assert.Contains(t, log.joined(), "zone")
}

func TestRunCheck_MissingFilesAreSoft(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeCheck
	cfg.ProfileDir = t.TempDir()
	cfg.Zone = ""

	log := &recordingLogger{}
	problems := RunCheck(&cfg, log)
	assert.Equal(t, 0, problems, "absent profile files fall back to defaults")
	assert.Contains(t, log.joined(), "absent")
}

func TestRunCheck_MalformedYAML(t *testing.T) {
	dir := writeProfileDir(t, "aa: [broken\n", "", "")

	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeCheck
	cfg.ProfileDir = dir

	log := &recordingLogger{}
	problems := RunCheck(&cfg, log)
	assert.Equal(t, 1, problems)
	assert.Contains(t, log.joined(), "Profile load failed")
}

func TestRunCheck_ReportInputs(t *testing.T) {
	dir := writeProfileDir(t, "", "", `
flashback:
  ep01:
    - 80
    - [100, 120]
`)

	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeCheck
	cfg.ProfileDir = dir
	cfg.Zone = ""
	cfg.Episode = "ep01"
	cfg.ExcludeMap = "flashback"
	cfg.StatsFile = filepath.Join(dir, "absent.jsonl")

	log := &recordingLogger{}
	problems := RunCheck(&cfg, log)
	assert.Equal(t, 1, problems, "missing stat dump is the only problem")
	assert.Contains(t, log.joined(), "Stat dump missing")
	assert.Contains(t, log.joined(), `Exclusion map "flashback": 2 range(s)`)

	// Unknown episode in the map is a problem.
	cfg.Episode = "ep99"
	cfg.StatsFile = ""
	log = &recordingLogger{}
	problems = RunCheck(&cfg, log)
	assert.Equal(t, 1, problems)
	assert.Contains(t, log.joined(), "no entry for episode")
}
