// Package profile loads the file-backed configuration hierarchy consumed by
// parameter resolution: per-block setting profiles (settings.yaml), named
// chapter points (chapters.yaml), and frame-range maps (maps.yaml).
//
// Absence of a file is not an error; each lookup degenerates to "nothing
// configured" and resolution proceeds from compiled-in defaults. Malformed
// YAML is an error, raised at load time before any frame work begins. A
// Store is loaded once per pipeline run and read-only thereafter.
package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/backmassage/framescript/internal/frameranges"
)

// Profile is a flat setting-name → value mapping for one block scope.
type Profile map[string]any

// BlockProfiles holds the profiles of one block, keyed by profile name.
// The "main" profile applies to the whole block; every other key is a
// named zone.
type BlockProfiles map[string]Profile

// Settings is the full settings.yaml mapping: block → profiles.
type Settings map[string]BlockProfiles

// Chapters maps episode → chapter name → frame index.
type Chapters map[string]map[string]int

// Maps maps map name → episode → ordered frame-range specs.
type Maps map[string]map[string][]frameranges.Spec

// Source supplies the three configuration documents. It is an injected
// capability so callers never depend on a process-wide file location.
type Source interface {
	Settings() (Settings, error)
	Chapters() (Chapters, error)
	Maps() (Maps, error)
}

// FileSource reads settings.yaml, chapters.yaml, and maps.yaml from Dir.
// A missing file yields a nil document without error.
type FileSource struct {
	Dir string
}

// Settings implements [Source].
func (f FileSource) Settings() (Settings, error) {
	var s Settings
	if err := f.read("settings.yaml", &s); err != nil {
		return nil, err
	}
	return s, nil
}

// Chapters implements [Source].
func (f FileSource) Chapters() (Chapters, error) {
	var c Chapters
	if err := f.read("chapters.yaml", &c); err != nil {
		return nil, err
	}
	return c, nil
}

// Maps implements [Source].
func (f FileSource) Maps() (Maps, error) {
	var m Maps
	if err := f.read("maps.yaml", &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (f FileSource) read(name string, out any) error {
	path := filepath.Join(f.Dir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// StaticSource serves documents from memory. Used by tests and by callers
// that assemble configuration programmatically.
type StaticSource struct {
	S Settings
	C Chapters
	M Maps
}

// Settings implements [Source].
func (s StaticSource) Settings() (Settings, error) { return s.S, nil }

// Chapters implements [Source].
func (s StaticSource) Chapters() (Chapters, error) { return s.C, nil }

// Maps implements [Source].
func (s StaticSource) Maps() (Maps, error) { return s.M, nil }

// Store holds the loaded configuration documents. Read-only after Load;
// accessors hand out copies so a Store can be shared across concurrent
// pipeline stages without synchronization.
type Store struct {
	settings Settings
	chapters Chapters
	maps     Maps
}

// Load reads all documents from src. Any read or parse failure aborts the
// load; missing documents load as empty.
func Load(src Source) (*Store, error) {
	settings, err := src.Settings()
	if err != nil {
		return nil, err
	}
	chapters, err := src.Chapters()
	if err != nil {
		return nil, err
	}
	maps, err := src.Maps()
	if err != nil {
		return nil, err
	}
	return &Store{settings: settings, chapters: chapters, maps: maps}, nil
}

// Empty returns a Store with no configured documents. Resolution against it
// degenerates to defaults plus call-site overrides.
func Empty() *Store {
	return &Store{}
}

// Block returns the profiles configured for a block, or ok=false when the
// block (or the whole settings document) is absent. Absence is the soft
// path: callers skip the profile merge and keep defaults.
func (s *Store) Block(name string) (BlockProfiles, bool) {
	bp, ok := s.settings[name]
	if !ok {
		return nil, false
	}
	out := make(BlockProfiles, len(bp))
	for zone, p := range bp {
		out[zone] = copyProfile(p)
	}
	return out, true
}

// Blocks returns the names of all configured blocks.
func (s *Store) Blocks() []string {
	names := make([]string, 0, len(s.settings))
	for name := range s.settings {
		names = append(names, name)
	}
	return names
}

// Chapter returns the frame index of a named chapter for an episode. When
// the chapter is absent the fallback chapter name is tried. ok=false when
// neither exists or the episode is unknown.
func (s *Store) Chapter(episode, name, fallback string) (int, bool) {
	ep, ok := s.chapters[episode]
	if !ok {
		return 0, false
	}
	if frame, ok := ep[name]; ok {
		return frame, true
	}
	if fallback != "" {
		if frame, ok := ep[fallback]; ok {
			return frame, true
		}
	}
	return 0, false
}

// Map returns the frame-range specs of mapName for an episode, or nil when
// the map or episode is absent. The returned slice is a copy.
func (s *Store) Map(mapName, episode string) []frameranges.Spec {
	m, ok := s.maps[mapName]
	if !ok {
		return nil
	}
	specs, ok := m[episode]
	if !ok {
		return nil
	}
	out := make([]frameranges.Spec, len(specs))
	copy(out, specs)
	return out
}

func copyProfile(p Profile) Profile {
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = copyValue(v)
	}
	return out
}

// copyValue deep-copies the YAML value shapes a profile can hold: scalars,
// sequences, and nested mappings (adaptive-zone blocks).
func copyValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = copyValue(e)
		}
		return out
	default:
		return v
	}
}
