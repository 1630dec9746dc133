package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/framescript/internal/frameranges"
)

const settingsDoc = `
aa:
  main:
    desc_h: 720
    desc_str: 0.32
  op:
    nrad: 3
filt:
  main:
    db_thr: 2.4
`

const chaptersDoc = `
ep01:
  op: 1296
  ed: 30042
ep02:
  op: 1128
`

const mapsDoc = `
no_aa:
  ep01: [240, [1000, 1200]]
offsets:
  ep02: [[0, 23]]
`

func writeDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoad_AllFiles(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"settings.yaml": settingsDoc,
		"chapters.yaml": chaptersDoc,
		"maps.yaml":     mapsDoc,
	})

	store, err := Load(FileSource{Dir: dir})
	require.NoError(t, err)

	bp, ok := store.Block("aa")
	require.True(t, ok)
	assert.Equal(t, 720, bp["main"]["desc_h"])
	assert.Equal(t, 0.32, bp["main"]["desc_str"])
	assert.Contains(t, bp, "op")

	frame, ok := store.Chapter("ep01", "op", "")
	require.True(t, ok)
	assert.Equal(t, 1296, frame)

	specs := store.Map("no_aa", "ep01")
	assert.Equal(t, []frameranges.Spec{
		frameranges.Single(240),
		frameranges.Interval(1000, 1200),
	}, specs)
}

func TestLoad_MissingFilesAreNotErrors(t *testing.T) {
	store, err := Load(FileSource{Dir: t.TempDir()})
	require.NoError(t, err)

	_, ok := store.Block("aa")
	assert.False(t, ok)
	_, ok = store.Chapter("ep01", "op", "")
	assert.False(t, ok)
	assert.Nil(t, store.Map("no_aa", "ep01"))
}

func TestLoad_MalformedYAMLFails(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"settings.yaml": "aa: [not: a: mapping",
	})

	_, err := Load(FileSource{Dir: dir})
	require.Error(t, err)
}

func TestLoad_MalformedMapSpecFails(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"maps.yaml": "no_aa:\n  ep01: [[1, 2, 3]]\n",
	})

	_, err := Load(FileSource{Dir: dir})
	require.Error(t, err, "a 3-element interval must be rejected at load time")
}

func TestChapter_Fallback(t *testing.T) {
	store, err := Load(StaticSource{C: Chapters{
		"ep02": {"op": 1128},
	}})
	require.NoError(t, err)

	frame, ok := store.Chapter("ep02", "ed", "op")
	require.True(t, ok)
	assert.Equal(t, 1128, frame)

	_, ok = store.Chapter("ep02", "ed", "")
	assert.False(t, ok)

	_, ok = store.Chapter("ep99", "op", "op")
	assert.False(t, ok, "unknown episode has no fallback path")
}

func TestBlock_ReturnsCopies(t *testing.T) {
	store, err := Load(StaticSource{S: Settings{
		"aa": BlockProfiles{"main": {"desc_h": 720}},
	}})
	require.NoError(t, err)

	bp, ok := store.Block("aa")
	require.True(t, ok)
	bp["main"]["desc_h"] = 999

	again, _ := store.Block("aa")
	assert.Equal(t, 720, again["main"]["desc_h"], "store must stay read-only after load")
}

func TestMap_ReturnsCopy(t *testing.T) {
	store, err := Load(StaticSource{M: Maps{
		"no_aa": {"ep01": {frameranges.Single(5)}},
	}})
	require.NoError(t, err)

	specs := store.Map("no_aa", "ep01")
	specs[0] = frameranges.Single(99)

	again := store.Map("no_aa", "ep01")
	assert.Equal(t, frameranges.Single(5), again[0])
}
