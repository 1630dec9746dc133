package stats

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// statRecord is the wire form of one dump line. The native layer writes one
// JSON object per line per (tag, frame) pair.
type statRecord struct {
	Tag   string  `json:"tag"`
	Frame int     `json:"frame"`
	Value float64 `json:"value"`
}

// FileProvider serves statistics from a JSON-lines dump loaded fully into
// memory. It is read-only after Open and safe for concurrent lookups.
type FileProvider struct {
	path   string
	values map[Tag]map[int]float64
}

// OpenFile loads a stat dump. A missing file is a MissingResourceError (the
// dump is a required input wherever a FileProvider is configured); malformed
// lines fail the load with their line number.
func OpenFile(path string) (*FileProvider, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, &MissingResourceError{Resource: path}
	}
	if err != nil {
		return nil, fmt.Errorf("open stat dump %q: %w", path, err)
	}
	defer f.Close()

	p := &FileProvider{path: path, values: make(map[Tag]map[int]float64)}

	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec statRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("parse %s line %d: %w", path, line, err)
		}
		byFrame, ok := p.values[Tag(rec.Tag)]
		if !ok {
			byFrame = make(map[int]float64)
			p.values[Tag(rec.Tag)] = byFrame
		}
		byFrame[rec.Frame] = rec.Value
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return p, nil
}

// Stat implements [Provider]. A (tag, frame) pair the dump does not cover is
// a missing resource, not a zero value.
func (p *FileProvider) Stat(_ context.Context, tag Tag, n int) (float64, error) {
	byFrame, ok := p.values[tag]
	if !ok {
		return 0, &MissingResourceError{Resource: fmt.Sprintf("%s: tag %q", p.path, tag)}
	}
	v, ok := byFrame[n]
	if !ok {
		return 0, &MissingResourceError{Resource: fmt.Sprintf("%s: tag %q frame %d", p.path, tag, n)}
	}
	return v, nil
}

// Frames returns how many frames the dump covers for tag.
func (p *FileProvider) Frames(tag Tag) int {
	return len(p.values[tag])
}
