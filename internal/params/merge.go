package params

import (
	"fmt"
	"reflect"
	"sort"
)

// mergeInto applies a flat key→value mapping onto the bundle struct pointed
// to by dst. Keys are matched against field yaml tags; an unmatched key or a
// value of the wrong shape yields a ConfigurationError. Keys are applied in
// sorted order so failures are deterministic.
func mergeInto(dst any, m map[string]any, block, zone string) error {
	v := reflect.ValueOf(dst).Elem()
	idx := fieldIndex(v.Type())

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fi, ok := idx[key]
		if !ok {
			return &ConfigurationError{Block: block, Zone: zone, Key: key, Reason: "unknown setting"}
		}
		if err := assign(v.Field(fi), m[key]); err != nil {
			return &ConfigurationError{Block: block, Zone: zone, Key: key, Reason: err.Error()}
		}
	}
	return nil
}

// fieldIndex maps yaml tag → struct field index. Fields without a yaml tag
// are not addressable from profiles or overrides.
func fieldIndex(t reflect.Type) map[string]int {
	idx := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag != "" && tag != "-" {
			idx[tag] = i
		}
	}
	return idx
}

// assign converts a decoded YAML value into the field's type. The accepted
// shapes mirror what yaml.v3 produces for an untyped document: int, float64,
// bool, string, []any, map[string]any.
func assign(f reflect.Value, raw any) error {
	switch f.Kind() {
	case reflect.Int:
		n, ok := asInt(raw)
		if !ok {
			return fmt.Errorf("expected integer, got %T", raw)
		}
		f.SetInt(n)
		return nil

	case reflect.Float64:
		switch t := raw.(type) {
		case float64:
			f.SetFloat(t)
		case int:
			f.SetFloat(float64(t))
		default:
			return fmt.Errorf("expected number, got %T", raw)
		}
		return nil

	case reflect.Bool:
		b, ok := raw.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", raw)
		}
		f.SetBool(b)
		return nil

	case reflect.String:
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", raw)
		}
		f.SetString(s)
		return nil

	case reflect.Slice:
		return assignSlice(f, raw)

	case reflect.Map:
		return assignMap(f, raw)

	default:
		return fmt.Errorf("unsupported field kind %s", f.Kind())
	}
}

func assignSlice(f reflect.Value, raw any) error {
	elem := f.Type().Elem()

	// A bare scalar is shorthand for a one-element list ([]int fields only,
	// e.g. sm_thr: 40 or top: 2).
	if elem.Kind() == reflect.Int {
		if n, ok := asInt(raw); ok {
			f.Set(reflect.ValueOf([]int{int(n)}))
			return nil
		}
	}

	items, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("expected sequence, got %T", raw)
	}
	out := reflect.MakeSlice(f.Type(), len(items), len(items))
	for i, item := range items {
		if elem.Kind() == reflect.Struct {
			m, ok := item.(map[string]any)
			if !ok {
				return fmt.Errorf("element %d: expected mapping, got %T", i, item)
			}
			ev := out.Index(i)
			if err := mergeStruct(ev, m); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			continue
		}
		if err := assign(out.Index(i), item); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	f.Set(out)
	return nil
}

// mergeStruct fills one sequence element (e.g. an AdaptiveZone) from its
// mapping, with the same unknown-key strictness as top-level merges.
func mergeStruct(ev reflect.Value, m map[string]any) error {
	idx := fieldIndex(ev.Type())

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fi, ok := idx[key]
		if !ok {
			return fmt.Errorf("unknown setting %q", key)
		}
		if err := assign(ev.Field(fi), m[key]); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func assignMap(f reflect.Value, raw any) error {
	m, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("expected mapping, got %T", raw)
	}
	out := reflect.MakeMapWithSize(f.Type(), len(m))
	for k, item := range m {
		ev := reflect.New(f.Type().Elem()).Elem()
		if err := assign(ev, item); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		out.SetMapIndex(reflect.ValueOf(k), ev)
	}
	f.Set(out)
	return nil
}

func asInt(raw any) (int64, bool) {
	switch t := raw.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case uint64:
		return int64(t), true
	default:
		return 0, false
	}
}
