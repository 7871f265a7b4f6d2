package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

var errNullEntry = errors.New("entry is null")

// Validator is implemented by cached values that can check their own shape
// after decoding. An entry that fails validation is treated as a miss.
type Validator interface {
	Validate() error
}

// Load decodes the JSON value stored under key into a T.
// A value that is null, cannot be decoded, or fails Validate is reported as a
// miss so the caller recomputes and overwrites it.
func Load[T any](s *Store, key Key) (T, bool) {
	var out T

	raw, ok := s.Get(key)
	if !ok {
		s.observer.Miss(key.Kind())
		return out, false
	}

	if err := decode(raw, &out); err != nil {
		slog.Warn("[Cache] Discarding undecodable entry", "key", key.String(), "error", err)
		s.observer.Miss(key.Kind())
		var zero T
		return zero, false
	}

	s.observer.Hit(key.Kind())
	return out, true
}

// Save encodes v as JSON and stores it under key.
func Save[T any](s *Store, key Key, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	s.Set(key, raw)
	return nil
}

func decode[T any](raw []byte, out *T) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return errNullEntry
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return err
	}
	if v, ok := any(*out).(Validator); ok {
		return v.Validate()
	}
	return nil
}

// SaveIfEpoch is Save guarded by Store.SetIfEpoch. It reports whether the value
// was stored.
func SaveIfEpoch[T any](s *Store, key Key, v T, epoch uint64) (bool, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return false, fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	return s.SetIfEpoch(key, raw, epoch), nil
}
