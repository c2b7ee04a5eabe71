// Package prefs stores small UI preferences behind a typed schema.
//
// Values live in a flat string key/value Store. Every key declares how its value is
// decoded and a default; a missing or malformed stored value yields the default
// instead of corrupting the UI state.
package prefs

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/tartampluch/go-folio/internal/calculator"
	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/units"
)

// Store is a flat string-keyed preference backend. fyne.Preferences satisfies it.
type Store interface {
	String(key string) string
	SetString(key string, value string)
	RemoveValue(key string)
}

// Key describes one typed preference entry.
type Key[T any] struct {
	Name    string
	Default T
	Decode  func(string) (T, error)
	Encode  func(T) string
}

// Get returns the stored value of k, or its default when the value is missing or malformed.
func Get[T any](s Store, k Key[T]) T {
	raw := s.String(k.Name)
	if raw == "" {
		return k.Default
	}
	v, err := k.Decode(raw)
	if err != nil {
		slog.Warn(config.MsgPrefMalformed,
			config.LogKeyComponent, config.CompPrefs,
			config.LogKeyKey, k.Name,
			config.LogKeyValue, raw,
			config.LogKeyError, err)
		return k.Default
	}
	return v
}

// Set stores v under k.
func Set[T any](s Store, k Key[T], v T) {
	s.SetString(k.Name, k.Encode(v))
}

// Remove deletes the stored value of k so that Get falls back to the default.
func Remove[T any](s Store, k Key[T]) {
	s.RemoveValue(k.Name)
}

var errNotAllowed = errors.New("value not allowed")

// BoolKey declares a boolean preference.
func BoolKey(name string, def bool) Key[bool] {
	return Key[bool]{
		Name:    name,
		Default: def,
		Decode:  strconv.ParseBool,
		Encode:  strconv.FormatBool,
	}
}

// EnumKey declares a string preference restricted to allowed values.
func EnumKey[T ~string](name string, def T, allowed ...T) Key[T] {
	return Key[T]{
		Name:    name,
		Default: def,
		Decode: func(raw string) (T, error) {
			v := T(raw)
			if !slices.Contains(allowed, v) {
				return def, fmt.Errorf("%w: %q", errNotAllowed, raw)
			}
			return v, nil
		},
		Encode: func(v T) string { return string(v) },
	}
}

// StringKey declares a free-form string preference.
func StringKey(name, def string) Key[string] {
	return Key[string]{
		Name:    name,
		Default: def,
		Decode:  func(raw string) (string, error) { return raw, nil },
		Encode:  func(v string) string { return v },
	}
}

// Schema of the desktop preferences.
var (
	Language          = EnumKey(config.PrefLanguage, config.DefaultLanguage, config.SupportedLanguages...)
	AngleMode         = EnumKey(config.PrefAngleMode, calculator.Degrees, calculator.Degrees, calculator.Radians)
	ConverterCategory = EnumKey(config.PrefConverterCategory, units.Length, units.Categories...)
	Scientific        = BoolKey(config.PrefScientific, false)
	LastRunVersion    = StringKey(config.PrefLastRun, "")
)

// SectionVisible is the visibility toggle of a named section. Sections are shown by default.
func SectionVisible(section string) Key[bool] {
	return BoolKey(config.PrefSectionPrefix+section, true)
}

// MemoryStore is an in-memory Store for headless binaries and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) String(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key]
}

func (m *MemoryStore) SetString(key string, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MemoryStore) RemoveValue(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}
